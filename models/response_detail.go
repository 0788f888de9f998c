package models

type ResponseDetail struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	ResponseID  uint `json:"response_id" gorm:"not null;index"`
	QuestionID  uint `json:"question_id" gorm:"not null;index"`
	AnswerValue int  `json:"answer_value" gorm:"not null"`

	// Relationships
	Response *QuizResponse `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Question *Question     `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}
