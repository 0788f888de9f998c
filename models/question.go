package models

// Question is one Likert statement in the bank. QuestionOrder drives both
// presentation order and the order of per-question result details.
type Question struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	GiftCategory  string `json:"gift_category" gorm:"not null;index"`
	QuestionText  string `json:"question_text" gorm:"not null"`
	QuestionOrder int    `json:"question_order" gorm:"not null"`
}
