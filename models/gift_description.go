package models

type GiftDescription struct {
	ID           uint   `json:"-" gorm:"primaryKey"`
	GiftCategory string `json:"gift_category" gorm:"uniqueIndex;not null"`
	Description  string `json:"description" gorm:"not null"`
}
