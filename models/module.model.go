package models

import "gorm.io/gorm"

// Module is a shared set of study terms. Private modules are visible to
// the owner only; public ones can be browsed and collected by anyone.
type Module struct {
	gorm.Model
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string `json:"title" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate" gorm:"default:true"`
	UserID      uint   `json:"userId" gorm:"index;not null"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
