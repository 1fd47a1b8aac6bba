package models

import "time"

// UserModule records that a user added a module to their collection.
// Owners are implicitly collected and never get a row. The unique pair
// index is the backstop against duplicate inserts when two requests from
// the same user race to collect the same module.
type UserModule struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_user_module"`
	ModuleID  uint      `json:"moduleId" gorm:"not null;uniqueIndex:idx_user_module"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Module Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
