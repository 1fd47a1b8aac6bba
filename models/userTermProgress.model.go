package models

import "time"

// UserTermProgress is one user's mutable study state for one term.
// Rows exist only for the module owner or users who collected the module,
// are created lazily on first touch, and are removed only when the term,
// module or user goes away. The unique pair index is the backstop against
// the concurrent first-touch race.
type UserTermProgress struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_user_term"`
	TermID    uint      `json:"termId" gorm:"not null;uniqueIndex:idx_user_term"`
	Status    string    `json:"status" gorm:"default:'not_started'"`
	IsStarred bool      `json:"isStarred" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Term Term `json:"-" gorm:"foreignKey:TermID;constraint:OnDelete:CASCADE"`
}
