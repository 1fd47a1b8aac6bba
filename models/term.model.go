package models

import "gorm.io/gorm"

// Study statuses for a term, both on the term itself (the owner's own
// progress) and on per-user progress rows.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the three study statuses.
func ValidStatus(s string) bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// Term is one flashcard. Status and IsStarred hold the module owner's own
// progress and double as seed values when the owner's progress rows are
// materialized.
type Term struct {
	gorm.Model
	ModuleID   uint   `json:"moduleId" gorm:"not null;uniqueIndex:idx_module_term"`
	Term       string `json:"term" gorm:"not null;uniqueIndex:idx_module_term"`
	Definition string `json:"definition" gorm:"not null"`
	Status     string `json:"status" gorm:"default:'not_started'"`
	IsStarred  bool   `json:"isStarred" gorm:"default:false"`

	Module Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
