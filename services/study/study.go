// Package study implements the collection and progress engine: access
// checks on shared modules, lazy materialization of per-user collection
// and progress rows, the three-bucket progress aggregate and the study
// status state machine, plus the outward module/term projections.
package study

import (
	"errors"

	"quizdeck/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrTermNotFound   = errors.New("term not found")

	ErrPrivateModule = errors.New("module is private")
	ErrNotOwner      = errors.New("you can only modify your own modules")
	ErrNotCollected  = errors.New("add the module to your collection first")
	ErrOwnCollection = errors.New("cannot remove your own module from collection")

	ErrSlugTaken  = errors.New("module slug already exists")
	ErrTitleTaken = errors.New("module title already exists")
	ErrTermTaken  = errors.New("term already exists in this module")
)

// Service runs every operation against the store handed to it; handlers
// pass the shared database instance, tests pass their own.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) requireUser(userID uint) error {
	var user models.User
	if err := s.db.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Service) findModule(moduleID uint) (*models.Module, error) {
	var m models.Module
	if err := s.db.First(&m, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return &m, nil
}

// findTermWithModule resolves a term and its parent module or reports
// which of the two is missing.
func (s *Service) findTermWithModule(termID uint) (*models.Term, *models.Module, error) {
	var term models.Term
	if err := s.db.First(&term, termID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTermNotFound
		}
		return nil, nil, err
	}

	module, err := s.findModule(term.ModuleID)
	if err != nil {
		return nil, nil, err
	}
	return &term, module, nil
}

func (s *Service) hasCollectionLink(userID, moduleID uint) (bool, error) {
	var n int64
	err := s.db.Model(&models.UserModule{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&n).Error
	return n > 0, err
}
