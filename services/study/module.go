package study

import (
	"errors"
	"strings"

	"quizdeck/models"
	"quizdeck/utils"

	"gorm.io/gorm"
)

type CreateModuleInput struct {
	Title       string
	Description string
	IsPrivate   *bool
}

type UpdateModuleInput struct {
	Title       *string
	Description *string
}

// CreateModule creates a module owned by userID and seeds the owner's
// progress rows. Modules are private unless the input says otherwise.
func (s *Service) CreateModule(userID uint, in CreateModuleInput) (*ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	slug := utils.Slugify(in.Title, 50)

	var dup models.Module
	err := s.db.Where("slug = ? OR title = ?", slug, in.Title).First(&dup).Error
	if err == nil {
		if dup.Slug == slug {
			return nil, ErrSlugTaken
		}
		return nil, ErrTitleTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := models.Module{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		IsPrivate:   true,
		UserID:      userID,
	}
	if in.IsPrivate != nil {
		m.IsPrivate = *in.IsPrivate
	}
	if err := s.db.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if err := s.ensureMembership(userID, m.ID, true); err != nil {
		return nil, err
	}
	return s.buildModuleView(userID, &m, true)
}

// UpdateModule changes title/description on an owned module. The slug is
// derived once at creation and never rewritten.
func (s *Service) UpdateModule(userID, moduleID uint, in UpdateModuleInput) (*ModuleView, error) {
	m, err := s.requireOwnedModule(userID, moduleID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) > 0 {
		if err := s.db.Model(m).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrTitleTaken
			}
			return nil, err
		}
	}
	return s.buildModuleView(userID, m, false)
}

// UpdateVisibility toggles isPrivate on an owned module.
func (s *Service) UpdateVisibility(userID, moduleID uint, isPrivate bool) (*ModuleView, error) {
	m, err := s.requireOwnedModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(m).Update("is_private", isPrivate).Error; err != nil {
		return nil, err
	}
	return s.buildModuleView(userID, m, false)
}

// MyModules lists the modules userID owns, with aggregates.
func (s *Service) MyModules(userID uint) ([]ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	var modules []models.Module
	if err := s.db.Where("user_id = ?", userID).Order("id asc").Find(&modules).Error; err != nil {
		return nil, err
	}
	return s.buildModuleViews(userID, modules)
}

// Collection lists the modules userID has added, with aggregates.
func (s *Service) Collection(userID uint) ([]ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	var links []models.UserModule
	if err := s.db.Where("user_id = ?", userID).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []ModuleView{}, nil
	}

	moduleIDs := make([]uint, len(links))
	for i, l := range links {
		moduleIDs[i] = l.ModuleID
	}
	var modules []models.Module
	if err := s.db.Where("id IN ?", moduleIDs).Order("id asc").Find(&modules).Error; err != nil {
		return nil, err
	}
	return s.buildModuleViews(userID, modules)
}

// SearchPublic lists public modules whose title or description contains q
// (case-insensitive). An empty q lists all public modules.
func (s *Service) SearchPublic(userID uint, q string) ([]ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	query := s.db.Where("is_private = ?", false)
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var modules []models.Module
	if err := query.Order("id asc").Find(&modules).Error; err != nil {
		return nil, err
	}
	return s.buildModuleViews(userID, modules)
}

// Collect adds a public (or own) module to the user's collection and
// materializes the progress rows.
func (s *Service) Collect(userID, moduleID uint) (*ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	m, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(m, userID); err != nil {
		return nil, err
	}

	if err := s.ensureMembership(userID, m.ID, m.UserID == userID); err != nil {
		return nil, err
	}
	return s.buildModuleView(userID, m, true)
}

// Uncollect removes a module from the user's collection. The user's
// progress rows stay behind so re-collecting resumes where they left off.
// Owners cannot leave their own module.
func (s *Service) Uncollect(userID, moduleID uint) (*ModuleView, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	m, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(m, userID); err != nil {
		return nil, err
	}
	if m.UserID == userID {
		return nil, ErrOwnCollection
	}

	err = s.db.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&models.UserModule{}).Error
	if err != nil {
		return nil, err
	}
	return s.buildModuleView(userID, m, false)
}

// GetModule returns the full detail view including per-term progress.
// Reading never collects: a browsed-but-not-added public module reports
// isCollected=false and all terms not started.
func (s *Service) GetModule(userID, moduleID uint) (*ModuleView, error) {
	m, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(m, userID); err != nil {
		return nil, err
	}
	return s.buildModuleView(userID, m, true)
}

// DeleteModule removes an owned module with its terms, everyone's
// progress rows for those terms, and all collection links.
func (s *Service) DeleteModule(userID, moduleID uint) error {
	m, err := s.requireOwnedModule(userID, moduleID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var termIDs []uint
		if err := tx.Model(&models.Term{}).Where("module_id = ?", m.ID).Pluck("id", &termIDs).Error; err != nil {
			return err
		}
		if len(termIDs) > 0 {
			if err := tx.Where("term_id IN ?", termIDs).Delete(&models.UserTermProgress{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("module_id = ?", m.ID).Delete(&models.Term{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", m.ID).Delete(&models.UserModule{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(m).Error
	})
}

func (s *Service) requireOwnedModule(userID, moduleID uint) (*models.Module, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	m, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrNotOwner
	}
	return m, nil
}
