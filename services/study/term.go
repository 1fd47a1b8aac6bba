package study

import (
	"errors"

	"quizdeck/models"

	"gorm.io/gorm"
)

type CreateTermInput struct {
	Term       string
	Definition string
	Status     *string
	IsStarred  *bool
}

type UpdateTermInput struct {
	Term       *string
	Definition *string
	Status     *string
	IsStarred  *bool
}

type UpdateProgressInput struct {
	Status    *string
	IsStarred *bool
}

// CreateTerm adds a term to an owned module. Status/IsStarred set the
// owner's own progress on the new card.
func (s *Service) CreateTerm(userID, moduleID uint, in CreateTermInput) (*TermView, error) {
	m, err := s.requireOwnedModule(userID, moduleID)
	if err != nil {
		return nil, err
	}

	var dup models.Term
	err = s.db.Where("module_id = ? AND term = ?", m.ID, in.Term).First(&dup).Error
	if err == nil {
		return nil, ErrTermTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := models.Term{
		ModuleID:   m.ID,
		Term:       in.Term,
		Definition: in.Definition,
		Status:     models.StatusNotStarted,
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.IsStarred != nil {
		t.IsStarred = *in.IsStarred
	}
	if err := s.db.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTermTaken
		}
		return nil, err
	}

	view := projectTerm(&t, t.Status, t.IsStarred)
	return &view, nil
}

// UpdateTerm edits the card text or the owner's per-term fields.
func (s *Service) UpdateTerm(userID, termID uint, in UpdateTermInput) (*TermView, error) {
	t, m, err := s.findTermWithModule(termID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if in.Term != nil {
		updates["term"] = *in.Term
	}
	if in.Definition != nil {
		updates["definition"] = *in.Definition
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.IsStarred != nil {
		updates["is_starred"] = *in.IsStarred
	}
	if len(updates) > 0 {
		if err := s.db.Model(t).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrTermTaken
			}
			return nil, err
		}
	}

	view := projectTerm(t, t.Status, t.IsStarred)
	return &view, nil
}

// DeleteTerm removes a term from an owned module along with everyone's
// progress rows for it.
func (s *Service) DeleteTerm(userID, termID uint) error {
	t, m, err := s.findTermWithModule(termID)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("term_id = ?", t.ID).Delete(&models.UserTermProgress{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(t).Error
	})
}

// UpdateProgress sets the caller's status and/or star for one term,
// materializing the row on first touch.
func (s *Service) UpdateProgress(userID, termID uint, in UpdateProgressInput) (*TermView, error) {
	t, _, isOwner, err := s.requireStudyAccess(userID, termID)
	if err != nil {
		return nil, err
	}

	row, err := s.progressRow(userID, termID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row, err = s.firstTouch(userID, t, isOwner, func(r *models.UserTermProgress) {
			applyProgressInput(r, in)
		})
		if err != nil {
			return nil, err
		}
		if row != nil {
			view := projectTerm(t, row.Status, row.IsStarred)
			return &view, nil
		}
		// Lost the first-touch race: fall through to the update path.
		row, err = s.progressRow(userID, termID)
		if err != nil {
			return nil, err
		}
	}

	before := *row
	applyProgressInput(row, in)
	if row.Status != before.Status || row.IsStarred != before.IsStarred {
		if err := s.db.Save(row).Error; err != nil {
			return nil, err
		}
	}

	view := projectTerm(t, row.Status, row.IsStarred)
	return &view, nil
}

// UpdateStatus applies one success/failure study attempt to the caller's
// status for the term, per the transition table. Persists only on change.
func (s *Service) UpdateStatus(userID, termID uint, success bool) (*TermView, error) {
	t, _, isOwner, err := s.requireStudyAccess(userID, termID)
	if err != nil {
		return nil, err
	}

	row, err := s.progressRow(userID, termID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row, err = s.firstTouch(userID, t, isOwner, func(r *models.UserTermProgress) {
			r.Status = NextStatus(r.Status, success)
		})
		if err != nil {
			return nil, err
		}
		if row != nil {
			view := projectTerm(t, row.Status, row.IsStarred)
			return &view, nil
		}
		row, err = s.progressRow(userID, termID)
		if err != nil {
			return nil, err
		}
	}

	next := NextStatus(row.Status, success)
	if next != row.Status {
		row.Status = next
		if err := s.db.Save(row).Error; err != nil {
			return nil, err
		}
	}

	view := projectTerm(t, row.Status, row.IsStarred)
	return &view, nil
}

// GetProgress reads the caller's progress for one term. For a collector
// whose rows are missing it synchronizes the whole module first; for a
// user who merely browses a public module it reports defaults without
// writing anything.
func (s *Service) GetProgress(userID, termID uint) (*TermView, error) {
	t, m, err := s.findTermWithModule(termID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(m, userID); err != nil {
		return nil, err
	}

	isOwner := m.UserID == userID
	isCollected := isOwner
	if !isOwner {
		isCollected, err = s.hasCollectionLink(userID, m.ID)
		if err != nil {
			return nil, err
		}
	}

	row, err := s.progressRow(userID, termID)
	if err != nil {
		return nil, err
	}
	if row == nil && isCollected {
		if err := s.EnsureProgressRecords(userID, m.ID, isOwner); err != nil {
			return nil, err
		}
		row, err = s.progressRow(userID, termID)
		if err != nil {
			return nil, err
		}
	}

	status, starred := models.StatusNotStarted, false
	if row != nil {
		status, starred = row.Status, row.IsStarred
	}
	view := projectTerm(t, status, starred)
	return &view, nil
}

// requireStudyAccess gates the progress mutations: the term and module
// must exist, the module must be accessible, and a non-owner must have
// collected it. The owner's own link/rows are synchronized on the way in.
func (s *Service) requireStudyAccess(userID, termID uint) (*models.Term, *models.Module, bool, error) {
	t, m, err := s.findTermWithModule(termID)
	if err != nil {
		return nil, nil, false, err
	}
	if err := CheckAccess(m, userID); err != nil {
		return nil, nil, false, err
	}

	isOwner := m.UserID == userID
	if isOwner {
		if err := s.ensureMembership(userID, m.ID, true); err != nil {
			return nil, nil, false, err
		}
		return t, m, true, nil
	}

	collected, err := s.hasCollectionLink(userID, m.ID)
	if err != nil {
		return nil, nil, false, err
	}
	if !collected {
		return nil, nil, false, ErrNotCollected
	}
	return t, m, false, nil
}

func (s *Service) progressRow(userID, termID uint) (*models.UserTermProgress, error) {
	var row models.UserTermProgress
	err := s.db.Where("user_id = ? AND term_id = ?", userID, termID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// firstTouch seeds a fresh progress row (owner rows copy the term's own
// fields), lets mutate adjust it, and inserts it. Returns nil without an
// error when a concurrent request inserted the row first; the caller
// re-reads and updates instead.
func (s *Service) firstTouch(userID uint, t *models.Term, isOwner bool, mutate func(*models.UserTermProgress)) (*models.UserTermProgress, error) {
	row := &models.UserTermProgress{
		UserID: userID,
		TermID: t.ID,
		Status: models.StatusNotStarted,
	}
	if isOwner {
		row.Status = t.Status
		row.IsStarred = t.IsStarred
	}
	mutate(row)

	if err := s.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func applyProgressInput(row *models.UserTermProgress, in UpdateProgressInput) {
	if in.Status != nil {
		row.Status = *in.Status
	}
	if in.IsStarred != nil {
		row.IsStarred = *in.IsStarred
	}
}
