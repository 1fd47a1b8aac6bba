package study

import (
	"errors"
	"time"

	"quizdeck/models"

	"gorm.io/gorm"
)

// TermView is the outward term shape. Status/IsStarred carry the
// requesting user's own progress, never the owner's per-term fields.
type TermView struct {
	ID         uint      `json:"id"`
	ModuleID   uint      `json:"moduleId"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Status     string    `json:"status"`
	IsStarred  bool      `json:"isStarred"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ModuleView is the outward module shape: ownership flags, owner info,
// the aggregate, and optionally the terms with per-user progress.
type ModuleView struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"isPrivate"`
	UserID      uint       `json:"userId"`
	OwnerName   string     `json:"ownerName"`
	OwnerImg    string     `json:"ownerImg"`
	IsOwner     bool       `json:"isOwner"`
	IsCollected bool       `json:"isCollected"`
	TermsCount  int        `json:"termsCount"`
	Progress    Progress   `json:"progress"`
	Terms       []TermView `json:"terms,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func projectTerm(t *models.Term, status string, isStarred bool) TermView {
	return TermView{
		ID:         t.ID,
		ModuleID:   t.ModuleID,
		Term:       t.Term,
		Definition: t.Definition,
		Status:     status,
		IsStarred:  isStarred,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// projectTerms attaches the user's progress to each term. Terms of a
// module the user has not collected report not_started/unstarred without
// consulting the progress store.
func projectTerms(terms []models.Term, rows []models.UserTermProgress, isCollected bool) []TermView {
	views := make([]TermView, 0, len(terms))
	if !isCollected {
		for i := range terms {
			views = append(views, projectTerm(&terms[i], models.StatusNotStarted, false))
		}
		return views
	}

	byTerm := make(map[uint]*models.UserTermProgress, len(rows))
	for i := range rows {
		byTerm[rows[i].TermID] = &rows[i]
	}
	for i := range terms {
		status, starred := models.StatusNotStarted, false
		if row, ok := byTerm[terms[i].ID]; ok {
			status, starred = row.Status, row.IsStarred
		}
		views = append(views, projectTerm(&terms[i], status, starred))
	}
	return views
}

// buildModuleView assembles the outward view of one module for userID,
// synchronizing the user's rows first when they are owner or collector.
func (s *Service) buildModuleView(userID uint, m *models.Module, includeTerms bool) (*ModuleView, error) {
	isOwner := m.UserID == userID
	isCollected := isOwner
	if !isOwner {
		var err error
		isCollected, err = s.hasCollectionLink(userID, m.ID)
		if err != nil {
			return nil, err
		}
	}

	var terms []models.Term
	if err := s.db.Where("module_id = ?", m.ID).Order("id asc").Find(&terms).Error; err != nil {
		return nil, err
	}

	// Sync before any read of the progress store.
	if isCollected && len(terms) > 0 {
		if err := s.EnsureProgressRecords(userID, m.ID, isOwner); err != nil {
			return nil, err
		}
	}

	var rows []models.UserTermProgress
	if isCollected && len(terms) > 0 {
		termIDs := make([]uint, len(terms))
		for i, t := range terms {
			termIDs[i] = t.ID
		}
		if err := s.db.Where("user_id = ? AND term_id IN ?", userID, termIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
	}

	owner, err := s.findOwner(m.UserID)
	if err != nil {
		return nil, err
	}

	view := &ModuleView{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		IsPrivate:   m.IsPrivate,
		UserID:      m.UserID,
		OwnerName:   owner.Name,
		OwnerImg:    owner.ProfilePicture,
		IsOwner:     isOwner,
		IsCollected: isCollected,
		TermsCount:  len(terms),
		Progress:    Aggregate(rows, len(terms), isCollected),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if includeTerms {
		view.Terms = projectTerms(terms, rows, isCollected)
	}
	return view, nil
}

// buildModuleViews is the list-shaped variant: terms, collection links
// and owners are fetched in one batched query per table, keyed by id set.
func (s *Service) buildModuleViews(userID uint, modules []models.Module) ([]ModuleView, error) {
	views := make([]ModuleView, 0, len(modules))
	if len(modules) == 0 {
		return views, nil
	}

	moduleIDs := make([]uint, len(modules))
	ownerIDs := make([]uint, 0, len(modules))
	seenOwner := make(map[uint]bool)
	for i, m := range modules {
		moduleIDs[i] = m.ID
		if !seenOwner[m.UserID] {
			seenOwner[m.UserID] = true
			ownerIDs = append(ownerIDs, m.UserID)
		}
	}

	var terms []models.Term
	if err := s.db.Where("module_id IN ?", moduleIDs).Order("id asc").Find(&terms).Error; err != nil {
		return nil, err
	}
	termsByModule := make(map[uint][]models.Term)
	for _, t := range terms {
		termsByModule[t.ModuleID] = append(termsByModule[t.ModuleID], t)
	}

	var links []models.UserModule
	if err := s.db.Where("user_id = ? AND module_id IN ?", userID, moduleIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	collected := make(map[uint]bool, len(links))
	for _, l := range links {
		collected[l.ModuleID] = true
	}

	var owners []models.User
	if err := s.db.Select("id", "name", "profile_picture").Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, err
	}
	ownerByID := make(map[uint]models.User, len(owners))
	for _, o := range owners {
		ownerByID[o.ID] = o
	}

	for i := range modules {
		m := &modules[i]
		isOwner := m.UserID == userID
		isCollected := isOwner || collected[m.ID]
		moduleTerms := termsByModule[m.ID]

		if isCollected && len(moduleTerms) > 0 {
			if err := s.EnsureProgressRecords(userID, m.ID, isOwner); err != nil {
				return nil, err
			}
		}

		var rows []models.UserTermProgress
		if isCollected && len(moduleTerms) > 0 {
			termIDs := make([]uint, len(moduleTerms))
			for j, t := range moduleTerms {
				termIDs[j] = t.ID
			}
			if err := s.db.Where("user_id = ? AND term_id IN ?", userID, termIDs).Find(&rows).Error; err != nil {
				return nil, err
			}
		}

		owner := ownerByID[m.UserID]
		views = append(views, ModuleView{
			ID:          m.ID,
			Slug:        m.Slug,
			Title:       m.Title,
			Description: m.Description,
			IsPrivate:   m.IsPrivate,
			UserID:      m.UserID,
			OwnerName:   owner.Name,
			OwnerImg:    owner.ProfilePicture,
			IsOwner:     isOwner,
			IsCollected: isCollected,
			TermsCount:  len(moduleTerms),
			Progress:    Aggregate(rows, len(moduleTerms), isCollected),
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return views, nil
}

func (s *Service) findOwner(ownerID uint) (*models.User, error) {
	var owner models.User
	err := s.db.Select("id", "name", "profile_picture").First(&owner, ownerID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &owner, nil
}
