package study

import (
	"quizdeck/models"

	"gorm.io/gorm/clause"
)

// EnsureCollectionLink records that userID has added moduleID to their
// collection. Owners are implicitly collected and never get a row.
// Idempotent: a concurrent duplicate insert resolves through the unique
// (user_id, module_id) index and is ignored.
func (s *Service) EnsureCollectionLink(userID, moduleID uint, isOwner bool) error {
	if isOwner {
		return nil
	}

	link := models.UserModule{UserID: userID, ModuleID: moduleID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// EnsureProgressRecords materializes a progress row for every term of
// moduleID that userID does not have one for yet. seedFromOwner copies
// the term's own status/star fields (used when the caller is the module
// owner); anyone else starts from not_started and unstarred. Idempotent
// and tolerant of partially seeded modules: terms added after a user
// collected the module are topped up on the next call, and once every row
// exists the call costs two reads and no writes.
func (s *Service) EnsureProgressRecords(userID, moduleID uint, seedFromOwner bool) error {
	var terms []models.Term
	if err := s.db.Where("module_id = ?", moduleID).Find(&terms).Error; err != nil {
		return err
	}
	if len(terms) == 0 {
		return nil
	}

	termIDs := make([]uint, len(terms))
	for i, t := range terms {
		termIDs[i] = t.ID
	}

	var existing []models.UserTermProgress
	if err := s.db.Where("user_id = ? AND term_id IN ?", userID, termIDs).Find(&existing).Error; err != nil {
		return err
	}
	seen := make(map[uint]bool, len(existing))
	for _, row := range existing {
		seen[row.TermID] = true
	}

	var missing []models.UserTermProgress
	for _, t := range terms {
		if seen[t.ID] {
			continue
		}
		row := models.UserTermProgress{
			UserID: userID,
			TermID: t.ID,
			Status: models.StatusNotStarted,
		}
		if seedFromOwner {
			row.Status = t.Status
			row.IsStarred = t.IsStarred
		}
		missing = append(missing, row)
	}
	if len(missing) == 0 {
		return nil
	}

	// Two first-touch requests from the same user can both pass the read
	// above; the unique (user_id, term_id) index makes the loser a no-op.
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&missing).Error
}

// ensureMembership runs both idempotent steps, link before progress rows.
// Must complete before any aggregation or projection for the same request.
func (s *Service) ensureMembership(userID, moduleID uint, isOwner bool) error {
	if err := s.EnsureCollectionLink(userID, moduleID, isOwner); err != nil {
		return err
	}
	return s.EnsureProgressRecords(userID, moduleID, isOwner)
}
