package study

import (
	"testing"

	"quizdeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCollectionLinkOwnerGetsNoRow(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	m := seedModule(t, db, owner, "Biology", false, "Cell")

	require.NoError(t, svc.EnsureCollectionLink(owner.ID, m.ID, true))

	var n int64
	require.NoError(t, db.Model(&models.UserModule{}).Where("user_id = ?", owner.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnsureCollectionLinkIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	collector := seedUser(t, db, "Bob")
	m := seedModule(t, db, owner, "Biology", false)

	require.NoError(t, svc.EnsureCollectionLink(collector.ID, m.ID, false))
	require.NoError(t, svc.EnsureCollectionLink(collector.ID, m.ID, false))

	var n int64
	require.NoError(t, db.Model(&models.UserModule{}).
		Where("user_id = ? AND module_id = ?", collector.ID, m.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnsureProgressRecordsSeedsDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	collector := seedUser(t, db, "Bob")
	m := seedModule(t, db, owner, "Biology", false, "Cell", "Mitosis", "Osmosis")

	// Give the owner's cards non-default fields so a bad seed would show.
	require.NoError(t, db.Model(&models.Term{}).Where("module_id = ?", m.ID).
		Updates(map[string]interface{}{"status": models.StatusCompleted, "is_starred": true}).Error)

	require.NoError(t, svc.EnsureProgressRecords(collector.ID, m.ID, false))

	var rows []models.UserTermProgress
	require.NoError(t, db.Where("user_id = ?", collector.ID).Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, models.StatusNotStarted, row.Status)
		assert.False(t, row.IsStarred)
	}
}

func TestEnsureProgressRecordsSeedsFromOwner(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	m := seedModule(t, db, owner, "Biology", false, "Cell", "Mitosis")

	terms := moduleTerms(t, db, m.ID)
	require.NoError(t, db.Model(&terms[0]).
		Updates(map[string]interface{}{"status": models.StatusCompleted, "is_starred": true}).Error)

	require.NoError(t, svc.EnsureProgressRecords(owner.ID, m.ID, true))

	var row models.UserTermProgress
	require.NoError(t, db.Where("user_id = ? AND term_id = ?", owner.ID, terms[0].ID).First(&row).Error)
	assert.Equal(t, models.StatusCompleted, row.Status)
	assert.True(t, row.IsStarred)

	require.NoError(t, db.Where("user_id = ? AND term_id = ?", owner.ID, terms[1].ID).First(&row).Error)
	assert.Equal(t, models.StatusNotStarted, row.Status)
	assert.False(t, row.IsStarred)
}

func TestEnsureProgressRecordsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	collector := seedUser(t, db, "Bob")
	m := seedModule(t, db, owner, "Biology", false, "Cell", "Mitosis")

	require.NoError(t, svc.EnsureProgressRecords(collector.ID, m.ID, false))
	require.NoError(t, svc.EnsureProgressRecords(collector.ID, m.ID, false))

	assert.EqualValues(t, 2, progressCount(t, db, collector.ID, m.ID))
}

func TestEnsureProgressRecordsTopsUpLateTerms(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	collector := seedUser(t, db, "Bob")
	m := seedModule(t, db, owner, "Biology", false, "Cell")

	require.NoError(t, svc.EnsureProgressRecords(collector.ID, m.ID, false))
	assert.EqualValues(t, 1, progressCount(t, db, collector.ID, m.ID))

	// A term added after Bob collected must be picked up on the next sync,
	// without disturbing the row he already has.
	var existing models.UserTermProgress
	require.NoError(t, db.Where("user_id = ?", collector.ID).First(&existing).Error)
	require.NoError(t, db.Model(&existing).Update("status", models.StatusCompleted).Error)

	require.NoError(t, db.Create(&models.Term{
		ModuleID: m.ID, Term: "Meiosis", Definition: "Meiosis definition",
		Status: models.StatusNotStarted,
	}).Error)

	require.NoError(t, svc.EnsureProgressRecords(collector.ID, m.ID, false))
	assert.EqualValues(t, 2, progressCount(t, db, collector.ID, m.ID))

	require.NoError(t, db.Where("user_id = ? AND term_id = ?", collector.ID, existing.TermID).First(&existing).Error)
	assert.Equal(t, models.StatusCompleted, existing.Status)
}

func TestEnsureProgressRecordsEmptyModule(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	owner := seedUser(t, db, "Alice")
	m := seedModule(t, db, owner, "Empty", false)

	require.NoError(t, svc.EnsureProgressRecords(owner.ID, m.ID, true))
	assert.Zero(t, progressCount(t, db, owner.ID, m.ID))
}
