package study

import (
	"testing"

	"quizdeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func createModule(t *testing.T, svc *Service, userID uint, title string, isPrivate bool, terms ...string) *ModuleView {
	t.Helper()
	view, err := svc.CreateModule(userID, CreateModuleInput{
		Title:     title,
		IsPrivate: boolPtr(isPrivate),
	})
	require.NoError(t, err)
	for _, term := range terms {
		_, err := svc.CreateTerm(userID, view.ID, CreateTermInput{
			Term:       term,
			Definition: term + " definition",
		})
		require.NoError(t, err)
	}
	return view
}

func TestCreateModuleSeedsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	view, err := svc.CreateModule(alice.ID, CreateModuleInput{Title: "Cell Biology 101"})
	require.NoError(t, err)

	assert.Equal(t, "cell-biology-101", view.Slug)
	assert.True(t, view.IsPrivate, "private by default")
	assert.True(t, view.IsOwner)
	assert.True(t, view.IsCollected)
	assert.Equal(t, "Alice", view.OwnerName)
	assert.Zero(t, view.TermsCount)
	assert.Equal(t, Progress{}, view.Progress)

	// Owners are implicitly collected: no link row.
	var links int64
	require.NoError(t, db.Model(&models.UserModule{}).Where("user_id = ?", alice.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestCreateModuleConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	createModule(t, svc, alice.ID, "Biology", true)

	_, err := svc.CreateModule(bob.ID, CreateModuleInput{Title: "Biology"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	// Different title, same slug.
	_, err = svc.CreateModule(bob.ID, CreateModuleInput{Title: "biology"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateModuleUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	_, err := svc.CreateModule(99, CreateModuleInput{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateModuleKeepsSlug(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	m := createModule(t, svc, alice.ID, "Biology", true)

	view, err := svc.UpdateModule(alice.ID, m.ID, UpdateModuleInput{
		Title:       strPtr("Advanced Biology"),
		Description: strPtr("Second semester"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Biology", view.Title)
	assert.Equal(t, "Second semester", view.Description)
	assert.Equal(t, "biology", view.Slug, "slug is fixed at creation")
}

func TestUpdateModuleNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false)

	_, err := svc.UpdateModule(bob.ID, m.ID, UpdateModuleInput{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", true)

	_, err := svc.GetModule(bob.ID, m.ID)
	assert.ErrorIs(t, err, ErrPrivateModule)

	view, err := svc.UpdateVisibility(alice.ID, m.ID, false)
	require.NoError(t, err)
	assert.False(t, view.IsPrivate)

	_, err = svc.GetModule(bob.ID, m.ID)
	assert.NoError(t, err)
}

func TestGetModuleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	_, err := svc.GetModule(alice.ID, 404)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestMyModulesAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	createModule(t, svc, alice.ID, "Biology", true, "Cell", "Mitosis", "Osmosis")

	views, err := svc.MyModules(alice.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, 3, views[0].TermsCount)
	assert.InDelta(t, 1.0, views[0].Progress.NotStarted, 1e-9)
	assert.Zero(t, views[0].Progress.InProgress)
	assert.Zero(t, views[0].Progress.Completed)
	assert.Nil(t, views[0].Terms, "list views omit terms")
}

func TestStudyMovesAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	m := createModule(t, svc, alice.ID, "Biology", true, "Cell", "Mitosis", "Osmosis")
	terms := moduleTerms(t, db, m.ID)

	// One successful attempt on the first card.
	tv, err := svc.UpdateStatus(alice.ID, terms[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, tv.Status)

	view, err := svc.GetModule(alice.ID, m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, view.Progress.NotStarted, 1e-9)
	assert.InDelta(t, 1.0/3.0, view.Progress.InProgress, 1e-9)
	assert.Zero(t, view.Progress.Completed)
}

func TestCollectPublicModule(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell", "Mitosis")

	view, err := svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, view.IsCollected)
	assert.False(t, view.IsOwner)
	assert.Equal(t, "Alice", view.OwnerName)

	assert.EqualValues(t, 2, progressCount(t, db, bob.ID, m.ID))

	collection, err := svc.Collection(bob.ID)
	require.NoError(t, err)
	require.Len(t, collection, 1)
	assert.Equal(t, m.ID, collection[0].ID)
}

func TestCollectPrivateModule(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", true)

	_, err := svc.Collect(bob.ID, m.ID)
	assert.ErrorIs(t, err, ErrPrivateModule)
}

func TestProgressIsPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell", "Mitosis")
	terms := moduleTerms(t, db, m.ID)

	// Alice masters the first card.
	_, err := svc.UpdateStatus(alice.ID, terms[0].ID, true)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(alice.ID, terms[0].ID, true)
	require.NoError(t, err)

	// Bob collects after that: he starts from scratch.
	_, err = svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)

	view, err := svc.GetModule(bob.ID, m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, view.Progress.NotStarted, 1e-9)
	require.Len(t, view.Terms, 2)
	for _, tv := range view.Terms {
		assert.Equal(t, models.StatusNotStarted, tv.Status)
		assert.False(t, tv.IsStarred)
	}

	// And Alice's view is untouched by Bob's existence.
	view, err = svc.GetModule(alice.ID, m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, view.Progress.NotStarted, 1e-9)
	assert.InDelta(t, 0.5, view.Progress.Completed, 1e-9)
}

func TestBrowseWithoutCollecting(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell")
	terms := moduleTerms(t, db, m.ID)
	require.NoError(t, db.Model(&terms[0]).Update("status", models.StatusCompleted).Error)

	// Reading never collects and never leaks the owner's card fields.
	view, err := svc.GetModule(bob.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, view.IsCollected)
	assert.Equal(t, Progress{NotStarted: 1}, view.Progress)
	require.Len(t, view.Terms, 1)
	assert.Equal(t, models.StatusNotStarted, view.Terms[0].Status)

	assert.Zero(t, progressCount(t, db, bob.ID, m.ID))
}

func TestSearchPublic(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	createModule(t, svc, alice.ID, "Cell Biology", false)
	createModule(t, svc, alice.ID, "Organic Chemistry", false)
	createModule(t, svc, alice.ID, "Secret Biology Notes", true)

	views, err := svc.SearchPublic(bob.ID, "biology")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Cell Biology", views[0].Title)

	views, err = svc.SearchPublic(bob.ID, "")
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestUncollect(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell")
	terms := moduleTerms(t, db, m.ID)

	_, err := svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(bob.ID, terms[0].ID, true)
	require.NoError(t, err)

	view, err := svc.Uncollect(bob.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, view.IsCollected)

	collection, err := svc.Collection(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, collection)

	// Progress rows survive; re-collecting resumes.
	assert.EqualValues(t, 1, progressCount(t, db, bob.ID, m.ID))

	view, err = svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)
	require.Len(t, view.Terms, 1)
	assert.Equal(t, models.StatusInProgress, view.Terms[0].Status)
}

func TestUncollectOwnModule(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")

	m := createModule(t, svc, alice.ID, "Biology", true)

	_, err := svc.Uncollect(alice.ID, m.ID)
	assert.ErrorIs(t, err, ErrOwnCollection)
}

func TestDeleteModuleCascades(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell", "Mitosis")
	_, err := svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteModule(alice.ID, m.ID))

	_, err = svc.GetModule(alice.ID, m.ID)
	assert.ErrorIs(t, err, ErrModuleNotFound)

	var terms, links, rows int64
	require.NoError(t, db.Model(&models.Term{}).Where("module_id = ?", m.ID).Count(&terms).Error)
	require.NoError(t, db.Model(&models.UserModule{}).Where("module_id = ?", m.ID).Count(&links).Error)
	require.NoError(t, db.Model(&models.UserTermProgress{}).Count(&rows).Error)
	assert.Zero(t, terms)
	assert.Zero(t, links)
	assert.Zero(t, rows)
}

func TestDeleteModuleNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false)

	assert.ErrorIs(t, svc.DeleteModule(bob.ID, m.ID), ErrNotOwner)
}

func TestCollectThenNewTermShowsUp(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")

	m := createModule(t, svc, alice.ID, "Biology", false, "Cell")
	_, err := svc.Collect(bob.ID, m.ID)
	require.NoError(t, err)

	_, err = svc.CreateTerm(alice.ID, m.ID, CreateTermInput{Term: "Mitosis", Definition: "Splitting"})
	require.NoError(t, err)

	// Next read tops up the missing row lazily.
	view, err := svc.GetModule(bob.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TermsCount)
	assert.EqualValues(t, 2, progressCount(t, db, bob.ID, m.ID))
}
