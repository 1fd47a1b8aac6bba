package study

import (
	"strings"
	"testing"

	"quizdeck/models"
	"quizdeck/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A pooled :memory: database is one database per connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Term{},
		&models.UserModule{},
		&models.UserTermProgress{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedModule(t *testing.T, db *gorm.DB, owner *models.User, title string, isPrivate bool, terms ...string) *models.Module {
	t.Helper()
	m := &models.Module{
		Slug:      utils.Slugify(title, 50),
		Title:     title,
		IsPrivate: isPrivate,
		UserID:    owner.ID,
	}
	require.NoError(t, db.Create(m).Error)
	for _, term := range terms {
		require.NoError(t, db.Create(&models.Term{
			ModuleID:   m.ID,
			Term:       term,
			Definition: term + " definition",
			Status:     models.StatusNotStarted,
		}).Error)
	}
	return m
}

func moduleTerms(t *testing.T, db *gorm.DB, moduleID uint) []models.Term {
	t.Helper()
	var terms []models.Term
	require.NoError(t, db.Where("module_id = ?", moduleID).Order("id asc").Find(&terms).Error)
	return terms
}

func progressCount(t *testing.T, db *gorm.DB, userID, moduleID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.UserTermProgress{}).
		Joins("JOIN terms ON terms.id = user_term_progresses.term_id").
		Where("user_term_progresses.user_id = ? AND terms.module_id = ?", userID, moduleID).
		Count(&n).Error)
	return n
}
