package repository

import (
	"context"
	"fmt"
	"testing"

	"tapestry/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database per test. The named
// shared-cache DSN keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Thread{}))
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, externalID, username string) *models.User {
	t.Helper()

	user := &models.User{
		ExternalID: externalID,
		Username:   username,
		Name:       "Test " + username,
		Bio:        "a bio long enough",
		Onboarded:  true,
	}
	require.NoError(t, NewUserRepository(db).Upsert(context.Background(), user))

	fetched, err := NewUserRepository(db).GetByExternalID(context.Background(), externalID)
	require.NoError(t, err)
	return fetched
}

func mustCreateThread(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Thread {
	t.Helper()

	thread := &models.Thread{Text: text, AuthorID: author.ID, Author: author}
	require.NoError(t, NewThreadRepository(db).Create(context.Background(), thread))
	return thread
}

func mustCreateReply(t *testing.T, db *gorm.DB, parentID uint, author *models.User, text string) *models.Thread {
	t.Helper()

	reply := &models.Thread{Text: text, AuthorID: author.ID, Author: author}
	require.NoError(t, NewThreadRepository(db).CreateReply(context.Background(), parentID, reply))
	return reply
}
