package database

import (
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory SQLite is per-connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func TestMigrateEnforcesUniqueHandle(t *testing.T) {
	db := setupMigratedDB(t)

	require.NoError(t, db.Create(&models.User{Handle: "alice", DisplayName: "Alice"}).Error)

	err := db.Create(&models.User{Handle: "alice", DisplayName: "Imposter"}).Error
	assert.Error(t, err)
}

func TestMigrateEnforcesUniqueLikePair(t *testing.T) {
	db := setupMigratedDB(t)

	user := &models.User{Handle: "alice"}
	require.NoError(t, db.Create(user).Error)
	post := &models.Post{Content: "x", UserID: user.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error)

	err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
	assert.Error(t, err)
}
