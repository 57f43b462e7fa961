package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/channelhub/internal/domain"
)

// GetEmptyTestDB opens a private in-memory sqlite database with the
// schema migrated. A single connection keeps every query on the same
// in-memory database.
func GetEmptyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// CreateChannels inserts a channel per name with numbers starting at 1
func CreateChannels(t *testing.T, db *gorm.DB, names ...string) []domain.Channel {
	t.Helper()
	channels := make([]domain.Channel, 0, len(names))
	for i, name := range names {
		ch := domain.Channel{Name: name, Number: int64(i + 1)}
		require.NoError(t, db.Create(&ch).Error)
		channels = append(channels, ch)
	}
	return channels
}
