package app

import (
	"gorm.io/gorm"

	"github.com/talkincode/channelhub/config"
	"github.com/talkincode/channelhub/internal/repository"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// RepositoryProvider provides the storage repositories
type RepositoryProvider interface {
	ChannelRepo() repository.ChannelRepository
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	RepositoryProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb() error
	DropAll() error
}
