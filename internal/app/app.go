package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/talkincode/channelhub/config"
	"github.com/talkincode/channelhub/internal/domain"
	"github.com/talkincode/channelhub/internal/repository"
)

type Application struct {
	appConfig   *config.AppConfig
	gormDB      *gorm.DB
	channelRepo repository.ChannelRepository
}

// Ensure Application implements all interfaces
var (
	_ DBProvider         = (*Application)(nil)
	_ ConfigProvider     = (*Application)(nil)
	_ RepositoryProvider = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.channelRepo = repository.NewGormChannelRepository(db)
}

// ChannelRepo returns the channel repository bound to the current database
func (a *Application) ChannelRepo() repository.ChannelRepository {
	return a.channelRepo
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	logger, err := buildLogger(cfg.Logger)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	zap.ReplaceGlobals(logger)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" {
		if err := cfg.InitDirs(); err != nil {
			return err
		}
	}
	db, err := getDatabase(cfg.Database, cfg.System.Workdir)
	if err != nil {
		return err
	}
	a.OverrideDB(db)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		return errors.Wrap(err, "database migration failed")
	}

	if cfg.System.SeedDemo {
		a.checkChannels()
	}
	return nil
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		return zapConfig.Build(zap.AddCaller())
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer recoverMigration(&err)
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

// recoverMigration turns a migrator panic of any value into *errp
func recoverMigration(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if os.Getenv("GO_DEBUG_TRACE") != "" {
		debug.PrintStack()
	}
	if err, ok := r.(error); ok {
		*errp = errors.Wrap(err, "migration panic")
	} else {
		*errp = errors.Errorf("migration panic: %v", r)
	}
	zap.S().Error((*errp).Error())
}

func (a *Application) DropAll() error {
	return a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() error {
	if err := a.DropAll(); err != nil {
		return err
	}
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

// Release releases application resources
func (a *Application) Release() {
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
