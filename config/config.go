package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig database config
type DBConfig struct {
	Type     string `yaml:"type"` // sqlite or postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig system config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
	SeedDemo bool   `yaml:"seed_demo"`
}

// WebConfig web server config
type WebConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Metrics bool   `yaml:"metrics"`
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// Addr returns the listen address of the web server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// DefaultAppConfig is used when no config file is given
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ChannelHub",
		Location: "Europe/Warsaw",
		Workdir:  "/var/channelhub",
		Debug:    true,
		SeedDemo: false,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    8000,
		Metrics: true,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "channelhub.db",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/channelhub/logs/channelhub.log",
	},
}

// LoadConfig reads the YAML file at cfile (when it exists) on top of the
// defaults and then applies CHANNELS_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}
	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvString("CHANNELS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvString("CHANNELS_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("CHANNELS_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvBool("CHANNELS_SYSTEM_SEED_DEMO", &cfg.System.SeedDemo)

	setEnvString("CHANNELS_WEB_HOST", &cfg.Web.Host)
	setEnvInt("CHANNELS_WEB_PORT", &cfg.Web.Port)
	setEnvBool("CHANNELS_WEB_METRICS", &cfg.Web.Metrics)

	setEnvString("CHANNELS_DB_TYPE", &cfg.Database.Type)
	setEnvString("CHANNELS_DB_HOST", &cfg.Database.Host)
	setEnvInt("CHANNELS_DB_PORT", &cfg.Database.Port)
	setEnvString("CHANNELS_DB_NAME", &cfg.Database.Name)
	setEnvString("CHANNELS_DB_USER", &cfg.Database.User)
	setEnvString("CHANNELS_DB_PWD", &cfg.Database.Passwd)
	setEnvBool("CHANNELS_DB_DEBUG", &cfg.Database.Debug)

	setEnvString("CHANNELS_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("CHANNELS_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvString("CHANNELS_LOGGER_FILENAME", &cfg.Logger.Filename)
}

func setEnvString(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}

func setEnvBool(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}
