package configs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Log      `mapstructure:"log"`
	Postgres `mapstructure:"postgres"`
	Storage  `mapstructure:"storage"`
	Line     `mapstructure:"line"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Log struct - File is optional; an empty value logs to stdout only
type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Storage struct - Driver is "postgres" or "memory"
type Storage struct {
	Driver           string `mapstructure:"driver"`
	RetentionMinutes int    `mapstructure:"retention_minutes"`
}

// Line struct
type Line struct {
	ChannelSecret  string `mapstructure:"channel_secret"`
	ChannelToken   string `mapstructure:"channel_token"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

const (
	// StorageDriverPostgres keeps narrowcast records in PostgreSQL
	StorageDriverPostgres = "postgres"
	// StorageDriverMemory keeps narrowcast records in process memory
	StorageDriverMemory = "memory"
)

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

// IsMemoryStorage reports whether narrowcast records are kept in memory
func (s Storage) IsMemoryStorage() bool {
	return strings.EqualFold(s.Driver, StorageDriverMemory)
}

func getConfig(path, env string) {
	loadDotEnv(path, env)

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	err := v.ReadInConfig()
	if err != nil {
		panic(err)
	}
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.Infof("Config file has changed: %s", e.Name)
	})
	var cfg Config
	err = v.Unmarshal(&cfg)
	if err != nil {
		logrus.Fatalln(err)
	}
	if env != "" {
		cfg.App.Env = env
	}
	config = cfg
}

// loadDotEnv loads .env and .env.<env> from path when present. Variables
// already set in the process environment win.
func loadDotEnv(path, env string) {
	files := []string{filepath.Join(path, ".env")}
	if env != "" {
		files = append([]string{filepath.Join(path, fmt.Sprintf(".env.%s", env))}, files...)
	}
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			logrus.Infof("Loaded environment from %s", file)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "9089")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("line.base_url", "https://api.line.me/v2/bot/")
	v.SetDefault("line.timeout_seconds", 30)
}
