package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Cover    CoverConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	SessionSecret string
	SecureCookies bool
}

// StorageConfig selects where the movie snapshot lives.
type StorageConfig struct {
	Driver      string // file, sqlite or postgres
	Path        string
	SnapshotKey string
	SQLitePath  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type CoverConfig struct {
	APIURL        string
	Fallback      string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadConfig reads .env from the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file, then applies environment
// overrides. A missing file is not an error.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-watchlist")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SESSION_SECRET", "change-me-in-production")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("STORAGE_DRIVER", DriverFile)
	v.SetDefault("STORAGE_PATH", "data/")
	v.SetDefault("SNAPSHOT_KEY", "movies")
	v.SetDefault("SQLITE_PATH", "data/watchlist.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("COVER_API_URL", "https://www.googleapis.com/books/v1/volumes")
	v.SetDefault("COVER_FALLBACK", "default-cover.jpg")
	v.SetDefault("COVER_TIMEOUT_SECONDS", 5)
	v.SetDefault("COVER_RATE_PER_SECOND", 10)
	v.SetDefault("COVER_BURST", 20)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Port:          v.GetString("PORT"),
			Debug:         v.GetBool("DEBUG"),
			LogPath:       v.GetString("LOG_PATH"),
			SessionSecret: v.GetString("SESSION_SECRET"),
			SecureCookies: v.GetBool("SESSION_SECURE"),
		},
		Storage: StorageConfig{
			Driver:      v.GetString("STORAGE_DRIVER"),
			Path:        v.GetString("STORAGE_PATH"),
			SnapshotKey: v.GetString("SNAPSHOT_KEY"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Cover: CoverConfig{
			APIURL:        v.GetString("COVER_API_URL"),
			Fallback:      v.GetString("COVER_FALLBACK"),
			Timeout:       time.Duration(v.GetInt("COVER_TIMEOUT_SECONDS")) * time.Second,
			RatePerSecond: v.GetFloat64("COVER_RATE_PER_SECOND"),
			Burst:         v.GetInt("COVER_BURST"),
		},
	}

	return config, nil
}
