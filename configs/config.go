package configs

import (
	"errors"
	"os"
	"strings"

	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Host               string `validate:"required"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string `validate:"required"`
	Database           string `default:"postgres"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Port int `default:"8080"`
}

type Untappd struct {
	Email         string
	APIToken      string
	BaseURL       string `default:"https://business.untappd.com/api/v1"`
	CacheDuration int    `default:"3600"`
	MediaDir      string `default:"media"`
}

type Redis struct {
	Addr     string `default:"localhost:6379"`
	Password string
	DB       int `default:"0"`
}

type Sync struct {
	// MarkMissingUnavailable flips taplist entries that disappeared from the
	// upstream feed to unavailable instead of leaving them untouched.
	MarkMissingUnavailable bool
}

type Auth struct {
	SecretKey string
}

type Config struct {
	DB      DB
	Server  Server
	Untappd Untappd
	Redis   Redis
	Sync    Sync
	Auth    Auth
}

const envPrefix = "ONTAP" // env prefix for env vars

const (
	minCacheDuration = 300
	maxCacheDuration = 86400
)

var ErrConfiguration = errors.New("configuration error")

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if config.Untappd.CacheDuration < minCacheDuration {
		config.Untappd.CacheDuration = minCacheDuration
	}

	if config.Untappd.CacheDuration > maxCacheDuration {
		config.Untappd.CacheDuration = maxCacheDuration
	}

	return &config, nil
}
