package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once

const (
	defaultAPIURL        = "https://api.openweathermap.org/data/2.5/weather"
	defaultLogLevel      = "info"
	defaultServerName    = "meteo-mcp"
	defaultServerVersion = "1.0.0"
)

// Config is the process-wide configuration, built once at startup and
// passed down; it is never mutated after Load returns.
type Config struct {
	// APIKey is the OpenWeatherMap credential. It may be empty: a
	// missing credential is reported per call, not treated as a
	// startup failure.
	APIKey string
	// APIURL is the current-weather endpoint the upstream client
	// targets. Tests point it at a local fake server.
	APIURL string

	LogLevel      string
	ServerName    string
	ServerVersion string
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		viper.SetDefault("openweathermap.api_url", defaultAPIURL)
		viper.SetDefault("log.level", defaultLogLevel)
		viper.SetDefault("server.name", defaultServerName)
		viper.SetDefault("server.version", defaultServerVersion)

		root, err := getProjectRoot()
		if err != nil {
			// No project root (e.g. installed binary): defaults apply.
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		_ = viper.ReadInConfig()

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			_ = viper.MergeInConfig()
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load reads the yaml config at the project root (if present) and the
// credential from the environment, and returns an immutable snapshot.
// Absent file, absent credential: both are fine, defaults apply.
func Load() (*Config, error) {
	_ = godotenv.Load()
	initConfig()

	return &Config{
		APIKey:        os.Getenv("OPENWEATHERMAP_API_KEY"),
		APIURL:        viper.GetString("openweathermap.api_url"),
		LogLevel:      viper.GetString("log.level"),
		ServerName:    viper.GetString("server.name"),
		ServerVersion: viper.GetString("server.version"),
	}, nil
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// NewLogger builds the diagnostic logger. Both output paths stay on
// stderr: stdout carries the MCP stream and must never receive a log
// line.
func NewLogger(cfg *Config) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
