package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path            string `mapstructure:"path"`
	LogMode         bool   `mapstructure:"log_mode"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// AppSubConfig holds behaviour knobs of the session and streak engines.
type AppSubConfig struct {
	// Timezone is the single reference zone used for streak calendar days.
	// "Local" (default) means the server's zone.
	Timezone string `mapstructure:"timezone"`
	PageSize int    `mapstructure:"page_size"`
}

type SchedulerConfig struct {
	// StreakDecaySpec is a 6-field cron spec (with seconds). Empty disables the sweep.
	StreakDecaySpec string `mapstructure:"streak_decay_spec"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Security  SecurityConfig  `mapstructure:"security"`
	Log       LogConfig       `mapstructure:"log"`
	App       AppSubConfig    `mapstructure:"app"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

var (
	appConfig *Config
	once      sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/brainshift.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("database.slow_threshold_ms", 500)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "brainshift")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("log.file", "logs/brainshift.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("security.encryption_key", "")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("app.page_size", 20)
	v.SetDefault("scheduler.streak_decay_spec", "")
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it looks for "config.yaml" in the current working directory;
// a missing file is tolerated and the defaults plus environment are used.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		var c *Config
		c, err = read(path)
		if err != nil {
			return
		}
		appConfig = c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

func read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. BRAINSHIFT_SERVER_PORT=9000
	v.SetEnvPrefix("BRAINSHIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.App.PageSize <= 0 {
		c.App.PageSize = 20
	}
	return nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
