// Package config loads settings from defaults, an optional YAML file,
// SERENITY_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/serenity-circle/serenity/internal/llm"
)

// EnvPrefix prefixes every environment variable, e.g. SERENITY_SERVER_PORT.
const EnvPrefix = "SERENITY"

// Config is the full application configuration.
type Config struct {
	// DB is the SQLite path. Empty selects the default data directory.
	DB      string        `mapstructure:"db"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Chat    ChatConfig    `mapstructure:"chat"`
	LLM     llm.Config    `mapstructure:"llm"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	Debug           bool          `mapstructure:"debug"`
}

// Addr is host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type SessionConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	Capacity     int           `mapstructure:"capacity"`
	CookieName   string        `mapstructure:"cookie_name"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type ChatConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"db":        "db",
	"host":      "server.host",
	"port":      "server.port",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.debug", false)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.capacity", 10000)
	v.SetDefault("session.cookie_name", "serenity_session")
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("chat.history_limit", 50)
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.retry.attempts", l.Retry.Attempts)
	v.SetDefault("llm.retry.base_delay", l.Retry.BaseDelay)
	v.SetDefault("llm.retry.max_delay", l.Retry.MaxDelay)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load builds a Config. path names a config file; when empty,
// serenity.yaml is looked up in the user config dir and the working
// directory and skipped if absent. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("serenity")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "serenity"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if c.Chat.HistoryLimit <= 0 {
		return fmt.Errorf("chat.history_limit must be positive")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}
