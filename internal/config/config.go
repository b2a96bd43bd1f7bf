// Package config loads surveyform configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-surveyform/pkg/questions"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Questions QuestionsConfig `koanf:"questions"`
	Log       LogConfig       `koanf:"log"`
	Theme     ThemeConfig     `koanf:"theme"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr          string        `koanf:"addr"`
	ShutdownGrace time.Duration `koanf:"shutdown_grace"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	MaxSessions   int           `koanf:"max_sessions"`
	CookieName    string        `koanf:"cookie_name"`
	SecureCookie  bool          `koanf:"secure_cookie"`
}

// QuestionsConfig configures the question bank client. LocalBank mounts the
// embedded bank at /api/questions.
type QuestionsConfig struct {
	Endpoint       string        `koanf:"endpoint"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	LocalBank      bool          `koanf:"local_bank"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ThemeConfig selects the theme variant of the HTML renderer.
type ThemeConfig struct {
	Variant string `koanf:"variant"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:          ":8080",
			ShutdownGrace: 10 * time.Second,
			SessionTTL:    30 * time.Minute,
			MaxSessions:   1024,
			CookieName:    "surveyform_session",
		},
		Questions: QuestionsConfig{
			Endpoint:       questions.DefaultEndpoint,
			RequestTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Theme: ThemeConfig{
			Variant: "",
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownGrace < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_grace must not be negative, got %s", c.Server.ShutdownGrace))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL))
	}
	if c.Server.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions must be positive, got %d", c.Server.MaxSessions))
	}
	if strings.TrimSpace(c.Server.CookieName) == "" {
		errs = append(errs, errors.New("server.cookie_name is required"))
	}

	if u, err := url.Parse(c.Questions.Endpoint); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("questions.endpoint must be an absolute http(s) URL, got %q", c.Questions.Endpoint))
	}
	if c.Questions.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("questions.request_timeout must not be negative, got %s", c.Questions.RequestTimeout))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
