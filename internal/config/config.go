// Package config loads the geombridge server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/geombridge/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the server needs at startup.
type Config struct {
	WebSocket WebSocketConfig `yaml:"websocket"`
	QUIC      QUICConfig      `yaml:"quic"`
	Limits    LimitsConfig    `yaml:"limits"`
	Log       LogConfig       `yaml:"log"`
}

type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// QUICConfig configures the QUIC listener. Without CertFile and KeyFile a
// self-signed certificate is generated at startup.
type QUICConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	CertFile    string        `yaml:"cert_file"`
	KeyFile     string        `yaml:"key_file"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type LimitsConfig struct {
	MaxSessions    int           `yaml:"max_sessions"`
	MaxMessageSize int           `yaml:"max_message_size"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
}

type LogConfig struct {
	Level    log.Level `yaml:"level"`
	Encoding string    `yaml:"encoding"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		WebSocket: WebSocketConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8080",
			Path:    "/bridge",
		},
		QUIC: QUICConfig{
			Enabled:     true,
			Addr:        "127.0.0.1:8443",
			IdleTimeout: 30 * time.Second,
		},
		Limits: LimitsConfig{
			MaxSessions:    1000,
			MaxMessageSize: 1024 * 1024, // 1MB
			ReadTimeout:    5 * time.Minute,
			ShutdownGrace:  10 * time.Second,
		},
		Log: LogConfig{
			Level:    log.LevelInfo,
			Encoding: "json",
		},
	}
}

// Load reads the YAML file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadYAML(f)
}

// LoadYAML decodes r over Default and validates the result. Keys missing
// from r keep their default values; an empty document yields Default.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if !c.WebSocket.Enabled && !c.QUIC.Enabled {
		return fmt.Errorf("%w: no transport enabled", ErrInvalidConfig)
	}
	if c.WebSocket.Enabled {
		if c.WebSocket.Addr == "" {
			return fmt.Errorf("%w: websocket.addr is empty", ErrInvalidConfig)
		}
		if len(c.WebSocket.Path) == 0 || c.WebSocket.Path[0] != '/' {
			return fmt.Errorf("%w: websocket.path must start with /", ErrInvalidConfig)
		}
	}
	if c.QUIC.Enabled {
		if c.QUIC.Addr == "" {
			return fmt.Errorf("%w: quic.addr is empty", ErrInvalidConfig)
		}
		if (c.QUIC.CertFile == "") != (c.QUIC.KeyFile == "") {
			return fmt.Errorf("%w: quic.cert_file and quic.key_file go together", ErrInvalidConfig)
		}
	}
	if c.Limits.MaxSessions <= 0 {
		return fmt.Errorf("%w: limits.max_sessions must be positive", ErrInvalidConfig)
	}
	if c.Limits.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: limits.max_message_size must be positive", ErrInvalidConfig)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	return nil
}
