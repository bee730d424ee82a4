package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var (
	ErrInvalidPort         = errors.New("port must be between 0 and 65535")
	ErrInvalidMaxBodyBytes = errors.New("max body bytes must be positive")
	ErrInvalidTimeout      = errors.New("timeouts must not be negative")
)

// Config holds all configuration for the request inspector
type Config struct {
	// Server configuration
	Host string `ff:"long: host, default: 0.0.0.0, usage: HTTP server host"`
	Port int    `ff:"long: port, default: 8080, usage: HTTP server port"`

	// Transport timeouts
	ReadTimeout       time.Duration `ff:"long: read-timeout, default: 30s, usage: maximum duration for reading an entire request"`
	ReadHeaderTimeout time.Duration `ff:"long: read-header-timeout, default: 5s, usage: maximum duration for reading request headers"`
	WriteTimeout      time.Duration `ff:"long: write-timeout, default: 30s, usage: maximum duration before timing out writes of the response"`
	IdleTimeout       time.Duration `ff:"long: idle-timeout, default: 60s, usage: keep-alive idle timeout"`
	ShutdownTimeout   time.Duration `ff:"long: shutdown-timeout, default: 10s, usage: grace period for in-flight requests on shutdown"`

	// Request handling
	MaxBodyBytes int64 `ff:"long: max-body-bytes, default: 10485760, usage: largest request body accepted"`
	Quiet        bool  `ff:"long: quiet, default: false, usage: do not print requests to stdout"`
}

// Default returns the configuration used when no flags are given
func Default() Config {
	return Config{
		Host:              "0.0.0.0",
		Port:              8080,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxBodyBytes:      10 << 20,
	}
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxBodyBytes, c.MaxBodyBytes)
	}
	for _, d := range []time.Duration{c.ReadTimeout, c.ReadHeaderTimeout, c.WriteTimeout, c.IdleTimeout, c.ShutdownTimeout} {
		if d < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidTimeout, d)
		}
	}
	return nil
}

// Addr is the listen address in host:port form
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
