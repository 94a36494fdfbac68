// Package iqfeed provides a client for the IQFeed historical lookup socket.
package iqfeed

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 9100 // lookup port
	DefaultDialTimeout = 5 * time.Second
	DefaultReadDelay   = 1 * time.Second
	DefaultBufferSize  = 4096
)

// Config holds connection settings for the lookup socket.
type Config struct {
	Host        string        // Feed host (e.g., "127.0.0.1")
	Port        int           // Lookup port
	DialTimeout time.Duration // TCP connect timeout
	ReadDelay   time.Duration // Pause between sending a request and reading the response; 0 disables it
	BufferSize  int           // Size of each read chunk
}

// DefaultConfig returns the settings of a local IQConnect instance.
func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		DialTimeout: DefaultDialTimeout,
		ReadDelay:   DefaultReadDelay,
		BufferSize:  DefaultBufferSize,
	}
}

// LoadConfig overlays environment variables on DefaultConfig.
// Values that fail to parse keep their defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("IQFEED_HOST"); v != "" {
		cfg.Host = v
	}
	if v, err := strconv.Atoi(os.Getenv("IQFEED_PORT")); err == nil && v > 0 {
		cfg.Port = v
	}
	if v, err := time.ParseDuration(os.Getenv("IQFEED_DIAL_TIMEOUT")); err == nil && v > 0 {
		cfg.DialTimeout = v
	}
	if v, err := time.ParseDuration(os.Getenv("IQFEED_READ_DELAY")); err == nil && v >= 0 {
		cfg.ReadDelay = v
	}
	return cfg
}
