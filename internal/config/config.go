// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/spark/internal/recommend"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Security  SecurityConfig   `koanf:"security"`
	Sessions  SessionsConfig   `koanf:"sessions"`
	Store     StoreConfig      `koanf:"store"`
	Redis     RedisConfig      `koanf:"redis"`
	YouTube   YouTubeConfig    `koanf:"youtube"`
	Twitch    TwitchConfig     `koanf:"twitch"`
	Feed      FeedConfig       `koanf:"feed"`
	Recommend recommend.Config `koanf:"recommend"`
	NATS      NATSConfig       `koanf:"nats"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds each API request including upstream fetches.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// SlowRequest is the access-log warning threshold.
	SlowRequest time.Duration `koanf:"slow_request"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds token, CORS and rate limit settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Empty generates a random secret at
	// startup, so tokens do not survive restarts.
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	CORSOrigins          []string `koanf:"cors_origins"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// SessionRateLimit bounds session creation per IP per minute.
	SessionRateLimit int `koanf:"session_rate_limit"`
}

// SessionsConfig bounds the in-memory session registry.
type SessionsConfig struct {
	Capacity    int           `koanf:"capacity"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
	StoreRedis  = "redis"
)

// StoreConfig selects where behavior snapshots are persisted.
type StoreConfig struct {
	Backend string `koanf:"backend"`

	// BadgerPath is the badger data directory. Empty runs in memory.
	BadgerPath string `koanf:"badger_path"`
}

// RedisConfig is used when store.backend is redis.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Prefix   string        `koanf:"prefix"`
	TTL      time.Duration `koanf:"ttl"`
}

// YouTubeConfig configures the YouTube Data API source.
type YouTubeConfig struct {
	APIKey string `koanf:"api_key"`

	// Endpoint overrides the API base URL.
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"`
}

// Enabled reports whether the source has credentials.
func (c YouTubeConfig) Enabled() bool { return c.APIKey != "" }

// TwitchConfig configures the Twitch Helix source.
type TwitchConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	APIBase      string        `koanf:"api_base"`
	TokenURL     string        `koanf:"token_url"`
	Timeout      time.Duration `koanf:"timeout"`
}

// Enabled reports whether the source has credentials.
func (c TwitchConfig) Enabled() bool { return c.ClientID != "" && c.ClientSecret != "" }

// Feed sources.
const (
	SourceYouTube = "youtube"
	SourceTwitch  = "twitch"
)

// FeedConfig configures feed assembly and upstream protection.
// The number of videos per load is recommend.mix.default_limit.
type FeedConfig struct {
	// Source is the candidate source behind GET /api/feed.
	Source string `koanf:"source"`

	DefaultRegion  string  `koanf:"default_region"`
	PreferredRatio float64 `koanf:"preferred_ratio"`

	// CacheDuration is how long fetched pages are reused.
	CacheDuration time.Duration `koanf:"cache_duration"`

	// AutoRefreshInterval is how often idle sessions are swept and
	// flushed.
	AutoRefreshInterval time.Duration `koanf:"auto_refresh_interval"`

	// Upstream rate limit and circuit breaker.
	RequestsPerSecond   float64       `koanf:"requests_per_second"`
	Burst               int           `koanf:"burst"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// NATSConfig selects the JetStream event bus. Disabled uses an in-process
// channel.
type NATSConfig struct {
	Enabled        bool          `koanf:"enabled"`
	URL            string        `koanf:"url"`
	QueueGroup     string        `koanf:"queue_group"`
	DurableName    string        `koanf:"durable_name"`
	MaxReconnects  int           `koanf:"max_reconnects"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
	AckWaitTimeout time.Duration `koanf:"ack_wait_timeout"`
	BufferSize     int64         `koanf:"buffer_size"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the defaults applied before file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  30 * time.Second,
			SlowRequest:     2 * time.Second,
		},
		Security: SecurityConfig{
			TokenTTL:         30 * 24 * time.Hour,
			CORSOrigins:      []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimitReqs:    300,
			RateLimitWindow:  time.Minute,
			SessionRateLimit: 10,
		},
		Sessions: SessionsConfig{
			Capacity:    10000,
			IdleTimeout: 30 * time.Minute,
		},
		Store: StoreConfig{
			Backend:    StoreBadger,
			BadgerPath: "/data/spark",
		},
		Redis: RedisConfig{
			Prefix: "spark:",
		},
		YouTube: YouTubeConfig{
			Timeout: 10 * time.Second,
		},
		Twitch: TwitchConfig{
			Timeout: 10 * time.Second,
		},
		Feed: FeedConfig{
			Source:              SourceYouTube,
			DefaultRegion:       "US",
			PreferredRatio:      0.8,
			CacheDuration:       10 * time.Minute,
			AutoRefreshInterval: 5 * time.Minute,
			RequestsPerSecond:   5,
			Burst:               10,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      2 * time.Minute,
		},
		Recommend: *recommend.DefaultConfig(),
		NATS: NATSConfig{
			URL:            "nats://127.0.0.1:4222",
			QueueGroup:     "spark-recorders",
			DurableName:    "spark-recorder",
			MaxReconnects:  -1,
			ReconnectWait:  2 * time.Second,
			AckWaitTimeout: 30 * time.Second,
			BufferSize:     256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
