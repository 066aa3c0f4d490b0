// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package config

import (
	"fmt"
	"strings"
)

// minJWTSecretLength matches session.MinSecretLength.
const minJWTSecretLength = 32

// Validate checks every section.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateStore,
		c.validateFeed,
		c.validateNATS,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if s := c.Security.JWTSecret; s != "" && len(s) < minJWTSecretLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 || c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_reqs and rate_limit_window must be positive unless rate limiting is disabled")
		}
	}
	for _, o := range c.Security.CORSOrigins {
		if o == "*" && c.Security.CORSAllowCredentials {
			return fmt.Errorf("security.cors_origins cannot contain * when credentials are allowed")
		}
	}
	if c.Sessions.Capacity <= 0 {
		return fmt.Errorf("sessions.capacity must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case StoreMemory, StoreBadger:
		return nil
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when store.backend is redis")
		}
		return nil
	default:
		return fmt.Errorf("store.backend must be one of memory, badger, redis; got %q", c.Store.Backend)
	}
}

func (c *Config) validateFeed() error {
	switch c.Feed.Source {
	case SourceYouTube, SourceTwitch:
	default:
		return fmt.Errorf("feed.source must be youtube or twitch; got %q", c.Feed.Source)
	}
	if r := c.Feed.PreferredRatio; r <= 0 || r > 1 {
		return fmt.Errorf("feed.preferred_ratio must be in (0, 1], got %v", r)
	}
	if c.Feed.CacheDuration < 0 {
		return fmt.Errorf("feed.cache_duration must not be negative")
	}
	if c.Feed.AutoRefreshInterval <= 0 {
		return fmt.Errorf("feed.auto_refresh_interval must be positive")
	}
	if r := c.Feed.BreakerFailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("feed.breaker_failure_ratio must be in (0, 1], got %v", r)
	}
	if len(c.Feed.DefaultRegion) != 2 || strings.ToUpper(c.Feed.DefaultRegion) != c.Feed.DefaultRegion {
		return fmt.Errorf("feed.default_region must be a two-letter upper-case code, got %q", c.Feed.DefaultRegion)
	}
	return nil
}

func (c *Config) validateNATS() error {
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required when nats is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
