// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/spark/config.yaml",
	"/etc/spark/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, an optional YAML file, and
// the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are list settings that may arrive as comma-separated
// strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.scoring.career_keywords",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"port":                  "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",
	"http_slow_request":     "server.slow_request",

	"jwt_secret":             "security.jwt_secret",
	"token_ttl":              "security.token_ttl",
	"cors_origins":           "security.cors_origins",
	"cors_allow_credentials": "security.cors_allow_credentials",
	"rate_limit_requests":    "security.rate_limit_reqs",
	"rate_limit_window":      "security.rate_limit_window",
	"disable_rate_limit":     "security.rate_limit_disabled",
	"session_rate_limit":     "security.session_rate_limit",

	"session_capacity":     "sessions.capacity",
	"session_idle_timeout": "sessions.idle_timeout",

	"store_backend": "store.backend",
	"badger_path":   "store.badger_path",

	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",
	"redis_prefix":   "redis.prefix",
	"redis_ttl":      "redis.ttl",

	"youtube_api_key":  "youtube.api_key",
	"youtube_endpoint": "youtube.endpoint",
	"youtube_timeout":  "youtube.timeout",

	"twitch_client_id":     "twitch.client_id",
	"twitch_client_secret": "twitch.client_secret",
	"twitch_api_base":      "twitch.api_base",
	"twitch_token_url":     "twitch.token_url",
	"twitch_timeout":       "twitch.timeout",

	"feed_source":                "feed.source",
	"default_region":             "feed.default_region",
	"preferred_ratio":            "feed.preferred_ratio",
	"cache_duration":             "feed.cache_duration",
	"auto_refresh_interval":      "feed.auto_refresh_interval",
	"source_requests_per_second": "feed.requests_per_second",
	"source_burst":               "feed.burst",
	"breaker_min_requests":       "feed.breaker_min_requests",
	"breaker_failure_ratio":      "feed.breaker_failure_ratio",
	"breaker_timeout":            "feed.breaker_timeout",

	"max_videos_per_load":       "recommend.mix.default_limit",
	"max_feed_limit":            "recommend.mix.max_limit",
	"recommend_career_keywords": "recommend.scoring.career_keywords",

	"nats_enabled":        "nats.enabled",
	"nats_url":            "nats.url",
	"nats_queue_group":    "nats.queue_group",
	"nats_durable_name":   "nats.durable_name",
	"nats_max_reconnects": "nats.max_reconnects",
	"nats_ack_wait":       "nats.ack_wait_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its koanf path. Unmapped
// variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
