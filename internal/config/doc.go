// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package config loads the service configuration with koanf.
//
// Layers, later wins:
//
//  1. struct defaults (defaultConfig)
//  2. YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths found
//  3. environment variables, through an explicit name mapping
//
// Environment examples:
//
//	HTTP_PORT=3001
//	JWT_SECRET=...            # >= 32 chars; random per process when unset
//	STORE_BACKEND=redis       # memory | badger | redis
//	REDIS_ADDR=localhost:6379
//	YOUTUBE_API_KEY=...
//	TWITCH_CLIENT_ID=... TWITCH_CLIENT_SECRET=...
//	FEED_SOURCE=youtube       # youtube | twitch
//	NATS_ENABLED=true NATS_URL=nats://localhost:4222
//	CORS_ORIGINS=https://a.example,https://b.example
//	LOG_LEVEL=debug LOG_FORMAT=console
//
// Unknown variables are ignored. Comma-separated values are split for list
// settings.
package config
