// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package main is the entry point for the Moodboard API server.

Moodboard turns inspiration images and/or a short description into an
aesthetic profile, then searches ShopStyle and ranks the results into a
diverse, coherent product list.

# Application Architecture

	RootSupervisor ("moodboard")
	├── DataSupervisor ("data-layer")
	│   └── Trend cache GC (when TRENDS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 defaults, optional config.yaml, environment
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Collaborators: ShopStyle client, OpenAI vision/oracle client, image checker
 4. Ranking engine and moodcheck service
 5. Trend service with memory and badger cache tiers (optional)
 6. Chi router and supervisor tree

# Configuration

Required:
  - OPENAI_API_KEY
  - SHOPSTYLE_PID

Common optional settings:
  - HTTP_PORT (default 5000)
  - LOG_LEVEL, LOG_FORMAT
  - CORS_ORIGINS (comma-separated)
  - PIPELINE_MAX_PRODUCTS
  - TRENDS_ENABLED, TRENDS_SOURCE_URL, TRENDS_CACHE_PATH, TRENDS_CLEAR_ON_START
  - IMAGE_CHECK_ENABLED

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops
accepting connections and drains in-flight requests for up to
HTTP_SHUTDOWN_TIMEOUT, and services that miss the deadline are reported.

# Example Usage

	export OPENAI_API_KEY=sk-...
	export SHOPSTYLE_PID=uid1234-5678
	./moodboard
*/
package main
