// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed timeouts, limits, header names and Redis
// key prefixes shared by the API server and the seeder.
package constants

import "time"

// # Metadata

const (
	AppName    = "lexicon-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds writing a response. It must outlast ExportTimeout.
	DefaultWriteTimeout = 90 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline of every CRUD and search request,
	// and the pool-wide statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	// ExportTimeout replaces GlobalRequestTimeout for the streamed locale export.
	ExportTimeout = 75 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "lexicon.api"

	// TokenTypeBearer is returned alongside issued tokens.
	TokenTypeBearer = "Bearer"
)

// # Bulk Seeding

const (
	// SeedCheckpointTTL bounds how long a resumable seeding run is remembered.
	SeedCheckpointTTL = 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"

	HeaderWWWAuthenticate = "WWW-Authenticate"
)

// # Redis Key Prefixes

const (
	RedisPrefixRevokedToken   = "auth:revoked:"
	RedisPrefixSeedCheckpoint = "seed:checkpoint:"
)
