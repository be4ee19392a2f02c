// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/inkfold/inkfold/internal/platform/constants"
)

// RedisClickCounter counts ad clicks in Redis for real-time dashboards.
// The relational clicks column stays the billing-grade truth; this counter
// is fire-and-forget telemetry and failures are logged and swallowed.
type RedisClickCounter struct {
	client *redis.Client
	logger *slog.Logger
}

// NewClickCounter creates a Redis-backed click counter.
func NewClickCounter(client *redis.Client, logger *slog.Logger) *RedisClickCounter {
	return &RedisClickCounter{client: client, logger: logger}
}

/*
Count increments the click counter for an ad.

Parameters:
  - context: context.Context
  - adID: string
*/
func (counter *RedisClickCounter) Count(context context.Context, adID string) {

	// Use constants for key prefix
	key := constants.RedisPrefixAdClicks + adID

	// Increment and swallow failures
	if err := counter.client.Incr(context, key).Err(); err != nil {
		counter.logger.WarnContext(context, "ad click increment failed",
			slog.String("ad_id", adID),
			slog.String("error", err.Error()),
		)
	}
}
