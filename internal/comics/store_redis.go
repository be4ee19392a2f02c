// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/inkfold/inkfold/internal/platform/constants"
)

// RedisTelemetry counts comic detail views in Redis.
//
// Counters are fire-and-forget: a failed increment is logged and swallowed,
// never surfaced to the request that triggered it. This is the one place the
// pipeline is allowed to drop an error.
type RedisTelemetry struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTelemetry creates a Redis-backed view counter.
func NewTelemetry(client *redis.Client, logger *slog.Logger) *RedisTelemetry {
	return &RedisTelemetry{client: client, logger: logger}
}

/*
CountView increments the view counter for a comic.

Parameters:
  - context: context.Context
  - comicID: int64
*/
func (telemetry *RedisTelemetry) CountView(context context.Context, comicID int64) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%d", constants.RedisPrefixComicViews, comicID)

	// Increment and swallow failures
	if err := telemetry.client.Incr(context, key).Err(); err != nil {
		telemetry.logger.WarnContext(context, "comic view increment failed",
			slog.Int64("comic_id", comicID),
			slog.String("error", err.Error()),
		)
	}
}

/*
Views returns the accumulated view count for a comic.

Description: A missing key reads as zero; connectivity failures are logged
and also read as zero so catalogue responses never fail on telemetry.

Parameters:
  - context: context.Context
  - comicID: int64

Returns:
  - int64: Accumulated views, zero when unknown
*/
func (telemetry *RedisTelemetry) Views(context context.Context, comicID int64) int64 {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%d", constants.RedisPrefixComicViews, comicID)

	// Read the counter
	views, err := telemetry.client.Get(context, key).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			telemetry.logger.WarnContext(context, "comic view read failed",
				slog.Int64("comic_id", comicID),
				slog.String("error", err.Error()),
			)
		}
		return 0
	}

	return views
}
