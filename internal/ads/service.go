// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/validate"
)

// # Identity Generation

// idCharset is the alphabet for six-character ad codes. Codes appear in
// click URLs, so the alphabet avoids characters that need escaping.
const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// idLength is the fixed length of an ad code.
const idLength = 6

// maxIDAttempts bounds the collision-retry loop. With 62^6 possible codes a
// handful of attempts is plenty until the space is genuinely saturated.
const maxIDAttempts = 5

// newAdID draws a random six-character code.
func newAdID() (string, error) {
	buffer := make([]byte, idLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("ad id entropy: %w", err)
	}
	for i, b := range buffer {
		buffer[i] = idCharset[int(b)%len(idCharset)]
	}
	return string(buffer), nil
}

// # Service Layer

// FileSink stores ad creatives. Keys are "<id>.<ext>".
type FileSink interface {
	Put(context context.Context, key string, data []byte) error
}

// ClickCounter mirrors click events into a real-time telemetry store.
// Implementations never fail the request.
type ClickCounter interface {
	Count(context context.Context, adID string)
}

// Service orchestrates the advertisement lifecycle.
type Service struct {
	repo    Repository
	files   FileSink
	clicks  ClickCounter
	logger  *slog.Logger
}

// NewService constructs an ads [Service]. clicks may be nil, disabling the
// telemetry mirror.
func NewService(repo Repository, files FileSink, clicks ClickCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, files: files, clicks: clicks, logger: logger}
}

// # Application

/*
Apply submits a new advertisement application with its creative.

Description: The six-character id is generated here with a bounded retry
loop: draw a candidate, try the insert, and on a primary-key collision draw
again. After maxIDAttempts collisions the id space is treated as saturated
and the application fails rather than looping forever. The creative file is
stored only after the row exists, keyed by the final id.

Parameters:
  - context: context.Context
  - ownerID: string (applying account, from the verified token)
  - input: Application
  - creativeName: string (original filename, extension carrier)
  - creative: []byte (file content)

Returns:
  - *Ad: The created application in StatusPending
  - error: apperr.ValidationError on bad input, apperr.Conflict when the id
    space is exhausted
*/
func (service *Service) Apply(context context.Context, ownerID string, input Application, creativeName string, creative []byte) (*Ad, error) {

	// Input validation
	validator := &validate.Validator{}
	validator.Required("ad_type", input.AdType).Custom("ad_type", input.AdType != "" && !ValidAdType(input.AdType), "must be a recognised placement slot")
	validator.Required("link", input.Link).MaxLen("link", input.Link, 500)
	validator.Required("main_text", input.MainText).MaxLen("main_text", input.MainText, 200)
	validator.MaxLen("secondary_text", input.SecondaryText, 400)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(creativeName), "."))
	validator.Custom("file", len(creative) == 0, "a creative file is required")
	validator.Custom("file", len(creative) > 0 && ext != "jpg" && ext != "png" && ext != "gif", "creative must be jpg, png, or gif")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	ad := &Ad{
		AdType:        input.AdType,
		Link:          input.Link,
		MainText:      input.MainText,
		SecondaryText: input.SecondaryText,
		FileExt:       ext,
		OwnerID:       ownerID,
		Status:        StatusPending,
	}

	// Generate-check-retry identity allocation, bounded so a saturated id
	// space fails loudly instead of spinning.
	var created bool
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := newAdID()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		ad.ID = id

		err = service.repo.Create(context, ad)
		if err == nil {
			created = true
			break
		}
		if apperr.Code(err) != "CONFLICT" {
			return nil, err
		}
	}
	if !created {
		return nil, apperr.Conflict("Could not allocate an advertisement id, the id space is exhausted")
	}

	if err := service.files.Put(context, ad.ID+"."+ad.FileExt, creative); err != nil {
		return nil, apperr.Storage(fmt.Errorf("store ad creative: %w", err))
	}

	service.logger.InfoContext(context, "ad application received",
		slog.String("ad_id", ad.ID),
		slog.String("ad_type", ad.AdType),
	)

	return ad, nil
}

// # Review & Lifecycle

/*
Approve accepts a pending application, recording the agreed price.

Parameters:
  - context: context.Context
  - id: string
  - price: int
  - notes: string

Returns:
  - error: apperr.NotFound when no pending application with the id exists
*/
func (service *Service) Approve(context context.Context, id string, price int, notes string) error {
	return service.repo.UpdateStatus(context, id, StatusPending, StatusApproved, notes, price)
}

/*
Reject declines a pending application.

Parameters:
  - context: context.Context
  - id: string
  - notes: string (reason shown to the applicant)

Returns:
  - error: apperr.NotFound when no pending application with the id exists
*/
func (service *Service) Reject(context context.Context, id string, notes string) error {
	return service.repo.UpdateStatus(context, id, StatusPending, StatusRejected, notes, 0)
}

/*
Activate starts serving an approved ad.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no approved ad with the id exists
*/
func (service *Service) Activate(context context.Context, id string) error {
	return service.repo.UpdateStatus(context, id, StatusApproved, StatusActive, "", 0)
}

/*
Expire stops serving an active ad at the end of its paid period.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no active ad with the id exists
*/
func (service *Service) Expire(context context.Context, id string) error {
	return service.repo.UpdateStatus(context, id, StatusActive, StatusExpired, "", 0)
}

/*
Renew reactivates an expired ad for a new paid period.

Parameters:
  - context: context.Context
  - id: string
  - price: int (new period price, zero keeps the previous price)

Returns:
  - error: apperr.NotFound when no expired ad with the id exists
*/
func (service *Service) Renew(context context.Context, id string, price int) error {
	return service.repo.UpdateStatus(context, id, StatusExpired, StatusActive, "", price)
}

// # Reads & Clicks

/*
Get returns one ad by its six-character id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Ad: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (service *Service) Get(context context.Context, id string) (*Ad, error) {
	return service.repo.FindByID(context, id)
}

/*
List returns ads filtered by status.

Parameters:
  - context: context.Context
  - status: Status (empty matches all)
  - limit: int
  - offset: int

Returns:
  - []*Ad: Matching rows
  - int: Total count matching the filter
  - error: Repository failures
*/
func (service *Service) List(context context.Context, status Status, limit, offset int) ([]*Ad, int, error) {
	return service.repo.List(context, status, limit, offset)
}

/*
Click records a click and returns the target link for redirection.

Description: The relational counter is the billing record and must succeed;
the Redis mirror is fire-and-forget telemetry for dashboards.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - string: The ad's target link
  - error: apperr.NotFound for an unknown id
*/
func (service *Service) Click(context context.Context, id string) (string, error) {
	ad, err := service.repo.FindByID(context, id)
	if err != nil {
		return "", err
	}

	if err := service.repo.IncrementClicks(context, id); err != nil {
		return "", err
	}
	if service.clicks != nil {
		service.clicks.Count(context, id)
	}

	return ad.Link, nil
}
