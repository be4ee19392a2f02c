// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/pkg/slice"
)

// # Keyword Synchronizer

/*
AttachKeywords adds keywords to a pending comic, skipping ones already
attached.

Description: Attachment is idempotent at this layer, not in storage — the
association table carries no pair uniqueness, so the diff against the
current set here is what keeps duplicates out. Re-sending the same attach
request is therefore a harmless no-op.

Parameters:
  - context: context.Context
  - pendingID: int64
  - moderatorID: string
  - keywords: []string

Returns:
  - []string: The full keyword set after the attach
  - error: apperr.NotFound for an unknown id, apperr.Conflict when the row
    is already processed
*/
func (service *Service) AttachKeywords(context context.Context, pendingID int64, moderatorID string, keywords []string) ([]string, error) {

	requested := normalizeKeywords(keywords)
	if len(requested) == 0 {
		return nil, apperr.ValidationError("No keywords were supplied")
	}

	release := service.locks.Lock(pendingKey(pendingID))
	defer release()

	pending, err := service.pendingRepo.FindByID(context, pendingID)
	if err != nil {
		return nil, err
	}
	if pending.Processed {
		return nil, apperr.Conflict("Pending comic was already processed")
	}

	// Diff against the attached set; only genuinely new keywords are written.
	attached := make(map[string]struct{}, len(pending.Keywords))
	for _, keyword := range pending.Keywords {
		attached[keyword] = struct{}{}
	}
	missing := slice.Filter(requested, func(keyword string) bool {
		_, exists := attached[keyword]
		return !exists
	})

	if len(missing) > 0 {
		if err := service.pendingRepo.InsertKeywords(context, pendingID, missing); err != nil {
			return nil, err
		}
		service.recordAction(context, pending.Name, moderatorID, ActionKeywords)
	}

	return append(pending.Keywords, missing...), nil
}

/*
DetachKeywords removes keywords from a pending comic. Detaching a keyword
that is not attached is a no-op, not an error.

Parameters:
  - context: context.Context
  - pendingID: int64
  - moderatorID: string
  - keywords: []string

Returns:
  - []string: The full keyword set after the detach
  - error: apperr.NotFound for an unknown id, apperr.Conflict when the row
    is already processed
*/
func (service *Service) DetachKeywords(context context.Context, pendingID int64, moderatorID string, keywords []string) ([]string, error) {

	requested := normalizeKeywords(keywords)
	if len(requested) == 0 {
		return nil, apperr.ValidationError("No keywords were supplied")
	}

	release := service.locks.Lock(pendingKey(pendingID))
	defer release()

	pending, err := service.pendingRepo.FindByID(context, pendingID)
	if err != nil {
		return nil, err
	}
	if pending.Processed {
		return nil, apperr.Conflict("Pending comic was already processed")
	}

	if err := service.pendingRepo.DeleteKeywords(context, pendingID, requested); err != nil {
		return nil, err
	}

	service.recordAction(context, pending.Name, moderatorID, ActionKeywords)

	removed := make(map[string]struct{}, len(requested))
	for _, keyword := range requested {
		removed[keyword] = struct{}{}
	}
	remaining := slice.Filter(pending.Keywords, func(keyword string) bool {
		_, gone := removed[keyword]
		return !gone
	})

	return remaining, nil
}
