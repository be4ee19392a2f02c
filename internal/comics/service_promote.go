// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"log/slog"

	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// # Promotion Engine

/*
Promote moves a pending comic into the live catalogue.

Description: Promotion is purely a metadata transition — the directory was
written under its final name at submission time, so no file moves. The
readiness gate requires a thumbnail and at least one keyword; an admin
promoting an unready submission gets a precise validation error rather than
a half-published comic. The repository transaction freezes the pending row,
inserts the live row, and copies the keyword associations; the pending row
keeps its own keyword set as history.

Parameters:
  - context: context.Context
  - pendingID: int64
  - moderatorID: string (promoting admin, for the audit log)

Returns:
  - *Comic: The created live row
  - error: apperr.NotFound for an unknown id, apperr.ValidationError when
    the submission is not ready, apperr.Conflict when already processed or
    the name was claimed since submission
*/
func (service *Service) Promote(context context.Context, pendingID int64, moderatorID string) (*Comic, error) {

	// Both identities of the resource are locked: the pending id guards the
	// row, the comic name guards the directory and the live-name claim.
	releasePending := service.locks.Lock(pendingKey(pendingID))
	defer releasePending()

	pending, err := service.pendingRepo.FindByID(context, pendingID)
	if err != nil {
		return nil, err
	}
	if pending.Processed {
		return nil, apperr.Conflict("Pending comic was already processed")
	}

	releaseName := service.locks.Lock(comicKey(pending.Name))
	defer releaseName()

	// Readiness gate
	if !pending.HasThumbnail {
		return nil, apperr.ValidationError("Cannot promote a comic without a thumbnail",
			apperr.FieldError{Field: FieldThumbnail, Message: "attach a thumbnail before promoting"})
	}
	if len(pending.Keywords) == 0 {
		return nil, apperr.ValidationError("Cannot promote a comic without keywords",
			apperr.FieldError{Field: FieldKeywords, Message: "attach at least one keyword before promoting"})
	}

	// A live comic may have claimed the name after this one was submitted;
	// the unique index inside the transaction is the backstop, this check is
	// the readable error.
	taken, err := service.comicRepo.NameExists(context, pending.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("A published comic already claims the name " + pending.Name)
	}

	comic, err := service.pendingRepo.Promote(context, pending)
	if err != nil {
		return nil, err
	}

	service.recordAction(context, comic.Name, moderatorID, ActionPromote)

	service.logger.InfoContext(context, "pending comic promoted",
		slog.Int64("pending_id", pendingID),
		slog.Int64("comic_id", comic.ID),
		slog.String("name", comic.Name),
	)

	return comic, nil
}
