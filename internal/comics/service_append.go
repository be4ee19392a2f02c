// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// # Page Append Engine

/*
AppendPages adds pages to the end of an existing pending or live comic.

Description: The current page count is always re-derived from the directory
listing, never taken from the stored column or a caller-supplied delta; a
previous append that failed mid-write leaves the column stale, and trusting
it would assign colliding sequence numbers. A single new file takes the next
sequence directly; multiple files are sorted by filename ascending first,
the same ordering rule submission uses. After the writes the count column is
set from a fresh listing, so the column converges on disk truth even when an
earlier crash left it behind.

Parameters:
  - context: context.Context
  - id: int64 (pending id or live comic id, selected by isPending)
  - isPending: bool
  - moderatorID: string
  - uploads: []PageUpload (normalized, at least one)

Returns:
  - int: The new page count
  - error: apperr.ValidationError on bad input or sequence overflow,
    apperr.Conflict when the pending row is already processed,
    apperr.NotFound for an unknown id or missing directory
*/
func (service *Service) AppendPages(context context.Context, id int64, isPending bool, moderatorID string, uploads []PageUpload) (int, error) {

	if len(uploads) == 0 {
		return 0, apperr.ValidationError("No page files were uploaded")
	}
	for _, upload := range uploads {
		if _, err := pagestore.PageName(1, upload.Filename); err != nil {
			return 0, apperr.ValidationError("File " + upload.Filename + " is not a jpg or png")
		}
	}

	// Resolve the target name and take its exclusive lock.
	var name string
	if isPending {
		release := service.locks.Lock(pendingKey(id))
		defer release()

		pending, err := service.pendingRepo.FindByID(context, id)
		if err != nil {
			return 0, err
		}
		if pending.Processed {
			return 0, apperr.Conflict("Pending comic was already processed")
		}
		name = pending.Name
	} else {
		comic, err := service.comicRepo.FindByID(context, id)
		if err != nil {
			return 0, err
		}
		name = comic.Name

		release := service.locks.Lock(comicKey(name))
		defer release()
	}

	// Disk is the authority on the existing count.
	existing, err := service.pages.ListPages(context, name)
	if err != nil {
		return 0, err
	}
	count := len(existing)

	if count+len(uploads) > pagestore.MaxSequence {
		return 0, apperr.ValidationError(fmt.Sprintf(
			"Appending %d pages to %d existing ones exceeds the %d page limit",
			len(uploads), count, pagestore.MaxSequence,
		))
	}

	// One file appends directly; several are ordered by filename first.
	ordered := uploads
	if len(uploads) > 1 {
		ordered = make([]PageUpload, len(uploads))
		copy(ordered, uploads)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Filename < ordered[j].Filename
		})
	}

	for i, upload := range ordered {
		if _, err := service.pages.WritePage(context, name, count+i+1, upload.Filename, upload.Data); err != nil {
			return 0, err
		}
	}

	// Re-list rather than assume count+len: a partial earlier failure or a
	// correction overwrite must not drift the column.
	written, err := service.pages.ListPages(context, name)
	if err != nil {
		return 0, err
	}
	newCount := len(written)

	if isPending {
		err = service.pendingRepo.UpdatePageCount(context, id, newCount)
	} else {
		err = service.comicRepo.UpdatePageCount(context, id, newCount)
	}
	if err != nil {
		return 0, err
	}

	service.recordAction(context, name, moderatorID, ActionAppend)

	service.logger.InfoContext(context, "pages appended",
		slog.String("name", name),
		slog.Bool("pending", isPending),
		slog.Int("added", len(ordered)),
		slog.Int("count", newCount),
	)

	return newCount, nil
}

// # Thumbnail Attachment

/*
AttachThumbnail writes or replaces the thumbnail of a pending comic and
flips its has-thumbnail flag.

Parameters:
  - context: context.Context
  - pendingID: int64
  - moderatorID: string
  - thumbnail: PageUpload

Returns:
  - error: apperr.NotFound for an unknown id, apperr.Conflict when the row
    is already processed, storage failures otherwise
*/
func (service *Service) AttachThumbnail(context context.Context, pendingID int64, moderatorID string, thumbnail PageUpload) error {

	release := service.locks.Lock(pendingKey(pendingID))
	defer release()

	pending, err := service.pendingRepo.FindByID(context, pendingID)
	if err != nil {
		return err
	}
	if pending.Processed {
		return apperr.Conflict("Pending comic was already processed")
	}

	if err := service.pages.WriteThumbnail(context, pending.Name, thumbnail.Data); err != nil {
		return err
	}
	if err := service.pendingRepo.SetHasThumbnail(context, pendingID); err != nil {
		return err
	}

	service.recordAction(context, pending.Name, moderatorID, ActionThumbnail)

	return nil
}
