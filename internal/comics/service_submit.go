// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/validate"
	"github.com/inkfold/inkfold/pkg/slice"
	"github.com/inkfold/inkfold/pkg/slug"
)

// # Submission Workflow

/*
Submit validates and persists a new pending comic.

Description: Page order is established by sorting the uploaded filenames
ascending before any file is written; that sort is the only ordering signal
available, so uploaders name files in an order-preserving scheme. Files are
written before the metadata row so a row never points at pages that do not
exist. Any failure after the directory is created triggers a compensating
directory delete; consistency here is compensating, not transactional,
because no transaction spans the filesystem and the database.

Parameters:
  - context: context.Context
  - moderatorID: string (submitting moderator, from the verified token)
  - input: Submission (validated metadata)
  - pageUploads: []PageUpload (normalized, at least two required)
  - thumbnail: *PageUpload (optional)

Returns:
  - *PendingComic: The created submission with its generated id
  - error: apperr.ValidationError on bad input, apperr.Conflict on a
    duplicate name, storage or persistence failures otherwise
*/
func (service *Service) Submit(context context.Context, moderatorID string, input Submission, pageUploads []PageUpload, thumbnail *PageUpload) (*PendingComic, error) {

	// Metadata validation
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).PlainName(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldArtist, input.Artist).MaxLen(FieldArtist, input.Artist, 200)
	if input.Category != "" {
		validator.Custom(FieldCategory, !input.Category.IsValid(), "must be a recognised category")
	}

	// A single-page submission is rejected outright: one file collapses to a
	// non-iterable upload shape on some clients and a one-page comic is not
	// publishable content.
	validator.Custom(FieldPages, len(pageUploads) < 2, "at least two page files are required")

	// Extension pre-check before any directory work, so a bad format never
	// costs a rollback.
	for _, upload := range pageUploads {
		if _, err := pagestore.PageName(1, upload.Filename); err != nil {
			validator.Custom(FieldPages, true, "file "+upload.Filename+" is not a jpg or png")
			break
		}
	}
	validator.Custom(FieldPages, len(pageUploads) > pagestore.MaxSequence, "a comic cannot exceed 99 pages")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// The (directory, row) pair is claimed under the name lock for the whole
	// submission.
	release := service.locks.Lock(comicKey(input.Name))
	defer release()

	// The live catalogue owns its names even though the directory check below
	// would also catch a published duplicate; checking the table first gives
	// the caller a precise conflict message.
	taken, err := service.comicRepo.NameExists(context, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("A published comic already claims the name " + input.Name)
	}

	// Lexicographic filename order is page order.
	ordered := make([]PageUpload, len(pageUploads))
	copy(ordered, pageUploads)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Filename < ordered[j].Filename
	})

	// Directory allocation doubles as the duplicate-name check for
	// still-pending submissions.
	if err := service.pages.CreateDirectory(context, input.Name); err != nil {
		return nil, err
	}

	// Page writes, rolled back as a unit.
	for i, upload := range ordered {
		if _, err := service.pages.WritePage(context, input.Name, i+1, upload.Filename, upload.Data); err != nil {
			return nil, service.rollbackSubmission(context, input.Name, err)
		}
	}

	hasThumbnail := false
	if thumbnail != nil {
		if err := service.pages.WriteThumbnail(context, input.Name, thumbnail.Data); err != nil {
			return nil, service.rollbackSubmission(context, input.Name, err)
		}
		hasThumbnail = true
	}

	// Metadata only after every file exists.
	artistID, err := service.comicRepo.EnsureArtist(context, input.Artist)
	if err != nil {
		return nil, service.rollbackSubmission(context, input.Name, err)
	}

	// An omitted tag defaults to the URL slug of the name.
	tag := input.Tag
	if tag == "" {
		tag = slug.From(input.Name)
	}

	pending := &PendingComic{
		ModeratorID:  moderatorID,
		Name:         input.Name,
		ArtistID:     artistID,
		Artist:       input.Artist,
		Category:     input.Category,
		Tag:          tag,
		NumPages:     len(ordered),
		Finished:     input.Finished,
		HasThumbnail: hasThumbnail,
	}
	if err := service.pendingRepo.Create(context, pending); err != nil {
		return nil, service.rollbackSubmission(context, input.Name, err)
	}

	// Initial keyword attachment. The row exists now, so a failure here is
	// surfaced without undoing the submission.
	keywords := normalizeKeywords(input.Keywords)
	if len(keywords) > 0 {
		if err := service.pendingRepo.InsertKeywords(context, pending.ID, keywords); err != nil {
			return nil, err
		}
		pending.Keywords = keywords
	}

	service.recordAction(context, pending.Name, moderatorID, ActionSubmit)

	service.logger.InfoContext(context, "pending comic submitted",
		slog.Int64("pending_id", pending.ID),
		slog.String("name", pending.Name),
		slog.Int("pages", pending.NumPages),
	)

	return pending, nil
}

// rollbackSubmission deletes the partially written directory and returns the
// original failure. A cleanup failure supersedes it, since an orphan
// directory blocks the name until an operator removes it.
func (service *Service) rollbackSubmission(context context.Context, name string, cause error) error {
	if err := service.pages.DeleteDirectory(context, name); err != nil {
		service.logger.ErrorContext(context, "submission rollback failed, directory orphaned",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return err
	}
	return cause
}

// normalizeKeywords trims, drops empties, and deduplicates while preserving
// first-seen order.
func normalizeKeywords(keywords []string) []string {
	trimmed := slice.Map(keywords, strings.TrimSpace)

	seen := make(map[string]struct{}, len(trimmed))
	return slice.Filter(trimmed, func(keyword string) bool {
		if keyword == "" {
			return false
		}
		if _, dup := seen[keyword]; dup {
			return false
		}
		seen[keyword] = struct{}{}
		return true
	})
}
