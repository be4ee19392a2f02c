// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/pkg/namelock"
)

// # Service Layer

// Service orchestrates the comic pipeline: submission, correction,
// promotion, and catalogue reads.
//
// Every mutation of a comic holds the exclusive lock for its name (live) or
// pending id before touching either the directory or the row, because the
// (directory, row) pair is one logical resource. Reads take no lock.
type Service struct {
	comicRepo   ComicRepository
	pendingRepo PendingRepository
	actionLog   ActionLogRepository
	pages       *pagestore.Store
	locks       *namelock.Locker
	telemetry   Telemetry
	logger      *slog.Logger
}

// Telemetry counts catalogue views. Implementations never fail the request.
type Telemetry interface {
	CountView(context context.Context, comicID int64)
	Views(context context.Context, comicID int64) int64
}

// NewService constructs a [Service] with its required collaborators.
// telemetry may be nil, disabling view counting.
func NewService(
	comicRepo ComicRepository,
	pendingRepo PendingRepository,
	actionLog ActionLogRepository,
	pages *pagestore.Store,
	telemetry Telemetry,
	logger *slog.Logger,
) *Service {
	return &Service{
		comicRepo:   comicRepo,
		pendingRepo: pendingRepo,
		actionLog:   actionLog,
		pages:       pages,
		locks:       namelock.New(),
		telemetry:   telemetry,
		logger:      logger,
	}
}

// # Lock Keys

func comicKey(name string) string { return "comic:" + name }

func pendingKey(id int64) string { return fmt.Sprintf("pending:%d", id) }

// # Catalogue Reads

/*
ListComics retrieves a paginated, filtered slice of the live catalogue.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Comic: Matching catalogue rows
  - int: Total count matching the filter
  - error: Repository failures
*/
func (service *Service) ListComics(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	return service.comicRepo.List(context, filter, limit, offset)
}

/*
GetComic fetches one live comic by id, page listing verified and view
telemetry counted.

Description: The stored page count is authoritative for clients, but the
detail response also carries the current Views counter. The detail view is
the one read that counts as a "view" for ranking purposes.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Comic: The hydrated entity with keywords and views
  - error: apperr.NotFound if missing
*/
func (service *Service) GetComic(context context.Context, id int64) (*Comic, error) {
	comic, err := service.comicRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if service.telemetry != nil {
		service.telemetry.CountView(context, comic.ID)
		comic.Views = service.telemetry.Views(context, comic.ID)
	}

	return comic, nil
}

/*
ListPendingComics retrieves the unprocessed submission queue, oldest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*PendingComic: Queue slice
  - int: Total unprocessed count
  - error: Repository failures
*/
func (service *Service) ListPendingComics(context context.Context, limit, offset int) ([]*PendingComic, int, error) {
	return service.pendingRepo.List(context, limit, offset)
}

/*
GetPendingComic fetches one submission by id, keywords hydrated.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *PendingComic: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (service *Service) GetPendingComic(context context.Context, id int64) (*PendingComic, error) {
	return service.pendingRepo.FindByID(context, id)
}

/*
GetComicByName fetches one live comic by its exact name, counting a view the
same way the id lookup does.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Comic: The hydrated entity with keywords and views
  - error: apperr.NotFound if missing
*/
func (service *Service) GetComicByName(context context.Context, name string) (*Comic, error) {
	comic, err := service.comicRepo.FindByName(context, name)
	if err != nil {
		return nil, err
	}

	if service.telemetry != nil {
		service.telemetry.CountView(context, comic.ID)
		comic.Views = service.telemetry.Views(context, comic.ID)
	}

	return comic, nil
}

// # Audit Trail

// recordAction appends a moderation log row. Failures are logged and
// swallowed so the audit trail never fails the operation it describes.
func (service *Service) recordAction(context context.Context, comicName, moderator, action string) {
	err := service.actionLog.Record(context, &ModAction{
		ComicName: comicName,
		Moderator: moderator,
		Action:    action,
	})
	if err != nil {
		service.logger.WarnContext(context, "mod action log write failed",
			slog.String("comic", comicName),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
