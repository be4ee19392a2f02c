// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"context"
	"log/slog"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/validate"
)

// # Detail Updates

/*
UpdateDetails applies a partial update to a live comic, renaming its
directory when the name changes.

Description: A rename touches both halves of the (directory, row) pair. The
directory moves first; if the row update then fails the directory is renamed
back, so the pair never diverges for longer than the compensating call.
Locks for both names are taken in sorted order so two opposing renames
cannot deadlock.

Parameters:
  - context: context.Context
  - comicID: int64
  - moderatorID: string
  - update: DetailUpdate (nil fields untouched)

Returns:
  - *Comic: The updated entity, re-read after the write
  - error: apperr.NotFound for an unknown id, apperr.Conflict when the new
    name is taken, apperr.ValidationError on bad input
*/
func (service *Service) UpdateDetails(context context.Context, comicID int64, moderatorID string, update DetailUpdate) (*Comic, error) {

	validator := &validate.Validator{}
	if update.Name != nil {
		validator.Required(FieldName, *update.Name).PlainName(FieldName, *update.Name).MaxLen(FieldName, *update.Name, 200)
	}
	if update.Artist != nil {
		validator.Required(FieldArtist, *update.Artist).MaxLen(FieldArtist, *update.Artist, 200)
	}
	if update.Category != nil {
		validator.Custom(FieldCategory, !update.Category.IsValid(), "must be a recognised category")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comic, err := service.comicRepo.FindByID(context, comicID)
	if err != nil {
		return nil, err
	}

	renaming := update.Name != nil && *update.Name != comic.Name

	// Sorted lock order prevents deadlock between opposing renames.
	keys := []string{comicKey(comic.Name)}
	if renaming {
		if comicKey(*update.Name) < keys[0] {
			keys = []string{comicKey(*update.Name), keys[0]}
		} else {
			keys = append(keys, comicKey(*update.Name))
		}
	}
	for _, key := range keys {
		release := service.locks.Lock(key)
		defer release()
	}

	if renaming {
		taken, err := service.comicRepo.NameExists(context, *update.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("A published comic already claims the name " + *update.Name)
		}

		// Directory first; the row update below is the easier half to undo.
		if err := service.pages.RenameDirectory(context, comic.Name, *update.Name); err != nil {
			return nil, err
		}
	}

	var artistID int64
	if update.Artist != nil && *update.Artist != comic.Artist {
		artistID, err = service.comicRepo.EnsureArtist(context, *update.Artist)
		if err != nil {
			return nil, service.undoRename(context, renaming, comic.Name, update.Name, err)
		}
	}

	if err := service.comicRepo.UpdateDetails(context, comicID, update, artistID); err != nil {
		return nil, service.undoRename(context, renaming, comic.Name, update.Name, err)
	}

	service.recordAction(context, comic.Name, moderatorID, ActionUpdate)

	updated, err := service.comicRepo.FindByID(context, comicID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comic details updated",
		slog.Int64("comic_id", comicID),
		slog.String("name", updated.Name),
	)

	return updated, nil
}

// undoRename renames the directory back after a failed row update. If even
// the compensation fails the two stores have diverged; that is logged loudly
// for operator repair and the original cause is still returned.
func (service *Service) undoRename(context context.Context, renamed bool, oldName string, newName *string, cause error) error {
	if !renamed || newName == nil {
		return cause
	}
	if err := service.pages.RenameDirectory(context, *newName, oldName); err != nil {
		service.logger.ErrorContext(context, "rename compensation failed, directory and row diverged",
			slog.String("directory", *newName),
			slog.String("row", oldName),
			slog.String("error", err.Error()),
		)
	}
	return cause
}
