// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import "context"

// # Live Catalogue Data Access

// ComicRepository defines relational access to the live catalogue.
type ComicRepository interface {

	/*
		List returns a filtered, paginated slice of live comics and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (category, artist, finished flag, keyword)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comic: Slice of matching catalogue rows with artist names resolved
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error)

	/*
		FindByID returns the live comic with the given id, keywords hydrated.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Comic: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Comic, error)

	/*
		FindByName returns the live comic whose name matches exactly.

		Parameters:
		  - context: context.Context
		  - name: string (also the directory name)

		Returns:
		  - *Comic: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByName(context context.Context, name string) (*Comic, error)

	/*
		NameExists reports whether a live comic already claims the name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - bool: true if the name is taken
		  - error: Database retrieval failures
	*/
	NameExists(context context.Context, name string) (bool, error)

	/*
		UpdateDetails applies a partial update to a live comic's mutable
		columns. Nil fields are skipped.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - update: DetailUpdate (artistID resolved by the caller when the
		    artist name changes, 0 leaves the column untouched)
		  - artistID: int64

		Returns:
		  - error: apperr.NotFound if the row is missing, apperr.Conflict on a
		    name collision
	*/
	UpdateDetails(context context.Context, id int64, update DetailUpdate, artistID int64) error

	/*
		UpdatePageCount overwrites the stored page count with a value
		re-derived from the directory listing.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - count: int

		Returns:
		  - error: apperr.NotFound if the row is missing
	*/
	UpdatePageCount(context context.Context, id int64, count int) error

	// # Keyword Associations

	/*
		ListKeywords returns the keywords attached to a live comic.

		Parameters:
		  - context: context.Context
		  - comicID: int64

		Returns:
		  - []string: Attached keywords, unordered
		  - error: Database retrieval failures
	*/
	ListKeywords(context context.Context, comicID int64) ([]string, error)

	/*
		InsertKeywords attaches association rows. Callers deduplicate against
		the existing set first; storage does not enforce pair uniqueness.

		Parameters:
		  - context: context.Context
		  - comicID: int64
		  - keywords: []string

		Returns:
		  - error: Database execution failures
	*/
	InsertKeywords(context context.Context, comicID int64, keywords []string) error

	// # Artists

	/*
		EnsureArtist returns the id for an artist name, inserting the row on
		first use.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - int64: The artist id
		  - error: Database execution failures
	*/
	EnsureArtist(context context.Context, name string) (int64, error)
}

// # Pending Submission Data Access

// PendingRepository defines relational access to moderator submissions.
type PendingRepository interface {

	/*
		Create inserts a new pending row and sets the generated id on the
		entity.

		Parameters:
		  - context: context.Context
		  - pending: *PendingComic

		Returns:
		  - error: Database execution failures
	*/
	Create(context context.Context, pending *PendingComic) error

	/*
		FindByID returns the pending comic with the given id, keywords
		hydrated.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *PendingComic: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*PendingComic, error)

	/*
		List returns unprocessed submissions, oldest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*PendingComic: Pending queue slice
		  - int: Total unprocessed count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*PendingComic, int, error)

	/*
		UpdatePageCount overwrites the stored page count with a value
		re-derived from the directory listing.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - count: int

		Returns:
		  - error: apperr.NotFound if the row is missing
	*/
	UpdatePageCount(context context.Context, id int64, count int) error

	/*
		SetHasThumbnail flips the has-thumbnail flag after a thumbnail write.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound if the row is missing
	*/
	SetHasThumbnail(context context.Context, id int64) error

	// # Keyword Associations

	/*
		ListKeywords returns the keywords attached to a pending comic.

		Parameters:
		  - context: context.Context
		  - pendingID: int64

		Returns:
		  - []string: Attached keywords, unordered
		  - error: Database retrieval failures
	*/
	ListKeywords(context context.Context, pendingID int64) ([]string, error)

	/*
		InsertKeywords attaches association rows. Callers deduplicate against
		the existing set first; storage does not enforce pair uniqueness.

		Parameters:
		  - context: context.Context
		  - pendingID: int64
		  - keywords: []string

		Returns:
		  - error: Database execution failures
	*/
	InsertKeywords(context context.Context, pendingID int64, keywords []string) error

	/*
		DeleteKeywords removes the matching association rows. Absent keywords
		are skipped silently.

		Parameters:
		  - context: context.Context
		  - pendingID: int64
		  - keywords: []string

		Returns:
		  - error: Database execution failures
	*/
	DeleteKeywords(context context.Context, pendingID int64, keywords []string) error

	/*
		Promote transitions a pending comic into the live catalogue in one
		transaction: inserts the live row copying the pending fields, copies
		every keyword association to the new id, and marks the pending row
		processed and approved. The pending row must still be unprocessed.

		Parameters:
		  - context: context.Context
		  - pending: *PendingComic (keywords hydrated)

		Returns:
		  - *Comic: The created live row with its generated id
		  - error: apperr.Conflict if the row was already processed or the
		    name is taken, database execution failures otherwise
	*/
	Promote(context context.Context, pending *PendingComic) (*Comic, error)
}

// # Moderation Audit Log

// ActionLogRepository records moderation events. Implementations are
// best-effort sinks; callers log and swallow failures.
type ActionLogRepository interface {

	/*
		Record appends one audit row.

		Parameters:
		  - context: context.Context
		  - action: *ModAction

		Returns:
		  - error: Database execution failures
	*/
	Record(context context.Context, action *ModAction) error
}
