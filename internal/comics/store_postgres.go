// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
PostgreSQL implementations of the comics repositories.

Queries reference column names through the schema definition package so a
column rename is a one-file change. Promotion is the only multi-statement
write; it runs inside a single transaction so a name collision or a
half-copied keyword set can never leave a live row behind.
*/
package comics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/database/schema"
	"github.com/inkfold/inkfold/internal/platform/dberr"
)

// # PostgreSQL Repositories

// PostgresComicRepository implements [ComicRepository] using pgx.
type PostgresComicRepository struct {
	pool *pgxpool.Pool
}

// NewComicRepository constructs a PostgreSQL backed live-catalogue store.
func NewComicRepository(pool *pgxpool.Pool) *PostgresComicRepository {
	return &PostgresComicRepository{pool: pool}
}

// PostgresPendingRepository implements [PendingRepository] using pgx.
type PostgresPendingRepository struct {
	pool *pgxpool.Pool
}

// NewPendingRepository constructs a PostgreSQL backed submission store.
func NewPendingRepository(pool *pgxpool.Pool) *PostgresPendingRepository {
	return &PostgresPendingRepository{pool: pool}
}

// PostgresActionLogRepository implements [ActionLogRepository] using pgx.
type PostgresActionLogRepository struct {
	pool *pgxpool.Pool
}

// NewActionLogRepository constructs a PostgreSQL backed moderation log.
func NewActionLogRepository(pool *pgxpool.Pool) *PostgresActionLogRepository {
	return &PostgresActionLogRepository{pool: pool}
}

// # ComicRepository Methods

/*
List returns a filtered, paginated slice of live comics and the total count.

Description: Uses a COUNT(*) OVER() window function to retrieve the total
matching count without a second query, and joins the artist table so listing
responses carry the artist name directly.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Comic: Matching catalogue rows
  - int: Total count matching the filter
  - error: Database execution failures
*/
func (repository *PostgresComicRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {

	// Base query with artist resolution and window-function total
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE true`,
		schema.ComicsComic.ID, schema.ComicsComic.Name, schema.ComicsComic.ArtistID,
		schema.ComicsArtist.Name,
		schema.ComicsComic.Category, schema.ComicsComic.Tag, schema.ComicsComic.NumPages,
		schema.ComicsComic.Finished, schema.ComicsComic.CreatedAt, schema.ComicsComic.UpdatedAt,
		schema.ComicsComic.Table,
		schema.ComicsArtist.Table, schema.ComicsArtist.ID, schema.ComicsComic.ArtistID,
	))

	// Category filter
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.ComicsComic.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	// Artist filter by exact name
	if filter.Artist != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.%s = $%d", schema.ComicsArtist.Name, argID))
		args = append(args, filter.Artist)
		argID++
	}

	// Finished filter
	if filter.Finished != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.ComicsComic.Finished, argID))
		args = append(args, *filter.Finished)
		argID++
	}

	// Keyword filter via association sub-query
	if filter.Keyword != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s k WHERE k.%s = c.%s AND k.%s = $%d)",
			schema.ComicsComicKeyword.Table, schema.ComicsComicKeyword.ComicID,
			schema.ComicsComic.ID, schema.ComicsComicKeyword.Keyword, argID,
		))
		args = append(args, filter.Keyword)
		argID++
	}

	// Newest first, stable tiebreak on id
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC, c.%s DESC", schema.ComicsComic.CreatedAt, schema.ComicsComic.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comics")
	}
	defer rows.Close()

	// Hydration loop
	var comics []*Comic
	var totalCount int
	for rows.Next() {
		comic := &Comic{}
		err := rows.Scan(
			&comic.ID, &comic.Name, &comic.ArtistID, &comic.Artist,
			&comic.Category, &comic.Tag, &comic.NumPages, &comic.Finished,
			&comic.CreatedAt, &comic.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comic")
		}
		comics = append(comics, comic)
	}

	return comics, totalCount, nil
}

/*
FindByID returns the live comic with the given id, keywords hydrated.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Comic: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (repository *PostgresComicRepository) FindByID(context context.Context, id int64) (*Comic, error) {
	return repository.findOne(context, fmt.Sprintf("c.%s = $1", schema.ComicsComic.ID), id)
}

/*
FindByName returns the live comic whose name matches exactly.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Comic: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (repository *PostgresComicRepository) FindByName(context context.Context, name string) (*Comic, error) {
	return repository.findOne(context, fmt.Sprintf("c.%s = $1", schema.ComicsComic.Name), name)
}

// findOne runs the shared single-row lookup with the given predicate and
// hydrates the keyword set in a second query.
func (repository *PostgresComicRepository) findOne(context context.Context, predicate string, arg any) (*Comic, error) {

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE %s`,
		schema.ComicsComic.ID, schema.ComicsComic.Name, schema.ComicsComic.ArtistID,
		schema.ComicsArtist.Name,
		schema.ComicsComic.Category, schema.ComicsComic.Tag, schema.ComicsComic.NumPages,
		schema.ComicsComic.Finished, schema.ComicsComic.CreatedAt, schema.ComicsComic.UpdatedAt,
		schema.ComicsComic.Table,
		schema.ComicsArtist.Table, schema.ComicsArtist.ID, schema.ComicsComic.ArtistID,
		predicate,
	)

	comic := &Comic{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&comic.ID, &comic.Name, &comic.ArtistID, &comic.Artist,
		&comic.Category, &comic.Tag, &comic.NumPages, &comic.Finished,
		&comic.CreatedAt, &comic.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comic")
		}
		return nil, dberr.Wrap(err, "find_comic")
	}

	keywords, err := repository.ListKeywords(context, comic.ID)
	if err != nil {
		return nil, err
	}
	comic.Keywords = keywords

	return comic, nil
}

/*
NameExists reports whether a live comic already claims the name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - bool: true if the name is taken
  - error: Database execution failures
*/
func (repository *PostgresComicRepository) NameExists(context context.Context, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ComicsComic.Table, schema.ComicsComic.Name)

	var exists bool
	if err := repository.pool.QueryRow(context, query, name).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "comic_name_exists")
	}
	return exists, nil
}

/*
UpdateDetails applies a partial update to a live comic's mutable columns.

Description: Builds a PATCH-style SET clause from the non-nil fields of the
update. The unique index on the name column turns a rename collision into an
apperr.Conflict through dberr.

Parameters:
  - context: context.Context
  - id: int64
  - update: DetailUpdate
  - artistID: int64 (0 leaves the artist column untouched)

Returns:
  - error: apperr.NotFound if the row is missing, apperr.Conflict on a name
    collision
*/
func (repository *PostgresComicRepository) UpdateDetails(context context.Context, id int64, update DetailUpdate, artistID int64) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.ComicsComic.Table, schema.ComicsComic.UpdatedAt))

	var args []any
	argID := 1

	if update.Name != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.ComicsComic.Name, argID))
		args = append(args, *update.Name)
		argID++
	}
	if artistID != 0 {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.ComicsComic.ArtistID, argID))
		args = append(args, artistID)
		argID++
	}
	if update.Category != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.ComicsComic.Category, argID))
		args = append(args, *update.Category)
		argID++
	}
	if update.Tag != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.ComicsComic.Tag, argID))
		args = append(args, *update.Tag)
		argID++
	}
	if update.Finished != nil {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.ComicsComic.Finished, argID))
		args = append(args, *update.Finished)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.ComicsComic.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_comic_details")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}
	return nil
}

/*
UpdatePageCount overwrites the stored page count.

Parameters:
  - context: context.Context
  - id: int64
  - count: int

Returns:
  - error: apperr.NotFound if the row is missing
*/
func (repository *PostgresComicRepository) UpdatePageCount(context context.Context, id int64, count int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.ComicsComic.Table, schema.ComicsComic.NumPages,
		schema.ComicsComic.UpdatedAt, schema.ComicsComic.ID)

	result, err := repository.pool.Exec(context, query, count, id)
	if err != nil {
		return dberr.Wrap(err, "update_comic_page_count")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}
	return nil
}

/*
ListKeywords returns the keywords attached to a live comic.

Parameters:
  - context: context.Context
  - comicID: int64

Returns:
  - []string: Attached keywords
  - error: Database execution failures
*/
func (repository *PostgresComicRepository) ListKeywords(context context.Context, comicID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.ComicsComicKeyword.Keyword, schema.ComicsComicKeyword.Table, schema.ComicsComicKeyword.ComicID)

	return scanKeywords(repository.pool.Query(context, query, comicID))
}

/*
InsertKeywords attaches association rows in one batch.

Parameters:
  - context: context.Context
  - comicID: int64
  - keywords: []string

Returns:
  - error: Database execution failures
*/
func (repository *PostgresComicRepository) InsertKeywords(context context.Context, comicID int64, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.ComicsComicKeyword.Table, schema.ComicsComicKeyword.ComicID, schema.ComicsComicKeyword.Keyword)

	batch := &pgx.Batch{}
	for _, keyword := range keywords {
		batch.Queue(query, comicID, keyword)
	}

	response := repository.pool.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "insert_comic_keywords")
	}
	return nil
}

/*
EnsureArtist returns the id for an artist name, inserting on first use.

Description: Uses an upsert with a no-op conflict action so concurrent
first-use inserts of the same name converge on one row.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - int64: The artist id
  - error: Database execution failures
*/
func (repository *PostgresComicRepository) EnsureArtist(context context.Context, name string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s`,
		schema.ComicsArtist.Table, schema.ComicsArtist.Name,
		schema.ComicsArtist.Name, schema.ComicsArtist.Name, schema.ComicsArtist.Name,
		schema.ComicsArtist.ID,
	)

	var id int64
	if err := repository.pool.QueryRow(context, query, name).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "ensure_artist")
	}
	return id, nil
}

// # PendingRepository Methods

/*
Create inserts a new pending row and sets the generated id on the entity.

Parameters:
  - context: context.Context
  - pending: *PendingComic

Returns:
  - error: Database execution failures
*/
func (repository *PostgresPendingRepository) Create(context context.Context, pending *PendingComic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		schema.ComicsPendingComic.Table,
		schema.ComicsPendingComic.ModeratorID, schema.ComicsPendingComic.Name,
		schema.ComicsPendingComic.ArtistID, schema.ComicsPendingComic.Category,
		schema.ComicsPendingComic.Tag, schema.ComicsPendingComic.NumPages,
		schema.ComicsPendingComic.Finished, schema.ComicsPendingComic.HasThumbnail,
		schema.ComicsPendingComic.ID, schema.ComicsPendingComic.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		pending.ModeratorID, pending.Name, pending.ArtistID, pending.Category,
		pending.Tag, pending.NumPages, pending.Finished, pending.HasThumbnail,
	).Scan(&pending.ID, &pending.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "create_pending_comic")
	}
	return nil
}

/*
FindByID returns the pending comic with the given id, keywords hydrated.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *PendingComic: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (repository *PostgresPendingRepository) FindByID(context context.Context, id int64) (*PendingComic, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, a.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s a ON a.%s = p.%s
		WHERE p.%s = $1`,
		schema.ComicsPendingComic.ID, schema.ComicsPendingComic.ModeratorID,
		schema.ComicsPendingComic.Name, schema.ComicsPendingComic.ArtistID,
		schema.ComicsArtist.Name,
		schema.ComicsPendingComic.Category, schema.ComicsPendingComic.Tag,
		schema.ComicsPendingComic.NumPages, schema.ComicsPendingComic.Finished,
		schema.ComicsPendingComic.HasThumbnail, schema.ComicsPendingComic.Processed,
		schema.ComicsPendingComic.Approved, schema.ComicsPendingComic.CreatedAt,
		schema.ComicsPendingComic.Table,
		schema.ComicsArtist.Table, schema.ComicsArtist.ID, schema.ComicsPendingComic.ArtistID,
		schema.ComicsPendingComic.ID,
	)

	pending := &PendingComic{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&pending.ID, &pending.ModeratorID, &pending.Name, &pending.ArtistID, &pending.Artist,
		&pending.Category, &pending.Tag, &pending.NumPages, &pending.Finished,
		&pending.HasThumbnail, &pending.Processed, &pending.Approved, &pending.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Pending comic")
		}
		return nil, dberr.Wrap(err, "find_pending_comic")
	}

	keywords, err := repository.ListKeywords(context, pending.ID)
	if err != nil {
		return nil, err
	}
	pending.Keywords = keywords

	return pending, nil
}

/*
List returns unprocessed submissions, oldest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*PendingComic: Pending queue slice
  - int: Total unprocessed count
  - error: Database execution failures
*/
func (repository *PostgresPendingRepository) List(context context.Context, limit, offset int) ([]*PendingComic, int, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, a.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
			COUNT(*) OVER() AS total_count
		FROM %s p
		JOIN %s a ON a.%s = p.%s
		WHERE p.%s = false
		ORDER BY p.%s ASC
		LIMIT $1 OFFSET $2`,
		schema.ComicsPendingComic.ID, schema.ComicsPendingComic.ModeratorID,
		schema.ComicsPendingComic.Name, schema.ComicsPendingComic.ArtistID,
		schema.ComicsArtist.Name,
		schema.ComicsPendingComic.Category, schema.ComicsPendingComic.Tag,
		schema.ComicsPendingComic.NumPages, schema.ComicsPendingComic.Finished,
		schema.ComicsPendingComic.HasThumbnail, schema.ComicsPendingComic.Processed,
		schema.ComicsPendingComic.Approved, schema.ComicsPendingComic.CreatedAt,
		schema.ComicsPendingComic.Table,
		schema.ComicsArtist.Table, schema.ComicsArtist.ID, schema.ComicsPendingComic.ArtistID,
		schema.ComicsPendingComic.Processed,
		schema.ComicsPendingComic.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_pending_comics")
	}
	defer rows.Close()

	var pendings []*PendingComic
	var totalCount int
	for rows.Next() {
		pending := &PendingComic{}
		err := rows.Scan(
			&pending.ID, &pending.ModeratorID, &pending.Name, &pending.ArtistID, &pending.Artist,
			&pending.Category, &pending.Tag, &pending.NumPages, &pending.Finished,
			&pending.HasThumbnail, &pending.Processed, &pending.Approved, &pending.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_pending_comic")
		}
		pendings = append(pendings, pending)
	}

	return pendings, totalCount, nil
}

/*
UpdatePageCount overwrites the stored page count.

Parameters:
  - context: context.Context
  - id: int64
  - count: int

Returns:
  - error: apperr.NotFound if the row is missing
*/
func (repository *PostgresPendingRepository) UpdatePageCount(context context.Context, id int64, count int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.ComicsPendingComic.Table, schema.ComicsPendingComic.NumPages, schema.ComicsPendingComic.ID)

	result, err := repository.pool.Exec(context, query, count, id)
	if err != nil {
		return dberr.Wrap(err, "update_pending_page_count")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Pending comic")
	}
	return nil
}

/*
SetHasThumbnail flips the has-thumbnail flag after a thumbnail write.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if the row is missing
*/
func (repository *PostgresPendingRepository) SetHasThumbnail(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = true WHERE %s = $1`,
		schema.ComicsPendingComic.Table, schema.ComicsPendingComic.HasThumbnail, schema.ComicsPendingComic.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "set_pending_thumbnail")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Pending comic")
	}
	return nil
}

/*
ListKeywords returns the keywords attached to a pending comic.

Parameters:
  - context: context.Context
  - pendingID: int64

Returns:
  - []string: Attached keywords
  - error: Database execution failures
*/
func (repository *PostgresPendingRepository) ListKeywords(context context.Context, pendingID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.ComicsPendingKeyword.Keyword, schema.ComicsPendingKeyword.Table, schema.ComicsPendingKeyword.PendingID)

	return scanKeywords(repository.pool.Query(context, query, pendingID))
}

/*
InsertKeywords attaches association rows in one batch.

Parameters:
  - context: context.Context
  - pendingID: int64
  - keywords: []string

Returns:
  - error: Database execution failures
*/
func (repository *PostgresPendingRepository) InsertKeywords(context context.Context, pendingID int64, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.ComicsPendingKeyword.Table, schema.ComicsPendingKeyword.PendingID, schema.ComicsPendingKeyword.Keyword)

	batch := &pgx.Batch{}
	for _, keyword := range keywords {
		batch.Queue(query, pendingID, keyword)
	}

	response := repository.pool.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "insert_pending_keywords")
	}
	return nil
}

/*
DeleteKeywords removes the matching association rows.

Parameters:
  - context: context.Context
  - pendingID: int64
  - keywords: []string

Returns:
  - error: Database execution failures
*/
func (repository *PostgresPendingRepository) DeleteKeywords(context context.Context, pendingID int64, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`,
		schema.ComicsPendingKeyword.Table, schema.ComicsPendingKeyword.PendingID, schema.ComicsPendingKeyword.Keyword)

	if _, err := repository.pool.Exec(context, query, pendingID, keywords); err != nil {
		return dberr.Wrap(err, "delete_pending_keywords")
	}
	return nil
}

/*
Promote transitions a pending comic into the live catalogue.

Description: Runs inside a single ACID transaction. The live insert copies
the pending fields and relies on the unique index on the name column to
reject a name claimed since the caller's pre-check; the pending update is
conditional on processed = false so a concurrent promotion of the same row
loses cleanly. Keyword associations are copied, never moved, so the pending
row keeps its history.

Parameters:
  - context: context.Context
  - pending: *PendingComic (keywords hydrated)

Returns:
  - *Comic: The created live row with its generated id
  - error: apperr.Conflict if already processed or the name is taken
*/
func (repository *PostgresPendingRepository) Promote(context context.Context, pending *PendingComic) (*Comic, error) {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "promote_begin")
	}
	defer transaction.Rollback(context)

	// Freeze the pending row first; zero rows means a concurrent promotion
	// already claimed it.
	markQuery := fmt.Sprintf(`UPDATE %s SET %s = true, %s = true WHERE %s = $1 AND %s = false`,
		schema.ComicsPendingComic.Table,
		schema.ComicsPendingComic.Processed, schema.ComicsPendingComic.Approved,
		schema.ComicsPendingComic.ID, schema.ComicsPendingComic.Processed,
	)
	marked, err := transaction.Exec(context, markQuery, pending.ID)
	if err != nil {
		return nil, dberr.Wrap(err, "promote_mark_processed")
	}
	if marked.RowsAffected() == 0 {
		return nil, apperr.Conflict("Pending comic was already processed")
	}

	// Live row insert, copying the pending fields verbatim.
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		schema.ComicsComic.Table,
		schema.ComicsComic.Name, schema.ComicsComic.ArtistID, schema.ComicsComic.Category,
		schema.ComicsComic.Tag, schema.ComicsComic.NumPages, schema.ComicsComic.Finished,
		schema.ComicsComic.ID, schema.ComicsComic.CreatedAt, schema.ComicsComic.UpdatedAt,
	)

	comic := &Comic{
		Name:     pending.Name,
		ArtistID: pending.ArtistID,
		Artist:   pending.Artist,
		Category: pending.Category,
		Tag:      pending.Tag,
		NumPages: pending.NumPages,
		Finished: pending.Finished,
		Keywords: pending.Keywords,
	}
	err = transaction.QueryRow(context, insertQuery,
		pending.Name, pending.ArtistID, pending.Category,
		pending.Tag, pending.NumPages, pending.Finished,
	).Scan(&comic.ID, &comic.CreatedAt, &comic.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "promote_insert_comic")
	}

	// Keyword copy under the same transaction.
	if len(pending.Keywords) > 0 {
		keywordQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.ComicsComicKeyword.Table, schema.ComicsComicKeyword.ComicID, schema.ComicsComicKeyword.Keyword)

		batch := &pgx.Batch{}
		for _, keyword := range pending.Keywords {
			batch.Queue(keywordQuery, comic.ID, keyword)
		}
		response := transaction.SendBatch(context, batch)
		if err := response.Close(); err != nil {
			return nil, dberr.Wrap(err, "promote_copy_keywords")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "promote_commit")
	}

	return comic, nil
}

// # ActionLogRepository Methods

/*
Record appends one audit row.

Parameters:
  - context: context.Context
  - action: *ModAction

Returns:
  - error: Database execution failures
*/
func (repository *PostgresActionLogRepository) Record(context context.Context, action *ModAction) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.ComicsModActionLog.Table,
		schema.ComicsModActionLog.ComicName, schema.ComicsModActionLog.Moderator, schema.ComicsModActionLog.Action)

	if _, err := repository.pool.Exec(context, query, action.ComicName, action.Moderator, action.Action); err != nil {
		return dberr.Wrap(err, "record_mod_action")
	}
	return nil
}

// # Shared Helpers

// scanKeywords drains a single-column keyword result set.
func scanKeywords(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, dberr.Wrap(err, "list_keywords")
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var keyword string
		if err := rows.Scan(&keyword); err != nil {
			return nil, dberr.Wrap(err, "scan_keyword")
		}
		keywords = append(keywords, keyword)
	}
	return keywords, nil
}
