// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads

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

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed advertisement store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new ad row.

Parameters:
  - context: context.Context
  - ad: *Ad

Returns:
  - error: apperr.Conflict on an id collision
*/
func (repository *PostgresRepository) Create(context context.Context, ad *Ad) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`,
		schema.AdsAdvertisement.Table,
		schema.AdsAdvertisement.ID, schema.AdsAdvertisement.AdType, schema.AdsAdvertisement.Link,
		schema.AdsAdvertisement.MainText, schema.AdsAdvertisement.SecondaryText,
		schema.AdsAdvertisement.FileExt, schema.AdsAdvertisement.OwnerID, schema.AdsAdvertisement.Status,
		schema.AdsAdvertisement.ApplicationDate,
	)

	err := repository.pool.QueryRow(context, query,
		ad.ID, ad.AdType, ad.Link, ad.MainText, ad.SecondaryText,
		ad.FileExt, ad.OwnerID, ad.Status,
	).Scan(&ad.ApplicationDate)

	if err != nil {
		return dberr.Wrap(err, "create_ad")
	}
	return nil
}

/*
FindByID returns the ad with the given six-character id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Ad: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Ad, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.AdsAdvertisement.Columns(), ", "),
		schema.AdsAdvertisement.Table, schema.AdsAdvertisement.ID)

	ad := &Ad{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&ad.ID, &ad.AdType, &ad.Link, &ad.MainText, &ad.SecondaryText, &ad.FileExt,
		&ad.OwnerID, &ad.Price, &ad.Status, &ad.Notes, &ad.Clicks,
		&ad.ApplicationDate, &ad.ApprovedDate, &ad.ActivationDate, &ad.DeactivationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Advertisement")
		}
		return nil, dberr.Wrap(err, "find_ad")
	}

	return ad, nil
}

/*
List returns ads filtered by status, newest application first.

Parameters:
  - context: context.Context
  - status: Status (empty matches all)
  - limit: int
  - offset: int

Returns:
  - []*Ad: Matching rows
  - int: Total count matching the filter
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, status Status, limit, offset int) ([]*Ad, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE true`,
		strings.Join(schema.AdsAdvertisement.Columns(), ", "),
		schema.AdsAdvertisement.Table,
	))

	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.AdsAdvertisement.Status, argID))
		args = append(args, status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.AdsAdvertisement.ApplicationDate))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_ads")
	}
	defer rows.Close()

	var listed []*Ad
	var totalCount int
	for rows.Next() {
		ad := &Ad{}
		err := rows.Scan(
			&ad.ID, &ad.AdType, &ad.Link, &ad.MainText, &ad.SecondaryText, &ad.FileExt,
			&ad.OwnerID, &ad.Price, &ad.Status, &ad.Notes, &ad.Clicks,
			&ad.ApplicationDate, &ad.ApprovedDate, &ad.ActivationDate, &ad.DeactivationDate,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_ad")
		}
		listed = append(listed, ad)
	}

	return listed, totalCount, nil
}

/*
UpdateStatus transitions an ad between lifecycle states.

Description: The update is conditional on the current status, so two
reviewers acting on the same application cannot both win. The date column
matching the target state is stamped in the same statement.

Parameters:
  - context: context.Context
  - id: string
  - from: Status
  - to: Status
  - notes: string (empty keeps the column)
  - price: int (zero keeps the column)

Returns:
  - error: apperr.NotFound if no row in the required state matched
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, from, to Status, notes string, price int) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = $1", schema.AdsAdvertisement.Table, schema.AdsAdvertisement.Status))

	args := []any{to}
	argID := 2

	// Stamp the lifecycle date that corresponds to the target state.
	switch to {
	case StatusApproved:
		queryBuilder.WriteString(fmt.Sprintf(", %s = NOW()", schema.AdsAdvertisement.ApprovedDate))
	case StatusActive:
		queryBuilder.WriteString(fmt.Sprintf(", %s = NOW(), %s = NULL", schema.AdsAdvertisement.ActivationDate, schema.AdsAdvertisement.DeactivationDate))
	case StatusExpired:
		queryBuilder.WriteString(fmt.Sprintf(", %s = NOW()", schema.AdsAdvertisement.DeactivationDate))
	}

	if notes != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.AdsAdvertisement.Notes, argID))
		args = append(args, notes)
		argID++
	}
	if price != 0 {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.AdsAdvertisement.Price, argID))
		args = append(args, price)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d AND %s = $%d",
		schema.AdsAdvertisement.ID, argID, schema.AdsAdvertisement.Status, argID+1))
	args = append(args, id, from)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_ad_status")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Advertisement in state " + string(from))
	}
	return nil
}

/*
IncrementClicks atomically bumps the click counter.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Database execution failures
*/
func (repository *PostgresRepository) IncrementClicks(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.AdsAdvertisement.Table, schema.AdsAdvertisement.Clicks,
		schema.AdsAdvertisement.Clicks, schema.AdsAdvertisement.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "increment_ad_clicks")
	}
	return nil
}
