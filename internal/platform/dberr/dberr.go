// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique-constraint failures.
const uniqueViolation = "23505"

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failed statement for log correlation; it is
// never exposed to clients.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique violations become Conflicts (duplicate comic name, keyword pair)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("A record with this identity already exists")
	}

	// 3. Deadline expiry maps to Timeout; these writes must not be retried
	// without re-deriving state first.
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Timeout(err)
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
