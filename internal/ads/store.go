// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads

import "context"

// # Advertisement Data Access

// Repository defines relational access for advertisements.
type Repository interface {

	/*
		Create inserts a new ad row. The six-character id is the primary key;
		a collision with an existing id surfaces as apperr.Conflict so the
		caller can retry with a fresh candidate.

		Parameters:
		  - context: context.Context
		  - ad: *Ad

		Returns:
		  - error: apperr.Conflict on an id collision, execution failures
	*/
	Create(context context.Context, ad *Ad) error

	/*
		FindByID returns the ad with the given six-character id.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Ad: The hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Ad, error)

	/*
		List returns ads filtered by status, newest application first. An
		empty status matches all.

		Parameters:
		  - context: context.Context
		  - status: Status
		  - limit: int
		  - offset: int

		Returns:
		  - []*Ad: Matching rows
		  - int: Total count matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, status Status, limit, offset int) ([]*Ad, int, error)

	/*
		UpdateStatus transitions an ad between lifecycle states, stamping the
		matching date column.

		Parameters:
		  - context: context.Context
		  - id: string
		  - from: Status (required current state, guards concurrent review)
		  - to: Status
		  - notes: string (review notes, empty keeps the column)
		  - price: int (agreed price, zero keeps the column)

		Returns:
		  - error: apperr.NotFound if no row in the required state matched
	*/
	UpdateStatus(context context.Context, id string, from, to Status, notes string, price int) error

	/*
		IncrementClicks atomically bumps the click counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Database execution failures
	*/
	IncrementClicks(context context.Context, id string) error
}
