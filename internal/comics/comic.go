// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
Package comics implements the submission and publishing pipeline for the
Inkfold catalogue.

A comic enters the system as a PendingComic uploaded by a moderator,
accumulates corrections (extra pages, a thumbnail, keyword edits), and is
finally promoted into the live catalogue by an admin. The live Comic row and
its page directory always agree: the directory is named exactly after the
comic, and the stored page count equals the number of page files on disk.

Core Responsibility:

  - Submission: validate and persist a new pending comic with its pages.
  - Correction: append pages, attach a thumbnail, edit keywords.
  - Promotion: copy a processed pending comic into the live catalogue.
  - Catalogue: read-only listing and detail queries for published comics.
*/
package comics

import "time"

// # Domain Enums

// Category classifies a comic's overall genre bucket.
type Category string

const (
	CategoryAction  Category = "action"
	CategoryComedy  Category = "comedy"
	CategoryDrama   Category = "drama"
	CategoryFantasy Category = "fantasy"
	CategoryRomance Category = "romance"
	CategorySliceOf Category = "slice_of_life"
	CategoryOther   Category = "other"
)

// IsValid reports whether c is a recognised [Category] value.
func (c Category) IsValid() bool {
	switch c {
	case
		CategoryAction,
		CategoryComedy,
		CategoryDrama,
		CategoryFantasy,
		CategoryRomance,
		CategorySliceOf,
		CategoryOther:
		return true
	}
	return false
}

// # Core Entities

// Artist is a minimal reference row; comics point at it by id and new names
// are upserted on first use.
type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Comic is a published entry in the live catalogue.
//
// Name doubles as the page directory name and is unique across the live
// table; NumPages mirrors the count of page files on disk (thumbnail
// excluded).
type Comic struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ArtistID  int64     `json:"artist_id"`
	Artist    string    `json:"artist,omitempty"` // resolved artist name, read queries only
	Category  Category  `json:"category"`
	Tag       string    `json:"tag"`
	NumPages  int       `json:"num_pages"`
	Finished  bool      `json:"finished"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Keywords are hydrated on detail reads and during promotion.
	Keywords []string `json:"keywords,omitempty"`

	// Views is fire-and-forget telemetry, hydrated on detail reads. It is
	// never part of the relational row.
	Views int64 `json:"views,omitempty"`
}

// PendingComic is a moderator submission awaiting promotion.
//
// Processed is the terminal marker: once true the row is frozen and the live
// Comic created from it owns the name. Until then the pending row may be
// corrected freely (pages appended, thumbnail attached, keywords edited).
type PendingComic struct {
	ID           int64     `json:"id"`
	ModeratorID  string    `json:"moderator_id"`
	Name         string    `json:"name"`
	ArtistID     int64     `json:"artist_id"`
	Artist       string    `json:"artist,omitempty"`
	Category     Category  `json:"category"`
	Tag          string    `json:"tag"`
	NumPages     int       `json:"num_pages"`
	Finished     bool      `json:"finished"`
	HasThumbnail bool      `json:"has_thumbnail"`
	Processed    bool      `json:"processed"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`

	Keywords []string `json:"keywords,omitempty"`
}

// ModAction is an audit log row recording a moderation event. Writes are
// best-effort; a failed log write never fails the operation it describes.
type ModAction struct {
	ID        int64     `json:"id"`
	ComicName string    `json:"comic_name"`
	Moderator string    `json:"moderator"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Moderation action labels recorded in the audit log.
const (
	ActionSubmit    = "submit"
	ActionAppend    = "append"
	ActionThumbnail = "thumbnail"
	ActionKeywords  = "keywords"
	ActionUpdate    = "update"
	ActionPromote   = "promote"
)

// # Field Identifiers

// JSON field names used in validation error details.
const (
	FieldName      = "name"
	FieldArtist    = "artist"
	FieldCategory  = "category"
	FieldTag       = "tag"
	FieldKeywords  = "keywords"
	FieldPages     = "pages"
	FieldThumbnail = "thumbnail"
)

// # Query Inputs

// Filter narrows catalogue listing queries.
type Filter struct {
	Category Category // empty matches all
	Artist   string   // exact artist name
	Finished *bool    // nil matches all
	Keyword  string   // comics carrying this keyword
}

// # Mutation Inputs

// Submission is the validated input for a new pending comic.
type Submission struct {
	Name     string   `json:"name"`
	Artist   string   `json:"artist"`
	Category Category `json:"category"`
	Tag      string   `json:"tag"`
	Finished bool     `json:"finished"`
	Keywords []string `json:"keywords"`
}

// DetailUpdate carries the mutable fields of a live comic. A nil field
// leaves the column untouched; a non-nil Name triggers the paired directory
// rename.
type DetailUpdate struct {
	Name     *string   `json:"name"`
	Artist   *string   `json:"artist"`
	Category *Category `json:"category"`
	Tag      *string   `json:"tag"`
	Finished *bool     `json:"finished"`
}
