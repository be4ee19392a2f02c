// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
Package pagestore owns the on-disk layout of comic page files.

Each comic lives in a directory named exactly after the comic, directly under
the configured root. Pages are named by a strict two-digit convention
("01.jpg" .. "99.png", literal decimal beyond single digits), and the
reserved filename "s.jpg" holds the thumbnail. The directory name is the
single source of truth binding filesystem state to the metadata row, so a
comic rename is always a directory rename paired with the row update.

The store never caches counts or listings; callers re-derive state from the
directory on every mutation.
*/
package pagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// ThumbnailName is the reserved filename for a comic's thumbnail. It is
// excluded from page listings and from the page count.
const ThumbnailName = "s.jpg"

// MaxSequence is the largest page number the two-digit naming convention
// supports. Sequence numbers beyond it fail rather than silently misname.
const MaxSequence = 99

// Mirror replicates completed filesystem writes to a secondary blob store.
// Keys are "<comic>/<filename>". Implementations must be idempotent on
// retry; mirroring is synchronous but failures do not roll back the local
// write, they surface as storage errors.
type Mirror interface {
	Put(context context.Context, key string, data []byte) error
	Rename(context context.Context, oldPrefix, newPrefix string) error
	Delete(context context.Context, prefix string) error
}

// Store performs filesystem operations scoped to one comic directory at a
// time. It is safe for concurrent use across distinct comics; callers
// serialize operations on the same comic.
type Store struct {
	root   string
	mirror Mirror
}

/*
New creates a Store rooted at root, creating the root directory if needed.
mirror may be nil, in which case no replication happens.

# Parameters
  - root: base directory holding one subdirectory per comic.
  - mirror: optional secondary blob store.

# Returns
  - *Store: the ready store.
  - error: apperr.Storage if the root cannot be created.
*/
func New(root string, mirror Mirror) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperr.Storage(fmt.Errorf("create page root: %w", err))
	}
	return &Store{root: root, mirror: mirror}, nil
}

// PageName derives the on-disk filename for a page.
//
// The sequence is zero-padded to width 2 below 10 and written as literal
// decimal otherwise; the extension is taken from sourceName and must be
// jpg or png. Sequences above MaxSequence are rejected so the two-digit
// ordering convention is never violated.
func PageName(sequence int, sourceName string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(sourceName), "."))
	if ext != "jpg" && ext != "png" {
		return "", apperr.ValidationError(fmt.Sprintf("unsupported page format %q, only jpg and png are accepted", ext))
	}
	if sequence < 1 || sequence > MaxSequence {
		return "", apperr.ValidationError(fmt.Sprintf("page sequence %d is outside the supported range 1-%d", sequence, MaxSequence))
	}
	return fmt.Sprintf("%02d.%s", sequence, ext), nil
}

/*
CreateDirectory allocates the directory for a new comic.

# Returns
  - error: apperr.Conflict if the directory already exists, apperr.Storage
    on any other filesystem failure.
*/
func (store *Store) CreateDirectory(context context.Context, name string) error {
	if err := deadline(context); err != nil {
		return err
	}
	if err := os.Mkdir(store.dir(name), 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return apperr.Conflict(fmt.Sprintf("a comic named %q already exists", name))
		}
		return apperr.Storage(fmt.Errorf("create comic directory: %w", err))
	}
	return nil
}

/*
ListPages returns the page filenames for a comic in ascending name order,
excluding the thumbnail. The length of the result is the authoritative page
count.

# Returns
  - []string: sorted page filenames.
  - error: apperr.NotFound if the directory is absent, apperr.Storage on
    any other filesystem failure.
*/
func (store *Store) ListPages(context context.Context, name string) ([]string, error) {
	if err := deadline(context); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(store.dir(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("comic directory")
		}
		return nil, apperr.Storage(fmt.Errorf("list comic directory: %w", err))
	}

	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == ThumbnailName {
			continue
		}
		pages = append(pages, entry.Name())
	}
	sort.Strings(pages)
	return pages, nil
}

/*
WritePage writes one page file named by the two-digit convention,
overwriting any existing file in that slot. The extension is derived from
sourceName.

# Returns
  - string: the filename written, e.g. "03.png".
  - error: apperr.ValidationError for a bad extension or out-of-range
    sequence, apperr.Storage on write failure.
*/
func (store *Store) WritePage(context context.Context, name string, sequence int, sourceName string, data []byte) (string, error) {
	if err := deadline(context); err != nil {
		return "", err
	}
	fileName, err := PageName(sequence, sourceName)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(store.dir(name), fileName), data, 0o644); err != nil {
		return "", apperr.Storage(fmt.Errorf("write page %s: %w", fileName, err))
	}
	if store.mirror != nil {
		if err := store.mirror.Put(context, name+"/"+fileName, data); err != nil {
			return "", apperr.Storage(fmt.Errorf("mirror page %s: %w", fileName, err))
		}
	}
	return fileName, nil
}

// WriteThumbnail writes or replaces the comic's thumbnail. A pre-existing
// thumbnail is removed first so stale content never lingers behind a
// partial write.
func (store *Store) WriteThumbnail(context context.Context, name string, data []byte) error {
	if err := deadline(context); err != nil {
		return err
	}
	path := filepath.Join(store.dir(name), ThumbnailName)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Storage(fmt.Errorf("remove stale thumbnail: %w", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Storage(fmt.Errorf("write thumbnail: %w", err))
	}
	if store.mirror != nil {
		if err := store.mirror.Put(context, name+"/"+ThumbnailName, data); err != nil {
			return apperr.Storage(fmt.Errorf("mirror thumbnail: %w", err))
		}
	}
	return nil
}

/*
RenameDirectory moves a comic's directory to a new name as part of a comic
rename.

# Returns
  - error: apperr.NotFound if oldName has no directory, apperr.Conflict if
    newName is already taken, apperr.Storage otherwise.
*/
func (store *Store) RenameDirectory(context context.Context, oldName, newName string) error {
	if err := deadline(context); err != nil {
		return err
	}
	if _, err := os.Stat(store.dir(oldName)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound("comic directory")
		}
		return apperr.Storage(fmt.Errorf("stat comic directory: %w", err))
	}
	if _, err := os.Stat(store.dir(newName)); err == nil {
		return apperr.Conflict(fmt.Sprintf("a comic named %q already exists", newName))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return apperr.Storage(fmt.Errorf("stat target directory: %w", err))
	}
	if err := os.Rename(store.dir(oldName), store.dir(newName)); err != nil {
		return apperr.Storage(fmt.Errorf("rename comic directory: %w", err))
	}
	if store.mirror != nil {
		if err := store.mirror.Rename(context, oldName, newName); err != nil {
			return apperr.Storage(fmt.Errorf("mirror rename: %w", err))
		}
	}
	return nil
}

// DeleteDirectory removes a comic's directory and everything in it. It is
// used only to roll back a failed submission, so a missing directory is not
// an error.
func (store *Store) DeleteDirectory(context context.Context, name string) error {
	if err := deadline(context); err != nil {
		return err
	}
	if err := os.RemoveAll(store.dir(name)); err != nil {
		return apperr.Storage(fmt.Errorf("delete comic directory: %w", err))
	}
	if store.mirror != nil {
		if err := store.mirror.Delete(context, name); err != nil {
			return apperr.Storage(fmt.Errorf("mirror delete: %w", err))
		}
	}
	return nil
}

func (store *Store) dir(name string) string {
	return filepath.Join(store.root, name)
}

// deadline maps an exceeded request deadline to the timeout error kind
// before touching the filesystem. Partial writes are not resumable, so
// callers must re-derive state from the listing rather than retry.
func deadline(context context.Context) error {
	if err := context.Err(); err != nil {
		return apperr.Timeout(err)
	}
	return nil
}
