// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package pagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirMirror replicates writes into a second directory tree, typically a
// mounted backup volume. All operations are idempotent so a retried
// operation converges on the same state.
type DirMirror struct {
	root string
}

// NewDirMirror creates the mirror root if needed and returns the mirror.
func NewDirMirror(root string) (*DirMirror, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror root: %w", err)
	}
	return &DirMirror{root: root}, nil
}

// Put writes data under the mirror root at the given key, creating parent
// directories as needed.
func (mirror *DirMirror) Put(context context.Context, key string, data []byte) error {
	path := filepath.Join(mirror.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Rename moves a mirrored comic directory to its new name. A missing source
// is ignored so a retry after partial success still succeeds.
func (mirror *DirMirror) Rename(context context.Context, oldPrefix, newPrefix string) error {
	oldPath := filepath.Join(mirror.root, oldPrefix)
	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return nil
	}
	return os.Rename(oldPath, filepath.Join(mirror.root, newPrefix))
}

// Delete removes a mirrored comic directory.
func (mirror *DirMirror) Delete(context context.Context, prefix string) error {
	return os.RemoveAll(filepath.Join(mirror.root, prefix))
}
