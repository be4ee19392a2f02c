// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package pagestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/internal/platform/apperr"
)

func newStore(t *testing.T) *pagestore.Store {
	t.Helper()
	store, err := pagestore.New(t.TempDir(), nil)
	require.NoError(t, err)
	return store
}

func TestPageName(t *testing.T) {
	tests := []struct {
		name       string
		sequence   int
		sourceName string
		want       string
		wantCode   string
	}{
		{name: "single digit is zero padded", sequence: 1, sourceName: "cover.jpg", want: "01.jpg"},
		{name: "ninth page", sequence: 9, sourceName: "a.png", want: "09.png"},
		{name: "double digit stays literal", sequence: 10, sourceName: "b.jpg", want: "10.jpg"},
		{name: "last supported sequence", sequence: 99, sourceName: "z.png", want: "99.png"},
		{name: "uppercase extension is normalized", sequence: 2, sourceName: "PAGE.JPG", want: "02.jpg"},
		{name: "sequence overflow", sequence: 100, sourceName: "a.jpg", wantCode: "VALIDATION_ERROR"},
		{name: "zero sequence", sequence: 0, sourceName: "a.jpg", wantCode: "VALIDATION_ERROR"},
		{name: "gif rejected", sequence: 1, sourceName: "anim.gif", wantCode: "VALIDATION_ERROR"},
		{name: "no extension", sequence: 1, sourceName: "raw", wantCode: "VALIDATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pagestore.PageName(tc.sequence, tc.sourceName)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, apperr.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_CreateDirectory_Conflict(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDirectory(ctx, "solstice"))

	err := store.CreateDirectory(ctx, "solstice")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}

func TestStore_ListPages_ExcludesThumbnail(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDirectory(ctx, "solstice"))

	_, err := store.WritePage(ctx, "solstice", 2, "b.png", []byte("p2"))
	require.NoError(t, err)
	_, err = store.WritePage(ctx, "solstice", 1, "a.jpg", []byte("p1"))
	require.NoError(t, err)
	require.NoError(t, store.WriteThumbnail(ctx, "solstice", []byte("thumb")))

	pages, err := store.ListPages(ctx, "solstice")
	require.NoError(t, err)
	assert.Equal(t, []string{"01.jpg", "02.png"}, pages)
}

func TestStore_ListPages_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.ListPages(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))
}

func TestStore_WriteThumbnail_ReplacesStale(t *testing.T) {
	root := t.TempDir()
	store, err := pagestore.New(root, nil)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateDirectory(ctx, "solstice"))
	require.NoError(t, store.WriteThumbnail(ctx, "solstice", []byte("old")))
	require.NoError(t, store.WriteThumbnail(ctx, "solstice", []byte("new")))

	data, err := os.ReadFile(filepath.Join(root, "solstice", "s.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestStore_RenameDirectory(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDirectory(ctx, "old-name"))
	require.NoError(t, store.CreateDirectory(ctx, "taken"))

	tests := []struct {
		name     string
		from     string
		to       string
		wantCode string
	}{
		{name: "missing source", from: "ghost", to: "fresh", wantCode: "NOT_FOUND"},
		{name: "target taken", from: "old-name", to: "taken", wantCode: "CONFLICT"},
		{name: "success", from: "old-name", to: "new-name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := store.RenameDirectory(ctx, tc.from, tc.to)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, apperr.Code(err))
				return
			}
			require.NoError(t, err)
			_, err = store.ListPages(ctx, "new-name")
			assert.NoError(t, err)
		})
	}
}

func TestStore_DeleteDirectory_MissingIsNoop(t *testing.T) {
	store := newStore(t)

	assert.NoError(t, store.DeleteDirectory(context.Background(), "ghost"))
}

func TestStore_ExpiredDeadline(t *testing.T) {
	store := newStore(t)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := store.CreateDirectory(ctx, "solstice")
	require.Error(t, err)
	assert.Equal(t, "TIMEOUT", apperr.Code(err))
}

func TestStore_MirrorReceivesWrites(t *testing.T) {
	mirrorRoot := t.TempDir()
	mirror, err := pagestore.NewDirMirror(mirrorRoot)
	require.NoError(t, err)

	store, err := pagestore.New(t.TempDir(), mirror)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateDirectory(ctx, "solstice"))
	_, err = store.WritePage(ctx, "solstice", 1, "a.jpg", []byte("p1"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(mirrorRoot, "solstice", "01.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "p1", string(data))

	require.NoError(t, store.RenameDirectory(ctx, "solstice", "equinox"))
	_, err = os.ReadFile(filepath.Join(mirrorRoot, "equinox", "01.jpg"))
	assert.NoError(t, err)
}
