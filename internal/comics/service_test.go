// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/inkfold/internal/comics"
	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/pkg/pointer"
)

// # In-Memory Fakes

type fakeComicRepo struct {
	rows         map[int64]*comics.Comic
	nextID       int64
	artists      map[string]int64
	nextArtistID int64

	updateErr error
}

func newFakeComicRepo() *fakeComicRepo {
	return &fakeComicRepo{
		rows:    make(map[int64]*comics.Comic),
		artists: make(map[string]int64),
	}
}

func (repo *fakeComicRepo) List(_ context.Context, _ comics.Filter, _, _ int) ([]*comics.Comic, int, error) {
	out := make([]*comics.Comic, 0, len(repo.rows))
	for _, row := range repo.rows {
		out = append(out, row)
	}
	return out, len(out), nil
}

func (repo *fakeComicRepo) FindByID(_ context.Context, id int64) (*comics.Comic, error) {
	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Comic")
	}
	clone := *row
	clone.Keywords = append([]string(nil), row.Keywords...)
	return &clone, nil
}

func (repo *fakeComicRepo) FindByName(_ context.Context, name string) (*comics.Comic, error) {
	for _, row := range repo.rows {
		if row.Name == name {
			clone := *row
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Comic")
}

func (repo *fakeComicRepo) NameExists(_ context.Context, name string) (bool, error) {
	for _, row := range repo.rows {
		if row.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeComicRepo) UpdateDetails(_ context.Context, id int64, update comics.DetailUpdate, artistID int64) error {
	if repo.updateErr != nil {
		return repo.updateErr
	}
	row, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("Comic")
	}
	if update.Name != nil {
		row.Name = *update.Name
	}
	if update.Artist != nil {
		row.Artist = *update.Artist
	}
	if artistID != 0 {
		row.ArtistID = artistID
	}
	if update.Category != nil {
		row.Category = *update.Category
	}
	if update.Tag != nil {
		row.Tag = *update.Tag
	}
	if update.Finished != nil {
		row.Finished = *update.Finished
	}
	return nil
}

func (repo *fakeComicRepo) UpdatePageCount(_ context.Context, id int64, count int) error {
	row, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("Comic")
	}
	row.NumPages = count
	return nil
}

func (repo *fakeComicRepo) ListKeywords(_ context.Context, comicID int64) ([]string, error) {
	row, ok := repo.rows[comicID]
	if !ok {
		return nil, apperr.NotFound("Comic")
	}
	return append([]string(nil), row.Keywords...), nil
}

func (repo *fakeComicRepo) InsertKeywords(_ context.Context, comicID int64, keywords []string) error {
	row, ok := repo.rows[comicID]
	if !ok {
		return apperr.NotFound("Comic")
	}
	row.Keywords = append(row.Keywords, keywords...)
	return nil
}

func (repo *fakeComicRepo) EnsureArtist(_ context.Context, name string) (int64, error) {
	if id, ok := repo.artists[name]; ok {
		return id, nil
	}
	repo.nextArtistID++
	repo.artists[name] = repo.nextArtistID
	return repo.nextArtistID, nil
}

func (repo *fakeComicRepo) add(comic *comics.Comic) *comics.Comic {
	repo.nextID++
	comic.ID = repo.nextID
	repo.rows[comic.ID] = comic
	return comic
}

type fakePendingRepo struct {
	rows   map[int64]*comics.PendingComic
	nextID int64
	live   *fakeComicRepo

	createErr error

	// insertedKeywords records every InsertKeywords batch for diff assertions.
	insertedKeywords [][]string
}

func newFakePendingRepo(live *fakeComicRepo) *fakePendingRepo {
	return &fakePendingRepo{
		rows: make(map[int64]*comics.PendingComic),
		live: live,
	}
}

func (repo *fakePendingRepo) Create(_ context.Context, pending *comics.PendingComic) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	repo.nextID++
	pending.ID = repo.nextID
	clone := *pending
	repo.rows[pending.ID] = &clone
	return nil
}

func (repo *fakePendingRepo) FindByID(_ context.Context, id int64) (*comics.PendingComic, error) {
	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Pending comic")
	}
	clone := *row
	clone.Keywords = append([]string(nil), row.Keywords...)
	return &clone, nil
}

func (repo *fakePendingRepo) List(_ context.Context, _, _ int) ([]*comics.PendingComic, int, error) {
	out := make([]*comics.PendingComic, 0, len(repo.rows))
	for _, row := range repo.rows {
		if !row.Processed {
			out = append(out, row)
		}
	}
	return out, len(out), nil
}

func (repo *fakePendingRepo) UpdatePageCount(_ context.Context, id int64, count int) error {
	row, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("Pending comic")
	}
	row.NumPages = count
	return nil
}

func (repo *fakePendingRepo) SetHasThumbnail(_ context.Context, id int64) error {
	row, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("Pending comic")
	}
	row.HasThumbnail = true
	return nil
}

func (repo *fakePendingRepo) ListKeywords(_ context.Context, pendingID int64) ([]string, error) {
	row, ok := repo.rows[pendingID]
	if !ok {
		return nil, apperr.NotFound("Pending comic")
	}
	return append([]string(nil), row.Keywords...), nil
}

func (repo *fakePendingRepo) InsertKeywords(_ context.Context, pendingID int64, keywords []string) error {
	row, ok := repo.rows[pendingID]
	if !ok {
		return apperr.NotFound("Pending comic")
	}
	repo.insertedKeywords = append(repo.insertedKeywords, append([]string(nil), keywords...))
	row.Keywords = append(row.Keywords, keywords...)
	return nil
}

func (repo *fakePendingRepo) DeleteKeywords(_ context.Context, pendingID int64, keywords []string) error {
	row, ok := repo.rows[pendingID]
	if !ok {
		return apperr.NotFound("Pending comic")
	}
	drop := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		drop[keyword] = struct{}{}
	}
	kept := row.Keywords[:0]
	for _, keyword := range row.Keywords {
		if _, gone := drop[keyword]; !gone {
			kept = append(kept, keyword)
		}
	}
	row.Keywords = kept
	return nil
}

func (repo *fakePendingRepo) Promote(_ context.Context, pending *comics.PendingComic) (*comics.Comic, error) {
	row, ok := repo.rows[pending.ID]
	if !ok {
		return nil, apperr.NotFound("Pending comic")
	}
	if row.Processed {
		return nil, apperr.Conflict("Pending comic was already processed")
	}
	row.Processed = true
	row.Approved = true

	comic := &comics.Comic{
		Name:     row.Name,
		ArtistID: row.ArtistID,
		Artist:   row.Artist,
		Category: row.Category,
		Tag:      row.Tag,
		NumPages: row.NumPages,
		Finished: row.Finished,
		Keywords: append([]string(nil), row.Keywords...),
	}
	return repo.live.add(comic), nil
}

type fakeActionLog struct {
	actions []*comics.ModAction
}

func (log *fakeActionLog) Record(_ context.Context, action *comics.ModAction) error {
	log.actions = append(log.actions, action)
	return nil
}

// # Test Harness

type harness struct {
	service    *comics.Service
	comicRepo  *fakeComicRepo
	pending    *fakePendingRepo
	actions    *fakeActionLog
	pagesRoot  string
	pagesStore *pagestore.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	root := t.TempDir()
	pages, err := pagestore.New(root, nil)
	require.NoError(t, err)

	comicRepo := newFakeComicRepo()
	pending := newFakePendingRepo(comicRepo)
	actions := &fakeActionLog{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &harness{
		service:    comics.NewService(comicRepo, pending, actions, pages, nil, logger),
		comicRepo:  comicRepo,
		pending:    pending,
		actions:    actions,
		pagesRoot:  root,
		pagesStore: pages,
	}
}

func pageUploads(names ...string) []comics.PageUpload {
	uploads := make([]comics.PageUpload, len(names))
	for i, name := range names {
		uploads[i] = comics.PageUpload{Filename: name, Data: []byte("image-bytes")}
	}
	return uploads
}

func (h *harness) dirEntries(t *testing.T, name string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(h.pagesRoot, name))
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names
}

// # Submission

/*
TestService_Submit covers the happy path: pages written under two-digit
names in filename order, thumbnail stored, keywords normalized, and the
pending row created after the files exist.
*/
func TestService_Submit(t *testing.T) {
	h := newHarness(t)

	thumbnail := &comics.PageUpload{Filename: "cover.jpg", Data: []byte("thumb")}
	input := comics.Submission{
		Name:     "moon-garden",
		Artist:   "Iris Vale",
		Category: comics.CategoryFantasy,
		Keywords: []string{" garden", "moon", "garden", ""},
	}

	// Deliberately out of order; the filename sort decides page order.
	pending, err := h.service.Submit(context.Background(), "mod-1", input,
		pageUploads("b.png", "a.jpg"), thumbnail)
	require.NoError(t, err)

	assert.Equal(t, int64(1), pending.ID)
	assert.Equal(t, "mod-1", pending.ModeratorID)
	assert.Equal(t, 2, pending.NumPages)
	assert.True(t, pending.HasThumbnail)
	assert.False(t, pending.Processed)
	assert.Equal(t, []string{"garden", "moon"}, pending.Keywords)

	// An omitted tag falls back to the slug of the name.
	assert.Equal(t, "moon-garden", pending.Tag)

	// a.jpg sorts before b.png, so it becomes page one.
	assert.Equal(t, []string{"01.jpg", "02.png", "s.jpg"}, h.dirEntries(t, "moon-garden"))

	require.Len(t, h.actions.actions, 1)
	assert.Equal(t, comics.ActionSubmit, h.actions.actions[0].Action)
	assert.Equal(t, "moon-garden", h.actions.actions[0].ComicName)
}

/*
TestService_Submit_Validation rejects bad metadata and bad upload sets
before any directory work happens.
*/
func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   comics.Submission
		uploads []comics.PageUpload
	}{
		{
			"single_page",
			comics.Submission{Name: "solo", Artist: "A"},
			pageUploads("only.jpg"),
		},
		{
			"bad_extension",
			comics.Submission{Name: "gifs", Artist: "A"},
			pageUploads("01.gif", "02.jpg"),
		},
		{
			"missing_name",
			comics.Submission{Artist: "A"},
			pageUploads("01.jpg", "02.jpg"),
		},
		{
			"unknown_category",
			comics.Submission{Name: "cat", Artist: "A", Category: "western"},
			pageUploads("01.jpg", "02.jpg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.service.Submit(context.Background(), "mod-1", tt.input, tt.uploads, nil)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))

			// Nothing may touch the page store on a validation failure.
			if tt.input.Name != "" {
				_, statErr := os.Stat(filepath.Join(h.pagesRoot, tt.input.Name))
				assert.True(t, os.IsNotExist(statErr))
			}
		})
	}
}

/*
TestService_Submit_DuplicateName rejects a name already claimed by the live
catalogue or by a still-pending submission's directory.
*/
func TestService_Submit_DuplicateName(t *testing.T) {
	h := newHarness(t)
	h.comicRepo.add(&comics.Comic{Name: "taken"})

	_, err := h.service.Submit(context.Background(), "mod-1",
		comics.Submission{Name: "taken", Artist: "A"}, pageUploads("01.jpg", "02.jpg"), nil)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))

	// A pending submission holds the name through its directory.
	_, err = h.service.Submit(context.Background(), "mod-1",
		comics.Submission{Name: "held", Artist: "A"}, pageUploads("01.jpg", "02.jpg"), nil)
	require.NoError(t, err)

	_, err = h.service.Submit(context.Background(), "mod-2",
		comics.Submission{Name: "held", Artist: "B"}, pageUploads("01.jpg", "02.jpg"), nil)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}

/*
TestService_Submit_RollsBackDirectory deletes the written directory when the
metadata insert fails, freeing the name for a retry.
*/
func TestService_Submit_RollsBackDirectory(t *testing.T) {
	h := newHarness(t)
	h.pending.createErr = apperr.Internal(fmt.Errorf("insert failed"))

	_, err := h.service.Submit(context.Background(), "mod-1",
		comics.Submission{Name: "doomed", Artist: "A"}, pageUploads("01.jpg", "02.jpg"), nil)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(h.pagesRoot, "doomed"))
	assert.True(t, os.IsNotExist(statErr))

	// The name is free again once the injected failure clears.
	h.pending.createErr = nil
	_, err = h.service.Submit(context.Background(), "mod-1",
		comics.Submission{Name: "doomed", Artist: "A"}, pageUploads("01.jpg", "02.jpg"), nil)
	assert.NoError(t, err)
}

// # Page Appends

func submitPending(t *testing.T, h *harness, name string, pages ...string) *comics.PendingComic {
	t.Helper()
	pending, err := h.service.Submit(context.Background(), "mod-1",
		comics.Submission{Name: name, Artist: "A"}, pageUploads(pages...), nil)
	require.NoError(t, err)
	return pending
}

/*
TestService_AppendPages continues the sequence from the files on disk and
re-derives the stored count from a fresh listing.
*/
func TestService_AppendPages(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "serial", "01.jpg", "02.jpg")

	count, err := h.service.AppendPages(context.Background(), pending.ID, true, "mod-1",
		pageUploads("z-second.png", "a-first.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// New files pick up sequences three and four in filename order.
	assert.Equal(t, []string{"01.jpg", "02.jpg", "03.jpg", "04.png"}, h.dirEntries(t, "serial"))

	stored, err := h.pending.FindByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.NumPages)
}

/*
TestService_AppendPages_CountFromDisk trusts the directory listing over a
stale stored column when assigning sequence numbers.
*/
func TestService_AppendPages_CountFromDisk(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "stale", "01.jpg", "02.jpg")

	// Simulate a stale column from an earlier partial failure.
	require.NoError(t, h.pending.UpdatePageCount(context.Background(), pending.ID, 1))

	count, err := h.service.AppendPages(context.Background(), pending.ID, true, "mod-1",
		pageUploads("next.jpg"))
	require.NoError(t, err)

	// Disk had two pages, so the new file is page three, not page two.
	assert.Equal(t, 3, count)
	assert.Contains(t, h.dirEntries(t, "stale"), "03.jpg")
}

/*
TestService_AppendPages_Overflow rejects an append that would push the
sequence past the two-digit naming limit.
*/
func TestService_AppendPages_Overflow(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "thick", "01.jpg", "02.jpg")

	for seq := 3; seq <= pagestore.MaxSequence-1; seq++ {
		_, err := h.pagesStore.WritePage(context.Background(), "thick", seq, "p.jpg", []byte("x"))
		require.NoError(t, err)
	}

	// 98 pages on disk; two more would need sequence 100.
	_, err := h.service.AppendPages(context.Background(), pending.ID, true, "mod-1",
		pageUploads("a.jpg", "b.jpg"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))

	// One more still fits exactly.
	count, err := h.service.AppendPages(context.Background(), pending.ID, true, "mod-1",
		pageUploads("last.jpg"))
	require.NoError(t, err)
	assert.Equal(t, pagestore.MaxSequence, count)
}

/*
TestService_AppendPages_FrozenPending refuses corrections once the pending
row is processed.
*/
func TestService_AppendPages_FrozenPending(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "frozen", "01.jpg", "02.jpg")
	h.pending.rows[pending.ID].Processed = true

	_, err := h.service.AppendPages(context.Background(), pending.ID, true, "mod-1",
		pageUploads("late.jpg"))
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}

/*
TestService_AppendPages_LiveComic appends to a published comic through its
own id, locking by name.
*/
func TestService_AppendPages_LiveComic(t *testing.T) {
	h := newHarness(t)
	comic := h.comicRepo.add(&comics.Comic{Name: "published", NumPages: 2})
	require.NoError(t, h.pagesStore.CreateDirectory(context.Background(), "published"))
	for seq := 1; seq <= 2; seq++ {
		_, err := h.pagesStore.WritePage(context.Background(), "published", seq, "p.jpg", []byte("x"))
		require.NoError(t, err)
	}

	count, err := h.service.AppendPages(context.Background(), comic.ID, false, "mod-1",
		pageUploads("extra.png"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, h.comicRepo.rows[comic.ID].NumPages)
}

// # Thumbnails

/*
TestService_AttachThumbnail writes the reserved thumbnail file, flips the
flag, and keeps the thumbnail out of the page listing.
*/
func TestService_AttachThumbnail(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "covered", "01.jpg", "02.jpg")
	assert.False(t, pending.HasThumbnail)

	err := h.service.AttachThumbnail(context.Background(), pending.ID, "mod-1",
		comics.PageUpload{Filename: "cover.jpg", Data: []byte("thumb")})
	require.NoError(t, err)

	stored, err := h.pending.FindByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasThumbnail)
	assert.Equal(t, 2, stored.NumPages)

	pages, err := h.pagesStore.ListPages(context.Background(), "covered")
	require.NoError(t, err)
	assert.NotContains(t, pages, pagestore.ThumbnailName)
}

// # Keywords

/*
TestService_AttachKeywords_Idempotent inserts only keywords not already
attached; re-sending an attached set writes nothing.
*/
func TestService_AttachKeywords_Idempotent(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "tagged", "01.jpg", "02.jpg")

	first, err := h.service.AttachKeywords(context.Background(), pending.ID, "mod-1",
		[]string{"sword", "magic"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sword", "magic"}, first)

	// Overlapping attach writes only the new keyword.
	second, err := h.service.AttachKeywords(context.Background(), pending.ID, "mod-1",
		[]string{"magic", "dragon"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sword", "magic", "dragon"}, second)

	require.Len(t, h.pending.insertedKeywords, 2)
	assert.Equal(t, []string{"dragon"}, h.pending.insertedKeywords[1])

	// A fully duplicate attach inserts nothing at all.
	_, err = h.service.AttachKeywords(context.Background(), pending.ID, "mod-1",
		[]string{"sword"})
	require.NoError(t, err)
	assert.Len(t, h.pending.insertedKeywords, 2)
}

/*
TestService_DetachKeywords removes attached keywords and silently skips ones
that were never attached.
*/
func TestService_DetachKeywords(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "untagged", "01.jpg", "02.jpg")

	_, err := h.service.AttachKeywords(context.Background(), pending.ID, "mod-1",
		[]string{"sword", "magic"})
	require.NoError(t, err)

	remaining, err := h.service.DetachKeywords(context.Background(), pending.ID, "mod-1",
		[]string{"magic", "never-attached"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sword"}, remaining)
}

// # Promotion

func readyPending(t *testing.T, h *harness, name string) *comics.PendingComic {
	t.Helper()
	pending := submitPending(t, h, name, "01.jpg", "02.jpg")

	err := h.service.AttachThumbnail(context.Background(), pending.ID, "mod-1",
		comics.PageUpload{Filename: "cover.jpg", Data: []byte("thumb")})
	require.NoError(t, err)

	_, err = h.service.AttachKeywords(context.Background(), pending.ID, "mod-1", []string{"sword"})
	require.NoError(t, err)

	return pending
}

/*
TestService_Promote transitions a ready submission into the live catalogue,
copying its keyword set, and refuses a second promotion of the same row.
*/
func TestService_Promote(t *testing.T) {
	h := newHarness(t)
	pending := readyPending(t, h, "ascend")

	comic, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.NoError(t, err)
	assert.NotZero(t, comic.ID)
	assert.Equal(t, "ascend", comic.Name)
	assert.Equal(t, []string{"sword"}, comic.Keywords)

	frozen, err := h.pending.FindByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, frozen.Processed)
	assert.True(t, frozen.Approved)

	// The pending row is terminal; promoting again conflicts.
	_, err = h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}

/*
TestService_Promote_ReadinessGate rejects promotion until a thumbnail and at
least one keyword are attached.
*/
func TestService_Promote_ReadinessGate(t *testing.T) {
	h := newHarness(t)
	pending := submitPending(t, h, "unready", "01.jpg", "02.jpg")

	_, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))

	err = h.service.AttachThumbnail(context.Background(), pending.ID, "mod-1",
		comics.PageUpload{Filename: "cover.jpg", Data: []byte("thumb")})
	require.NoError(t, err)

	// Thumbnail alone is not enough.
	_, err = h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))

	_, err = h.service.AttachKeywords(context.Background(), pending.ID, "mod-1", []string{"sword"})
	require.NoError(t, err)

	_, err = h.service.Promote(context.Background(), pending.ID, "admin-1")
	assert.NoError(t, err)
}

/*
TestService_Promote_NameClaimed conflicts when a live comic claimed the name
after the submission was created.
*/
func TestService_Promote_NameClaimed(t *testing.T) {
	h := newHarness(t)
	pending := readyPending(t, h, "contested")
	h.comicRepo.add(&comics.Comic{Name: "contested"})

	_, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}

// # Detail Updates

/*
TestService_UpdateDetails_Rename moves the page directory together with the
row so the (directory, row) pair keeps matching names.
*/
func TestService_UpdateDetails_Rename(t *testing.T) {
	h := newHarness(t)
	pending := readyPending(t, h, "before")
	comic, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.NoError(t, err)

	updated, err := h.service.UpdateDetails(context.Background(), comic.ID, "admin-1",
		comics.DetailUpdate{Name: pointer.To("after")})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)

	_, statErr := os.Stat(filepath.Join(h.pagesRoot, "before"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(h.pagesRoot, "after"))
	assert.NoError(t, statErr)
}

/*
TestService_UpdateDetails_RenameCompensation renames the directory back when
the row update fails, leaving the pair consistent under the old name.
*/
func TestService_UpdateDetails_RenameCompensation(t *testing.T) {
	h := newHarness(t)
	pending := readyPending(t, h, "steady")
	comic, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.NoError(t, err)

	h.comicRepo.updateErr = apperr.Internal(fmt.Errorf("row update failed"))

	_, err = h.service.UpdateDetails(context.Background(), comic.ID, "admin-1",
		comics.DetailUpdate{Name: pointer.To("moved")})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(h.pagesRoot, "steady"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(h.pagesRoot, "moved"))
	assert.True(t, os.IsNotExist(statErr))
}

/*
TestService_UpdateDetails_ConflictingName refuses to rename onto a name the
live catalogue already holds.
*/
func TestService_UpdateDetails_ConflictingName(t *testing.T) {
	h := newHarness(t)
	pending := readyPending(t, h, "mover")
	comic, err := h.service.Promote(context.Background(), pending.ID, "admin-1")
	require.NoError(t, err)
	h.comicRepo.add(&comics.Comic{Name: "occupied"})

	_, err = h.service.UpdateDetails(context.Background(), comic.ID, "admin-1",
		comics.DetailUpdate{Name: pointer.To("occupied")})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
}
