// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/inkfold/internal/ads"
	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// # In-Memory Fakes

type fakeRepo struct {
	rows map[string]*ads.Ad

	// conflictsLeft makes the next N Create calls fail with a key collision.
	conflictsLeft int
	createCalls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*ads.Ad)}
}

func (repo *fakeRepo) Create(_ context.Context, ad *ads.Ad) error {
	repo.createCalls++
	if repo.conflictsLeft > 0 {
		repo.conflictsLeft--
		return apperr.Conflict("Advertisement id already exists")
	}
	if _, taken := repo.rows[ad.ID]; taken {
		return apperr.Conflict("Advertisement id already exists")
	}
	clone := *ad
	repo.rows[ad.ID] = &clone
	return nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*ads.Ad, error) {
	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Advertisement")
	}
	clone := *row
	return &clone, nil
}

func (repo *fakeRepo) List(_ context.Context, status ads.Status, _, _ int) ([]*ads.Ad, int, error) {
	out := make([]*ads.Ad, 0, len(repo.rows))
	for _, row := range repo.rows {
		if status == "" || row.Status == status {
			out = append(out, row)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) UpdateStatus(_ context.Context, id string, from, to ads.Status, notes string, price int) error {
	row, ok := repo.rows[id]
	if !ok || row.Status != from {
		return apperr.NotFound("Advertisement in state " + string(from))
	}
	row.Status = to
	if notes != "" {
		row.Notes = notes
	}
	if price != 0 {
		row.Price = price
	}
	return nil
}

func (repo *fakeRepo) IncrementClicks(_ context.Context, id string) error {
	row, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("Advertisement")
	}
	row.Clicks++
	return nil
}

type fakeSink struct {
	keys map[string][]byte
}

func (sink *fakeSink) Put(_ context.Context, key string, data []byte) error {
	if sink.keys == nil {
		sink.keys = make(map[string][]byte)
	}
	sink.keys[key] = data
	return nil
}

type fakeClickCounter struct {
	counted []string
}

func (counter *fakeClickCounter) Count(_ context.Context, adID string) {
	counter.counted = append(counter.counted, adID)
}

func newTestService(repo *fakeRepo, sink *fakeSink, counter *fakeClickCounter) *ads.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ads.NewService(repo, sink, counter, logger)
}

func validApplication() ads.Application {
	return ads.Application{
		AdType:   ads.AdTypeBanner,
		Link:     "https://example.com/landing",
		MainText: "Read Moon Garden",
	}
}

// # Application

/*
TestService_Apply creates a pending application with a generated
six-character id and stores the creative keyed by that id.
*/
func TestService_Apply(t *testing.T) {
	repo := newFakeRepo()
	sink := &fakeSink{}
	service := newTestService(repo, sink, nil)

	ad, err := service.Apply(context.Background(), "owner-1", validApplication(),
		"banner.PNG", []byte("creative-bytes"))
	require.NoError(t, err)

	assert.Len(t, ad.ID, 6)
	assert.Equal(t, ads.StatusPending, ad.Status)
	assert.Equal(t, "owner-1", ad.OwnerID)
	assert.Equal(t, "png", ad.FileExt)

	// Creative lands only after the row exists, keyed "<id>.<ext>".
	assert.Equal(t, []byte("creative-bytes"), sink.keys[ad.ID+".png"])
}

/*
TestService_Apply_Validation rejects bad placement slots, missing fields,
and disallowed creative formats.
*/
func TestService_Apply_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ads.Application)
		creative string
		data     []byte
	}{
		{"unknown_slot", func(a *ads.Application) { a.AdType = "popup" }, "c.jpg", []byte("x")},
		{"missing_link", func(a *ads.Application) { a.Link = "" }, "c.jpg", []byte("x")},
		{"missing_text", func(a *ads.Application) { a.MainText = "" }, "c.jpg", []byte("x")},
		{"no_creative", func(a *ads.Application) {}, "c.jpg", nil},
		{"bad_extension", func(a *ads.Application) {}, "c.bmp", []byte("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			service := newTestService(repo, &fakeSink{}, nil)

			input := validApplication()
			tt.mutate(&input)

			_, err := service.Apply(context.Background(), "owner-1", input, tt.creative, tt.data)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
			assert.Zero(t, repo.createCalls)
		})
	}
}

/*
TestService_Apply_IDCollisionRetry redraws the id on a key collision and
gives up with a conflict once the bounded attempts run out.
*/
func TestService_Apply_IDCollisionRetry(t *testing.T) {
	repo := newFakeRepo()
	repo.conflictsLeft = 2
	service := newTestService(repo, &fakeSink{}, nil)

	ad, err := service.Apply(context.Background(), "owner-1", validApplication(),
		"c.jpg", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	assert.Len(t, ad.ID, 6)

	// Exhausting every attempt surfaces a conflict, not an endless loop.
	exhausted := newFakeRepo()
	exhausted.conflictsLeft = 100
	service = newTestService(exhausted, &fakeSink{}, nil)

	_, err = service.Apply(context.Background(), "owner-1", validApplication(),
		"c.jpg", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.Code(err))
	assert.Equal(t, 5, exhausted.createCalls)
}

// # Lifecycle

func storedAd(repo *fakeRepo, id string, status ads.Status) *ads.Ad {
	ad := &ads.Ad{ID: id, Link: "https://example.com", Status: status}
	repo.rows[id] = ad
	return ad
}

/*
TestService_Lifecycle walks an ad through approve, activate, expire, and
renew, asserting each transition demands the right starting state.
*/
func TestService_Lifecycle(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, &fakeSink{}, nil)
	storedAd(repo, "abc123", ads.StatusPending)

	ctx := context.Background()

	// Activating a still-pending ad skips a state and fails.
	err := service.Activate(ctx, "abc123")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))

	require.NoError(t, service.Approve(ctx, "abc123", 500, "net 30"))
	assert.Equal(t, ads.StatusApproved, repo.rows["abc123"].Status)
	assert.Equal(t, 500, repo.rows["abc123"].Price)

	require.NoError(t, service.Activate(ctx, "abc123"))
	require.NoError(t, service.Expire(ctx, "abc123"))
	require.NoError(t, service.Renew(ctx, "abc123", 650))
	assert.Equal(t, ads.StatusActive, repo.rows["abc123"].Status)
	assert.Equal(t, 650, repo.rows["abc123"].Price)
}

/*
TestService_Reject declines a pending application with the reviewer's
reason.
*/
func TestService_Reject(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, &fakeSink{}, nil)
	storedAd(repo, "abc123", ads.StatusPending)

	require.NoError(t, service.Reject(context.Background(), "abc123", "broken landing page"))
	assert.Equal(t, ads.StatusRejected, repo.rows["abc123"].Status)
	assert.Equal(t, "broken landing page", repo.rows["abc123"].Notes)
}

// # Clicks

/*
TestService_Click increments the billing counter, mirrors the event into
telemetry, and returns the redirect target.
*/
func TestService_Click(t *testing.T) {
	repo := newFakeRepo()
	counter := &fakeClickCounter{}
	service := newTestService(repo, &fakeSink{}, counter)
	storedAd(repo, "abc123", ads.StatusActive)

	link, err := service.Click(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", link)
	assert.Equal(t, int64(1), repo.rows["abc123"].Clicks)
	assert.Equal(t, []string{"abc123"}, counter.counted)

	_, err = service.Click(context.Background(), "nosuch")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))
}
