// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics_test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/inkfold/internal/comics"
	"github.com/inkfold/inkfold/internal/platform/apperr"
)

// buildForm assembles a parsed multipart form with files under the given
// field names, mirroring what http.Request.ParseMultipartForm produces.
func buildForm(t *testing.T, files map[string][]string) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("content-of-" + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

/*
TestNormalizePageUploads flattens both upload shapes, the plural collection
field and the legacy singular field, into one slice in form order.
*/
func TestNormalizePageUploads(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string][]string
		wantNames []string
		wantCode  string
	}{
		{
			"plural_field",
			map[string][]string{"pages": {"01.jpg", "02.png"}},
			[]string{"01.jpg", "02.png"},
			"",
		},
		{
			"singular_field",
			map[string][]string{"page": {"extra.jpg"}},
			[]string{"extra.jpg"},
			"",
		},
		{
			"plural_wins_over_singular",
			map[string][]string{"pages": {"01.jpg"}, "page": {"ignored.jpg"}},
			[]string{"01.jpg"},
			"",
		},
		{
			"no_file_field",
			map[string][]string{"unrelated": {"01.jpg"}},
			nil,
			"VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := buildForm(t, tt.files)

			uploads, err := comics.NormalizePageUploads(form)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.Code(err))
				return
			}

			require.NoError(t, err)
			names := make([]string, len(uploads))
			for i, upload := range uploads {
				names[i] = upload.Filename
				assert.Equal(t, []byte("content-of-"+upload.Filename), upload.Data)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

/*
TestThumbnailUpload returns the cover file when present and nil, not an
error, when the optional field is absent.
*/
func TestThumbnailUpload(t *testing.T) {
	form := buildForm(t, map[string][]string{"thumbnail": {"cover.jpg"}})

	thumbnail, err := comics.ThumbnailUpload(form)
	require.NoError(t, err)
	require.NotNil(t, thumbnail)
	assert.Equal(t, "cover.jpg", thumbnail.Filename)
	assert.Equal(t, []byte("content-of-cover.jpg"), thumbnail.Data)

	empty := buildForm(t, map[string][]string{"pages": {"01.jpg"}})
	thumbnail, err = comics.ThumbnailUpload(empty)
	require.NoError(t, err)
	assert.Nil(t, thumbnail)
}
