// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package comics

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/constants"
)

// PageUpload is one received page file, normalized at the HTTP boundary.
// Filename is the uploader's original name and carries the only ordering
// signal the pipeline has, so uploaders must name files in an
// order-preserving scheme.
type PageUpload struct {
	Filename string
	Data     []byte
}

/*
NormalizePageUploads flattens the two shapes a page upload can arrive in.

Description: Browsers and API clients send multiple files under the "pages"
field, but a single file is often posted under the singular "page" field as
a bare file object rather than a one-element collection. Both shapes collapse
here into one ordered slice so nothing downstream ever branches on
"is it a collection". Field order within the form is preserved; sorting is
the caller's decision.

Parameters:
  - form: *multipart.Form (already parsed by the handler)

Returns:
  - []PageUpload: The received files in form order
  - error: apperr.ValidationError when no file field is present,
    apperr.Storage when a file part cannot be read
*/
func NormalizePageUploads(form *multipart.Form) ([]PageUpload, error) {

	headers := form.File[constants.UploadFieldPages]
	if len(headers) == 0 {
		headers = form.File[constants.UploadFieldPage]
	}
	if len(headers) == 0 {
		return nil, apperr.ValidationError("No page files were uploaded")
	}

	uploads := make([]PageUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *upload)
	}
	return uploads, nil
}

/*
ThumbnailUpload extracts the optional thumbnail file from the form.

Parameters:
  - form: *multipart.Form

Returns:
  - *PageUpload: The thumbnail, or nil when none was uploaded
  - error: apperr.Storage when the file part cannot be read
*/
func ThumbnailUpload(form *multipart.Form) (*PageUpload, error) {
	headers := form.File[constants.UploadFieldThumbnail]
	if len(headers) == 0 {
		return nil, nil
	}
	return readUpload(headers[0])
}

// readUpload drains one multipart file part into memory.
func readUpload(header *multipart.FileHeader) (*PageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("open upload %q: %w", header.Filename, err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("read upload %q: %w", header.Filename, err))
	}

	return &PageUpload{Filename: header.Filename, Data: data}, nil
}
