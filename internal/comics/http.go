// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
HTTP interface for the comic pipeline.

# Routing Strategy

  - Public (v1): catalogue browsing (GET /comics).
  - Moderator (v1): submission and correction of pending comics.
  - Admin (v1): live detail updates and promotion.

Uploads arrive as multipart forms; the handler normalizes the file fields at
this boundary so the service only ever sees an ordered []PageUpload.
*/
package comics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/constants"
	"github.com/inkfold/inkfold/internal/platform/middleware"
	requestutil "github.com/inkfold/inkfold/internal/platform/request"
	"github.com/inkfold/inkfold/internal/platform/respond"
	"github.com/inkfold/inkfold/internal/platform/sec"
	"github.com/inkfold/inkfold/pkg/convert"
	"github.com/inkfold/inkfold/pkg/pagination"
	"github.com/inkfold/inkfold/pkg/pointer"
	"github.com/inkfold/inkfold/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the comic pipeline.
type Handler struct {
	service *Service
}

// NewHandler constructs a comic [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the live catalogue, mounted at /comics.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Catalogue
	router.Get("/", handler.listComics)
	router.Get("/name/{name}", handler.getComicByName)
	router.Get("/{id}", handler.getComic)

	// ## Moderator Corrections
	router.Group(func(moderator chi.Router) {
		moderator.Use(middleware.RequireRole(sec.RoleModerator))

		moderator.Post("/{id}/pages", handler.appendComicPages)
	})

	// ## Admin Management
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Patch("/{id}", handler.updateComic)
	})

	return router
}

// PendingRoutes returns the router for the submission queue, mounted at
// /pending-comics. Every endpoint requires at least the moderator role.
func (handler *Handler) PendingRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleModerator))

	router.Get("/", handler.listPending)
	router.Get("/{id}", handler.getPending)
	router.Post("/", handler.submit)
	router.Post("/{id}/pages", handler.appendPendingPages)
	router.Post("/{id}/thumbnail", handler.attachThumbnail)
	router.Post("/{id}/keywords", handler.attachKeywords)
	router.Delete("/{id}/keywords", handler.detachKeywords)

	// Promotion is the one admin-only transition in the queue.
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/{id}/promote", handler.promote)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/comics.

Description: Retrieves a paginated slice of the live catalogue.

Request:
  - category: string
  - artist: string (exact name)
  - finished: bool
  - keyword: string
  - limit: int
  - page: int

Response:
  - 200: []Comic: Paginated catalogue slice
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Category: Category(queryParams.Get("category")),
		Artist:   queryParams.Get("artist"),
		Keyword:  queryParams.Get("keyword"),
	}
	if raw := queryParams.Get("finished"); raw != "" {
		filter.Finished = pointer.To(convert.ToBool(raw))
	}

	comics, total, err := handler.service.ListComics(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comics, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/{id}.

Response:
  - 200: Comic: Detail with keywords and view counter
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.GetComic(request.Context(), int64(id))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
GET /api/v1/comics/name/{name}.

Description: Name-based detail lookup for human-readable links; names are
unique across the live catalogue.

Response:
  - 200: Comic: Detail with keywords and view counter
  - 404: ErrNotFound: Unknown name
*/
func (handler *Handler) getComicByName(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")
	if name == "" {
		respond.Error(writer, request, apperr.ValidationError("Comic name is required"))
		return
	}

	comic, err := handler.service.GetComicByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
PATCH /api/v1/comics/{id} (Admin).

Description: Partial update of a live comic's details. A name change also
renames the page directory.

Request:
  - body: DetailUpdate JSON, nil fields untouched

Response:
  - 200: Comic: The updated entity
  - 409: ErrConflict: New name already claimed
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update DetailUpdate
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.UpdateDetails(request.Context(), int64(id), claims.UserID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
POST /api/v1/comics/{id}/pages (Moderator).

Description: Appends pages to a live comic. Files are sorted by filename
before sequence numbers are assigned.

Request:
  - multipart field "pages" (or singular "page")

Response:
  - 200: {"num_pages": int}: The new page count
*/
func (handler *Handler) appendComicPages(writer http.ResponseWriter, request *http.Request) {
	handler.appendPages(writer, request, false)
}

// # Submission Queue Endpoints

/*
GET /api/v1/pending-comics (Moderator).

Response:
  - 200: []PendingComic: Unprocessed queue, oldest first
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	pendings, total, err := handler.service.ListPendingComics(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pendings, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/pending-comics/{id} (Moderator).

Response:
  - 200: PendingComic: Detail with keywords
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) getPending(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pending, err := handler.service.GetPendingComic(request.Context(), int64(id))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pending)
}

/*
POST /api/v1/pending-comics (Moderator).

Description: Submits a new comic. Metadata and files travel in one
multipart form; the page files become pages 1..N in filename order.

Request:
  - name, artist, category, tag, finished: form values
  - keywords: repeated form value, comma-separable
  - pages (or page): file field, at least two files
  - thumbnail: optional file field

Response:
  - 201: PendingComic: The created submission
  - 400: ErrValidation: Bad metadata, too few pages, or a bad extension
  - 409: ErrConflict: Name already claimed
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request is not a valid multipart form"))
		return
	}
	form := request.MultipartForm

	input := Submission{
		Name:     request.FormValue(FieldName),
		Artist:   request.FormValue(FieldArtist),
		Category: Category(request.FormValue(FieldCategory)),
		Tag:      request.FormValue(FieldTag),
		Finished: convert.ToBool(request.FormValue("finished")),
		Keywords: splitKeywords(form.Value[FieldKeywords]),
	}

	pageUploads, err := NormalizePageUploads(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	thumbnail, err := ThumbnailUpload(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pending, err := handler.service.Submit(request.Context(), claims.UserID, input, pageUploads, thumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, pending)
}

/*
POST /api/v1/pending-comics/{id}/pages (Moderator).

Response:
  - 200: {"num_pages": int}: The new page count
  - 409: ErrConflict: Submission already processed
*/
func (handler *Handler) appendPendingPages(writer http.ResponseWriter, request *http.Request) {
	handler.appendPages(writer, request, true)
}

// appendPages is the shared implementation behind both append endpoints.
func (handler *Handler) appendPages(writer http.ResponseWriter, request *http.Request, isPending bool) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request is not a valid multipart form"))
		return
	}

	uploads, err := NormalizePageUploads(request.MultipartForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.AppendPages(request.Context(), int64(id), isPending, claims.UserID, uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"num_pages": count})
}

/*
POST /api/v1/pending-comics/{id}/thumbnail (Moderator).

Request:
  - thumbnail: file field

Response:
  - 204: Thumbnail stored and flag set
*/
func (handler *Handler) attachThumbnail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request is not a valid multipart form"))
		return
	}

	thumbnail, err := ThumbnailUpload(request.MultipartForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if thumbnail == nil {
		respond.Error(writer, request, apperr.ValidationError("No thumbnail file was uploaded"))
		return
	}

	if err := handler.service.AttachThumbnail(request.Context(), int64(id), claims.UserID, *thumbnail); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// keywordsPayload is the JSON body of the keyword endpoints.
type keywordsPayload struct {
	Keywords []string `json:"keywords"`
}

/*
POST /api/v1/pending-comics/{id}/keywords (Moderator).

Description: Attaches keywords; already-attached keywords are skipped.

Response:
  - 200: {"keywords": []string}: The full set after the attach
*/
func (handler *Handler) attachKeywords(writer http.ResponseWriter, request *http.Request) {
	handler.syncKeywords(writer, request, true)
}

/*
DELETE /api/v1/pending-comics/{id}/keywords (Moderator).

Description: Detaches keywords; absent keywords are ignored.

Response:
  - 200: {"keywords": []string}: The full set after the detach
*/
func (handler *Handler) detachKeywords(writer http.ResponseWriter, request *http.Request) {
	handler.syncKeywords(writer, request, false)
}

// syncKeywords is the shared implementation behind both keyword endpoints.
func (handler *Handler) syncKeywords(writer http.ResponseWriter, request *http.Request, attach bool) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload keywordsPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var keywords []string
	if attach {
		keywords, err = handler.service.AttachKeywords(request.Context(), int64(id), claims.UserID, payload.Keywords)
	} else {
		keywords, err = handler.service.DetachKeywords(request.Context(), int64(id), claims.UserID, payload.Keywords)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string][]string{"keywords": keywords})
}

/*
POST /api/v1/pending-comics/{id}/promote (Admin).

Description: Promotes a ready submission into the live catalogue.

Response:
  - 200: Comic: The created live entry
  - 400: ErrValidation: Missing thumbnail or keywords
  - 409: ErrConflict: Already processed or name taken
*/
func (handler *Handler) promote(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.Promote(request.Context(), int64(id), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// splitKeywords flattens repeated form values, splitting comma-separated
// entries so both client conventions work.
func splitKeywords(values []string) []string {
	var keywords []string
	for _, value := range values {
		keywords = append(keywords, query.StringSlice(value)...)
	}
	return keywords
}
