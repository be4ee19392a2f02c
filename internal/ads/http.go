// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package ads

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkfold/inkfold/internal/platform/apperr"
	"github.com/inkfold/inkfold/internal/platform/constants"
	"github.com/inkfold/inkfold/internal/platform/middleware"
	requestutil "github.com/inkfold/inkfold/internal/platform/request"
	"github.com/inkfold/inkfold/internal/platform/respond"
	"github.com/inkfold/inkfold/internal/platform/sec"
	"github.com/inkfold/inkfold/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for advertisements.
type Handler struct {
	service *Service
}

// NewHandler constructs an ads [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the ads domain, mounted at /ads.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public
	router.Get("/{id}/click", handler.click)

	// ## Authenticated Applicants
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/", handler.apply)
	})

	// ## Admin Review
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/", handler.list)
		admin.Get("/{id}", handler.get)
		admin.Post("/{id}/approve", handler.approve)
		admin.Post("/{id}/reject", handler.reject)
		admin.Post("/{id}/activate", handler.activate)
		admin.Post("/{id}/expire", handler.expire)
		admin.Post("/{id}/renew", handler.renew)
	})

	return router
}

// # Endpoints

/*
POST /api/v1/ads (Authenticated).

Description: Submits an ad application. Metadata and the creative travel in
one multipart form.

Request:
  - ad_type, link, main_text, secondary_text: form values
  - file: creative file field (jpg, png, or gif)

Response:
  - 201: Ad: The created application
  - 409: ErrConflict: Id space exhausted
*/
func (handler *Handler) apply(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request is not a valid multipart form"))
		return
	}

	input := Application{
		AdType:        request.FormValue("ad_type"),
		Link:          request.FormValue("link"),
		MainText:      request.FormValue("main_text"),
		SecondaryText: request.FormValue("secondary_text"),
	}

	var creativeName string
	var creative []byte
	if headers := request.MultipartForm.File[constants.UploadFieldAdFile]; len(headers) > 0 {
		file, err := headers[0].Open()
		if err != nil {
			respond.Error(writer, request, apperr.Storage(err))
			return
		}
		defer file.Close()

		creative, err = io.ReadAll(file)
		if err != nil {
			respond.Error(writer, request, apperr.Storage(err))
			return
		}
		creativeName = headers[0].Filename
	}

	ad, err := handler.service.Apply(request.Context(), claims.UserID, input, creativeName, creative)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ad)
}

/*
GET /api/v1/ads (Admin).

Request:
  - status: string (pending, approved, rejected, active, expired)
  - limit, page: pagination

Response:
  - 200: []Ad: Paginated listing
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	listed, total, err := handler.service.List(request.Context(), status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listed, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/ads/{id} (Admin).

Response:
  - 200: Ad: Detail
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ad, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ad)
}

// reviewPayload is the JSON body for review transitions.
type reviewPayload struct {
	Price int    `json:"price"`
	Notes string `json:"notes"`
}

/*
POST /api/v1/ads/{id}/approve (Admin).

Response:
  - 204: Application approved
  - 404: ErrNotFound: No pending application with this id
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	var payload reviewPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Approve(request.Context(), requestutil.Param(request, "id"), payload.Price, payload.Notes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/ads/{id}/reject (Admin).

Response:
  - 204: Application rejected
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	var payload reviewPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Reject(request.Context(), requestutil.Param(request, "id"), payload.Notes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/ads/{id}/activate (Admin).

Response:
  - 204: Ad is now serving
*/
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Activate(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/ads/{id}/expire (Admin).

Response:
  - 204: Ad stopped serving
*/
func (handler *Handler) expire(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Expire(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/ads/{id}/renew (Admin).

Response:
  - 204: Ad reactivated for a new period
*/
func (handler *Handler) renew(writer http.ResponseWriter, request *http.Request) {
	var payload reviewPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Renew(request.Context(), requestutil.Param(request, "id"), payload.Price); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/ads/{id}/click (Public).

Description: Records the click and redirects to the ad's target link.

Response:
  - 302: Redirect to the target link
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) click(writer http.ResponseWriter, request *http.Request) {
	link, err := handler.service.Click(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.Redirect(writer, request, link, http.StatusFound)
}
