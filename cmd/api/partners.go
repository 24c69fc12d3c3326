package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"opsdash/internal/domain/partners"
	"opsdash/internal/params"

	"github.com/go-chi/chi/v5"
)

type PartnerListResponse struct {
	Partners   []partners.Partner `json:"partners"`
	Pagination params.Pagination  `json:"pagination"`
}

// adminListPartnersHandler godoc
//
//	@Summary		List partners
//	@Description	Lists service partners with optional status and service filters
//	@Tags			partners
//	@Produce		json
//	@Param			status	query		string						false	"Partner status"	Enums(pending, active, suspended)
//	@Param			service	query		string						false	"Service category"
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size"
//	@Success		200		{object}	PartnerListResponse			"Partners"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/partners [get]
func (app *application) adminListPartnersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	var filter partners.Filter

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		if !partners.ValidStatus(status) {
			app.badRequestResponse(w, r, fmt.Errorf("unknown partner status %q", status))
			return
		}
		filter.Status = &status
	}
	if service := strings.TrimSpace(q.Get("service")); service != "" {
		filter.Service = &service
	}

	list, total, err := app.store.Partners.List(r.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	resp := PartnerListResponse{
		Partners:   list,
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type PartnerDetailResponse struct {
	*partners.Partner `json:"partner"`
	Stats             *partners.Stats `json:"stats"`
}

// adminGetPartnerHandler godoc
//
//	@Summary		Get a partner
//	@Description	Fetches one partner with their booking statistics
//	@Tags			partners
//	@Produce		json
//	@Param			partnerID	path		int							true	"Partner ID"
//	@Success		200			{object}	PartnerDetailResponse		"Partner with stats"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/partners/{partnerID} [get]
func (app *application) adminGetPartnerHandler(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(chi.URLParam(r, "partnerID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	partner, err := app.store.Partners.GetByID(ctx, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	stats, err := app.store.Partners.GetStats(ctx, partnerID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := PartnerDetailResponse{
		Partner: partner,
		Stats:   stats,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdatePartnerStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending active suspended"`
}

// adminUpdatePartnerStatusHandler godoc
//
//	@Summary		Update partner status
//	@Description	Approves, suspends or reinstates a partner
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			partnerID	path		int							true	"Partner ID"
//	@Param			payload		body		UpdatePartnerStatusPayload	true	"New status"
//	@Success		204			"Status updated"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/partners/{partnerID}/status [patch]
func (app *application) adminUpdatePartnerStatusHandler(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(chi.URLParam(r, "partnerID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdatePartnerStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Partners.UpdateStatus(r.Context(), partnerID, payload.Status); err != nil {
		switch {
		case errors.Is(err, partners.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// adminUploadPartnerPhotoHandler godoc
//
//	@Summary		Upload partner photo
//	@Description	Uploads a partner's profile photo and saves the URL in the database
//	@Tags			partners
//	@Accept			mpfd
//	@Produce		json
//	@Param			partnerID	path		int		true	"Partner ID"
//	@Param			photo		formData	file	true	"Photo file, size limit is 2MB"
//	@Success		200			{object}	map[string]string			"Photo URL"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Unable to parse form or retrieve file"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Upload or save failed"
//	@Security		ApiKeyAuth
//	@Router			/admin/partners/{partnerID}/photo [post]
func (app *application) adminUploadPartnerPhotoHandler(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(chi.URLParam(r, "partnerID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	partner, err := app.store.Partners.GetByID(ctx, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := r.ParseMultipartForm(2 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, file size limit is 2MB: %w", err))
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to retrieve file: %w", err))
		return
	}
	defer file.Close()

	photoURL, err := app.uploadPartnerPhoto(file, partnerID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Replace the old photo so orphaned assets do not pile up.
	if partner.PhotoURL != nil && *partner.PhotoURL != "" {
		if err := app.deletePhotoFromCloudinary(*partner.PhotoURL); err != nil {
			app.logger.Warnw("failed to delete old partner photo", "partner_id", partnerID, "error", err)
		}
	}

	if err := app.store.Partners.SetPhotoURL(ctx, partnerID, photoURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"photo_url": photoURL}); err != nil {
		app.internalServerError(w, r, err)
	}
}
