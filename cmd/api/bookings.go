package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"opsdash/internal/domain/bookings"
	"opsdash/internal/params"

	"github.com/go-chi/chi/v5"
)

type BookingListResponse struct {
	Bookings   []bookings.Booking `json:"bookings"`
	Pagination params.Pagination  `json:"pagination"`
}

// adminListBookingsHandler godoc
//
//	@Summary		List bookings
//	@Description	Lists bookings with optional status and date-range filters
//	@Tags			bookings
//	@Produce		json
//	@Param			status	query		string						false	"Booking status"	Enums(pending, confirmed, completed, cancelled, rejected)
//	@Param			from	query		string						false	"RFC3339 lower bound on scheduled_at"
//	@Param			to		query		string						false	"RFC3339 upper bound on scheduled_at"
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size"
//	@Success		200		{object}	BookingListResponse			"Bookings"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings [get]
func (app *application) adminListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	var filter bookings.Filter

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		if !bookings.ValidStatus(status) {
			app.badRequestResponse(w, r, fmt.Errorf("unknown booking status %q", status))
			return
		}
		filter.Status = &status
	}

	for _, bound := range []struct {
		key  string
		dest **time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		if raw := strings.TrimSpace(q.Get(bound.key)); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("%s must be RFC3339: %w", bound.key, err))
				return
			}
			*bound.dest = &t
		}
	}

	list, total, err := app.store.Bookings.List(r.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	app.attachBookingReferences(list)

	resp := BookingListResponse{
		Bookings:   list,
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminBookingStatusCountsHandler godoc
//
//	@Summary		Booking status counts
//	@Description	Returns the per-status booking tallies shown above the bookings table
//	@Tags			bookings
//	@Produce		json
//	@Success		200	{object}	bookings.StatusCounts		"Status counts"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/status-counts [get]
func (app *application) adminBookingStatusCountsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := app.store.Bookings.GetStatusCounts(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, counts); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminGetBookingHandler godoc
//
//	@Summary		Get a booking
//	@Description	Fetches one booking by its public reference (BK-XXXXXXXX) or numeric id
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingRef	path		string						true	"Booking reference or id"
//	@Success		200			{object}	bookings.Booking			"Booking"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Malformed reference"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/{bookingRef} [get]
func (app *application) adminGetBookingHandler(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "bookingRef")

	bookingID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		bookingID, err = app.bookingRefs.Decode(ref)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	booking, err := app.store.Bookings.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if code, err := app.bookingRefs.Encode(booking.ID); err == nil {
		booking.Reference = code
	}

	if err := app.jsonResponse(w, http.StatusOK, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// attachBookingReferences fills in the public codes on a freshly listed page.
func (app *application) attachBookingReferences(list []bookings.Booking) {
	for i := range list {
		code, err := app.bookingRefs.Encode(list[i].ID)
		if err != nil {
			app.logger.Warnw("encode booking reference failed", "booking_id", list[i].ID, "error", err)
			continue
		}
		list[i].Reference = code
	}
}
