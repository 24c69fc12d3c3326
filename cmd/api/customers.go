package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"opsdash/internal/domain/customers"
	"opsdash/internal/params"

	"github.com/go-chi/chi/v5"
)

type CustomerListResponse struct {
	Customers  []customers.Row   `json:"customers"`
	Pagination params.Pagination `json:"pagination"`
}

// adminListCustomersHandler godoc
//
//	@Summary		List customers
//	@Description	Lists customers with their booking activity, optionally filtered by a name/email/phone search
//	@Tags			customers
//	@Produce		json
//	@Param			search	query		string						false	"Search term"
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size"
//	@Success		200		{object}	CustomerListResponse		"Customers"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/customers [get]
func (app *application) adminListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	search := strings.TrimSpace(q.Get("search"))

	list, total, err := app.store.Customers.List(r.Context(), search, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	resp := CustomerListResponse{
		Customers:  list,
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminGetCustomerHandler godoc
//
//	@Summary		Get a customer
//	@Description	Fetches one customer with booking count and lifetime spend
//	@Tags			customers
//	@Produce		json
//	@Param			customerID	path		int							true	"Customer ID"
//	@Success		200			{object}	customers.Row				"Customer"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Not found"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/customers/{customerID} [get]
func (app *application) adminGetCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.store.Customers.GetByID(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}
