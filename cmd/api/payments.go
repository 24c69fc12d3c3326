package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// paymentsReconciliationHandler godoc
//
//	@Summary		Payment reconciliation
//	@Description	Pulls payments, settlements and refunds from Razorpay, enriches refunds with parent payment details and returns the combined report with summary statistics. Streams that fail upstream are returned partially.
//	@Tags			payments
//	@Produce		json
//	@Param			from	query		int							false	"Unix timestamp lower bound"
//	@Param			to		query		int							false	"Unix timestamp upper bound"
//	@Success		200		{object}	recon.Report				"Reconciliation report"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Malformed window bounds"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Gateway credentials not configured"
//	@Security		ApiKeyAuth
//	@Router			/admin/payments/reconciliation [get]
func (app *application) paymentsReconciliationHandler(w http.ResponseWriter, r *http.Request) {
	if app.recon == nil {
		app.configurationError(w, r, fmt.Errorf("payment gateway credentials are not configured"))
		return
	}

	from, err := parseUnixParam(r, "from")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	to, err := parseUnixParam(r, "to")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	report := app.recon.FetchAll(r.Context(), from, to)

	if err := app.jsonResponse(w, http.StatusOK, report); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseUnixParam(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a unix timestamp: %w", key, err)
	}
	return &v, nil
}
