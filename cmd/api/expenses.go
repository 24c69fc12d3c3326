package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"opsdash/internal/expenses"
)

type ExpenseReportResponse struct {
	Entries []expenses.Entry `json:"entries"`
	Summary expenses.Summary `json:"summary"`
}

// adminExpensesHandler godoc
//
//	@Summary		Expense report
//	@Description	Fetches the published expense sheet, parses it and returns the entries with category and month totals
//	@Tags			expenses
//	@Produce		json
//	@Param			from	query		string						false	"RFC3339 lower bound on expense date"
//	@Param			to		query		string						false	"RFC3339 upper bound on expense date"
//	@Success		200		{object}	ExpenseReportResponse		"Expense report"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Malformed bounds"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Sheet not configured or unreachable"
//	@Security		ApiKeyAuth
//	@Router			/admin/expenses [get]
func (app *application) adminExpensesHandler(w http.ResponseWriter, r *http.Request) {
	if app.expenses == nil {
		app.configurationError(w, r, fmt.Errorf("expense sheet URL is not configured"))
		return
	}

	var from, to *time.Time
	for _, bound := range []struct {
		key  string
		dest **time.Time
	}{
		{"from", &from},
		{"to", &to},
	} {
		if raw := strings.TrimSpace(r.URL.Query().Get(bound.key)); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("%s must be RFC3339: %w", bound.key, err))
				return
			}
			*bound.dest = &t
		}
	}

	entries, err := app.expenses.Fetch(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	windowed := make([]expenses.Entry, 0, len(entries))
	for _, e := range entries {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		windowed = append(windowed, e)
	}

	resp := ExpenseReportResponse{
		Entries: windowed,
		Summary: expenses.Summarize(windowed, nil, nil),
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
