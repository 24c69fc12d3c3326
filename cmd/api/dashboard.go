package main

import (
	"context"
	"net/http"
	"time"
)

// adminOverviewHandler godoc
//
//	@Summary		Dashboard overview
//	@Description	Returns the headline counters shown on the landing page: customer, partner and booking totals plus completed revenue
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	admindashboard.Overview		"Overview counters"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/overview [get]
func (app *application) adminOverviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	overview, err := app.store.AdminDashboard.GetOverview(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, overview); err != nil {
		app.internalServerError(w, r, err)
	}
}
