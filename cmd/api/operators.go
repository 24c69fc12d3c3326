package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"opsdash/internal/domain/accesscontrol"
	"opsdash/internal/domain/users"
	"opsdash/internal/mailer"
	"opsdash/internal/params"

	"github.com/google/uuid"
)

type InviteOperatorPayload struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Role      string `json:"role" validate:"required"`
}

type InvitedOperator struct {
	*users.User `json:"user"`
	Role        string `json:"role"`
	Token       string `json:"token"`
}

// inviteOperatorHandler godoc
//
//	@Summary		Invite an operator
//	@Description	Creates an inactive operator account with the given role and emails an activation link. The account stays unusable until the invitation is accepted.
//	@Tags			operators
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		InviteOperatorPayload		true	"Operator details"
//	@Success		201		{object}	InvitedOperator				"Invited operator"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/operators [post]
func (app *application) inviteOperatorHandler(w http.ResponseWriter, r *http.Request) {
	var payload InviteOperatorPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !accesscontrol.ValidRole(payload.Role) {
		app.badRequestResponse(w, r, fmt.Errorf("unknown role %q", payload.Role))
		return
	}

	user := &users.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	}

	ctx := r.Context()

	plainToken := uuid.New().String()

	hash := sha256.Sum256([]byte(plainToken))
	hashToken := hex.EncodeToString(hash[:])

	err := app.store.Users.CreateAndInvite(ctx, user, hashToken, app.config.mail.exp)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	role, err := app.store.AccessControl.GetRoleByName(ctx, payload.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.store.AccessControl.AssignRole(ctx, user.ID, role.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	activationURL := fmt.Sprintf("%s/activate?token=%s", app.config.frontendURL, plainToken)

	vars := struct {
		Username      string
		Role          string
		ActivationURL string
		ExpiryDays    int
	}{
		Username:      user.FirstName,
		Role:          payload.Role,
		ActivationURL: activationURL,
		ExpiryDays:    int(app.config.mail.exp.Hours() / 24),
	}

	status, err := app.mailer.Send(mailer.OperatorInviteTemplate, user.FirstName, user.Email, vars)
	if err != nil {
		app.logger.Errorw("error sending invitation email", "error", err)

		// rollback user creation if email fails (SAGA pattern)
		if err := app.store.Users.Delete(ctx, user.ID); err != nil {
			app.logger.Errorw("error deleting user", "error", err)
		}

		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("invitation email sent", "status code", status)

	invited := InvitedOperator{
		User:  user,
		Role:  payload.Role,
		Token: plainToken,
	}
	if err := app.jsonResponse(w, http.StatusCreated, invited); err != nil {
		app.internalServerError(w, r, err)
	}
}

type OperatorListResponse struct {
	Operators  []users.User      `json:"operators"`
	Pagination params.Pagination `json:"pagination"`
}

// adminListOperatorsHandler godoc
//
//	@Summary		List operators
//	@Description	Lists dashboard operator accounts, newest first
//	@Tags			operators
//	@Produce		json
//	@Param			page	query		int							false	"Page number"
//	@Param			limit	query		int							false	"Page size"
//	@Success		200		{object}	OperatorListResponse		"Operators"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/operators [get]
func (app *application) adminListOperatorsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	operators, total, err := app.store.Users.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	resp := OperatorListResponse{
		Operators:  operators,
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
