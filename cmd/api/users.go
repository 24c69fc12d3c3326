package main

import (
	"net/http"
	"sort"

	"opsdash/internal/domain/accesscontrol"
)

type CurrentUserResponse struct {
	ID          int64                      `json:"id"`
	FirstName   string                     `json:"first_name"`
	LastName    string                     `json:"last_name"`
	Email       string                     `json:"email"`
	Roles       []string                   `json:"roles"`
	Permissions []accesscontrol.Permission `json:"permissions"`
}

// currentUserHandler godoc
//
//	@Summary		Current operator
//	@Description	Returns the signed-in operator with resolved roles and permissions, so the frontend can hide pages the operator cannot open
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	CurrentUserResponse			"Operator profile"
//	@Failure		401	{object}	ErrorBadRequestResponse		"Unauthorized"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	roles, err := app.store.AccessControl.GetUserRoles(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.Name)
	}

	perms := make([]accesscontrol.Permission, 0)
	for p := range accesscontrol.PermissionsFor(roles) {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })

	resp := CurrentUserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Roles:       roleNames,
		Permissions: perms,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Log out
//	@Description	Revokes the operator's refresh token
//	@Tags			users
//	@Produce		json
//	@Success		204	"Logged out"
//	@Failure		401	{object}	ErrorBadRequestResponse		"Unauthorized"
//	@Failure		500	{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
