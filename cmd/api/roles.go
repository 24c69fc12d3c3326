package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"opsdash/internal/domain/accesscontrol"

	"github.com/go-chi/chi/v5"
)

type AssignRolePayload struct {
	Role string `json:"role" validate:"required"`
}

// adminGetOperatorRolesHandler godoc
//
//	@Summary		List an operator's roles
//	@Description	Returns all roles assigned to the given operator
//	@Tags			operators
//	@Produce		json
//	@Param			operatorID	path		int							true	"Operator ID"
//	@Success		200			{array}		accesscontrol.Role			"Roles"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/operators/{operatorID}/roles [get]
func (app *application) adminGetOperatorRolesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	operatorID, err := strconv.ParseInt(chi.URLParam(r, "operatorID"), 10, 64)
	if err != nil || operatorID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid operator id"))
		return
	}

	roles, err := app.store.AccessControl.GetUserRoles(ctx, operatorID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, roles); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminAssignOperatorRoleHandler godoc
//
//	@Summary		Assign a role to an operator
//	@Description	Grants the named role to the operator. Only operators holding the admin role may change role grants.
//	@Tags			operators
//	@Accept			json
//	@Produce		json
//	@Param			operatorID	path		int							true	"Operator ID"
//	@Param			payload		body		AssignRolePayload			true	"Role to grant"
//	@Success		200			{object}	map[string]string			"Role assigned"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		403			{object}	ErrorBadRequestResponse		"Caller is not an admin"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/operators/{operatorID}/roles [post]
func (app *application) adminAssignOperatorRoleHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	operatorID, err := strconv.ParseInt(chi.URLParam(r, "operatorID"), 10, 64)
	if err != nil || operatorID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid operator id"))
		return
	}

	var payload AssignRolePayload
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

	if !app.requireAdminRole(ctx, w, r) {
		return
	}

	role, err := app.store.AccessControl.GetRoleByName(ctx, payload.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.AccessControl.AssignRole(ctx, operatorID, role.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "role assigned",
	})
}

// adminRemoveOperatorRoleHandler godoc
//
//	@Summary		Remove a role from an operator
//	@Description	Revokes the named role. An admin cannot revoke their own admin role, so the dashboard always keeps at least the acting admin.
//	@Tags			operators
//	@Produce		json
//	@Param			operatorID	path		int							true	"Operator ID"
//	@Param			roleName	path		string						true	"Role name"
//	@Success		200			{object}	map[string]string			"Role removed"
//	@Failure		400			{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		403			{object}	ErrorBadRequestResponse		"Caller is not an admin or tried to revoke their own admin role"
//	@Failure		404			{object}	ErrorBadRequestResponse		"Role not assigned to operator"
//	@Failure		500			{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/admin/operators/{operatorID}/roles/{roleName} [delete]
func (app *application) adminRemoveOperatorRoleHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	operatorID, err := strconv.ParseInt(chi.URLParam(r, "operatorID"), 10, 64)
	if err != nil || operatorID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid operator id"))
		return
	}

	roleName := chi.URLParam(r, "roleName")
	if !accesscontrol.ValidRole(roleName) {
		app.badRequestResponse(w, r, fmt.Errorf("unknown role %q", roleName))
		return
	}

	if !app.requireAdminRole(ctx, w, r) {
		return
	}

	user := getUserFromContext(r)
	if user.ID == operatorID && roleName == string(accesscontrol.RoleAdmin) {
		app.forbiddenResponse(w, r)
		return
	}

	role, err := app.store.AccessControl.GetRoleByName(ctx, roleName)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.AccessControl.RemoveRole(ctx, operatorID, role.ID); err != nil {
		// repo reports "role not found" when no row is affected
		if strings.Contains(err.Error(), "role not found") {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "role removed",
	})
}

// requireAdminRole checks that the caller actually holds the admin role.
// Role grants stay admin-only even if users.manage is ever widened to
// other roles. Writes the response on failure.
func (app *application) requireAdminRole(ctx context.Context, w http.ResponseWriter, r *http.Request) bool {
	user := getUserFromContext(r)

	isAdmin, err := app.store.AccessControl.UserHasRole(ctx, user.ID, string(accesscontrol.RoleAdmin))
	if err != nil {
		app.internalServerError(w, r, err)
		return false
	}
	if !isAdmin {
		app.forbiddenResponse(w, r)
		return false
	}
	return true
}
