package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"opsdash/internal/domain/accesscontrol"
	"opsdash/internal/domain/storage"
	"opsdash/internal/domain/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAccessControl records role mutations against a static role table.
type fakeAccessControl struct {
	adminUsers map[int64]bool
	assigned   map[int64][]int64
	removeErr  error
	removed    []int64
}

var fakeRoles = map[string]int64{
	"admin":      1,
	"finance":    2,
	"operations": 3,
	"viewer":     4,
}

func (f *fakeAccessControl) AssignRole(_ context.Context, userID, roleID int64) error {
	f.assigned[userID] = append(f.assigned[userID], roleID)
	return nil
}

func (f *fakeAccessControl) RemoveRole(_ context.Context, userID, roleID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, roleID)
	return nil
}

func (f *fakeAccessControl) GetRoleByName(_ context.Context, name string) (*accesscontrol.Role, error) {
	return &accesscontrol.Role{ID: fakeRoles[name], Name: name}, nil
}

func (f *fakeAccessControl) GetUserRoles(_ context.Context, userID int64) ([]accesscontrol.Role, error) {
	return nil, nil
}

func (f *fakeAccessControl) UserHasRole(_ context.Context, userID int64, roleName string) (bool, error) {
	if roleName == "admin" {
		return f.adminUsers[userID], nil
	}
	return false, nil
}

func newRolesTestApp(ac *fakeAccessControl) *application {
	return &application{
		logger: zap.NewNop().Sugar(),
		store:  &storage.Container{AccessControl: ac},
	}
}

func rolesRequest(t *testing.T, method, body string, caller *users.User, params map[string]string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, "/", strings.NewReader(body))

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, userCtx, caller)
	return req.WithContext(ctx)
}

func TestAssignRoleRequiresAdminRole(t *testing.T) {
	ac := &fakeAccessControl{adminUsers: map[int64]bool{}, assigned: map[int64][]int64{}}
	app := newRolesTestApp(ac)

	// Caller holds users.manage but not the admin role itself.
	req := rolesRequest(t, http.MethodPost, `{"role":"finance"}`, &users.User{ID: 9}, map[string]string{"operatorID": "7"})
	rec := httptest.NewRecorder()

	app.adminAssignOperatorRoleHandler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, ac.assigned)
}

func TestAssignRoleGrantsResolvedRole(t *testing.T) {
	ac := &fakeAccessControl{adminUsers: map[int64]bool{1: true}, assigned: map[int64][]int64{}}
	app := newRolesTestApp(ac)

	req := rolesRequest(t, http.MethodPost, `{"role":"finance"}`, &users.User{ID: 1}, map[string]string{"operatorID": "7"})
	rec := httptest.NewRecorder()

	app.adminAssignOperatorRoleHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{fakeRoles["finance"]}, ac.assigned[7])
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	ac := &fakeAccessControl{adminUsers: map[int64]bool{1: true}, assigned: map[int64][]int64{}}
	app := newRolesTestApp(ac)

	req := rolesRequest(t, http.MethodPost, `{"role":"superuser"}`, &users.User{ID: 1}, map[string]string{"operatorID": "7"})
	rec := httptest.NewRecorder()

	app.adminAssignOperatorRoleHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ac.assigned)
}

func TestRemoveRoleRefusesRevokingOwnAdminRole(t *testing.T) {
	ac := &fakeAccessControl{adminUsers: map[int64]bool{1: true}}
	app := newRolesTestApp(ac)

	req := rolesRequest(t, http.MethodDelete, "", &users.User{ID: 1}, map[string]string{"operatorID": "1", "roleName": "admin"})
	rec := httptest.NewRecorder()

	app.adminRemoveOperatorRoleHandler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, ac.removed)
}

func TestRemoveRoleRevokesAnotherOperator(t *testing.T) {
	ac := &fakeAccessControl{adminUsers: map[int64]bool{1: true}}
	app := newRolesTestApp(ac)

	req := rolesRequest(t, http.MethodDelete, "", &users.User{ID: 1}, map[string]string{"operatorID": "7", "roleName": "viewer"})
	rec := httptest.NewRecorder()

	app.adminRemoveOperatorRoleHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{fakeRoles["viewer"]}, ac.removed)
}

func TestRemoveRoleMapsMissingAssignmentToNotFound(t *testing.T) {
	ac := &fakeAccessControl{
		adminUsers: map[int64]bool{1: true},
		removeErr:  errors.New("role not found for user_id=7 role_id=2"),
	}
	app := newRolesTestApp(ac)

	req := rolesRequest(t, http.MethodDelete, "", &users.User{ID: 1}, map[string]string{"operatorID": "7", "roleName": "finance"})
	rec := httptest.NewRecorder()

	app.adminRemoveOperatorRoleHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
