package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"
)

func TestAdminListUsers(t *testing.T) {
	t.Run("admin sees all accounts", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("ListUsers").Return([]model.User{
			{ID: 1, Username: "admin", Role: model.RoleAdministrateur},
			{ID: 2, Username: "alice", Role: model.RoleTopographe},
		}, nil)

		req := httptest.NewRequest("GET", "/admin/users", nil)
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("surveyor is forbidden", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest("GET", "/admin/users", nil)
		req.Header.Set("Authorization", ts.authHeader(t, surveyorAlice))
		rec := ts.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		ts.users.AssertNotCalled(t, "ListUsers")
	})
}

func TestAdminCreateUser(t *testing.T) {
	t.Run("admin may assign any role", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "dan" && u.Role == model.RoleAdministrateur
		})).Return(nil)

		body := `{"username":"dan","password":"s3cret","role":"administrateur"}`
		req := httptest.NewRequest("POST", "/admin/users", strings.NewReader(body))
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		ts.users.AssertExpectations(t)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		ts := newTestServer(t)

		body := `{"username":"dan","password":"s3cret","role":"superuser"}`
		req := httptest.NewRequest("POST", "/admin/users", strings.NewReader(body))
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminDeleteUser(t *testing.T) {
	t.Run("deletes a regular account", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByID", int64(2)).Return(&model.User{
			ID:       2,
			Username: "alice",
			Role:     model.RoleTopographe,
		}, nil)
		ts.users.On("DeleteUser", int64(2)).Return(nil)

		req := httptest.NewRequest("DELETE", "/admin/users/2", nil)
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("the primary administrator can never be deleted", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByID", int64(1)).Return(&model.User{
			ID:       1,
			Username: "admin",
			Role:     model.RoleAdministrateur,
		}, nil)

		// Even when the primary administrator asks for it.
		req := httptest.NewRequest("DELETE", "/admin/users/1", nil)
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		ts.users.AssertNotCalled(t, "DeleteUser", mock.Anything)
	})

	t.Run("missing user returns 404", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByID", int64(42)).Return(nil, store.ErrNotFound)

		req := httptest.NewRequest("DELETE", "/admin/users/42", nil)
		req.Header.Set("Authorization", ts.authHeader(t, adminUser))
		rec := ts.do(req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)
	ts.stats.On("GlobalStats").Return(&store.GlobalStats{
		Users:         4,
		Records:       120,
		TotalQuantity: 460,
		Villages:      17,
	}, nil)

	req := httptest.NewRequest("GET", "/admin/stats", nil)
	req.Header.Set("Authorization", ts.authHeader(t, adminUser))
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp store.GlobalStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(120), resp.Records)
}
