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

	"topodaily/pkg/auth"
	"topodaily/pkg/model"
	"topodaily/pkg/server/store"
)

func TestSignup(t *testing.T) {
	t.Run("creates a surveyor account", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			// Role is never taken from the request, and the password
			// must already be hashed.
			return u.Role == model.RoleTopographe &&
				u.Username == "carol" &&
				auth.CheckPassword(u.Password, "s3cret") == nil
		})).Return(nil)

		body := `{"username":"carol","password":"s3cret","email":"carol@example.com"}`
		req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
		rec := ts.do(req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "topographe", resp.Role)
		ts.users.AssertExpectations(t)
	})

	t.Run("duplicate username or email returns 409", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("CreateUser", mock.Anything).Return(store.ErrDuplicate)

		body := `{"username":"carol","password":"s3cret"}`
		req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
		rec := ts.do(req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		ts := newTestServer(t)

		body := `{"username":"carol","password":"s3cret","email":"not-an-email"}`
		req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ts.users.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("invalid phone is rejected", func(t *testing.T) {
		ts := newTestServer(t)

		body := `{"username":"carol","password":"s3cret","phone":"abc"}`
		req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPasswordChange(t *testing.T) {
	oldHash, err := auth.HashPassword("old-secret")
	require.NoError(t, err)

	t.Run("verifies the old password before updating", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByUsername", "alice").Return(&model.User{
			ID:       2,
			Username: "alice",
			Password: oldHash,
		}, nil)
		ts.users.On("UpdatePassword", "alice", mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "new-secret") == nil
		})).Return(nil)

		body := `{"old_password":"old-secret","new_password":"new-secret"}`
		req := httptest.NewRequest("PUT", "/users/password", strings.NewReader(body))
		req.Header.Set("Authorization", ts.authHeader(t, surveyorAlice))
		rec := ts.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		ts.users.AssertExpectations(t)
	})

	t.Run("wrong old password is rejected", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByUsername", "alice").Return(&model.User{
			ID:       2,
			Username: "alice",
			Password: oldHash,
		}, nil)

		body := `{"old_password":"wrong","new_password":"new-secret"}`
		req := httptest.NewRequest("PUT", "/users/password", strings.NewReader(body))
		req.Header.Set("Authorization", ts.authHeader(t, surveyorAlice))
		rec := ts.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		ts.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})
}

func TestWhoami(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", ts.authHeader(t, surveyorAlice))
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp WhoamiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "topographe", resp.Role)
	assert.Equal(t, int64(2), resp.UserID)
}
