package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topodaily/pkg/auth"
	"topodaily/pkg/model"
	"topodaily/pkg/server/store"
)

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("valid credentials return a token", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByUsername", "alice").Return(&model.User{
			ID:       2,
			Username: "alice",
			Password: hash,
			Role:     model.RoleTopographe,
		}, nil)

		req := httptest.NewRequest("POST", "/authn/login", nil)
		req.SetBasicAuth("alice", "s3cret")
		rec := ts.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "topographe", resp.Role)

		// The token must round-trip through the session middleware.
		ident, err := ts.srv.Session.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", ident.Username)
	})

	t.Run("bad password is rejected with a generic message", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByUsername", "alice").Return(&model.User{
			ID:       2,
			Username: "alice",
			Password: hash,
		}, nil)

		req := httptest.NewRequest("POST", "/authn/login", nil)
		req.SetBasicAuth("alice", "wrong")
		rec := ts.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("unknown user gets the same answer as a bad password", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("FetchUserByUsername", "ghost").Return(nil, store.ErrNotFound)

		req := httptest.NewRequest("POST", "/authn/login", nil)
		req.SetBasicAuth("ghost", "whatever")
		rec := ts.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("missing basic auth asks for authorization", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest("POST", "/authn/login", nil)
		rec := ts.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})
}
