package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"topodaily/pkg/config"
	"topodaily/pkg/model"
	"topodaily/pkg/reference"
	"topodaily/pkg/server"
	"topodaily/pkg/server/middleware"
)

var testSessionKey = []byte("0123456789abcdef0123456789abcdef")

// testServer bundles a server wired to mock stores for handler tests.
type testServer struct {
	srv     *server.Server
	users   *MockUsersStore
	records *MockRecordsStore
	stats   *MockStatsStore
	health  *MockHealthStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	locations := reference.NewCatalog(reference.NewSet([]reference.Location{
		{Region: "R1", Commune: "C1", Village: "V1"},
		{Region: "R1", Commune: "C1", Village: "V2"},
		{Region: "R2", Commune: "C2", Village: "V3"},
	}))

	ts := &testServer{
		users:   NewMockUsersStore(),
		records: NewMockRecordsStore(),
		stats:   NewMockStatsStore(),
		health:  NewMockHealthStore(),
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ts.srv = &server.Server{
		Config:       cfg,
		Locations:    locations,
		Session:      middleware.NewSessionAuthenticator(testSessionKey, time.Hour),
		Router:       mux.NewRouter().UseEncodedPath(),
		UsersStore:   ts.users,
		RecordsStore: ts.records,
		StatsStore:   ts.stats,
		HealthStore:  ts.health,
	}
	RegisterAll(ts.srv)
	return ts
}

// authHeader issues a real session token for a user.
func (ts *testServer) authHeader(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := ts.srv.Session.Issue(user)
	require.NoError(t, err)
	return "Bearer " + token
}

// do runs one request through the router and returns the recorder.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.srv.Router.ServeHTTP(rec, req)
	return rec
}

var (
	surveyorAlice = &model.User{ID: 2, Username: "alice", Role: model.RoleTopographe}
	adminUser     = &model.User{ID: 1, Username: "admin", Role: model.RoleAdministrateur}
)
