package endpoints

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// StatusResponse represents the JSON response from the root status endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoints registers the status endpoint.
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.HealthStore

	// GET / - status page (no auth required)
	s.Router.HandleFunc("/", handleStatus(healthStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("TOPODAILY_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		status := "ok"
		code := http.StatusOK
		if err := healthStore.CheckConnectivity(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		// Check if JSON is requested via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			_ = json.NewEncoder(w).Encode(StatusResponse{Status: status, Version: version})
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte("Topodaily " + version + " - " + status + "\n"))
	}
}
