package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"topodaily/pkg/identity"
	"topodaily/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// clientIP resolves the client address for audit events, honoring
// X-Forwarded-For set by a reverse proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}

// parseRecordFilter reads filter query parameters. Surveyors are always
// pinned to their own records, whatever the query says.
func parseRecordFilter(r *http.Request, ident *identity.Identity) (store.RecordFilter, error) {
	q := r.URL.Query()
	filter := store.RecordFilter{
		Village:    q.Get("village"),
		Region:     q.Get("region"),
		Commune:    q.Get("commune"),
		Type:       q.Get("type"),
		Appareil:   q.Get("appareil"),
		Topographe: q.Get("topographe"),
	}

	if start := q.Get("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if end := q.Get("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &t
	}

	if !ident.IsAdmin() {
		filter.Topographe = ident.Username
	}

	return filter, nil
}
