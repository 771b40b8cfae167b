package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"topodaily/pkg/identity"
	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// RegisterStatsEndpoints registers the dashboard aggregate endpoints.
func RegisterStatsEndpoints(s *server.Server) {
	statsStore := s.StatsStore

	statsRouter := s.Router.PathPrefix("/stats").Subrouter()
	statsRouter.Use(s.Session.Middleware)

	// GET /stats/summary - count, total and mean quantity for a filter
	statsRouter.HandleFunc(
		"/summary",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}

			filter, err := parseRecordFilter(r, ident)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
				return
			}

			summary, err := statsStore.Summarize(filter)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to compute summary")
				return
			}
			respondWithJSON(w, http.StatusOK, summary)
		},
	).Methods("GET")

	// GET /stats/by/{dimension} - quantity totals grouped by one column
	statsRouter.HandleFunc(
		"/by/{dimension}",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}

			filter, err := parseRecordFilter(r, ident)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
				return
			}

			buckets, err := statsStore.GroupBy(filter, mux.Vars(r)["dimension"])
			if err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if buckets == nil {
				buckets = []store.Bucket{}
			}
			respondWithJSON(w, http.StatusOK, buckets)
		},
	).Methods("GET")

	// GET /stats/timeline - daily or monthly quantity series
	statsRouter.HandleFunc(
		"/timeline",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}

			filter, err := parseRecordFilter(r, ident)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
				return
			}

			interval := r.URL.Query().Get("interval")
			if interval == "" {
				interval = store.IntervalDay
			}

			points, err := statsStore.Timeline(filter, interval)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if points == nil {
				points = []store.TimePoint{}
			}
			respondWithJSON(w, http.StatusOK, points)
		},
	).Methods("GET")
}
