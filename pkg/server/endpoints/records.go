package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"topodaily/pkg/audit"
	"topodaily/pkg/identity"
	"topodaily/pkg/model"
	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// SubmitRecordRequest is the body accepted by the record submission endpoint.
type SubmitRecordRequest struct {
	Date     string `json:"date"`
	Village  string `json:"village"`
	Region   string `json:"region"`
	Commune  string `json:"commune"`
	Type     string `json:"type"`
	Quantite int    `json:"quantite"`
	Appareil string `json:"appareil"`
}

// RecordResponse is the JSON shape of a survey record in API responses.
type RecordResponse struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Village    string `json:"village"`
	Region     string `json:"region"`
	Commune    string `json:"commune"`
	Type       string `json:"type"`
	Quantite   int    `json:"quantite"`
	Appareil   string `json:"appareil"`
	Topographe string `json:"topographe"`
}

func recordResponse(record *model.SurveyRecord) RecordResponse {
	return RecordResponse{
		ID:         record.ID,
		Date:       record.Date.Format("2006-01-02"),
		Village:    record.Village,
		Region:     record.Region,
		Commune:    record.Commune,
		Type:       record.Type,
		Quantite:   record.Quantite,
		Appareil:   record.Appareil,
		Topographe: record.Topographe,
	}
}

// RegisterRecordsEndpoints registers the survey record endpoints.
func RegisterRecordsEndpoints(s *server.Server) {
	recordsStore := s.RecordsStore
	locations := s.Locations
	limitMax := s.Config.RecordListLimitMax

	recordsRouter := s.Router.PathPrefix("/records").Subrouter()
	recordsRouter.Use(s.Session.Middleware)

	// POST /records - submit one survey record owned by the caller
	recordsRouter.HandleFunc(
		"",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}
			ip := clientIP(r)

			var req SubmitRecordRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondWithError(w, http.StatusBadRequest, "Malformed request body")
				return
			}

			date, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			for field, value := range map[string]string{
				"village":  req.Village,
				"region":   req.Region,
				"commune":  req.Commune,
				"type":     req.Type,
				"appareil": req.Appareil,
			} {
				if strings.TrimSpace(value) == "" {
					respondWithError(w, http.StatusBadRequest, field+" is required")
					return
				}
			}
			if req.Quantite <= 0 {
				respondWithError(w, http.StatusBadRequest, "quantite must be a positive integer")
				return
			}

			if err := validateLocation(locations.Current(), req.Region, req.Commune, req.Village); err != nil {
				audit.Log(audit.RecordEvent{
					Username:     ident.Username,
					Operation:    "submit",
					Village:      req.Village,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: err.Error(),
				})
				respondWithError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}

			record := &model.SurveyRecord{
				Date:       date,
				Village:    req.Village,
				Region:     req.Region,
				Commune:    req.Commune,
				Type:       req.Type,
				Quantite:   req.Quantite,
				Appareil:   req.Appareil,
				Topographe: ident.Username,
			}
			if err := recordsStore.CreateRecord(record); err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to save record")
				return
			}

			audit.Log(audit.RecordEvent{
				Username:  ident.Username,
				Operation: "submit",
				RecordID:  record.ID,
				Village:   record.Village,
				ClientIP:  ip,
				Success:   true,
			})

			respondWithJSON(w, http.StatusCreated, recordResponse(record))
		},
	).Methods("POST")

	// GET /records - filtered listing, newest date first
	recordsRouter.HandleFunc(
		"",
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

			limit := limitMax
			if raw := r.URL.Query().Get("limit"); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil || parsed < 0 {
					respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
					return
				}
				if parsed > 0 && parsed < limit {
					limit = parsed
				}
			}

			records, err := recordsStore.ListRecords(filter, limit)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to list records")
				return
			}

			responses := make([]RecordResponse, 0, len(records))
			for i := range records {
				responses = append(responses, recordResponse(&records[i]))
			}
			respondWithJSON(w, http.StatusOK, responses)
		},
	).Methods("GET")

	// GET /records/filters - distinct values for each filterable column
	recordsRouter.HandleFunc(
		"/filters",
		func(w http.ResponseWriter, r *http.Request) {
			options, err := recordsStore.FilterOptions()
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to load filter options")
				return
			}
			respondWithJSON(w, http.StatusOK, options)
		},
	).Methods("GET")

	// DELETE /records/{id} - owner or admin only
	recordsRouter.HandleFunc(
		"/{id:[0-9]+}",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}
			ip := clientIP(r)

			id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid record id")
				return
			}

			record, err := recordsStore.FetchRecord(id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					respondWithError(w, http.StatusNotFound, "Record not found")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Failed to delete record")
				return
			}

			if record.Topographe != ident.Username && !ident.IsAdmin() {
				audit.Log(audit.RecordEvent{
					Username:     ident.Username,
					Operation:    "delete",
					RecordID:     id,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "not the owner",
				})
				respondWithError(w, http.StatusForbidden, "Insufficient privilege")
				return
			}

			if err := recordsStore.DeleteRecord(id); err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to delete record")
				return
			}

			audit.Log(audit.RecordEvent{
				Username:  ident.Username,
				Operation: "delete",
				RecordID:  id,
				Village:   record.Village,
				ClientIP:  ip,
				Success:   true,
			})

			respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		},
	).Methods("DELETE")
}
