package endpoints

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"topodaily/pkg/audit"
	"topodaily/pkg/identity"
	"topodaily/pkg/server"
)

// csvHeader is the first row of every export, matching the leves columns.
var csvHeader = []string{
	"id", "date", "village", "region", "commune",
	"type", "quantite", "appareil", "topographe",
}

// RegisterExportEndpoint registers the CSV export endpoint.
func RegisterExportEndpoint(s *server.Server) {
	recordsStore := s.RecordsStore

	exportRouter := s.Router.PathPrefix("/records/export").Subrouter()
	exportRouter.Use(s.Session.Middleware)

	// GET /records/export - same filter semantics as GET /records, all rows
	exportRouter.HandleFunc(
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

			records, err := recordsStore.ListRecords(filter, 0)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to export records")
				return
			}

			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="leves.csv"`)

			writer := csv.NewWriter(w)
			_ = writer.Write(csvHeader)
			for i := range records {
				record := &records[i]
				_ = writer.Write([]string{
					strconv.FormatInt(record.ID, 10),
					record.Date.Format("2006-01-02"),
					record.Village,
					record.Region,
					record.Commune,
					record.Type,
					strconv.Itoa(record.Quantite),
					record.Appareil,
					record.Topographe,
				})
			}
			writer.Flush()

			audit.Log(audit.ExportEvent{
				Username: ident.Username,
				Rows:     int64(len(records)),
				ClientIP: clientIP(r),
			})
		},
	).Methods("GET")
}
