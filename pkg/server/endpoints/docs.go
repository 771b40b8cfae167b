package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"topodaily/pkg/server"
)

//go:embed api.md
var apiDocs []byte

var (
	docsOnce sync.Once
	docsHTML []byte
	docsErr  error
)

// renderDocs converts the embedded API markdown to HTML once.
func renderDocs() ([]byte, error) {
	docsOnce.Do(func() {
		var buf bytes.Buffer
		md := goldmark.New()
		if err := md.Convert(apiDocs, &buf); err != nil {
			docsErr = err
			return
		}
		docsHTML = buf.Bytes()
	})
	return docsHTML, docsErr
}

// RegisterDocsEndpoint registers the API documentation endpoint.
func RegisterDocsEndpoint(s *server.Server) {
	// GET /docs - rendered API documentation (no auth required)
	s.Router.HandleFunc(
		"/docs",
		func(w http.ResponseWriter, r *http.Request) {
			html, err := renderDocs()
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to render documentation")
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(html)
		},
	).Methods("GET")
}
