package endpoints

import (
	"net/http"

	"topodaily/pkg/identity"
	"topodaily/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenIAT  int64  `json:"token_iat,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(s.Session.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		resp := WhoamiResponse{
			UserID:   ident.UserID,
			Username: ident.Username,
			Role:     ident.Role.String(),
		}
		if !ident.IssuedAt.IsZero() {
			resp.TokenIAT = ident.IssuedAt.Unix()
		}
		if !ident.ExpiresAt.IsZero() {
			resp.ExpiresAt = ident.ExpiresAt.Unix()
		}
		if ident.RemoteIP != nil {
			resp.ClientIP = ident.RemoteIP.String()
		}

		respondWithJSON(w, http.StatusOK, resp)
	}
}
