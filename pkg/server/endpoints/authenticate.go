package endpoints

import (
	"errors"
	"net/http"

	"topodaily/pkg/audit"
	"topodaily/pkg/auth"
	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Role      string `json:"role"`
}

// RegisterAuthenticateEndpoint registers the login endpoint.
func RegisterAuthenticateEndpoint(s *server.Server) {
	usersStore := s.UsersStore
	session := s.Session

	// POST /authn/login - Basic Auth credentials in, session token out
	s.Router.HandleFunc(
		"/authn/login",
		func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="Topodaily"`)
				respondWithError(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			user, err := usersStore.FetchUserByUsername(username)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					respondWithError(w, http.StatusInternalServerError, "Login failed")
					return
				}
				// Unknown user and bad password get the same answer.
				audit.Log(audit.AuthenticateEvent{
					Username:     username,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "unknown user",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}

			if err := auth.CheckPassword(user.Password, password); err != nil {
				audit.Log(audit.AuthenticateEvent{
					Username:     username,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "bad password",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}

			token, err := session.Issue(user)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Login failed")
				return
			}

			audit.Log(audit.AuthenticateEvent{
				Username: username,
				ClientIP: ip,
				Success:  true,
			})

			respondWithJSON(w, http.StatusOK, LoginResponse{
				Token:     token,
				ExpiresIn: int64(session.TTL().Seconds()),
				Role:      user.Role.String(),
			})
		},
	).Methods("POST")
}
