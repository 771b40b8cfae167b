package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"topodaily/pkg/audit"
	"topodaily/pkg/auth"
	"topodaily/pkg/identity"
	"topodaily/pkg/model"
	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// SignupRequest is the body accepted by the public signup endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PasswordChangeRequest is the body accepted by the password change endpoint.
type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UserResponse is the JSON shape of a user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Role:     user.Role.String(),
	}
}

// RegisterUsersEndpoints registers signup and password change endpoints.
func RegisterUsersEndpoints(s *server.Server) {
	usersStore := s.UsersStore
	session := s.Session

	// POST /users - public signup, always a surveyor account
	s.Router.HandleFunc(
		"/users",
		func(w http.ResponseWriter, r *http.Request) {
			var req SignupRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondWithError(w, http.StatusBadRequest, "Malformed request body")
				return
			}

			if err := validateCredentials(req.Username, req.Password); err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if err := validateEmail(req.Email); err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if err := validatePhone(req.Phone); err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}

			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Signup failed")
				return
			}

			user := &model.User{
				Username: req.Username,
				Password: hash,
				Email:    req.Email,
				Phone:    req.Phone,
				Role:     model.RoleTopographe,
			}
			if err := usersStore.CreateUser(user); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					respondWithError(w, http.StatusConflict, "Username or email already in use")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Signup failed")
				return
			}

			audit.Log(audit.UserEvent{
				Actor:     req.Username,
				Target:    req.Username,
				Operation: "add",
				Role:      user.Role.String(),
				ClientIP:  clientIP(r),
				Success:   true,
			})

			respondWithJSON(w, http.StatusCreated, userResponse(user))
		},
	).Methods("POST")

	// PUT /users/password - authenticated password change
	passwordRouter := s.Router.PathPrefix("/users/password").Subrouter()
	passwordRouter.Use(session.Middleware)
	passwordRouter.HandleFunc(
		"",
		func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
				return
			}
			ip := clientIP(r)

			var req PasswordChangeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondWithError(w, http.StatusBadRequest, "Malformed request body")
				return
			}
			if err := validateCredentials(ident.Username, req.NewPassword); err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}

			user, err := usersStore.FetchUserByUsername(ident.Username)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Password change failed")
				return
			}

			if err := auth.CheckPassword(user.Password, req.OldPassword); err != nil {
				audit.Log(audit.PasswordEvent{
					Username:     ident.Username,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "bad old password",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}

			hash, err := auth.HashPassword(req.NewPassword)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Password change failed")
				return
			}
			if err := usersStore.UpdatePassword(ident.Username, hash); err != nil {
				respondWithError(w, http.StatusInternalServerError, "Password change failed")
				return
			}

			audit.Log(audit.PasswordEvent{
				Username: ident.Username,
				ClientIP: ip,
				Success:  true,
			})

			respondWithJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
		},
	).Methods("PUT")
}
