package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"topodaily/pkg/audit"
	"topodaily/pkg/auth"
	"topodaily/pkg/identity"
	"topodaily/pkg/model"
	"topodaily/pkg/server"
	"topodaily/pkg/server/store"
)

// CreateUserRequest is the body accepted by the admin user-creation endpoint.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// requireAdmin wraps a handler and rejects non-administrator callers.
func requireAdmin(next func(http.ResponseWriter, *http.Request, *identity.Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}
		if !ident.IsAdmin() {
			respondWithError(w, http.StatusForbidden, "Insufficient privilege")
			return
		}
		next(w, r, ident)
	}
}

// RegisterAdminEndpoints registers the administrator-only endpoints.
func RegisterAdminEndpoints(s *server.Server) {
	usersStore := s.UsersStore
	statsStore := s.StatsStore
	bootstrapAdmin := s.Config.BootstrapAdminUsername

	adminRouter := s.Router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(s.Session.Middleware)

	// GET /admin/users - list all accounts
	adminRouter.HandleFunc(
		"/users",
		requireAdmin(func(w http.ResponseWriter, r *http.Request, _ *identity.Identity) {
			users, err := usersStore.ListUsers()
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to list users")
				return
			}
			responses := make([]UserResponse, 0, len(users))
			for i := range users {
				responses = append(responses, userResponse(&users[i]))
			}
			respondWithJSON(w, http.StatusOK, responses)
		}),
	).Methods("GET")

	// POST /admin/users - create an account with any role
	adminRouter.HandleFunc(
		"/users",
		requireAdmin(func(w http.ResponseWriter, r *http.Request, ident *identity.Identity) {
			var req CreateUserRequest
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

			role := model.RoleTopographe
			if req.Role != "" {
				parsed, err := model.RoleString(req.Role)
				if err != nil {
					respondWithError(w, http.StatusBadRequest, "Unknown role: "+req.Role)
					return
				}
				role = parsed
			}

			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to create user")
				return
			}

			user := &model.User{
				Username: req.Username,
				Password: hash,
				Email:    req.Email,
				Phone:    req.Phone,
				Role:     role,
			}
			if err := usersStore.CreateUser(user); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					respondWithError(w, http.StatusConflict, "Username or email already in use")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Failed to create user")
				return
			}

			audit.Log(audit.UserEvent{
				Actor:     ident.Username,
				Target:    user.Username,
				Operation: "add",
				Role:      user.Role.String(),
				ClientIP:  clientIP(r),
				Success:   true,
			})

			respondWithJSON(w, http.StatusCreated, userResponse(user))
		}),
	).Methods("POST")

	// DELETE /admin/users/{id} - delete an account, never the bootstrap admin
	adminRouter.HandleFunc(
		"/users/{id:[0-9]+}",
		requireAdmin(func(w http.ResponseWriter, r *http.Request, ident *identity.Identity) {
			ip := clientIP(r)

			id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid user id")
				return
			}

			user, err := usersStore.FetchUserByID(id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					respondWithError(w, http.StatusNotFound, "User not found")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Failed to delete user")
				return
			}

			if user.Username == bootstrapAdmin {
				audit.Log(audit.UserEvent{
					Actor:        ident.Username,
					Target:       user.Username,
					Operation:    "delete",
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "primary administrator cannot be deleted",
				})
				respondWithError(w, http.StatusForbidden, "The primary administrator cannot be deleted")
				return
			}

			if err := usersStore.DeleteUser(id); err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to delete user")
				return
			}

			audit.Log(audit.UserEvent{
				Actor:     ident.Username,
				Target:    user.Username,
				Operation: "delete",
				Role:      user.Role.String(),
				ClientIP:  ip,
				Success:   true,
			})

			respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		}),
	).Methods("DELETE")

	// GET /admin/stats - totals across all users and records
	adminRouter.HandleFunc(
		"/stats",
		requireAdmin(func(w http.ResponseWriter, r *http.Request, _ *identity.Identity) {
			stats, err := statsStore.GlobalStats()
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
				return
			}
			respondWithJSON(w, http.StatusOK, stats)
		}),
	).Methods("GET")
}
