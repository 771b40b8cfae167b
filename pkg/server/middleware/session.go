package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"topodaily/pkg/identity"
	"topodaily/pkg/model"
)

// sessionClaims is the JWT payload carried by session tokens.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionAuthenticator issues and validates session tokens.
type SessionAuthenticator struct {
	key []byte
	ttl time.Duration
}

// NewSessionAuthenticator creates a new session authenticator. The key signs
// tokens with HMAC-SHA256 and must be shared by all server instances.
func NewSessionAuthenticator(key []byte, ttl time.Duration) *SessionAuthenticator {
	return &SessionAuthenticator{key: key, ttl: ttl}
}

// TTL returns the lifetime of issued tokens.
func (a *SessionAuthenticator) TTL() time.Duration {
	return a.ttl
}

// Issue creates a signed session token for a user.
func (a *SessionAuthenticator) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// Verify parses and validates a session token and returns the identity it
// carries.
func (a *SessionAuthenticator) Verify(tokenStr string) (*identity.Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.key, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	role, err := model.RoleString(claims.Role)
	if err != nil {
		return nil, err
	}

	var userID int64
	fmt.Sscanf(claims.ID, "%d", &userID)

	ident := &identity.Identity{
		UserID:   userID,
		Username: claims.Subject,
		Role:     role,
	}
	if claims.IssuedAt != nil {
		ident.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		ident.ExpiresAt = claims.ExpiresAt.Time
	}
	return ident, nil
}

// Middleware returns an HTTP middleware that validates session tokens and
// attaches the caller's identity to the request context.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		ident, err := a.Verify(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ident = ident.WithRemoteIP(net.ParseIP(host))
		}

		ctx := identity.Set(r.Context(), ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
