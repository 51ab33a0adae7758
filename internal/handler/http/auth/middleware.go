// Package auth guards the mutating API endpoints with JWT bearer tokens.
// Tokens are HS256-signed, carry sub and role claims, and only the admin
// role may trigger feed processing.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"betpress/internal/handler/http/respond"
)

type contextKey string

// SubjectKey is the context key holding the authenticated subject.
const SubjectKey contextKey = "auth_subject"

// AdminRole is the role required for feed processing endpoints.
const AdminRole = "admin"

// Verifier validates bearer tokens against a shared HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier reads JWT_SECRET. The secret is mandatory; refusing to
// start beats silently running an unguarded admin endpoint.
func NewVerifier() (*Verifier, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(secret))
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// NewVerifierWithSecret builds a Verifier with an explicit secret.
func NewVerifierWithSecret(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin rejects requests without a valid admin bearer token.
// Missing or invalid tokens get 401, valid tokens without the admin
// role get 403.
func (v *Verifier) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			respond.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		c, err := v.parse(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if c.Role != AdminRole {
			respond.Error(w, http.StatusForbidden, "admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, c.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (v *Verifier) parse(token string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return c, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// Subject returns the authenticated subject stored in ctx, or "".
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(SubjectKey).(string); ok {
		return s
	}
	return ""
}
