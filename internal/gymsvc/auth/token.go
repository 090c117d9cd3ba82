package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrNoPrincipal = errors.New("no authenticated principal")

// Principal is the identity carried by a verified token.
type Principal struct {
	ID   string
	Role string
}

// TokenIssuer signs and verifies HS256 bearer tokens with a single process secret.
type TokenIssuer struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue returns a token embedding the principal id and role.
func (t *TokenIssuer) Issue(id, role string) (string, error) {
	now := t.now()
	_, tokenString, err := t.tokenAuth.Encode(map[string]interface{}{
		"id":   id,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(t.ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Parse verifies tokenString and extracts its principal.
func (t *TokenIssuer) Parse(tokenString string) (Principal, error) {
	token, err := jwtauth.VerifyToken(t.tokenAuth, tokenString)
	if err != nil {
		return Principal{}, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return Principal{}, err
	}
	return principalFromClaims(claims)
}

// Verifier looks for a token in the Authorization header or the jwt cookie.
func (t *TokenIssuer) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(t.tokenAuth)
}

// Authenticator rejects requests whose token is missing, invalid or expired.
func (t *TokenIssuer) Authenticator() func(http.Handler) http.Handler {
	return jwtauth.Authenticator
}

// RequireRole lets the request through only when the verified principal has one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := PrincipalFromContext(r.Context())
			if err != nil {
				writeDenied(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeDenied(w, http.StatusForbidden, "Access denied for role "+p.Role)
		})
	}
}

// PrincipalFromContext returns the principal placed in ctx by the verifier.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, err
	}
	return principalFromClaims(claims)
}

func principalFromClaims(claims map[string]interface{}) (Principal, error) {
	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return Principal{}, ErrNoPrincipal
	}
	return Principal{ID: id, Role: role}, nil
}

func writeDenied(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
		"code":    code,
	})
}
