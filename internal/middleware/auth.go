package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// Claims is the JWT payload issued by the external authentication service.
// Tokens are signed with a shared HMAC secret; this application only
// verifies them, it never issues them.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens and resolves the request principal.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator verifying tokens against secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate parses the Authorization header and, when a valid bearer
// token is present, stores the resolved principal in the request context.
// Requests without a token pass through unauthenticated; route-level guards
// decide whether that is acceptable.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := a.verify(token)
		if err != nil {
			respondWithError(w, r, domain.Unauthorized("auth", "Invalid or expired token"))
			return
		}

		ctx := domain.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) verify(token string) (domain.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, domain.Unauthorized("auth", "Invalid or expired token")
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.Principal{}, domain.Unauthorized("auth", "Token is missing identity claims")
	}

	return domain.Principal{Username: claims.Subject, Role: role}, nil
}

// RequireAuth rejects requests that carry no authenticated principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := domain.PrincipalFromContext(r.Context()); !ok {
			respondWithError(w, r, domain.Unauthorized("auth", "Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects authenticated requests whose principal holds none of
// the given roles. Unauthenticated requests get 401, wrong-role requests 403.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := domain.PrincipalFromContext(r.Context())
			if !ok {
				respondWithError(w, r, domain.Unauthorized("auth", "Authentication required"))
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, r, domain.Forbidden("auth", "You don't have permission to access this resource"))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
