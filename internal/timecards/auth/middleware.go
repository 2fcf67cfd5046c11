// Package auth verifies bearer tokens on incoming requests and exposes
// the caller's auth UID to handlers.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wcac/timecards-backend/pkg/config"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// Verifier validates HS256 bearer tokens issued by the identity provider
type Verifier struct {
	cfg *config.AuthConfig
	log *logger.Logger
}

// NewVerifier creates a new token verifier
func NewVerifier(cfg *config.AuthConfig, log *logger.Logger) *Verifier {
	return &Verifier{cfg: cfg, log: log}
}

// Middleware rejects requests without a valid bearer token and stores the
// token subject in the request context as the auth UID. With auth disabled
// in config (local development) every request passes through.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v.cfg.Disabled {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.Error(w, errors.Unauthorized("Unauthorized: No token provided"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.Error(w, errors.Unauthorized("Unauthorized: No token provided"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(v.cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Msg("token validation failed")
			httputil.Error(w, errors.TokenInvalid())
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httputil.Error(w, errors.TokenInvalid())
			return
		}

		uid, err := claims.GetSubject()
		if err != nil || uid == "" {
			httputil.Error(w, errors.TokenInvalid())
			return
		}

		ctx := httputil.WithAuthUID(r.Context(), uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
