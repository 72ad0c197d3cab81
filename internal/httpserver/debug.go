// internal/httpserver/debug.go
//
// Debug-only hint endpoint and its JWT gate.
// The route is mounted only when debug hints are enabled, and every request must carry
// "Authorization: Bearer <token>" where the token is HS256-signed with the server secret
// and has scope=debug.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/guessnumber/internal/game"
)

const debugScope = "debug"

// SignDebugToken issues a token accepted by the hint endpoint until now+ttl.
func SignDebugToken(secret []byte, ttl time.Duration, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": debugScope,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

// requireDebugToken enforces a valid debug-scoped JWT.
func requireDebugToken(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			if scope, _ := claims["scope"].(string); scope != debugScope {
				writeError(w, http.StatusForbidden, "forbidden", "token lacks debug scope")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

type hintRes struct {
	SecretValue int `json:"secretValue"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	v, err := s.sess.Hint()
	switch {
	case errors.Is(err, game.ErrHintsDisabled):
		writeError(w, http.StatusForbidden, "hints_disabled", err.Error())
		return
	case errors.Is(err, game.ErrInactiveRound):
		writeError(w, http.StatusConflict, "inactive_round", "start a new round first")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", "hint failed")
		return
	}
	writeJSON(w, http.StatusOK, hintRes{SecretValue: v})
}
