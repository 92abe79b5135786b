package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const identityKey contextKey = "identity"

const tokenLifetime = 7 * 24 * time.Hour

// Identity is the authenticated caller resolved from a login token.
type Identity struct {
	PlayerID int64
	Name     string
}

func (s *Server) issueToken(playerID int64, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": name,
		"id":  playerID,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) parseToken(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	name, _ := claims["sub"].(string)
	id, idOK := claims["id"].(float64)
	if !idOK || name == "" {
		return Identity{}, errors.New("invalid token claims")
	}
	return Identity{PlayerID: int64(id), Name: name}, nil
}

// requireAuth resolves the caller's identity from a Bearer header, or
// from a ?token= query parameter for websocket clients that cannot set
// headers.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			raw = strings.TrimPrefix(auth, "Bearer ")
		} else {
			raw = r.URL.Query().Get("token")
		}
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		ident, err := s.parseToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(r *http.Request) Identity {
	ident, _ := r.Context().Value(identityKey).(Identity)
	return ident
}
