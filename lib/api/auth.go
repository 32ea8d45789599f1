package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-i2p/logger"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/titellus/geonetwork-pnf/lib/migration"
)

var (
	ErrInvalidToken = errors.New("invalid or expired authentication token")
	ErrRateLimited  = errors.New("too many failed authentication attempts")
)

// AuthManager maps bearer tokens to profiles. The administrator token is
// checked against a bcrypt hash; only mismatches draw from the failure token
// bucket, so the valid token is never throttled. Thread-safe.
type AuthManager struct {
	hash     []byte
	failures *rate.Limiter
}

// NewAuthManager creates a manager for the given bcrypt hash of the
// administrator token. An empty hash disables administrator access.
func NewAuthManager(tokenHash string) *AuthManager {
	return &AuthManager{
		hash:     []byte(tokenHash),
		failures: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// HashToken returns the bcrypt hash to configure for token.
func HashToken(token string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Authenticate returns the profile of a bearer token. The empty token is a guest.
func (am *AuthManager) Authenticate(token string) (migration.Profile, error) {
	if token == "" {
		return migration.ProfileGuest, nil
	}
	if len(am.hash) > 0 && bcrypt.CompareHashAndPassword(am.hash, []byte(token)) == nil {
		return migration.ProfileAdministrator, nil
	}

	if !am.failures.Allow() {
		return migration.ProfileGuest, ErrRateLimited
	}
	log.WithFields(logger.Fields{
		"at":     "(AuthManager) Authenticate",
		"reason": "token does not match",
	}).Warn("authentication failed")
	return migration.ProfileGuest, ErrInvalidToken
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// profile authenticates r, writing the error response itself when it fails.
func (am *AuthManager) profile(w http.ResponseWriter, r *http.Request) (migration.Profile, bool) {
	p, err := am.Authenticate(bearer(r))
	switch {
	case errors.Is(err, ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		return p, false
	case err != nil:
		w.Header().Set("WWW-Authenticate", `Bearer realm="geonetwork"`)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return p, false
	}
	return p, true
}

// requireAdmin only lets administrator requests through.
func (am *AuthManager) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := am.profile(w, r)
		if !ok {
			return
		}
		if p != migration.ProfileAdministrator {
			http.Error(w, "administrator profile required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
