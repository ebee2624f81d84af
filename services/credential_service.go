package services

import (
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier answers whether a username/password pair belongs to an
// administrator. Kept behind an interface so the environment-variable parsing
// stays out of the handlers and can be swapped for a real user store later.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// EnvCredentials reads ADMIN_USERNAME / ADMIN_PASSWORD, each a comma-separated
// list, paired by position. A password entry may be a bcrypt hash ($2a$...)
// or, as a stopgap, a plain value. The hardcoded fallback pair of the legacy
// system is only honored when ADMIN_FALLBACK_ENABLED=1.
type EnvCredentials struct {
	usernames []string
	passwords []string
	fallback  bool
}

func NewEnvCredentials() *EnvCredentials {
	return &EnvCredentials{
		usernames: splitTrimmed(os.Getenv("ADMIN_USERNAME")),
		passwords: splitTrimmed(os.Getenv("ADMIN_PASSWORD")),
		fallback:  os.Getenv("ADMIN_FALLBACK_ENABLED") == "1",
	}
}

func splitTrimmed(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func matchesPassword(provided, configured string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)) == nil
	}
	return provided == configured
}

// Verify checks the provided pair against every configured pair, then the
// fallback. Credentials themselves are never logged.
func (e *EnvCredentials) Verify(username, password string) bool {
	user := strings.TrimSpace(username)
	pass := strings.TrimSpace(password)

	for i, configured := range e.usernames {
		if i >= len(e.passwords) {
			break
		}
		if user == configured && matchesPassword(pass, e.passwords[i]) {
			log.Printf("Login successful (user: %s)", configured)
			return true
		}
	}

	if e.fallback && strings.EqualFold(user, "z") && pass == "1" {
		log.Printf("Login successful (fallback pair)")
		return true
	}

	log.Printf("Login failed (user: %s)", user)
	return false
}
