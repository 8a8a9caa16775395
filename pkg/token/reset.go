package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

const resetTokenBytes = 20

// ResetToken is a freshly generated password reset token.
// Plain is sent to the user once; only Hash and ExpiresAt are stored.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// ResetIssuer generates and checks single-use password reset tokens
type ResetIssuer struct {
	ttl time.Duration
	now func() time.Time
}

func NewResetIssuer(ttl time.Duration) *ResetIssuer {
	return &ResetIssuer{ttl: ttl, now: time.Now}
}

// WithClock swaps the time source
func (r *ResetIssuer) WithClock(now func() time.Time) *ResetIssuer {
	cp := *r
	cp.now = now
	return &cp
}

// TTL returns how long an issued token stays valid
func (r *ResetIssuer) TTL() time.Duration {
	return r.ttl
}

// Issue creates a random plaintext token and its sha256 digest
func (r *ResetIssuer) Issue() (ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("generate reset token: %w", err)
	}

	plain := hex.EncodeToString(buf)
	return ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: r.now().Add(r.ttl),
	}, nil
}

// Verify reports whether plain matches storedHash and storedExpiry has not passed
func (r *ResetIssuer) Verify(plain, storedHash string, storedExpiry time.Time) bool {
	if plain == "" || storedHash == "" {
		return false
	}

	computed := HashResetToken(plain)
	match := subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
	if !match {
		return false
	}
	return r.now().Before(storedExpiry)
}

// HashResetToken returns the hex sha256 digest stored in place of the token
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
