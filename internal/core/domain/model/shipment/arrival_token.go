package shipment

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrTokenNotFound indicates the presented token value does not match
	// any active arrival token. A token invalidated by a re-mint resolves
	// to this error, never to success.
	ErrTokenNotFound = errors.New("arrival token not found")

	// ErrTokenExpired indicates the token's lifetime has elapsed.
	ErrTokenExpired = errors.New("arrival token has expired")

	// ErrTokenAlreadyUsed indicates the token has been consumed.
	// Consumption is permanent: usedAt, once set, is never cleared.
	ErrTokenAlreadyUsed = errors.New("arrival token has already been used")
)

// tokenEntropyBytes is the randomness in a token value. 32 bytes is twice
// the 128-bit floor required to keep brute force infeasible within the
// token's lifetime.
const tokenEntropyBytes = 32

// ArrivalToken is a single-use, time-bounded secret authorizing an
// unauthenticated party to mark a shipment arrived. Possession is the
// entire trust model: there is no session or credential check behind it,
// so unguessability, expiry, and single-use enforcement are the security
// properties that matter.
//
// At most one token per shipment is valid at any time; minting a new one
// replaces and thereby invalidates the previous value.
type ArrivalToken struct {
	value     string
	issuedAt  time.Time
	expiresAt time.Time
	usedAt    *time.Time
}

// NewArrivalToken mints a fresh token at the given time with the given
// lifetime. The value carries 256 bits of cryptographically secure
// randomness encoded as unpadded URL-safe base64, ready for embedding in
// a confirmation link.
//
// A non-positive ttl produces a token that is already expired; minting
// still succeeds, confirmation will fail with ErrTokenExpired.
func NewArrivalToken(now time.Time, ttl time.Duration) (*ArrivalToken, error) {
	raw := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating token randomness: %w", err)
	}

	return &ArrivalToken{
		value:     base64.RawURLEncoding.EncodeToString(raw),
		issuedAt:  now,
		expiresAt: now.Add(ttl),
	}, nil
}

// RestoreArrivalToken reconstructs a token from persistent storage.
func RestoreArrivalToken(value string, issuedAt, expiresAt time.Time, usedAt *time.Time) (*ArrivalToken, error) {
	if value == "" {
		return nil, errs.NewValueIsRequiredError("token value is required")
	}

	return &ArrivalToken{
		value:     value,
		issuedAt:  issuedAt,
		expiresAt: expiresAt,
		usedAt:    usedAt,
	}, nil
}

// Value returns the secret token value. Never log it.
func (t *ArrivalToken) Value() string {
	return t.value
}

// IssuedAt returns the mint time.
func (t *ArrivalToken) IssuedAt() time.Time {
	return t.issuedAt
}

// ExpiresAt returns the end of the token's lifetime.
func (t *ArrivalToken) ExpiresAt() time.Time {
	return t.expiresAt
}

// UsedAt returns the consumption time, or nil if unused.
func (t *ArrivalToken) UsedAt() *time.Time {
	return t.usedAt
}

// IsExpired reports whether the token's lifetime has elapsed at the given
// time. A token is expired from its expiry instant onward, so a zero ttl
// yields a token that was never confirmable.
func (t *ArrivalToken) IsExpired(now time.Time) bool {
	return !now.Before(t.expiresAt)
}

// IsUsed reports whether the token has been consumed.
func (t *ArrivalToken) IsUsed() bool {
	return t.usedAt != nil
}

// Consume marks the token used at the given time.
//
// Check order follows the authorization taxonomy: expiry first, then
// single-use. A second Consume returns ErrTokenAlreadyUsed and leaves the
// original usedAt untouched; there is no un-consuming.
func (t *ArrivalToken) Consume(now time.Time) error {
	if t.IsExpired(now) {
		return ErrTokenExpired
	}
	if t.IsUsed() {
		return ErrTokenAlreadyUsed
	}

	t.usedAt = &now
	return nil
}
