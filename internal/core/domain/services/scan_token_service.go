package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInvalidSignature indicates the token's signature does not match
	// its payload. Malformed tokens report the same error so a forger
	// learns nothing about which part of the token was wrong.
	ErrInvalidSignature = errors.New("scan token signature is invalid")

	// ErrScanTokenExpired indicates the token's lifetime has elapsed.
	// Expiry is only reported for correctly signed tokens.
	ErrScanTokenExpired = errors.New("scan token has expired")
)

// ScanLink is the resolved content of a valid scan token: the entity it
// grants read-only visibility into.
type ScanLink struct {
	EntityType string
	EntityID   kernel.UUID
	ExpiresAt  time.Time
}

// ScanTokenService issues and validates the stateless signed tokens behind
// public "scan to view" links. A token is the plaintext payload
// (entityType|entityID|expiry) alongside its HMAC-SHA256 signature, so
// validation needs no storage: recompute and compare.
//
// Scan tokens grant visibility only, never mutation; they are a separate,
// weaker capability than arrival tokens and deliberately share nothing
// with them but the signing primitive.
type ScanTokenService struct {
	secret []byte
}

// NewScanTokenService creates a service signing with the given secret.
// The secret comes from process configuration and must never be logged.
func NewScanTokenService(secret []byte) (ScanTokenService, error) {
	if len(secret) == 0 {
		return ScanTokenService{}, errs.NewValueIsRequiredError("signing secret is required")
	}

	return ScanTokenService{secret: secret}, nil
}

// Issue creates a signed token granting visibility into the entity until
// ttl elapses. The token format is
// base64url(payload).base64url(signature) with payload
// "entityType|entityID|expiryUnix".
func (s ScanTokenService) Issue(entityType string, entityID kernel.UUID, ttl time.Duration) (string, error) {
	if entityType == "" {
		return "", errs.NewValueIsRequiredError("entityType is required")
	}
	if err := entityID.Validate(); err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(ttl)
	payload := fmt.Sprintf("%s|%s|%d", entityType, entityID.String(), expiresAt.Unix())

	return base64.RawURLEncoding.EncodeToString([]byte(payload)) +
		"." +
		base64.RawURLEncoding.EncodeToString(s.sign(payload)), nil
}

// Resolve validates a token and returns the entity it references.
//
// The signature is verified with a constant-time comparison before
// anything else is inspected; expiry is checked only afterwards, so
// attackers cannot distinguish a forged token from a stale one by
// timing. Returns ErrInvalidSignature or ErrScanTokenExpired.
func (s ScanTokenService) Resolve(token string) (ScanLink, error) {
	encodedPayload, encodedSignature, found := strings.Cut(token, ".")
	if !found {
		return ScanLink{}, ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return ScanLink{}, ErrInvalidSignature
	}

	signature, err := base64.RawURLEncoding.DecodeString(encodedSignature)
	if err != nil {
		return ScanLink{}, ErrInvalidSignature
	}

	if !hmac.Equal(signature, s.sign(string(payload))) {
		return ScanLink{}, ErrInvalidSignature
	}

	entityType, rest, found := strings.Cut(string(payload), "|")
	if !found {
		return ScanLink{}, ErrInvalidSignature
	}
	rawID, rawExpiry, found := strings.Cut(rest, "|")
	if !found {
		return ScanLink{}, ErrInvalidSignature
	}

	entityID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return ScanLink{}, ErrInvalidSignature
	}

	expiryUnix, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return ScanLink{}, ErrInvalidSignature
	}

	expiresAt := time.Unix(expiryUnix, 0)
	if !time.Now().Before(expiresAt) {
		return ScanLink{}, ErrScanTokenExpired
	}

	return ScanLink{
		EntityType: entityType,
		EntityID:   entityID,
		ExpiresAt:  expiresAt,
	}, nil
}

// sign computes the HMAC-SHA256 signature of a payload.
func (s ScanTokenService) sign(payload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
