package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ============================================================================
// Types
// ============================================================================

// Credentials are collected once at startup and never change afterwards.
type Credentials struct {
	Email        string
	Password     string
	DeveloperID  int
	DeveloperKey string
}

// Session is the outcome of a login: the captured cookie and the signature
// derived from it. HasCookie separates a server-set empty value from no cookie.
type Session struct {
	HasCookie   bool
	CookieValue string
	Signature   string
}

// Valid reports whether a cookie was captured and a signature derived from it.
func (s Session) Valid() bool {
	return s.HasCookie && s.Signature != ""
}

// ============================================================================
// Signature Derivation
// ============================================================================

// DeriveSignature returns "<developerID>:<hex sha256(cookieValue + developerKey)>".
func DeriveSignature(developerID int, cookieValue, developerKey string) string {
	sum := sha256.Sum256([]byte(cookieValue + developerKey))
	return strconv.Itoa(developerID) + ":" + hex.EncodeToString(sum[:])
}
