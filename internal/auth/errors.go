package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a presented value is not a "Bearer " JWT.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature is returned when the signature does not verify with the shared secret.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrRejected is returned when a verified token fails a claim check.
	ErrRejected = errors.New("token rejected")
	// ErrEncoding is returned when a token cannot be serialized or signed.
	ErrEncoding = errors.New("token encoding failed")
	// ErrEmptyPrincipal is returned when issuing a token for an empty name.
	ErrEmptyPrincipal = errors.New("principal name is empty")
	// ErrWeakSecret is returned when the shared secret is shorter than 256 bits.
	ErrWeakSecret = errors.New("token secret must be at least 32 bytes")
)

// Claims checked on a verified token, in check order.
const (
	ClaimSubject    = "sub"
	ClaimIssuer     = "iss"
	ClaimExpiration = "exp"
)

// ClaimError reports the first claim check a verified token failed.
// It matches ErrRejected with errors.Is.
type ClaimError struct {
	Claim string
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("%s: invalid %s claim", ErrRejected, e.Claim)
}

func (e *ClaimError) Unwrap() error {
	return ErrRejected
}
