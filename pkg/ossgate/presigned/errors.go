package presigned

import (
	"errors"
	"fmt"
)

// Signature errors
var (
	// ErrNoSecretKey is returned when attempting to sign without a configured secret key
	ErrNoSecretKey = errors.New("presigned: no secret key configured")

	// ErrMissingSignature is returned when the Signature query parameter is missing
	ErrMissingSignature = errors.New("presigned: missing Signature parameter")

	// ErrMissingExpiration is returned when the Expires query parameter is missing
	ErrMissingExpiration = errors.New("presigned: missing Expires parameter")

	// ErrInvalidExpiration is returned when the Expires parameter cannot be parsed
	ErrInvalidExpiration = errors.New("presigned: invalid Expires parameter")

	// ErrExpired is returned when the signed URL has expired
	ErrExpired = errors.New("presigned: URL has expired")

	// ErrInvalidSignature is returned when the signature does not match
	ErrInvalidSignature = errors.New("presigned: invalid signature")
)

// IsAuthError returns true if the error is a signature validation error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingExpiration) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidSignature)
}

// StatusError is returned by Client when storage answers with a non-2xx status
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("presigned: %s returned status %d", e.Method, e.StatusCode)
}
