package ossgate

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrMissingFilename indicates an upload request without a filename
	ErrMissingFilename = errors.New("filename required")

	// ErrMissingOwnerID indicates an upload request without an owner id
	ErrMissingOwnerID = errors.New("owner_id required")

	// ErrMissingPublicURL indicates a delete request without a public URL
	ErrMissingPublicURL = errors.New("publicUrl required")

	// ErrInvalidPublicURL indicates a public URL no object key can be recovered from
	ErrInvalidPublicURL = errors.New("invalid publicUrl")

	// ErrEmptyObjectKey indicates a public URL that points at the bucket root
	ErrEmptyObjectKey = errors.New("objectKey required")

	// ErrMissingCredentials indicates one or more OSS credential values are absent
	ErrMissingCredentials = errors.New("missing OSS secrets in environment")
)

// CredentialsError lists which credential values are missing
type CredentialsError struct {
	Missing []string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingCredentials, strings.Join(e.Missing, ", "))
}

func (e *CredentialsError) Unwrap() error {
	return ErrMissingCredentials
}

// BackendError is returned when storage answers a delete with a non-success status.
// Status and Body are the backend's own, kept for diagnosis.
type BackendError struct {
	Status int
	Body   string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("oss delete failed with status %d", e.Status)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by the caller's input
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFilename) ||
		errors.Is(err, ErrMissingOwnerID) ||
		errors.Is(err, ErrMissingPublicURL) ||
		errors.Is(err, ErrInvalidPublicURL) ||
		errors.Is(err, ErrEmptyObjectKey)
}
