package presigned

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tendant/ossgate/pkg/ossgate/ossurl"
)

type contextKey string

const (
	// ObjectKeyContextKey is the context key for storing the validated object key
	ObjectKeyContextKey contextKey = "presigned:object_key"
)

// ValidateMiddleware returns HTTP middleware that authenticates OSS query-string
// signed requests for a single bucket. On success the decoded object key is
// stored in the request context.
func ValidateMiddleware(signer *Signer, bucket, accessKeyID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			objectKey, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/"))
			if err != nil || objectKey == "" {
				writeOSSError(w, r, http.StatusBadRequest, "InvalidObjectName", "The specified object is not valid.")
				return
			}

			if id := r.URL.Query().Get(ossurl.ParamAccessKeyID); id != accessKeyID {
				writeOSSError(w, r, http.StatusForbidden, "InvalidAccessKeyId", "The OSS Access Key Id you provided does not exist in our records.")
				return
			}

			if err := signer.ValidateRequest(r, Resource(bucket, objectKey)); err != nil {
				slog.Debug("presigned: request rejected", "method", r.Method, "object_key", objectKey, "err", err)
				handleValidationError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ObjectKeyContextKey, objectKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ObjectKeyFromContext extracts the validated object key from the request context
// Returns empty string if not found
func ObjectKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(ObjectKeyContextKey).(string); ok {
		return key
	}
	return ""
}

// handleValidationError maps signature errors onto the codes OSS itself answers with
func handleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingSignature), errors.Is(err, ErrMissingExpiration):
		writeOSSError(w, r, http.StatusForbidden, "AccessDenied", "Anonymous access is forbidden for this operation.")
	case errors.Is(err, ErrInvalidExpiration):
		writeOSSError(w, r, http.StatusForbidden, "AccessDenied", "Invalid expires.")
	case errors.Is(err, ErrExpired):
		writeOSSError(w, r, http.StatusForbidden, "AccessDenied", "Request has expired.")
	case errors.Is(err, ErrInvalidSignature):
		writeOSSError(w, r, http.StatusForbidden, "SignatureDoesNotMatch", "The request signature we calculated does not match the signature you provided.")
	default:
		writeOSSError(w, r, http.StatusForbidden, "AccessDenied", err.Error())
	}
}
