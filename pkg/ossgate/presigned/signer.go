package presigned

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tendant/ossgate/pkg/ossgate/ossurl"
)

// Verb is the HTTP method a signature authorizes
type Verb string

const (
	VerbPut    Verb = http.MethodPut
	VerbDelete Verb = http.MethodDelete
	VerbGet    Verb = http.MethodGet
)

// SigningRequest holds the fields covered by an OSS v1 query-string signature
type SigningRequest struct {
	Verb        Verb
	ContentType string // only signed for PUT
	Expires     int64  // unix seconds
	Resource    string // "/{bucket}/{objectKey}"
}

// Resource returns the canonical resource for an object in a bucket
func Resource(bucket, objectKey string) string {
	return "/" + bucket + "/" + objectKey
}

// CanonicalString returns the exact text that is signed for req.
//
// The second line is the Content-MD5 slot, which is never used and always empty.
//
//	PUT\n\n{contentType}\n{expires}\n{resource}
//	DELETE\n\n\n{expires}\n{resource}
//	GET\n\n\n{expires}\n{resource}
func CanonicalString(req SigningRequest) string {
	expires := strconv.FormatInt(req.Expires, 10)
	switch req.Verb {
	case VerbPut:
		return "PUT\n\n" + req.ContentType + "\n" + expires + "\n" + req.Resource
	case VerbDelete:
		return "DELETE\n\n\n" + expires + "\n" + req.Resource
	default:
		return string(req.Verb) + "\n\n\n" + expires + "\n" + req.Resource
	}
}

// Sign returns the base64-encoded HMAC-SHA1 of canonical keyed with secret
func Sign(secret, canonical string) string {
	h := hmac.New(sha1.New, []byte(secret))
	h.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Signer signs and validates OSS query-string requests with one access key secret
type Signer struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// New creates a new Signer with the given options
func New(opts ...Option) *Signer {
	s := &Signer{
		expiration: DefaultExpiration,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Expires returns the unix expiry for a URL signed now.
// Callers compute it once and reuse the value for both the canonical string
// and the Expires query parameter.
func (s *Signer) Expires() int64 {
	return s.now().Add(s.expiration).Unix()
}

// SignRequest signs the canonical string of req
func (s *Signer) SignRequest(req SigningRequest) (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrNoSecretKey
	}
	return Sign(string(s.secretKey), CanonicalString(req)), nil
}

// Validate checks expiry and signature of a signed request
func (s *Signer) Validate(req SigningRequest, signature string) error {
	if len(s.secretKey) == 0 {
		return ErrNoSecretKey
	}

	if s.now().Unix() > req.Expires {
		return ErrExpired
	}

	expected := Sign(string(s.secretKey), CanonicalString(req))

	// constant-time comparison
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}

	return nil
}

// ValidateRequest validates the query-string authentication of an incoming
// request against resource ("/{bucket}/{objectKey}")
func (s *Signer) ValidateRequest(r *http.Request, resource string) error {
	query := r.URL.Query()
	signature := query.Get(ossurl.ParamSignature)
	expiresStr := query.Get(ossurl.ParamExpires)

	if signature == "" {
		return ErrMissingSignature
	}
	if expiresStr == "" {
		return ErrMissingExpiration
	}

	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	req := SigningRequest{
		Verb:     Verb(r.Method),
		Expires:  expires,
		Resource: resource,
	}
	if req.Verb == VerbPut {
		req.ContentType = r.Header.Get("Content-Type")
	}

	return s.Validate(req, signature)
}
