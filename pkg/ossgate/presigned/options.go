package presigned

import "time"

// DefaultExpiration is how long a signed URL stays valid
const DefaultExpiration = 60 * time.Second

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithSecretKey sets the access key secret used for HMAC signing
func WithSecretKey(key string) Option {
	return func(s *Signer) {
		s.secretKey = []byte(key)
	}
}

// WithExpiration sets how far in the future signed URLs expire.
// Default is 60 seconds.
func WithExpiration(duration time.Duration) Option {
	return func(s *Signer) {
		if duration > 0 {
			s.expiration = duration
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}
