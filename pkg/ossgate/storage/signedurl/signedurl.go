// Package signedurl deletes objects by signing an OSS DELETE URL and calling
// it once, with no SDK involved.
package signedurl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/ossurl"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

// Remover is an ossgate.ObjectRemover over query-string signed URLs
type Remover struct {
	client     *presigned.Client
	expiration time.Duration
	now        func() time.Time
}

var _ ossgate.ObjectRemover = (*Remover)(nil)

// Option configures a Remover
type Option func(*Remover)

// WithClient sets the client the DELETE is sent through
func WithClient(client *presigned.Client) Option {
	return func(r *Remover) {
		if client != nil {
			r.client = client
		}
	}
}

// WithExpiration sets the validity window of the signed DELETE URL
func WithExpiration(d time.Duration) Option {
	return func(r *Remover) {
		if d > 0 {
			r.expiration = d
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Remover) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Remover
func New(opts ...Option) *Remover {
	r := &Remover{
		client:     presigned.NewClient(),
		expiration: presigned.DefaultExpiration,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DeleteURL signs a DELETE for objectKey and returns the URL with its expiry
func (r *Remover) DeleteURL(creds ossgate.Credentials, objectKey string) (string, int64, error) {
	signer := presigned.New(
		presigned.WithSecretKey(creds.AccessKeySecret),
		presigned.WithExpiration(r.expiration),
		presigned.WithClock(r.now),
	)
	expires := signer.Expires()
	signature, err := signer.SignRequest(presigned.SigningRequest{
		Verb:     presigned.VerbDelete,
		Expires:  expires,
		Resource: presigned.Resource(creds.Bucket, objectKey),
	})
	if err != nil {
		return "", 0, err
	}
	return ossurl.Signed(creds.Bucket, creds.Region, objectKey, creds.AccessKeyID, expires, signature), expires, nil
}

// RemoveObject issues exactly one signed DELETE
func (r *Remover) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	deleteURL, _, err := r.DeleteURL(creds, objectKey)
	if err != nil {
		return fmt.Errorf("failed to sign delete: %w", err)
	}

	if err := r.client.Delete(ctx, deleteURL); err != nil {
		var statusErr *presigned.StatusError
		if errors.As(err, &statusErr) {
			return &ossgate.BackendError{Status: statusErr.StatusCode, Body: statusErr.Body, Err: err}
		}
		return err
	}
	return nil
}
