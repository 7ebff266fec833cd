// Package aliyun deletes objects through the Aliyun OSS Go SDK
package aliyun

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// Remover is an ossgate.ObjectRemover backed by oss.Bucket.DeleteObject.
// A client is built per call because credentials can change between requests.
type Remover struct {
	endpoint      string
	clientOptions []oss.ClientOption
}

var _ ossgate.ObjectRemover = (*Remover)(nil)

// Option configures a Remover
type Option func(*Remover)

// WithEndpoint fixes the service endpoint instead of deriving it from the region
func WithEndpoint(endpoint string) Option {
	return func(r *Remover) {
		r.endpoint = endpoint
	}
}

// WithClientOptions passes options through to oss.New
func WithClientOptions(opts ...oss.ClientOption) Option {
	return func(r *Remover) {
		r.clientOptions = append(r.clientOptions, opts...)
	}
}

// New creates a Remover
func New(opts ...Option) *Remover {
	r := &Remover{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Endpoint returns the service endpoint used for creds
func (r *Remover) Endpoint(creds ossgate.Credentials) string {
	if r.endpoint != "" {
		return r.endpoint
	}
	return fmt.Sprintf("https://%s.aliyuncs.com", creds.Region)
}

func (r *Remover) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	client, err := oss.New(r.Endpoint(creds), creds.AccessKeyID, creds.AccessKeySecret, r.clientOptions...)
	if err != nil {
		return fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(creds.Bucket)
	if err != nil {
		return fmt.Errorf("failed to open bucket %s: %w", creds.Bucket, err)
	}

	if err := bucket.DeleteObject(objectKey, oss.WithContext(ctx)); err != nil {
		var serviceErr oss.ServiceError
		if errors.As(err, &serviceErr) {
			return &ossgate.BackendError{Status: serviceErr.StatusCode, Body: serviceErr.RawMessage, Err: err}
		}
		return fmt.Errorf("oss delete request failed: %w", err)
	}
	return nil
}
