// Package minio deletes objects through OSS's S3-compatible API with minio-go
package minio

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// Config options for the MinIO remover
type Config struct {
	Endpoint string // Optional endpoint URL; defaults to https://{region}.aliyuncs.com
}

// Remover is an ossgate.ObjectRemover over minio.Client.RemoveObject
type Remover struct {
	config Config
}

var _ ossgate.ObjectRemover = (*Remover)(nil)

// New creates a new MinIO remover
func New(config Config) *Remover {
	return &Remover{config: config}
}

// Endpoint returns the endpoint URL requests for creds are sent to
func (r *Remover) Endpoint(creds ossgate.Credentials) string {
	if r.config.Endpoint != "" {
		return r.config.Endpoint
	}
	return fmt.Sprintf("https://%s.aliyuncs.com", creds.Region)
}

func (r *Remover) client(creds ossgate.Credentials) (*minio.Client, error) {
	endpoint, err := url.Parse(r.Endpoint(creds))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKeyID, creds.AccessKeySecret, ""),
		Secure: endpoint.Scheme != "http",
		Region: creds.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return client, nil
}

func (r *Remover) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	client, err := r.client(creds)
	if err != nil {
		return err
	}

	err = client.RemoveObject(ctx, creds.Bucket, objectKey, minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}

	var errResp minio.ErrorResponse
	if errors.As(err, &errResp) && errResp.StatusCode != 0 {
		return &ossgate.BackendError{
			Status: errResp.StatusCode,
			Body:   fmt.Sprintf("%s: %s", errResp.Code, errResp.Message),
			Err:    err,
		}
	}
	return fmt.Errorf("minio delete request failed: %w", err)
}
