// Package s3 deletes objects through OSS's S3-compatible API with aws-sdk-go-v2
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// Config options for the S3 remover
type Config struct {
	Endpoint     string // Optional endpoint; defaults to https://{region}.aliyuncs.com
	UsePathStyle bool   // Use path-style addressing (default: false)
}

// Remover is an ossgate.ObjectRemover over the S3 DeleteObject call
type Remover struct {
	config Config
}

var _ ossgate.ObjectRemover = (*Remover)(nil)

// New creates a new S3-compatible remover
func New(config Config) *Remover {
	return &Remover{config: config}
}

// Endpoint returns the endpoint requests for creds are sent to
func (r *Remover) Endpoint(creds ossgate.Credentials) string {
	if r.config.Endpoint != "" {
		return r.config.Endpoint
	}
	return fmt.Sprintf("https://%s.aliyuncs.com", creds.Region)
}

func (r *Remover) client(ctx context.Context, creds ossgate.Credentials) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(creds.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.AccessKeySecret,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r.Endpoint(creds))
		o.UsePathStyle = r.config.UsePathStyle
	}), nil
}

func (r *Remover) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	client, err := r.client(ctx, creds)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(creds.Bucket),
		Key:    aws.String(objectKey),
	})
	if err == nil {
		return nil
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		body := respErr.Error()
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			body = fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return &ossgate.BackendError{Status: respErr.HTTPStatusCode(), Body: body, Err: err}
	}
	return fmt.Errorf("s3 delete request failed: %w", err)
}
