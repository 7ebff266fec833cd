package ossgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/ossgate/pkg/ossgate/objectkey"
	"github.com/tendant/ossgate/pkg/ossgate/ossurl"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

// service implements the Service interface
type service struct {
	credentials CredentialSource
	keys        objectkey.Generator
	remover     ObjectRemover
	expiration  time.Duration
	now         func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithCredentialSource sets where credentials are read from on each request
func WithCredentialSource(source CredentialSource) Option {
	return func(s *service) {
		s.credentials = source
	}
}

// WithKeyGenerator replaces the snowfish key generator
func WithKeyGenerator(gen objectkey.Generator) Option {
	return func(s *service) {
		s.keys = gen
	}
}

// WithRemover sets the backend that performs deletes
func WithRemover(remover ObjectRemover) Option {
	return func(s *service) {
		s.remover = remover
	}
}

// WithExpiration sets how long upload URLs stay valid
func WithExpiration(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.expiration = d
		}
	}
}

// WithClock replaces time.Now for expiry computation
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keys:       objectkey.NewSnowfishGenerator(),
		expiration: presigned.DefaultExpiration,
		now:        time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.credentials == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	if s.remover == nil {
		return nil, fmt.Errorf("object remover is required")
	}

	return s, nil
}

func (s *service) IssueUploadURL(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.FileName == "" {
		return nil, ErrMissingFilename
	}
	if req.OwnerID == "" {
		return nil, ErrMissingOwnerID
	}

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	creds = creds.Sanitize()
	if missing := creds.Missing(); len(missing) > 0 {
		slog.Warn("upload: credentials incomplete", "missing", missing)
	}
	slog.Debug("upload: signing", "credentials", creds)

	objectKey := s.keys.GenerateKey(&objectkey.KeyMetadata{
		OwnerID:     req.OwnerID,
		OwnerType:   req.OwnerType,
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})

	signer := presigned.New(
		presigned.WithSecretKey(creds.AccessKeySecret),
		presigned.WithExpiration(s.expiration),
		presigned.WithClock(s.now),
	)
	expires := signer.Expires()
	signature, err := signer.SignRequest(presigned.SigningRequest{
		Verb:        presigned.VerbPut,
		ContentType: req.ContentType,
		Expires:     expires,
		Resource:    presigned.Resource(creds.Bucket, objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload: %w", err)
	}

	uploadURL, publicURL := ossurl.Build(creds.Bucket, creds.Region, objectKey, creds.AccessKeyID, expires, signature)

	slog.Info("upload: url issued", "object_key", objectKey, "owner_id", req.OwnerID, "expires", expires)

	return &UploadResult{
		UploadURL: uploadURL,
		PublicURL: publicURL,
		ObjectKey: objectKey,
		Expires:   expires,
	}, nil
}

func (s *service) DeleteObject(ctx context.Context, req DeleteRequest) (*DeleteResult, error) {
	if req.PublicURL == "" {
		return nil, ErrMissingPublicURL
	}

	objectKey, err := ossurl.ObjectKey(req.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicURL, err)
	}

	if req.DryRun {
		slog.Info("delete: dry run", "object_key", objectKey)
		return &DeleteResult{OK: true, ObjectKey: objectKey, Simulated: true}, nil
	}

	if objectKey == "" {
		return nil, ErrEmptyObjectKey
	}

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	slog.Debug("delete: credentials present",
		"access_key_id", creds.AccessKeyID != "",
		"access_key_secret", creds.AccessKeySecret != "",
		"bucket", creds.Bucket != "",
		"region", creds.Region != "",
	)
	if missing := creds.Missing(); len(missing) > 0 {
		return nil, &CredentialsError{Missing: missing}
	}
	creds = creds.Sanitize()

	if err := s.remover.RemoveObject(ctx, creds, objectKey); err != nil {
		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			slog.Error("delete: backend rejected", "object_key", objectKey, "status", backendErr.Status, "body", backendErr.Body)
		} else {
			slog.Error("delete: failed", "object_key", objectKey, "err", err)
		}
		return nil, err
	}

	slog.Info("delete: object removed", "object_key", objectKey, "bucket", creds.Bucket)
	return &DeleteResult{OK: true, ObjectKey: objectKey}, nil
}

// StaticCredentials is a CredentialSource that always returns the same values
type StaticCredentials Credentials

func (c StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(c), nil
}
