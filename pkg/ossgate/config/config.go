package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/objectkey"
	"github.com/tendant/ossgate/pkg/ossgate/storage/aliyun"
	memorystorage "github.com/tendant/ossgate/pkg/ossgate/storage/memory"
	miniostorage "github.com/tendant/ossgate/pkg/ossgate/storage/minio"
	s3storage "github.com/tendant/ossgate/pkg/ossgate/storage/s3"
	"github.com/tendant/ossgate/pkg/ossgate/storage/signedurl"
)

// Delete backends selectable with OSS_DELETE_BACKEND
const (
	BackendSignedURL = "signed-url"
	BackendAliyunSDK = "aliyun-sdk"
	BackendS3        = "s3"
	BackendMinio     = "minio"
	BackendMemory    = "memory"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:             "8080",
		Environment:      "development",
		URLExpirySeconds: 60,
		KeyNamespace:     objectkey.DefaultNamespace,
		DeleteBackend:    BackendSignedURL,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ServerConfig represents configuration for the ossgate server and tools
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	Environment string `env:"ENVIRONMENT" env-default:"development" env-description:"development, production, testing"`

	URLExpirySeconds int    `env:"OSS_URL_EXPIRY_SECONDS" env-default:"60" env-description:"Validity of signed URLs in seconds"`
	KeyNamespace     string `env:"OSS_KEY_NAMESPACE" env-default:"snowfish" env-description:"Top-level prefix of object keys"`

	// Delete backend
	DeleteBackend  string `env:"OSS_DELETE_BACKEND" env-default:"signed-url" env-description:"signed-url, aliyun-sdk, s3, minio or memory"`
	Endpoint       string `env:"OSS_ENDPOINT" env-description:"Service endpoint override for SDK backends"`
	S3UsePathStyle bool   `env:"OSS_S3_USE_PATH_STYLE" env-default:"false" env-description:"Path-style addressing for the s3 backend"`

	Log LogConfig
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.URLExpirySeconds <= 0 {
		return fmt.Errorf("url expiry must be positive, got %d", c.URLExpirySeconds)
	}

	if c.KeyNamespace == "" || strings.Contains(c.KeyNamespace, "/") {
		return fmt.Errorf("key namespace must be a single non-empty path segment, got %q", c.KeyNamespace)
	}

	switch c.DeleteBackend {
	case BackendSignedURL, BackendAliyunSDK, BackendS3, BackendMinio, BackendMemory:
	default:
		return fmt.Errorf("unsupported delete backend %q", c.DeleteBackend)
	}

	return c.Log.Validate()
}

// URLExpiry returns the signed URL validity as a duration
func (c *ServerConfig) URLExpiry() time.Duration {
	return time.Duration(c.URLExpirySeconds) * time.Second
}

// BuildRemover creates the configured delete backend
func (c *ServerConfig) BuildRemover() (ossgate.ObjectRemover, error) {
	switch c.DeleteBackend {
	case BackendSignedURL:
		return signedurl.New(signedurl.WithExpiration(c.URLExpiry())), nil
	case BackendAliyunSDK:
		return aliyun.New(aliyun.WithEndpoint(c.Endpoint)), nil
	case BackendS3:
		return s3storage.New(s3storage.Config{Endpoint: c.Endpoint, UsePathStyle: c.S3UsePathStyle}), nil
	case BackendMinio:
		return miniostorage.New(miniostorage.Config{Endpoint: c.Endpoint}), nil
	case BackendMemory:
		return memorystorage.New(), nil
	default:
		return nil, fmt.Errorf("unsupported delete backend %q", c.DeleteBackend)
	}
}

// BuildService creates a Service instance from the server configuration.
// A nil source reads credentials from the environment on every request.
func (c *ServerConfig) BuildService(source ossgate.CredentialSource) (ossgate.Service, error) {
	if source == nil {
		source = EnvSource{}
	}

	remover, err := c.BuildRemover()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete backend: %w", err)
	}

	return ossgate.New(
		ossgate.WithCredentialSource(source),
		ossgate.WithRemover(remover),
		ossgate.WithExpiration(c.URLExpiry()),
		ossgate.WithKeyGenerator(&objectkey.SnowfishGenerator{Namespace: c.KeyNamespace, Now: time.Now}),
	)
}
