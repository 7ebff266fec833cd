package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// WithEnv reads configuration from the environment.
//
//	PORT                    Server port (default: "8080")
//	ENVIRONMENT             Runtime environment (default: "development")
//	OSS_URL_EXPIRY_SECONDS  Signed URL validity (default: 60)
//	OSS_KEY_NAMESPACE       Object key prefix (default: "snowfish")
//	OSS_DELETE_BACKEND      signed-url | aliyun-sdk | s3 | minio | memory (default: signed-url)
//	OSS_ENDPOINT            Endpoint override for the SDK backends
//	OSS_S3_USE_PATH_STYLE   Path-style addressing for the s3 backend
//	LOG_LEVEL               debug | info | warn | error (default: info)
//	LOG_FORMAT              text | json (default: text)
//	LOG_FILE                Rotated log file; stderr when empty
//
// Credentials (OSS_BUCKET, OSS_REGION, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET)
// are not part of ServerConfig; EnvSource reads them per request.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// EnvSource reads OSS credentials from the environment each time it is asked
type EnvSource struct{}

func (EnvSource) Credentials(context.Context) (ossgate.Credentials, error) {
	var creds ossgate.Credentials
	if err := cleanenv.ReadEnv(&creds); err != nil {
		return ossgate.Credentials{}, fmt.Errorf("failed to read OSS credentials: %w", err)
	}
	return creds, nil
}

// Usage returns a description of every environment variable understood
func Usage() (string, error) {
	var cfg ServerConfig
	header := "Server configuration:"
	server, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return "", err
	}

	var creds ossgate.Credentials
	header = "OSS credentials:"
	credentials, err := cleanenv.GetDescription(&creds, &header)
	if err != nil {
		return "", err
	}

	return server + "\n\n" + credentials, nil
}
