package ossgate

import (
	"log/slog"
	"strings"

	"github.com/tendant/ossgate/pkg/ossgate/ossurl"
)

// Environment variable names of the credential values
const (
	EnvBucket          = "OSS_BUCKET"
	EnvRegion          = "OSS_REGION"
	EnvAccessKeyID     = "OSS_ACCESS_KEY_ID"
	EnvAccessKeySecret = "OSS_ACCESS_KEY_SECRET"
)

// Credentials identify a bucket and the key pair allowed to sign for it
type Credentials struct {
	Bucket          string `env:"OSS_BUCKET" env-description:"OSS bucket name"`
	Region          string `env:"OSS_REGION" env-description:"OSS region, e.g. oss-cn-hangzhou"`
	AccessKeyID     string `env:"OSS_ACCESS_KEY_ID" env-description:"OSS access key id"`
	AccessKeySecret string `env:"OSS_ACCESS_KEY_SECRET" env-description:"OSS access key secret"`
}

// Sanitize strips endpoint suffixes that are often pasted into the bucket
// and region values. Applying it twice changes nothing.
func (c Credentials) Sanitize() Credentials {
	c.Bucket = ossurl.SanitizeBucket(c.Bucket)
	c.Region = ossurl.SanitizeRegion(c.Region)
	return c
}

// Missing returns the environment names of absent values, in a fixed order
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, EnvAccessKeyID)
	}
	if c.AccessKeySecret == "" {
		missing = append(missing, EnvAccessKeySecret)
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, EnvBucket)
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, EnvRegion)
	}
	return missing
}

// Host returns the virtual-hosted bucket endpoint
func (c Credentials) Host() string {
	return ossurl.Host(c.Bucket, c.Region)
}

// KeyPreview returns the first five characters of the access key id followed by ***
func (c Credentials) KeyPreview() string {
	id := c.AccessKeyID
	if len(id) > 5 {
		id = id[:5]
	}
	return id + "***"
}

// LogValue keeps the secret out of logs
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", c.Bucket),
		slog.String("region", c.Region),
		slog.String("access_key_id", c.KeyPreview()),
		slog.Bool("has_secret", c.AccessKeySecret != ""),
	)
}
