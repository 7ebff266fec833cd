package ossgate

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_Missing(t *testing.T) {
	full := Credentials{Bucket: "b", Region: "r", AccessKeyID: "id", AccessKeySecret: "s"}
	assert.Empty(t, full.Missing())

	assert.Equal(t, []string{EnvAccessKeyID, EnvAccessKeySecret, EnvBucket, EnvRegion}, Credentials{}.Missing())
	assert.Equal(t, []string{EnvRegion}, Credentials{Bucket: "b", Region: " ", AccessKeyID: "id", AccessKeySecret: "s"}.Missing())
}

func TestCredentials_Sanitize(t *testing.T) {
	c := Credentials{
		Bucket: "demo.oss-cn-hangzhou.aliyuncs.com",
		Region: "oss-cn-hangzhou.aliyuncs.com",
	}.Sanitize()
	assert.Equal(t, "demo", c.Bucket)
	assert.Equal(t, "oss-cn-hangzhou", c.Region)
	assert.Equal(t, c, c.Sanitize())
	assert.Equal(t, "demo.oss-cn-hangzhou.aliyuncs.com", c.Host())
}

func TestCredentials_KeyPreview(t *testing.T) {
	assert.Equal(t, "LTAI5***", Credentials{AccessKeyID: "LTAI5tExample"}.KeyPreview())
	assert.Equal(t, "abc***", Credentials{AccessKeyID: "abc"}.KeyPreview())
	assert.Equal(t, "***", Credentials{}.KeyPreview())
}

func TestCredentials_LogValueHidesSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("creds", "credentials", Credentials{
		Bucket: "b", Region: "r", AccessKeyID: "LTAI5tExample", AccessKeySecret: "super-secret",
	})

	out := buf.String()
	assert.NotContains(t, out, "super-secret")
	assert.NotContains(t, out, "LTAI5tExample")
	assert.Contains(t, out, "credentials.access_key_id=LTAI5***")
	assert.Contains(t, out, "credentials.has_secret=true")
}
