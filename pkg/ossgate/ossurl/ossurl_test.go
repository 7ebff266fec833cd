package ossurl

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRegion(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		expected string
	}{
		{"bare region", "oss-cn-hangzhou", "oss-cn-hangzhou"},
		{"with domain", "oss-cn-hangzhou.aliyuncs.com", "oss-cn-hangzhou"},
		{"with domain and spaces", " oss-cn-beijing.aliyuncs.com ", "oss-cn-beijing"},
		{"domain repeated", "oss-cn-shanghai.aliyuncs.com.aliyuncs.com", "oss-cn-shanghai"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeRegion(tt.region)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, SanitizeRegion(got), "sanitizing twice must be a no-op")
		})
	}
}

func TestSanitizeBucket(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		expected string
	}{
		{"bare bucket", "snowfish-media", "snowfish-media"},
		{"full host", "snowfish-media.oss-cn-hangzhou.aliyuncs.com", "snowfish-media"},
		{"bucket with domain only", "snowfish-media.aliyuncs.com", "snowfish-media"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeBucket(tt.bucket)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, SanitizeBucket(got), "sanitizing twice must be a no-op")
		})
	}
}

func TestHost(t *testing.T) {
	assert.Equal(t, "b.oss-cn-hangzhou.aliyuncs.com", Host("b", SanitizeRegion("oss-cn-hangzhou.aliyuncs.com")))
}

func TestBuild(t *testing.T) {
	signed, public := Build("b", "oss-cn-hangzhou", "snowfish/42/avatar/1700000000000.png", "LTAI5tExample", 1700000060, "ab+c/d=")

	assert.Equal(t, "https://b.oss-cn-hangzhou.aliyuncs.com/snowfish/42/avatar/1700000000000.png", public)
	assert.Equal(t,
		"https://b.oss-cn-hangzhou.aliyuncs.com/snowfish/42/avatar/1700000000000.png"+
			"?OSSAccessKeyId=LTAI5tExample&Expires=1700000060&Signature=ab%2Bc%2Fd%3D",
		signed)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "ab+c/d=", u.Query().Get(ParamSignature))

	pub, err := url.Parse(public)
	require.NoError(t, err)
	assert.Equal(t, u.Host, pub.Host)
	assert.Equal(t, u.EscapedPath(), pub.EscapedPath())
	assert.Empty(t, pub.RawQuery)
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
		wantErr  bool
	}{
		{"plain key", "https://b.r.aliyuncs.com/snowfish/1/files/123.jpg", "snowfish/1/files/123.jpg", false},
		{"encoded key", "https://b.r.aliyuncs.com/snowfish/1/files/a%20b.jpg", "snowfish/1/files/a b.jpg", false},
		{"query string ignored", "https://b.r.aliyuncs.com/k.png?OSSAccessKeyId=x&Expires=1&Signature=y", "k.png", false},
		{"root url", "https://b.r.aliyuncs.com/", "", false},
		{"no path", "https://b.r.aliyuncs.com", "", false},
		{"relative url", "snowfish/1/files/123.jpg", "", true},
		{"no host", "https:///snowfish/1.jpg", "", true},
		{"bad escape", "https://b.r.aliyuncs.com/a%zz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectKey(tt.rawURL)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestObjectKey_RoundTrip(t *testing.T) {
	keys := []string{
		"snowfish/42/avatar/1700000000000.png",
		"snowfish/7/videos/1700000000000.mp4",
		"snowfish/7/files/1700000000000",
		"snowfish/user 1/files/1700000000000.tar.gz",
		"snowfish/用户/cover/1700000000000.jpg",
		"snowfish/a+b/files/1700000000000.jpg",
		"snowfish/100%/files/1700000000000.jpg",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			got, err := ObjectKey(Public("b", "oss-cn-hangzhou", key))
			require.NoError(t, err)
			assert.Equal(t, key, got)

			signed := Signed("b", "oss-cn-hangzhou", key, "id", 1, "sig")
			got, err = ObjectKey(signed)
			require.NoError(t, err)
			assert.Equal(t, key, got)
		})
	}
}
