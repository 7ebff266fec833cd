// Package ossurl builds and parses Aliyun OSS object URLs.
//
// Objects are addressed virtual-host style: https://{bucket}.{region}.aliyuncs.com/{key}.
// A signed URL carries the OSS v1 query-string authentication parameters in a fixed
// order; a public URL is the same host and path without a query string.
package ossurl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Domain is the storage domain appended to bucket and region to form the host.
const Domain = "aliyuncs.com"

const domainSuffix = "." + Domain

// Query parameter names used by OSS query-string authentication.
const (
	ParamAccessKeyID = "OSSAccessKeyId"
	ParamExpires     = "Expires"
	ParamSignature   = "Signature"
)

// ErrInvalidURL is returned when a public URL cannot be mapped back to an object key
var ErrInvalidURL = errors.New("ossurl: invalid public URL")

// SanitizeRegion removes a storage-domain suffix mistakenly configured on a region,
// e.g. "oss-cn-hangzhou.aliyuncs.com" becomes "oss-cn-hangzhou".
func SanitizeRegion(region string) string {
	for strings.Contains(region, domainSuffix) {
		region = strings.Replace(region, domainSuffix, "", 1)
	}
	return strings.TrimSpace(region)
}

// SanitizeBucket reduces a bucket configured as a full host name
// ("my-bucket.oss-cn-hangzhou.aliyuncs.com") to the bare bucket name.
func SanitizeBucket(bucket string) string {
	if strings.Contains(bucket, domainSuffix) {
		bucket, _, _ = strings.Cut(bucket, ".")
	}
	return bucket
}

// Host returns the virtual-hosted endpoint for a sanitized bucket and region
func Host(bucket, region string) string {
	return fmt.Sprintf("%s.%s.%s", bucket, region, Domain)
}

// Public returns the unsigned URL of an object
func Public(bucket, region, objectKey string) string {
	u := url.URL{
		Scheme: "https",
		Host:   Host(bucket, region),
		Path:   "/" + objectKey,
	}
	u.RawPath = "/" + escapeKey(objectKey)
	return u.String()
}

// Signed returns the query-string authenticated URL of an object.
// Parameters are always emitted as OSSAccessKeyId, Expires, Signature.
func Signed(bucket, region, objectKey, accessKeyID string, expires int64, signature string) string {
	var b strings.Builder
	b.WriteString(Public(bucket, region, objectKey))
	b.WriteString("?" + ParamAccessKeyID + "=")
	b.WriteString(url.QueryEscape(accessKeyID))
	b.WriteString("&" + ParamExpires + "=")
	b.WriteString(strconv.FormatInt(expires, 10))
	b.WriteString("&" + ParamSignature + "=")
	b.WriteString(url.QueryEscape(signature))
	return b.String()
}

// Build returns the signed and public URLs for the same object
func Build(bucket, region, objectKey, accessKeyID string, expires int64, signature string) (signedURL, publicURL string) {
	return Signed(bucket, region, objectKey, accessKeyID, expires, signature), Public(bucket, region, objectKey)
}

// ObjectKey recovers the object key from a URL produced by Public or Signed.
// The path after the host has one leading "/" removed and is percent-decoded.
func ObjectKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, rawURL)
	}

	key, err := url.PathUnescape(strings.TrimPrefix(u.EscapedPath(), "/"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return key, nil
}

// escapeKey percent-encodes each path segment of an object key, keeping "/" separators.
// Keys made of letters, digits, "-", "_", "." and "/" are left untouched.
func escapeKey(objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
