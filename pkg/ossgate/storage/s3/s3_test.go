package s3

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/ossgate/pkg/ossgate"
)

func testCredentials() ossgate.Credentials {
	return ossgate.Credentials{
		Bucket:          "demo-bucket",
		Region:          "oss-cn-hangzhou",
		AccessKeyID:     "LTAI5tExample",
		AccessKeySecret: "secret",
	}
}

func TestRemover_Endpoint(t *testing.T) {
	assert.Equal(t, "https://oss-cn-hangzhou.aliyuncs.com", New(Config{}).Endpoint(testCredentials()))
	assert.Equal(t, "http://localhost:9000", New(Config{Endpoint: "http://localhost:9000"}).Endpoint(testCredentials()))
}

func TestRemover_RemoveObject(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	remover := New(Config{Endpoint: server.URL, UsePathStyle: true})
	err := remover.RemoveObject(context.Background(), testCredentials(), "snowfish/1/files/123.jpg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/demo-bucket/snowfish/1/files/123.jpg", gotPath)
	assert.Contains(t, gotAuth, "AWS4-HMAC-SHA256 Credential=LTAI5tExample/")
}

func TestRemover_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
	}))
	defer server.Close()

	err := New(Config{Endpoint: server.URL, UsePathStyle: true}).
		RemoveObject(context.Background(), testCredentials(), "a.jpg")

	var backendErr *ossgate.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusForbidden, backendErr.Status)
	assert.Equal(t, "AccessDenied: Access Denied", backendErr.Body)
}
