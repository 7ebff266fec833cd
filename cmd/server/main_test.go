package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/ossgate/pkg/ossgate/config"
)

func TestRouter(t *testing.T) {
	t.Setenv("OSS_BUCKET", "demo-bucket")
	t.Setenv("OSS_REGION", "oss-cn-hangzhou.aliyuncs.com")
	t.Setenv("OSS_ACCESS_KEY_ID", "LTAI5tExample")
	t.Setenv("OSS_ACCESS_KEY_SECRET", "secret")

	cfg, err := config.Load(config.WithDeleteBackend(config.BackendMemory))
	require.NoError(t, err)
	svc, err := cfg.BuildService(config.EnvSource{})
	require.NoError(t, err)
	router := newRouter(svc)

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("upload url", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/get-oss-upload-url",
			strings.NewReader(`{"filename":"a.png","contentType":"image/png","owner_id":"1"}`))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://demo-bucket.oss-cn-hangzhou.aliyuncs.com/snowfish/1/files/")
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/delete-oss-object", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "Method not allowed", rec.Body.String())
	})
}
