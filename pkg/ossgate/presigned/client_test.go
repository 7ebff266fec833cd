package presigned_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

func TestClient_Upload(t *testing.T) {
	var gotMethod, gotContentType, gotBody string
	var hasContentType bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_, hasContentType = r.Header["Content-Type"]
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Run("with content type", func(t *testing.T) {
		var progress int64
		client := presigned.NewClient(presigned.WithProgress(func(n int64) { progress = n }))

		err := client.Upload(context.Background(), server.URL+"/a.png", strings.NewReader("png-bytes"),
			presigned.WithContentType("image/png"),
			presigned.WithContentLength(9))
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "image/png", gotContentType)
		assert.Equal(t, "png-bytes", gotBody)
		assert.Equal(t, int64(9), progress)
	})

	t.Run("empty content type sends no header", func(t *testing.T) {
		client := presigned.NewClient()
		err := client.Upload(context.Background(), server.URL+"/a", strings.NewReader("x"))
		require.NoError(t, err)
		assert.False(t, hasContentType)
	})
}

func TestClient_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		err := presigned.NewClient().Delete(context.Background(), server.URL+"/key")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("backend error is not retried", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<Error><Code>SignatureDoesNotMatch</Code></Error>"))
		}))
		defer server.Close()

		err := presigned.NewClient().Delete(context.Background(), server.URL+"/key")
		require.Error(t, err)

		var statusErr *presigned.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
		assert.Equal(t, http.MethodDelete, statusErr.Method)
		assert.Contains(t, statusErr.Body, "SignatureDoesNotMatch")
		assert.Equal(t, 1, calls)
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		err := presigned.NewClient().Delete(context.Background(), url+"/key")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "presigned: DELETE request failed")

		var statusErr *presigned.StatusError
		assert.False(t, errors.As(err, &statusErr))
	})
}
