package presigned

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept for diagnostics
const maxErrorBody = 64 << 10

// Client performs requests against signed URLs.
// Every call is a single attempt; failures are returned to the caller.
type Client struct {
	httpClient   *http.Client
	progressFunc ProgressFunc
}

// ProgressFunc is called during upload to report progress
// It receives the number of bytes uploaded so far
type ProgressFunc func(bytesUploaded int64)

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// NewClient creates a new signed URL client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithProgress sets a progress callback function
func WithProgress(fn ProgressFunc) ClientOption {
	return func(c *Client) {
		c.progressFunc = fn
	}
}

// Upload PUTs data to a signed upload URL.
// The content type must equal the one the URL was signed with; an empty
// content type sends no Content-Type header.
//
// Example:
//
//	client := presigned.NewClient()
//	err := client.Upload(ctx, uploadURL, file, presigned.WithContentType("image/png"))
func (c *Client) Upload(ctx context.Context, signedURL string, data io.Reader, opts ...UploadOption) error {
	uploadOpts := &uploadOptions{}
	for _, opt := range opts {
		opt(uploadOpts)
	}

	// Wrap reader with progress tracking if enabled
	reader := data
	if c.progressFunc != nil {
		reader = &progressReader{
			reader:   data,
			callback: c.progressFunc,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, reader)
	if err != nil {
		return fmt.Errorf("presigned: failed to create upload request: %w", err)
	}
	if uploadOpts.contentType != "" {
		req.Header.Set("Content-Type", uploadOpts.contentType)
	}
	if uploadOpts.contentLength > 0 {
		req.ContentLength = uploadOpts.contentLength
	}

	return c.do(req)
}

// Delete issues one DELETE against a signed delete URL
func (c *Client) Delete(ctx context.Context, signedURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, signedURL, nil)
	if err != nil {
		return fmt.Errorf("presigned: failed to create delete request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("presigned: %s request failed: %w", req.Method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("presigned: reading %s error response: %w", req.Method, err)
	}

	return &StatusError{
		Method:     req.Method,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// uploadOptions contains upload configuration
type uploadOptions struct {
	contentType   string
	contentLength int64
}

// UploadOption is a functional option for Upload method
type UploadOption func(*uploadOptions)

// WithContentType sets the Content-Type header for the upload
func WithContentType(contentType string) UploadOption {
	return func(o *uploadOptions) {
		o.contentType = contentType
	}
}

// WithContentLength sets the request length when the reader's size is known
func WithContentLength(n int64) UploadOption {
	return func(o *uploadOptions) {
		o.contentLength = n
	}
}

// progressReader wraps an io.Reader to track upload progress
type progressReader struct {
	reader    io.Reader
	bytesRead int64
	callback  ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.callback != nil && n > 0 {
		pr.callback(pr.bytesRead)
	}
	return n, err
}
