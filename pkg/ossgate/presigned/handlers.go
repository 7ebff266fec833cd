package presigned

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ErrObjectNotFound is returned by a Store for keys it does not hold
var ErrObjectNotFound = errors.New("presigned: object not found")

// Store is the object storage behind Handlers
type Store interface {
	PutObject(ctx context.Context, objectKey, contentType string, body io.Reader) error
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// Handlers serves one bucket the way OSS serves signed URLs: PUT, GET and DELETE
// on /{objectKey} authenticated by OSSAccessKeyId, Expires and Signature.
// It stands in for the real endpoint in tests and local runs.
type Handlers struct {
	store       Store
	signer      *Signer
	bucket      string
	accessKeyID string
}

// NewHandlers creates handlers for bucket, validating with accessKeyID and signer
func NewHandlers(store Store, bucket, accessKeyID string, signer *Signer) *Handlers {
	return &Handlers{
		store:       store,
		signer:      signer,
		bucket:      bucket,
		accessKeyID: accessKeyID,
	}
}

// Routes returns the router for the emulated bucket
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(ValidateMiddleware(h.signer, h.bucket, h.accessKeyID))
	r.Put("/*", h.HandlePut)
	r.Get("/*", h.HandleGet)
	r.Delete("/*", h.HandleDelete)
	return r
}

// HandlePut stores the request body under the signed object key
func (h *Handlers) HandlePut(w http.ResponseWriter, r *http.Request) {
	objectKey := ObjectKeyFromContext(r.Context())

	if err := h.store.PutObject(r.Context(), objectKey, r.Header.Get("Content-Type"), r.Body); err != nil {
		slog.Error("presigned: put failed", "object_key", objectKey, "err", err)
		writeOSSError(w, r, http.StatusInternalServerError, "InternalError", "Failed to store object.")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleGet streams the object back
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	objectKey := ObjectKeyFromContext(r.Context())

	rc, contentType, err := h.store.GetObject(r.Context(), objectKey)
	if errors.Is(err, ErrObjectNotFound) {
		writeOSSError(w, r, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
		return
	}
	if err != nil {
		slog.Error("presigned: get failed", "object_key", objectKey, "err", err)
		writeOSSError(w, r, http.StatusInternalServerError, "InternalError", "Failed to read object.")
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("presigned: get copy error", "object_key", objectKey, "err", err)
	}
}

// HandleDelete removes the object. Like OSS, deleting a missing key succeeds.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	objectKey := ObjectKeyFromContext(r.Context())

	err := h.store.DeleteObject(r.Context(), objectKey)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		slog.Error("presigned: delete failed", "object_key", objectKey, "err", err)
		writeOSSError(w, r, http.StatusInternalServerError, "InternalError", "Failed to delete object.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ossError is the XML error document OSS returns
type ossError struct {
	XMLName xml.Name `xml:"Error"`
	Code    string   `xml:"Code"`
	Message string   `xml:"Message"`
}

func writeOSSError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.XML(w, r, ossError{Code: code, Message: message})
}
