package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// OSSHandler serves the upload-URL and delete endpoints
type OSSHandler struct {
	service ossgate.Service
}

func NewOSSHandler(service ossgate.Service) *OSSHandler {
	return &OSSHandler{
		service: service,
	}
}

// Routes returns the router for the OSS endpoints
func (h *OSSHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(methodNotAllowed)
	r.Post("/get-oss-upload-url", h.IssueUploadURL)
	r.Post("/delete-oss-object", h.DeleteObject)
	return r
}

// UploadURLRequest represents the request for a signed upload URL
type UploadURLRequest struct {
	FileName    string  `json:"filename"`
	ContentType string  `json:"contentType,omitempty"`
	OwnerType   string  `json:"owner_type,omitempty"`
	OwnerID     OwnerID `json:"owner_id"`
}

// DeleteObjectRequest represents the request to delete an object by its public URL.
// DryRun is kept untyped: only a JSON true simulates the delete.
type DeleteObjectRequest struct {
	PublicURL string `json:"publicUrl"`
	DryRun    any    `json:"dryRun,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// IssueUploadURL returns a signed PUT URL for a new object
func (h *OSSHandler) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	var req UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Failed to decode request", "err", err)
		writeError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.service.IssueUploadURL(r.Context(), ossgate.UploadRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		OwnerType:   req.OwnerType,
		OwnerID:     string(req.OwnerID),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// DeleteObject deletes the object behind a public URL
func (h *OSSHandler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	var req DeleteObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Failed to decode request", "err", err)
		writeError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	dryRun, _ := req.DryRun.(bool)
	result, err := h.service.DeleteObject(r.Context(), ossgate.DeleteRequest{
		PublicURL: req.PublicURL,
		DryRun:    dryRun,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// handleServiceError maps service errors onto status codes and error bodies
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var backendErr *ossgate.BackendError

	switch {
	case errors.Is(err, ossgate.ErrMissingFilename),
		errors.Is(err, ossgate.ErrMissingOwnerID),
		errors.Is(err, ossgate.ErrMissingPublicURL),
		errors.Is(err, ossgate.ErrEmptyObjectKey):
		writeError(w, r, http.StatusBadRequest, ErrorResponse{Error: rootMessage(err)})
	case errors.Is(err, ossgate.ErrInvalidPublicURL):
		writeError(w, r, http.StatusBadRequest, ErrorResponse{Error: "Invalid publicUrl"})
	case errors.Is(err, ossgate.ErrMissingCredentials):
		slog.Error("OSS credentials missing", "err", err)
		writeError(w, r, http.StatusInternalServerError, ErrorResponse{Error: "Missing OSS secrets in environment"})
	case errors.As(err, &backendErr):
		writeError(w, r, http.StatusInternalServerError, ErrorResponse{
			Error:   "OSS delete failed",
			Status:  backendErr.Status,
			Details: backendErr.Body,
		})
	default:
		slog.Error("Request failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// rootMessage returns the message of the sentinel err matches
func rootMessage(err error) string {
	for _, sentinel := range []error{
		ossgate.ErrMissingFilename,
		ossgate.ErrMissingOwnerID,
		ossgate.ErrMissingPublicURL,
		ossgate.ErrEmptyObjectKey,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte("Method not allowed"))
}
