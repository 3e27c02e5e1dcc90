package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Bhola-kumar/content-snatcher/internal/domain"
	"github.com/Bhola-kumar/content-snatcher/internal/service"
)

// Pipeline runs the fetch→publish flow. Satisfied by service.MediaService.
type Pipeline interface {
	Process(ctx context.Context, req service.UploadRequest) (*domain.PublishResult, error)
}

// CredentialChecker reports which platform credential variables are unset.
// Satisfied by publisher.YouTube.
type CredentialChecker interface {
	MissingCredentials() []string
}

// UploadHandler serves the synchronous URL-upload endpoint.
type UploadHandler struct {
	pipeline Pipeline
	creds    CredentialChecker
	logger   *slog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(pipeline Pipeline, creds CredentialChecker, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		pipeline: pipeline,
		creds:    creds,
		logger:   logger,
	}
}

// UploadRequest is the JSON request body for POST /url-upload.
type UploadRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
}

// UploadResponse is the JSON response for a successful upload.
type UploadResponse struct {
	OK      bool   `json:"ok"`
	VideoID string `json:"video_id"`
	Link    string `json:"link"`
}

// Upload handles POST /url-upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		writeDetail(w, http.StatusBadRequest, domain.ErrMissingURL.Error())
		return
	}

	privacy, err := domain.ParseVisibility(req.Privacy)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	// Credentials are checked before any fetch work so a misconfigured
	// deployment fails without touching the network or the disk.
	if missing := h.creds.MissingCredentials(); len(missing) > 0 {
		writeDetail(w, http.StatusInternalServerError, "missing platform credentials: "+strings.Join(missing, ", "))
		return
	}

	result, err := h.pipeline.Process(r.Context(), service.UploadRequest{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Privacy:     privacy,
	})
	if err != nil {
		h.logger.Error("url upload failed", "url", req.URL, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		OK:      true,
		VideoID: result.VideoID,
		Link:    result.ShareLink(),
	})
}
