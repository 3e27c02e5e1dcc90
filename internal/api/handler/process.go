package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Bhola-kumar/content-snatcher/internal/transform"
)

// ProcessHandler serves the generic text-processing endpoint.
type ProcessHandler struct{}

// NewProcessHandler creates a new process handler.
func NewProcessHandler() *ProcessHandler {
	return &ProcessHandler{}
}

// ProcessRequest is the JSON request body for POST /process.
type ProcessRequest struct {
	Text string `json:"text"`
}

// ProcessResponse is the JSON response for POST /process.
type ProcessResponse struct {
	Result string `json:"result"`
}

// Process handles POST /process.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{Result: transform.Process(req.Text)})
}
