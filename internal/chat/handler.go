package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/healthplug/pharmabot/pkg/logging"
)

// Handler exposes the dialogue manager over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// MessageRequest is the request body for an inbound chat message.
type MessageRequest struct {
	Text     string `json:"text"`
	SenderID string `json:"sender_id"`
}

// HandleMessage classifies one inbound message.
// POST /chat/messages
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	req.SenderID = strings.TrimSpace(req.SenderID)
	if req.SenderID == "" {
		jsonError(w, "sender_id is required", http.StatusBadRequest)
		return
	}

	result := h.service.Process(r.Context(), req.Text, req.SenderID)
	writeJSON(w, http.StatusOK, result)
}

// HealthCheck reports liveness.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
