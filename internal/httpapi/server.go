package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autostream-agent/server/internal/agent/orchestrator"
	errx "github.com/autostream-agent/server/internal/core/error"
	"github.com/autostream-agent/server/internal/observability"
	logx "github.com/autostream-agent/server/pkg/logger"
)

const serviceName = "autostream-agent"

// Orchestrator is the slice of the dialogue core the transport needs.
type Orchestrator interface {
	HandleTurn(ctx context.Context, threadID, message string) (orchestrator.Reply, error)
	ResetThread(ctx context.Context, threadID string) error
}

type Server struct {
	orc Orchestrator
}

func New(orc Orchestrator) *Server {
	return &Server{orc: orc}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/webhook", s.handleWebhook)
	r.Post("/reset/{thread_id}", s.handleReset)

	return r
}

type webhookRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id"`
}

type webhookResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
	Intent   string `json:"intent,omitempty"`
	Status   string `json:"status"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, webhookResponse{
			Response: errx.InputErrorMessage,
			Status:   "error",
		})
		return
	}

	reply, err := s.orc.HandleTurn(r.Context(), req.ThreadID, req.Message)
	if err != nil {
		status, message := errorStatus(err)
		logx.Warn().Err(err).Str("thread_id", req.ThreadID).Msg("webhook turn failed")
		respondJSON(w, status, webhookResponse{
			Response: message,
			ThreadID: req.ThreadID,
			Status:   "error",
		})
		return
	}

	respondJSON(w, http.StatusOK, webhookResponse{
		Response: reply.Response,
		ThreadID: reply.ThreadID,
		Intent:   reply.Intent,
		Status:   "success",
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "thread_id")

	if err := s.orc.ResetThread(r.Context(), threadID); err != nil {
		status, message := errorStatus(err)
		respondJSON(w, status, map[string]any{
			"status":  "error",
			"message": message,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "Conversation reset for thread " + threadID,
		"thread_id": threadID,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "running",
		"endpoints": map[string]string{
			"webhook": "/webhook",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": serviceName,
	})
}

// errorStatus maps internal errors to an HTTP status and a safe message.
func errorStatus(err error) (int, string) {
	var appErr *errx.Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, errx.SystemErrorMessage
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}
