package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostream-agent/server/internal/agent/orchestrator"
	errx "github.com/autostream-agent/server/internal/core/error"
)

type stubOrchestrator struct {
	reply    orchestrator.Reply
	turnErr  error
	resetErr error

	gotThreadID string
	gotMessage  string
	resetThread string
}

func (s *stubOrchestrator) HandleTurn(_ context.Context, threadID, message string) (orchestrator.Reply, error) {
	s.gotThreadID = threadID
	s.gotMessage = message
	if s.turnErr != nil {
		return orchestrator.Reply{}, s.turnErr
	}
	return s.reply, nil
}

func (s *stubOrchestrator) ResetThread(_ context.Context, threadID string) error {
	s.resetThread = threadID
	return s.resetErr
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestWebhookSuccess(t *testing.T) {
	stub := &stubOrchestrator{reply: orchestrator.Reply{
		Response: "Hi there!",
		ThreadID: "t1",
		Intent:   "greeting",
	}}
	router := New(stub).Router()

	rec := postJSON(t, router, "/webhook", `{"message":"Hi","thread_id":"t1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp webhookResponse
	decode(t, rec, &resp)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Hi there!", resp.Response)
	assert.Equal(t, "t1", resp.ThreadID)
	assert.Equal(t, "greeting", resp.Intent)

	assert.Equal(t, "t1", stub.gotThreadID)
	assert.Equal(t, "Hi", stub.gotMessage)
}

func TestWebhookInputErrorMapsTo400(t *testing.T) {
	stub := &stubOrchestrator{
		turnErr: errx.NewInput(errors.New("missing thread_id"), "thread_id is required"),
	}
	router := New(stub).Router()

	rec := postJSON(t, router, "/webhook", `{"message":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp webhookResponse
	decode(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "thread_id is required", resp.Response)
}

func TestWebhookMalformedBody(t *testing.T) {
	stub := &stubOrchestrator{}
	router := New(stub).Router()

	rec := postJSON(t, router, "/webhook", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp webhookResponse
	decode(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.Empty(t, stub.gotMessage, "orchestrator never invoked")
}

func TestWebhookUnexpectedErrorMapsTo500(t *testing.T) {
	stub := &stubOrchestrator{turnErr: errors.New("boom")}
	router := New(stub).Router()

	rec := postJSON(t, router, "/webhook", `{"message":"Hi","thread_id":"t1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp webhookResponse
	decode(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, errx.SystemErrorMessage, resp.Response)
}

func TestResetEndpoint(t *testing.T) {
	stub := &stubOrchestrator{}
	router := New(stub).Router()

	rec := postJSON(t, router, "/reset/t1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", stub.resetThread)

	var resp map[string]any
	decode(t, rec, &resp)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "t1", resp["thread_id"])
}

func TestHealthAndRoot(t *testing.T) {
	router := New(&stubOrchestrator{}).Router()

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), serviceName, path)
	}
}
