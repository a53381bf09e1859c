package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const testToken = "secret-token"

type fakeAgent struct {
	reply   string
	err     error
	panics  bool
	query   string
	session string
}

func (f *fakeAgent) Process(ctx context.Context, query, sessionID string) (string, error) {
	f.query = query
	f.session = sessionID
	if f.panics {
		panic("nil scanner")
	}
	return f.reply, f.err
}

type storedMessage struct {
	session string
	msg     model.Message
}

type fakeHistory struct {
	stored []storedMessage
	err    error
}

func (f *fakeHistory) StoreMessage(ctx context.Context, sessionID string, msg model.Message) error {
	f.stored = append(f.stored, storedMessage{session: sessionID, msg: msg})
	return f.err
}

func newTestRouter(agent QueryProcessor, history HistoryStore, token func() (string, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	h := NewAgentHandler(agent, history)
	r.POST(AgentPath, BearerAuth(token), h.HandleQuery)
	r.GET("/health", GetHealth)
	r.GET("/", GetInfo)
	return r
}

func staticToken() (string, error) {
	return testToken, nil
}

func postQuery(r *gin.Engine, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, AgentPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) bool {
	t.Helper()
	var res AgentResponse
	err := json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, nil, err)
	return res.Success
}

func TestHandleQuery_Success(t *testing.T) {
	agent := &fakeAgent{reply: "Found 3 opportunities:"}
	history := &fakeHistory{}
	r := newTestRouter(agent, history, staticToken)

	w := postQuery(r, `{"query":"scan","user_id":"u","request_id":"r-1","session_id":"s-1"}`, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeSuccess(t, w))
	assert.Equal(t, "scan", agent.query)
	assert.Equal(t, "s-1", agent.session)

	assert.Equal(t, 2, len(history.stored))
	assert.Equal(t, storedMessage{session: "s-1", msg: model.Message{Type: model.MessageHuman, Content: "scan"}}, history.stored[0])
	assert.Equal(t, model.MessageAI, history.stored[1].msg.Type)
	assert.Equal(t, "Found 3 opportunities:", history.stored[1].msg.Content)
	assert.Equal(t, "r-1", history.stored[1].msg.Data["request_id"])
}

func TestHandleQuery_ProcessError(t *testing.T) {
	history := &fakeHistory{}
	r := newTestRouter(&fakeAgent{err: errors.New("scan cancelled")}, history, staticToken)

	w := postQuery(r, `{"query":"scan","request_id":"r-2","session_id":"s-1"}`, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeSuccess(t, w))
	assert.Equal(t, 2, len(history.stored))

	last := history.stored[1].msg
	assert.Equal(t, "I encountered an error: scan cancelled", last.Content)
	assert.Equal(t, "scan cancelled", last.Data["error"])
	assert.Equal(t, "r-2", last.Data["request_id"])
}

func TestHandleQuery_Panic(t *testing.T) {
	history := &fakeHistory{}
	r := newTestRouter(&fakeAgent{panics: true}, history, staticToken)

	w := postQuery(r, `{"query":"scan","session_id":"s-1"}`, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeSuccess(t, w))
	assert.Equal(t, "I encountered an error: panic: nil scanner", history.stored[1].msg.Content)
}

func TestHandleQuery_HistoryFailureIgnored(t *testing.T) {
	history := &fakeHistory{err: errors.New("db down")}
	r := newTestRouter(&fakeAgent{reply: "ok"}, history, staticToken)

	w := postQuery(r, `{"query":"scan","session_id":"s-1"}`, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeSuccess(t, w))
}

func TestHandleQuery_RequestIDFallback(t *testing.T) {
	history := &fakeHistory{}
	r := newTestRouter(&fakeAgent{reply: "ok"}, history, staticToken)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, AgentPath, strings.NewReader(`{"query":"scan","session_id":"s-1"}`))
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(RequestIDHeader, "hdr-9")
	r.ServeHTTP(w, req)

	assert.Equal(t, "hdr-9", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "hdr-9", history.stored[1].msg.Data["request_id"])
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `query=scan`},
		{name: "missing session", body: `{"query":"scan"}`},
		{name: "missing query", body: `{"session_id":"s-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &fakeAgent{}
			history := &fakeHistory{}
			r := newTestRouter(agent, history, staticToken)

			w := postQuery(r, tt.body, testToken)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, len(history.stored))
			assert.Equal(t, "", agent.query)
		})
	}
}
