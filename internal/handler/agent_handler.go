package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

type QueryProcessor interface {
	Process(ctx context.Context, query, sessionID string) (string, error)
}

type HistoryStore interface {
	StoreMessage(ctx context.Context, sessionID string, msg model.Message) error
}

type AgentHandler struct {
	agent   QueryProcessor
	history HistoryStore
}

func NewAgentHandler(agent QueryProcessor, history HistoryStore) *AgentHandler {
	return &AgentHandler{agent: agent, history: history}
}

// HandleQuery runs one agent turn. The reply goes to the history store, not
// the response body; failures are reported as success=false with status 200.
func (h *AgentHandler) HandleQuery(c *gin.Context) {
	var req AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.RequestID == "" {
		req.RequestID = c.GetString(requestIDKey)
	}

	// History writes outlive a disconnected client.
	storeCtx := context.WithoutCancel(c.Request.Context())

	h.store(storeCtx, req.SessionID, model.Message{Type: model.MessageHuman, Content: req.Query})

	reply, err := h.process(c.Request.Context(), req)
	if err != nil {
		slog.Error("error processing request", "session_id", req.SessionID, "request_id", req.RequestID, "error", err)
		h.store(storeCtx, req.SessionID, model.Message{
			Type:    model.MessageAI,
			Content: fmt.Sprintf("I encountered an error: %v", err),
			Data:    map[string]any{"error": err.Error(), "request_id": req.RequestID},
		})
		c.JSON(http.StatusOK, AgentResponse{Success: false})
		return
	}

	h.store(storeCtx, req.SessionID, model.Message{
		Type:    model.MessageAI,
		Content: reply,
		Data:    map[string]any{"request_id": req.RequestID},
	})
	c.JSON(http.StatusOK, AgentResponse{Success: true})
}

func (h *AgentHandler) process(ctx context.Context, req AgentRequest) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.agent.Process(ctx, req.Query, req.SessionID)
}

func (h *AgentHandler) store(ctx context.Context, sessionID string, msg model.Message) {
	if err := h.history.StoreMessage(ctx, sessionID, msg); err != nil {
		slog.Error("failed to store message", "session_id", sessionID, "type", msg.Type, "error", err)
	}
}
