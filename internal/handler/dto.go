package handler

type AgentRequest struct {
	Query     string `json:"query" binding:"required"`
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
	SessionID string `json:"session_id" binding:"required"`
}

type AgentResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Agent  string `json:"agent"`
}

type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Endpoint    string `json:"endpoint"`
}
