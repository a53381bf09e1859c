package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	AgentName    = "saas-opportunity-bot"
	AgentVersion = "1.0.0"
	AgentPath    = "/api/saas-opportunity-agent"
)

func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Agent: AgentName})
}

func GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:        "SaaS Opportunity Bot",
		Version:     AgentVersion,
		Description: "Scans Hacker News for SaaS opportunities in high-value industries",
		Endpoint:    AgentPath,
	})
}
