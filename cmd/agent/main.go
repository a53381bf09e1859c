package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wizelements/saas-opportunity-bot/db"
	"github.com/wizelements/saas-opportunity-bot/internal/agent"
	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/handler"
	"github.com/wizelements/saas-opportunity-bot/internal/metrics"
	"github.com/wizelements/saas-opportunity-bot/internal/repository"
	"github.com/wizelements/saas-opportunity-bot/internal/scanner"
	"github.com/wizelements/saas-opportunity-bot/pkg/feeds"
	"github.com/wizelements/saas-opportunity-bot/pkg/llm"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	var history handler.HistoryStore = repository.NopHistoryRepository{}
	if url := db.DatabaseURL(); url != "" {
		if err := db.Connect(url); err != nil {
			slog.Error("error connecting to DB, conversation history disabled", "error", err)
		} else {
			defer db.Close()
			history = repository.NewHistoryRepository(db.DB)
		}
	} else {
		slog.Info("DATABASE_URL not set, conversation history disabled")
	}

	var cache agent.ScanCache = repository.NewMemoryScanCache()
	if url := os.Getenv("REDIS_URL"); url != "" {
		if err := db.ConnectRedis(context.Background(), url); err != nil {
			slog.Error("error connecting to Redis, caching scans in memory", "error", err)
		} else {
			defer db.CloseRedis()
			cache = repository.NewRedisScanCache(db.Redis)
		}
	}

	hn := feeds.NewHackerNewsClient(cfg.HTTPTimeout, cfg.HNRequestsPerSecond)
	extractor := scanner.NewHackerNewsExtractor(hn, scanner.NewMatcher(cfg.PainSignals, cfg.Industries), cfg)
	bot := agent.New(cfg, extractor, llm.NewFromEnv(), cache)
	agentHandler := handler.NewAgentHandler(bot, history)

	r := gin.Default()
	r.Use(handler.RequestID())
	r.Use(cors.New(corsConfig()))

	r.POST(handler.AgentPath, handler.BearerAuth(config.BearerToken), agentHandler.HandleQuery)
	r.GET("/health", handler.GetHealth)
	r.GET("/", handler.GetInfo)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	err = r.Run("0.0.0.0:" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// corsConfig allows any origin unless FRONTEND_URL pins the browser client.
func corsConfig() cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", handler.RequestIDHeader},
	}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		c.AllowOrigins = []string{"http://localhost:3000", frontendURL}
		c.AllowCredentials = true
	} else {
		c.AllowAllOrigins = true
	}

	slog.Info("AllowOrigins URL:", "urls", c.AllowOrigins, "all", c.AllowAllOrigins)
	return c
}
