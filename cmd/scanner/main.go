package main

import (
	"context"
	"fmt"
	"iter"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/export"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
	"github.com/wizelements/saas-opportunity-bot/internal/report"
	"github.com/wizelements/saas-opportunity-bot/internal/scanner"
	"github.com/wizelements/saas-opportunity-bot/pkg/feeds"
)

type source interface {
	Scan(ctx context.Context) iter.Seq[model.Opportunity]
}

var rule = strings.Repeat("=", 70)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Stdout carries the report.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger.With("run_id", uuid.NewString()))

	fmt.Println(rule)
	fmt.Println("SAAS OPPORTUNITY BOT")
	fmt.Println("Finding pain points in high-value industries...")
	fmt.Println(rule)

	slog.Info("starting scan", "industries", cfg.IndustryNames(), "subreddits", len(cfg.Subreddits), "output_dir", cfg.OutputDir)

	matcher := scanner.NewMatcher(cfg.PainSignals, cfg.Industries)
	reddit := scanner.NewRedditExtractor(feeds.NewRedditClient(cfg.HTTPTimeout, cfg.UserAgent), matcher, cfg)
	hn := scanner.NewHackerNewsExtractor(feeds.NewHackerNewsClient(cfg.HTTPTimeout, cfg.HNRequestsPerSecond), matcher, cfg)

	var all []model.Opportunity
	all = append(all, run(reddit, "\nReddit scan interrupted, continuing with HN...")...)
	all = append(all, run(hn, "\nHN scan interrupted...")...)

	if len(all) == 0 {
		fmt.Println("\nNo opportunities found. Try adjusting the configuration.")
		return
	}

	csvPath, jsonPath, err := export.Save(cfg.OutputDir, all, time.Now())
	if err != nil {
		slog.Error("error saving results", "dir", cfg.OutputDir, "error", err)
	} else {
		fmt.Printf("\n✓ Saved %d opportunities to:\n", len(all))
		fmt.Printf("  - %s\n", csvPath)
		fmt.Printf("  - %s\n", jsonPath)
	}

	report.PrintSummary(os.Stdout, all)
}

// run drains one source. Ctrl-C ends this source only; whatever was found
// before the interrupt is kept.
func run(src source, interrupted string) []model.Opportunity {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opps := scanner.Collect(src.Scan(ctx), func(o model.Opportunity) {
		fmt.Printf("  Found: %s...\n", model.Truncate(o.Title, 50))
	})

	if ctx.Err() != nil {
		fmt.Println(interrupted)
	}
	return opps
}
