package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"fragrancerater/adapters/api"
	"fragrancerater/adapters/llm"
	"fragrancerater/adapters/postgres"
	"fragrancerater/ai"
	"fragrancerater/app"
	"fragrancerater/domain/recommend"
	"fragrancerater/internal"
	"fragrancerater/internal/config"
	"fragrancerater/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := internal.NewDefaultLogger()

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database:", err)
		os.Exit(1)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	ratingsRepo := postgres.NewRatingsRepository(db, catalogRepo)

	scoringCfg := recommend.DefaultConfig()
	scoringCfg.MinEvaluations = cfg.Scoring.MinEvaluations
	scoringCfg.VetoThreshold = cfg.Scoring.VetoThreshold
	scoringCfg.DefaultLimit = cfg.Scoring.DefaultLimit

	var llmClient ports.LLMClient
	llmEnabled := cfg.LLM.APIKey != ""
	if llmEnabled {
		llmClient = llm.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, 30*time.Second)
	}

	explainAdapter := ai.NewExplanationAdapter(llmClient, ai.Config{
		Enabled:     llmEnabled,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, log)

	recommendService := app.NewRecommendationService(catalogRepo, ratingsRepo, scoringCfg)
	profileService := app.NewProfileService(ratingsRepo, scoringCfg)
	explanationService := app.NewExplanationService(catalogRepo, ratingsRepo, profileService, explainAdapter, scoringCfg)
	ratingStatsService := app.NewRatingStatsService(ratingsRepo)

	server := api.NewServer(recommendService, profileService, explanationService, ratingStatsService)

	addr := ":" + cfg.Server.Port
	log.Info("starting api server on %s", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Error("server failed: %v", err)
		os.Exit(1)
	}
}
