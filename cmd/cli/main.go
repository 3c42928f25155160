package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fragrancerater/adapters/api"
	"fragrancerater/adapters/excel"
	"fragrancerater/adapters/llm"
	"fragrancerater/adapters/postgres"
	"fragrancerater/ai"
	"fragrancerater/app"
	"fragrancerater/domain/core"
	"fragrancerater/domain/recommend"
	"fragrancerater/internal"
	"fragrancerater/internal/config"
	"fragrancerater/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fragrancerater-cli",
		Short: "CLI for the fragrance preference and recommendation engine",
	}

	rootCmd.AddCommand(
		newRecommendCmd(),
		newProfileCmd(),
		newImportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRecommendCmd() *cobra.Command {
	var limit int
	var excludeRated bool

	cmd := &cobra.Command{
		Use:   "recommend [reviewer-id]",
		Short: "Rank candidate fragrances against a reviewer's profile",
		Long: `Recommend builds the reviewer's Affinity Profile from their evaluation
history, scores every catalog candidate against it, and prints the
ranked result (spec §4.3).

Example: fragrancerater-cli recommend rev-123 --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd.Context(), core.ReviewerID(args[0]), limit, excludeRated)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "max recommendations to return (0 uses the engine default)")
	cmd.Flags().BoolVar(&excludeRated, "exclude-rated", true, "exclude fragrances the reviewer has already rated")

	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [reviewer-id]",
		Short: "Print a reviewer's derived Affinity Profile",
		Long: `Profile prints the note, accord and family affinities accumulated
from a reviewer's rating history (spec §4.4).

Example: fragrancerater-cli profile rev-123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd.Context(), core.ReviewerID(args[0]))
		},
	}

	return cmd
}

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk-import a fragrance catalog from a CSV or XLSX file",
		Long: `Import reads a Kaggle-style fragrance export and upserts each row's
notes, accords and fragrance record into the catalog (SPEC_FULL.md
§11.3).

Example: fragrancerater-cli import catalog.xlsx --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without writing to the catalog")

	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Serve loads configuration from the environment and starts the chi-routed HTTP API (SPEC_FULL.md §11.4).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	return cmd
}

func runRecommend(ctx context.Context, reviewerID core.ReviewerID, limit int, excludeRated bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	ratingsRepo := postgres.NewRatingsRepository(db, catalogRepo)
	scoringCfg := scoringConfigFrom(cfg)

	service := app.NewRecommendationService(catalogRepo, ratingsRepo, scoringCfg)
	recs, err := service.Recommend(ctx, app.RecommendationRequest{
		ReviewerID:   reviewerID,
		Limit:        limit,
		ExcludeRated: excludeRated,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recommendations for %s:\n", reviewerID)
	for i, r := range recs {
		if r.Match.Vetoed {
			fmt.Printf("%2d. %-30s %-20s  VETOED (%s)\n", i+1, r.Fragrance.Name, r.Fragrance.Brand, r.Match.VetoNote)
			continue
		}
		fmt.Printf("%2d. %-30s %-20s  %3d%%\n", i+1, r.Fragrance.Name, r.Fragrance.Brand, r.Match.ScorePercent)
	}
	return nil
}

func runProfile(ctx context.Context, reviewerID core.ReviewerID) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	ratingsRepo := postgres.NewRatingsRepository(db, catalogRepo)
	service := app.NewProfileService(ratingsRepo, scoringConfigFrom(cfg))

	summary, err := service.GetProfile(ctx, reviewerID)
	if err != nil {
		return err
	}

	fmt.Printf("Profile for %s (%d evaluations)\n", summary.ReviewerID, summary.EvaluationCount)
	fmt.Println("Top liked notes:")
	for _, n := range summary.TopLikedNotes {
		fmt.Printf("  %-20s %+.2f\n", n.Name, n.Score)
	}
	fmt.Println("Top disliked notes:")
	for _, n := range summary.TopDislikedNotes {
		fmt.Printf("  %-20s %+.2f\n", n.Name, n.Score)
	}
	fmt.Println("Top accords:")
	for _, a := range summary.TopAccords {
		fmt.Printf("  %-20s %+.2f\n", a.Key, a.Score)
	}
	fmt.Println("Top families:")
	for _, f := range summary.TopFamilies {
		fmt.Printf("  %-20s %+.2f\n", f.Key, f.Score)
	}
	return nil
}

func runImport(ctx context.Context, file string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	importer := excel.NewImporter(catalogRepo)

	result, err := importer.ImportFile(ctx, file, dryRun)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Total rows: %d | Imported: %d | Skipped: %d\n", result.TotalRows, result.Imported, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "  -", e)
	}
	return nil
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := internal.NewDefaultLogger()

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	ratingsRepo := postgres.NewRatingsRepository(db, catalogRepo)
	scoringCfg := scoringConfigFrom(cfg)

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
	return http.ListenAndServe(addr, server)
}

func scoringConfigFrom(cfg *config.Config) recommend.Config {
	c := recommend.DefaultConfig()
	c.MinEvaluations = cfg.Scoring.MinEvaluations
	c.VetoThreshold = cfg.Scoring.VetoThreshold
	c.DefaultLimit = cfg.Scoring.DefaultLimit
	return c
}
