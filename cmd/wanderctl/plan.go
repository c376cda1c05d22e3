package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	"wanderplan/internal/maps"
	"wanderplan/internal/photos"
	"wanderplan/internal/service"
	"wanderplan/internal/types"
)

var (
	planPrefs    types.Preferences
	planInterest string
	planNoPhotos bool
	planPrompt   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a trip plan without storing it",
	Long: `Runs the same prompt, model call, normalization and photo enrichment as the API
and prints the resulting plan. Uses the AI and Maps settings from the environment.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planPrefs.Destination, "destination", "d", "", "destination city or region")
	planCmd.Flags().IntVarP(&planPrefs.Days, "days", "n", 3, "trip length in days")
	planCmd.Flags().StringVar(&planPrefs.Budget, "budget", types.BudgetMedium, "low, medium or high")
	planCmd.Flags().StringVar(&planPrefs.Travelers, "travelers", "", "who is travelling, e.g. couple or family")
	planCmd.Flags().StringVar(&planInterest, "interests", "", "comma separated interests")
	planCmd.Flags().StringVar(&planPrefs.Language, "language", "", "language of the generated plan")
	planCmd.Flags().BoolVar(&planNoPhotos, "no-photos", false, "skip the Places photo lookup")
	planCmd.Flags().BoolVar(&planPrompt, "prompt-only", false, "print the prompt and exit")
	_ = planCmd.MarkFlagRequired("destination")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	prefs := planPrefs
	prefs.Interests = nil
	for _, s := range strings.Split(planInterest, ",") {
		if s = strings.TrimSpace(s); s != "" {
			prefs.Interests = append(prefs.Interests, s)
		}
	}
	prefs = prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return err
	}
	if planPrompt {
		fmt.Fprintln(cmd.OutOrStdout(), ai.BuildTripPrompt(prefs))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("ai provider: %w", err)
	}
	defer provider.Close()

	lookup, err := photoLookup(cfg, planNoPhotos)
	if err != nil {
		return err
	}

	planner := service.NewTripPlanner(service.TripPlannerDeps{
		Provider:        provider,
		Enricher:        photos.NewEnricher(lookup, logger),
		Logger:          logger,
		GenerateTimeout: cfg.AI.Timeout,
	})
	logger.Info("generating plan", zap.String("provider", provider.Name()), zap.String("destination", prefs.Destination))

	plan, err := planner.Generate(ctx, prefs)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// photoLookup returns the Places lookup, or one that never finds a photo when
// photos are disabled. Only the former needs a Places key.
func photoLookup(cfg config.Config, noPhotos bool) (photos.Lookup, error) {
	if noPhotos {
		return photos.LookupFunc(func(context.Context, string, string) (string, error) {
			return photos.NoPhoto, nil
		}), nil
	}
	if err := cfg.RequireMaps(); err != nil {
		return nil, err
	}
	return maps.NewPlacesService(cfg.Maps.APIKey, maps.PlacesOptions{
		MaxWidth: cfg.Maps.PhotoMaxWidth,
		Language: cfg.Maps.Language,
	})
}
