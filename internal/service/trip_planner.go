// README: Trip planner orchestration: quota, prompt, model, normalize, photo enrichment, persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/ai"
	"wanderplan/internal/metrics"
	"wanderplan/internal/modules/trip"
	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

var (
	ErrInvalidPreferences = errors.New("invalid trip preferences")
	// ErrGenerationFailed wraps transport or provider errors from the model call.
	ErrGenerationFailed = errors.New("plan generation failed")
)

// DefaultGenerateTimeout bounds a single model call.
const DefaultGenerateTimeout = 90 * time.Second

// PhotoEnricher fills photo fields of a plan in place.
type PhotoEnricher interface {
	Enrich(ctx context.Context, plan tripplan.TripPlan, destination string) error
}

// TripRepository is the subset of trip.Service the planner needs.
type TripRepository interface {
	Create(ctx context.Context, cmd trip.CreateCommand) (*trip.Trip, error)
	Get(ctx context.Context, userID string, id types.ID) (*trip.Trip, error)
	Save(ctx context.Context, t *trip.Trip) error
}

// CreditLedger is the subset of aiusage.Service the planner needs.
type CreditLedger interface {
	UseCredit(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
}

type TripPlannerDeps struct {
	Provider ai.Provider
	Enricher PhotoEnricher
	Trips    TripRepository
	// Credits may be nil, in which case generation is unmetered.
	Credits         CreditLedger
	Logger          *zap.Logger
	GenerateTimeout time.Duration
}

// TripPlanner turns traveler preferences into a stored, photo-enriched trip.
type TripPlanner struct {
	provider ai.Provider
	enricher PhotoEnricher
	trips    TripRepository
	credits  CreditLedger
	logger   *zap.Logger
	timeout  time.Duration
}

func NewTripPlanner(deps TripPlannerDeps) *TripPlanner {
	p := &TripPlanner{
		provider: deps.Provider,
		enricher: deps.Enricher,
		trips:    deps.Trips,
		credits:  deps.Credits,
		logger:   deps.Logger,
		timeout:  deps.GenerateTimeout,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.timeout <= 0 {
		p.timeout = DefaultGenerateTimeout
	}
	return p
}

// PlanTrip generates, enriches and stores a trip for userID. One plan credit
// is consumed up front and refunded if nothing gets stored.
func (p *TripPlanner) PlanTrip(ctx context.Context, userID string, prefs types.Preferences) (*trip.Trip, error) {
	prefs = prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}

	if p.credits != nil {
		if err := p.credits.UseCredit(ctx, userID); err != nil {
			return nil, err
		}
	}

	plan, err := p.Generate(ctx, prefs)
	if err != nil {
		p.refund(ctx, userID)
		return nil, err
	}

	t, err := p.trips.Create(ctx, trip.CreateCommand{UserID: userID, Preferences: prefs, Plan: plan})
	if err != nil {
		p.refund(ctx, userID)
		return nil, err
	}
	return t, nil
}

// Generate runs prompt, model, normalizer and enricher without persisting.
func (p *TripPlanner) Generate(ctx context.Context, prefs types.Preferences) (tripplan.TripPlan, error) {
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, p.timeout)
	raw, err := p.provider.GenerateText(genCtx, ai.BuildTripPrompt(prefs))
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	metrics.PlansGenerated.WithLabelValues(p.provider.Name()).Inc()

	plan, err := tripplan.Normalize(raw)
	metrics.ObserveNormalize(err)
	if err != nil {
		p.logger.Warn("model response rejected",
			zap.String("provider", p.provider.Name()),
			zap.String("destination", prefs.Destination),
			zap.Int("raw_len", len(raw)),
			zap.Error(err))
		return nil, err
	}

	if err := p.enricher.Enrich(ctx, plan, enrichContext(prefs, plan)); err != nil {
		return nil, err
	}

	p.logger.Info("plan generated",
		zap.String("provider", p.provider.Name()),
		zap.String("destination", prefs.Destination),
		zap.Int("days", prefs.Days),
		zap.Duration("elapsed", time.Since(start)))
	return plan, nil
}

// RegeneratePhotos re-runs enrichment on a stored trip and saves the result.
func (p *TripPlanner) RegeneratePhotos(ctx context.Context, userID string, id types.ID) (*trip.Trip, error) {
	t, err := p.trips.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := p.enricher.Enrich(ctx, t.Plan, enrichContext(t.Preferences, t.Plan)); err != nil {
		return nil, err
	}
	if err := p.trips.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *TripPlanner) refund(ctx context.Context, userID string) {
	if p.credits == nil {
		return
	}
	if err := p.credits.Refund(context.WithoutCancel(ctx), userID); err != nil {
		p.logger.Error("plan credit refund failed", zap.String("uid", userID), zap.Error(err))
	}
}

func enrichContext(prefs types.Preferences, plan tripplan.TripPlan) string {
	if prefs.Destination != "" {
		return prefs.Destination
	}
	return plan.Destination()
}
