package trip

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

// Service enforces ownership on top of a Store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Create stores a freshly generated plan under a new id.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.UserID == "" || cmd.Plan == nil {
		return nil, ErrBadRequest
	}
	now := s.now().UTC()
	t := &Trip{
		ID:          types.NewID(),
		UserID:      cmd.UserID,
		Preferences: cmd.Preferences,
		Plan:        cmd.Plan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("store trip: %w", err)
	}
	s.logger.Info("trip created", zap.String("trip_id", t.ID.String()), zap.String("uid", t.UserID))
	return t, nil
}

// Get returns the trip if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID string, id types.ID) (*Trip, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Trip, error) {
	return s.store.ListByUser(ctx, userID)
}

// Update replaces the plan, and the preferences when given. The new plan must
// still carry every required top-level key.
func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Trip, error) {
	if err := tripplan.Validate(cmd.Plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	t, err := s.Get(ctx, cmd.UserID, cmd.ID)
	if err != nil {
		return nil, err
	}
	t.Plan = cmd.Plan
	if cmd.Preferences != nil {
		t.Preferences = *cmd.Preferences
	}
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Save writes t back after the caller changed its plan in place.
func (s *Service) Save(ctx context.Context, t *Trip) error {
	return s.save(ctx, t)
}

func (s *Service) save(ctx context.Context, t *Trip) error {
	t.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, t); err != nil {
		return err
	}
	s.logger.Info("trip updated", zap.String("trip_id", t.ID.String()))
	return nil
}

func (s *Service) Delete(ctx context.Context, userID string, id types.ID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("trip deleted", zap.String("trip_id", id.String()), zap.String("uid", userID))
	return nil
}
