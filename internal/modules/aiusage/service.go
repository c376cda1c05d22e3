package aiusage

import (
	"context"
	"errors"
)

// Service orchestrates plan-credit logic.
type Service struct {
	store     *Store
	allowance int
}

// NewService creates a Service backed by the given Store. A non-positive
// allowance falls back to DefaultMonthlyCredits.
func NewService(store *Store, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultMonthlyCredits
	}
	return &Service{store: store, allowance: allowance}
}

// UseCredit deducts one credit from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the credit is immediately consumed.
// Returns ErrQuotaExhausted when the quota for the current month is exhausted.
func (s *Service) UseCredit(ctx context.Context, uid string) error {
	err := s.store.UseCredit(ctx, uid, s.allowance)
	if !errors.Is(err, ErrQuotaExhausted) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid, s.allowance); initErr != nil {
		return initErr
	}
	return s.store.UseCredit(ctx, uid, s.allowance)
}

// Refund returns one credit to uid.
func (s *Service) Refund(ctx context.Context, uid string) error {
	return s.store.Refund(ctx, uid, s.allowance)
}

// Usage reports the caller's balance for the current month.
func (s *Service) Usage(ctx context.Context, uid string) (Usage, error) {
	remaining, err := s.store.Remaining(ctx, uid, s.allowance)
	if err != nil {
		return Usage{}, err
	}
	return Usage{UID: uid, Remaining: remaining, Allowance: s.allowance, Month: currentMonth()}, nil
}
