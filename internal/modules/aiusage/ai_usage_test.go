// README: Plan-credit tests (lazy monthly reset, quota boundary, refunds).
package aiusage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wanderplan/internal/infra"
)

const testAllowance = 5

// TestUseCreditCrossMonthReset verifies that a user with 0 credits left from a previous month
// is automatically reset and the request succeeds.
func TestUseCreditCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed user with 0 credits from a past month.
	if _, err := db.Exec(ctx, "INSERT INTO ai_usage VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UseCredit(ctx, "user_reset"); err != nil {
		t.Fatalf("UseCredit after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT credits_remaining FROM ai_usage WHERE uid = 'user_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != testAllowance-1 {
		t.Fatalf("expected %d credits remaining, got %d", testAllowance-1, remaining)
	}
}

// TestUseCreditExhausted verifies that a user with 0 credits in the current month is blocked.
func TestUseCreditExhausted(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO ai_usage (uid, credits_remaining, last_reset_month) VALUES ('user_zero', 0, $1)", currentMonth()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.UseCredit(ctx, "user_zero")
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

// TestUseCreditNewUser verifies that a user absent from the table is initialised on first call.
func TestUseCreditNewUser(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if err := svc.UseCredit(ctx, "user_new"); err != nil {
		t.Fatalf("UseCredit for new user: %v", err)
	}

	usage, err := svc.Usage(ctx, "user_new")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if usage.Remaining != testAllowance-1 || usage.Allowance != testAllowance {
		t.Fatalf("unexpected usage %+v", usage)
	}
}

// TestUseCreditDrainsAllowance consumes the whole allowance and checks the next call fails.
func TestUseCreditDrainsAllowance(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < testAllowance; i++ {
		if err := svc.UseCredit(ctx, "user_drain"); err != nil {
			t.Fatalf("UseCredit #%d: %v", i+1, err)
		}
	}
	if err := svc.UseCredit(ctx, "user_drain"); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted after %d uses, got %v", testAllowance, err)
	}

	if err := svc.Refund(ctx, "user_drain"); err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if err := svc.UseCredit(ctx, "user_drain"); err != nil {
		t.Fatalf("UseCredit after refund: %v", err)
	}
}

func TestUsageUnknownUserHasFullAllowance(t *testing.T) {
	svc, _ := setupTestService(t)

	usage, err := svc.Usage(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if usage.Remaining != testAllowance {
		t.Fatalf("expected %d, got %d", testAllowance, usage.Remaining)
	}
}

func TestCurrentMonth(t *testing.T) {
	defer func() { nowFunc = time.Now }()
	nowFunc = func() time.Time { return time.Date(2026, 3, 31, 23, 30, 0, 0, time.FixedZone("X", -2*3600)) }

	if got := currentMonth(); got != "2026-04" {
		t.Fatalf("expected UTC month 2026-04, got %s", got)
	}
}

func TestNewServiceDefaultAllowance(t *testing.T) {
	if svc := NewService(nil, 0); svc.allowance != DefaultMonthlyCredits {
		t.Fatalf("expected default allowance %d, got %d", DefaultMonthlyCredits, svc.allowance)
	}
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when WANDER_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("WANDER_TEST_DSN")
	if dsn == "" {
		t.Skip("WANDER_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir, err := infra.FindMigrationsDir()
	if err != nil {
		t.Fatalf("find migrations: %v", err)
	}
	if err := infra.ApplyMigrations(ctx, db, dir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE ai_usage"); err != nil {
		t.Fatalf("truncate ai_usage: %v", err)
	}

	return NewService(NewStore(db), testAllowance), db
}
