package repo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Wolfjoee/Espresstrackk/internal/db"
	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

// These tests need a real database. Set TEST_DATABASE_URL to run them.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, "../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// freshOwner returns an owner id no other test run has touched.
func freshOwner() int64 { return time.Now().UnixNano() }

func TestRecordAndSummarize(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	tx := NewTransactions(pool)
	owner := freshOwner()

	from := time.Now().Add(-time.Minute)
	to := time.Now().Add(time.Minute)

	before, err := tx.SummarizeRange(ctx, owner, from, to)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !before.Empty() {
		t.Fatalf("fresh owner should have no data, got %+v", before)
	}

	if _, err := tx.Record(ctx, owner, domain.KindExpense, 50000, domain.CategoryFood, "lunch"); err != nil {
		t.Fatalf("record: %v", err)
	}

	after, err := tx.SummarizeRange(ctx, owner, from, to)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if after.ExpensePaise != before.ExpensePaise+50000 {
		t.Errorf("expense total should grow by exactly the amount, got %d", after.ExpensePaise)
	}
	if after.ExpenseCount != before.ExpenseCount+1 {
		t.Errorf("expense count should grow by exactly one, got %d", after.ExpenseCount)
	}
}

func TestMidnightBoundary(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	tx := NewTransactions(pool)
	owner := freshOwner()

	loc := time.Local
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	_, err := pool.Exec(ctx, `
		INSERT INTO transactions(owner_id, kind, amount_paise, category, note, created_at)
		VALUES($1,'expense',10000,'other','boundary',$2)
	`, owner, midnight)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	today, err := tx.SummarizeRange(ctx, owner, midnight, midnight.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("summarize today: %v", err)
	}
	if today.ExpenseCount != 1 {
		t.Errorf("midnight row must count toward its own day, got %d", today.ExpenseCount)
	}

	yesterday, err := tx.SummarizeRange(ctx, owner, midnight.AddDate(0, 0, -1), midnight)
	if err != nil {
		t.Fatalf("summarize yesterday: %v", err)
	}
	if yesterday.ExpenseCount != 0 {
		t.Errorf("midnight row must not leak into the previous day, got %d", yesterday.ExpenseCount)
	}
}

func TestDebtRoundTrip(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	debts := NewDebts(pool)
	owner := freshOwner()

	id, err := debts.Create(ctx, owner, domain.DebtBorrowed, 50000, "John", "bike")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := debts.Pending(ctx, owner, domain.DebtBorrowed)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("expected the new record pending, got %+v", pending)
	}

	ok, err := debts.Settle(ctx, owner, id, domain.DebtBorrowed)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !ok {
		t.Fatal("settling a pending debt must succeed")
	}

	pending, err = debts.Pending(ctx, owner, domain.DebtBorrowed)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("settled record must leave the pending set, got %+v", pending)
	}

	totals, err := debts.Totals(ctx, owner)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.SettledBorrowed != 50000 {
		t.Errorf("expected 50000 settled-borrowed, got %d", totals.SettledBorrowed)
	}
	if totals.PendingBorrowed != 0 {
		t.Errorf("record must never be in both sets, pending=%d", totals.PendingBorrowed)
	}

	t.Run("settle_again_reports_failure", func(t *testing.T) {
		ok, err := debts.Settle(ctx, owner, id, domain.DebtBorrowed)
		if err != nil {
			t.Fatalf("settle: %v", err)
		}
		if ok {
			t.Error("settling an already-settled debt must report false")
		}
	})

	t.Run("wrong_owner_reports_failure", func(t *testing.T) {
		id2, err := debts.Create(ctx, owner, domain.DebtLent, 10000, "Priya", "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ok, err := debts.Settle(ctx, owner+1, id2, domain.DebtLent)
		if err != nil {
			t.Fatalf("settle: %v", err)
		}
		if ok {
			t.Error("another owner's debt must not be settleable")
		}
	})
}

func TestPurgeOwner(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	tx := NewTransactions(pool)
	debts := NewDebts(pool)
	settings := NewSettings(pool)
	owner := freshOwner()

	if _, err := tx.Record(ctx, owner, domain.KindIncome, 5000000, domain.CategoryOther, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := debts.Create(ctx, owner, domain.DebtLent, 50000, "John", ""); err != nil {
		t.Fatalf("create debt: %v", err)
	}
	if err := settings.Ensure(ctx, owner); err != nil {
		t.Fatalf("ensure settings: %v", err)
	}

	if err := PurgeOwner(ctx, pool, owner); err != nil {
		t.Fatalf("purge: %v", err)
	}

	recent, err := tx.Recent(ctx, owner, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("transactions must be gone, got %d", len(recent))
	}

	persons, err := debts.PersonWise(ctx, owner)
	if err != nil {
		t.Fatalf("person-wise: %v", err)
	}
	if len(persons) != 0 {
		t.Errorf("debt records must be gone, got %d", len(persons))
	}

	if _, err := settings.Get(ctx, owner); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("settings row must be gone, got %v", err)
	}
}

func TestSettingsLifecycle(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	settings := NewSettings(pool)
	owner := freshOwner()

	if err := settings.Ensure(ctx, owner); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// idempotent
	if err := settings.Ensure(ctx, owner); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}

	s, err := settings.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !s.DailyReport || s.ReportTime != "06:00" {
		t.Errorf("unexpected defaults: %+v", s)
	}

	if err := settings.SetDailyReport(ctx, owner, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	s, err = settings.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.DailyReport {
		t.Error("daily report should be off")
	}

	enabled, err := settings.ListDailyEnabled(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range enabled {
		if e.OwnerID == owner {
			t.Error("opted-out owner must not be listed")
		}
	}
}
