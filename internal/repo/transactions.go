package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

type Transactions struct{ pool *pgxpool.Pool }

func NewTransactions(p *pgxpool.Pool) *Transactions { return &Transactions{pool: p} }

// Record inserts one transaction row. Amount validation happens upstream in
// the ledger package; the CHECK constraint is the last line of defence.
func (r *Transactions) Record(ctx context.Context, ownerID int64, kind domain.Kind, amountPaise int64, category, note string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transactions(owner_id, kind, amount_paise, category, note)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, ownerID, kind, amountPaise, category, note).Scan(&id)
	return id, err
}

// Summary holds per-kind totals over one period.
type Summary struct {
	IncomePaise  int64
	ExpensePaise int64
	SavingsPaise int64
	IncomeCount  int64
	ExpenseCount int64
	SavingsCount int64
}

// Empty reports whether the period had no transactions at all.
func (s Summary) Empty() bool {
	return s.IncomeCount == 0 && s.ExpenseCount == 0 && s.SavingsCount == 0
}

// SummarizeRange sums amounts per kind over [from, to).
func (r *Transactions) SummarizeRange(ctx context.Context, ownerID int64, from, to time.Time) (Summary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, COALESCE(SUM(amount_paise),0), COUNT(*)
		FROM transactions
		WHERE owner_id=$1 AND created_at >= $2 AND created_at < $3
		GROUP BY kind
	`, ownerID, from, to)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var s Summary
	for rows.Next() {
		var kind domain.Kind
		var total, count int64
		if e := rows.Scan(&kind, &total, &count); e != nil {
			return Summary{}, e
		}
		switch kind {
		case domain.KindIncome:
			s.IncomePaise, s.IncomeCount = total, count
		case domain.KindExpense:
			s.ExpensePaise, s.ExpenseCount = total, count
		case domain.KindSavings:
			s.SavingsPaise, s.SavingsCount = total, count
		}
	}
	return s, rows.Err()
}

// DayExpense is one calendar day's expense total.
type DayExpense struct {
	Day        time.Time
	TotalPaise int64
	Count      int64
}

// DailyExpenses groups expense sums by calendar day in the given zone,
// newest day first, over [from, to).
func (r *Transactions) DailyExpenses(ctx context.Context, ownerID int64, from, to time.Time, tz string) ([]DayExpense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT (created_at AT TIME ZONE $2)::date AS day,
		       COALESCE(SUM(amount_paise),0),
		       COUNT(*)
		FROM transactions
		WHERE owner_id=$1 AND kind='expense'
		  AND created_at >= $3 AND created_at < $4
		GROUP BY day
		ORDER BY day DESC
	`, ownerID, tz, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayExpense, 0, 8)
	for rows.Next() {
		var d DayExpense
		if e := rows.Scan(&d.Day, &d.TotalPaise, &d.Count); e != nil {
			return nil, e
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CategoryTotal is one category's expense total over a period.
type CategoryTotal struct {
	Category   string
	TotalPaise int64
	Count      int64
}

// ExpensesByCategory groups expense sums by category over [from, to),
// largest first.
func (r *Transactions) ExpensesByCategory(ctx context.Context, ownerID int64, from, to time.Time) ([]CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COALESCE(SUM(amount_paise),0), COUNT(*)
		FROM transactions
		WHERE owner_id=$1 AND kind='expense'
		  AND created_at >= $2 AND created_at < $3
		GROUP BY category
		ORDER BY 2 DESC
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryTotal, 0, 8)
	for rows.Next() {
		var c CategoryTotal
		if e := rows.Scan(&c.Category, &c.TotalPaise, &c.Count); e != nil {
			return nil, e
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Recent returns the owner's latest transactions, newest first.
func (r *Transactions) Recent(ctx context.Context, ownerID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, kind, amount_paise, category, note, created_at
		FROM transactions
		WHERE owner_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var t domain.Transaction
		if e := rows.Scan(&t.ID, &t.OwnerID, &t.Kind, &t.AmountPaise, &t.Category, &t.Note, &t.CreatedAt); e != nil {
			return nil, e
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
