package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

type Debts struct{ pool *pgxpool.Pool }

func NewDebts(p *pgxpool.Pool) *Debts { return &Debts{pool: p} }

// Create inserts a pending borrow/lend record.
func (r *Debts) Create(ctx context.Context, ownerID int64, debtType domain.DebtType, amountPaise int64, contact, purpose string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO debts(owner_id, debt_type, amount_paise, contact_name, purpose)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, ownerID, debtType, amountPaise, contact, purpose).Scan(&id)
	return id, err
}

// Settle transitions a pending record of the given direction to settled,
// stamping the settlement date. Returns false when the id does not belong
// to the owner, has a different direction, or is already settled; the
// caller reports that explicitly instead of silently succeeding.
func (r *Debts) Settle(ctx context.Context, ownerID, debtID int64, debtType domain.DebtType) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE debts
		SET status='settled', returned_at=now(), updated_at=now()
		WHERE id=$1 AND owner_id=$2 AND debt_type=$3 AND status='pending'
	`, debtID, ownerID, debtType)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Pending lists the owner's open records of one direction, oldest first.
func (r *Debts) Pending(ctx context.Context, ownerID int64, debtType domain.DebtType) ([]domain.DebtRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, debt_type, amount_paise, contact_name, purpose,
		       status, created_at, updated_at, returned_at
		FROM debts
		WHERE owner_id=$1 AND debt_type=$2 AND status='pending'
		ORDER BY created_at
	`, ownerID, debtType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DebtRecord, 0, 16)
	for rows.Next() {
		var d domain.DebtRecord
		if e := rows.Scan(&d.ID, &d.OwnerID, &d.DebtType, &d.AmountPaise, &d.ContactName,
			&d.Purpose, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.ReturnedAt); e != nil {
			return nil, e
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PersonRow is one (contact, direction, status) aggregate bucket. Contacts
// are matched by exact name, as entered.
type PersonRow struct {
	Contact    string
	DebtType   domain.DebtType
	Status     domain.DebtStatus
	TotalPaise int64
	Count      int64
}

// PersonWise groups the owner's debts by counterparty, direction, and
// status.
func (r *Debts) PersonWise(ctx context.Context, ownerID int64) ([]PersonRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT contact_name, debt_type, status,
		       COALESCE(SUM(amount_paise),0), COUNT(*)
		FROM debts
		WHERE owner_id=$1
		GROUP BY contact_name, debt_type, status
		ORDER BY contact_name, debt_type, status
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PersonRow, 0, 16)
	for rows.Next() {
		var p PersonRow
		if e := rows.Scan(&p.Contact, &p.DebtType, &p.Status, &p.TotalPaise, &p.Count); e != nil {
			return nil, e
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Totals holds the owner's debt position split by direction and status.
type Totals struct {
	PendingBorrowed int64
	PendingLent     int64
	SettledBorrowed int64
	SettledLent     int64
}

func (r *Debts) Totals(ctx context.Context, ownerID int64) (Totals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT debt_type, status, COALESCE(SUM(amount_paise),0)
		FROM debts
		WHERE owner_id=$1
		GROUP BY debt_type, status
	`, ownerID)
	if err != nil {
		return Totals{}, err
	}
	defer rows.Close()

	var t Totals
	for rows.Next() {
		var dt domain.DebtType
		var st domain.DebtStatus
		var sum int64
		if e := rows.Scan(&dt, &st, &sum); e != nil {
			return Totals{}, e
		}
		switch {
		case dt == domain.DebtBorrowed && st == domain.DebtPending:
			t.PendingBorrowed = sum
		case dt == domain.DebtBorrowed && st == domain.DebtSettled:
			t.SettledBorrowed = sum
		case dt == domain.DebtLent && st == domain.DebtPending:
			t.PendingLent = sum
		case dt == domain.DebtLent && st == domain.DebtSettled:
			t.SettledLent = sum
		}
	}
	return t, rows.Err()
}
