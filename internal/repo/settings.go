package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

type Settings struct{ pool *pgxpool.Pool }

func NewSettings(p *pgxpool.Pool) *Settings { return &Settings{pool: p} }

// Ensure creates the owner's settings row with defaults if it is missing.
// Called on first contact so every known owner has a row.
func (r *Settings) Ensure(ctx context.Context, ownerID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_settings(owner_id)
		VALUES($1)
		ON CONFLICT (owner_id) DO NOTHING
	`, ownerID)
	return err
}

func (r *Settings) Get(ctx context.Context, ownerID int64) (domain.UserSettings, error) {
	var s domain.UserSettings
	err := r.pool.QueryRow(ctx, `
		SELECT owner_id, daily_report, report_time, timezone, last_report_date
		FROM user_settings
		WHERE owner_id=$1
	`, ownerID).Scan(&s.OwnerID, &s.DailyReport, &s.ReportTime, &s.Timezone, &s.LastReportDate)
	return s, err
}

// SetDailyReport toggles the daily push for one owner.
func (r *Settings) SetDailyReport(ctx context.Context, ownerID int64, enabled bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_settings SET daily_report=$2 WHERE owner_id=$1
	`, ownerID, enabled)
	return err
}

// ListDailyEnabled returns every owner opted in to the daily report.
func (r *Settings) ListDailyEnabled(ctx context.Context) ([]domain.UserSettings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT owner_id, daily_report, report_time, timezone, last_report_date
		FROM user_settings
		WHERE daily_report
		ORDER BY owner_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UserSettings, 0, 32)
	for rows.Next() {
		var s domain.UserSettings
		if e := rows.Scan(&s.OwnerID, &s.DailyReport, &s.ReportTime, &s.Timezone, &s.LastReportDate); e != nil {
			return nil, e
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MarkReported stamps the date the daily report was last delivered, so a
// restart within the same day does not resend it.
func (r *Settings) MarkReported(ctx context.Context, ownerID int64, day time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_settings SET last_report_date=$2 WHERE owner_id=$1
	`, ownerID, day)
	return err
}
