package bot

import (
	"context"
	"time"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
	"github.com/Wolfjoee/Espresstrackk/internal/report"
)

// RunDailyReports pushes the previous day's summary to every opted-in
// owner. It ticks frequently and checks, per owner, whether their local
// clock has passed their delivery time; last_report_date keeps a restart
// from resending. One owner's failure never blocks the rest.
func (h *Handler) RunDailyReports(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.deliverDueReports(ctx)
		}
	}
}

func (h *Handler) deliverDueReports(ctx context.Context) {
	owners, err := h.settings.ListDailyEnabled(ctx)
	if err != nil {
		h.log.Errorw("list daily-report owners", "err", err)
		return
	}

	for _, s := range owners {
		if err := h.deliverReport(ctx, s); err != nil {
			// isolated per owner: log and move on
			h.log.Errorw("daily report delivery", "owner", s.OwnerID, "err", err)
		}
	}
}

// reportDue decides whether the owner's daily report should go out right
// now. Settings may carry a bad timezone or report time; both fall back to
// the configured defaults. It returns the owner's local midnight, the upper
// bound of the day being reported on, and whether delivery is due: the local
// clock has passed the delivery time and last_report_date has not already
// covered today.
func reportDue(s domain.UserSettings, now time.Time, defaultTime string, defaultLoc *time.Location) (time.Time, bool) {
	loc := defaultLoc
	if s.Timezone != "" {
		if l, err := time.LoadLocation(s.Timezone); err == nil {
			loc = l
		}
	}

	at, err := time.Parse("15:04", s.ReportTime)
	if err != nil {
		at, _ = time.Parse("15:04", defaultTime)
	}

	local := now.In(loc)
	due := time.Date(local.Year(), local.Month(), local.Day(), at.Hour(), at.Minute(), 0, 0, loc)
	if local.Before(due) {
		return time.Time{}, false
	}
	today := local.Format("2006-01-02")
	if s.LastReportDate != nil && s.LastReportDate.Format("2006-01-02") >= today {
		return time.Time{}, false
	}
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), true
}

func (h *Handler) deliverReport(ctx context.Context, s domain.UserSettings) error {
	midnight, due := reportDue(s, time.Now(), h.cfg.ReportTime, h.loc)
	if !due {
		return nil
	}
	yesterday := midnight.AddDate(0, 0, -1)

	sum, err := h.tx.SummarizeRange(ctx, s.OwnerID, yesterday, midnight)
	if err != nil {
		return err
	}

	// owner id doubles as the private chat id
	h.reply(s.OwnerID, "🌅 *Good Morning!*\n\n"+report.Daily(sum, yesterday), mainMenuKeyboard())

	if err := h.settings.MarkReported(ctx, s.OwnerID, midnight); err != nil {
		return err
	}
	return nil
}
