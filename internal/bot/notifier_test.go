package bot

import (
	"testing"
	"time"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

func TestReportDue(t *testing.T) {
	utc := time.UTC
	// 2025-03-10 in UTC, used as "now" at various clock times below.
	day := func(hour, min int) time.Time {
		return time.Date(2025, 3, 10, hour, min, 0, 0, utc)
	}

	t.Run("not_yet_due", func(t *testing.T) {
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "UTC"}
		if _, due := reportDue(s, day(5, 59), "06:00", utc); due {
			t.Error("report delivered before the owner's delivery time")
		}
	})

	t.Run("due_and_unsent", func(t *testing.T) {
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "UTC"}
		midnight, due := reportDue(s, day(6, 0), "06:00", utc)
		if !due {
			t.Fatal("report should be due at the delivery time")
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, utc)
		if !midnight.Equal(want) {
			t.Errorf("expected local midnight %v, got %v", want, midnight)
		}
	})

	t.Run("already_sent_today", func(t *testing.T) {
		sent := time.Date(2025, 3, 10, 0, 0, 0, 0, utc)
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "UTC", LastReportDate: &sent}
		if _, due := reportDue(s, day(9, 0), "06:00", utc); due {
			t.Error("report delivered twice on the same day")
		}
	})

	t.Run("sent_yesterday_is_due_again", func(t *testing.T) {
		sent := time.Date(2025, 3, 9, 0, 0, 0, 0, utc)
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "UTC", LastReportDate: &sent}
		if _, due := reportDue(s, day(6, 30), "06:00", utc); !due {
			t.Error("yesterday's send should not block today's report")
		}
	})

	t.Run("bad_timezone_falls_back_to_default", func(t *testing.T) {
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "Nowhere/Nope"}
		midnight, due := reportDue(s, day(6, 0), "06:00", utc)
		if !due {
			t.Fatal("bad timezone should fall back to the default location")
		}
		if _, off := midnight.Zone(); off != 0 {
			t.Errorf("expected default-location midnight, got offset %d", off)
		}
	})

	t.Run("bad_report_time_falls_back_to_default", func(t *testing.T) {
		s := domain.UserSettings{OwnerID: 1, ReportTime: "late-ish", Timezone: "UTC"}
		if _, due := reportDue(s, day(5, 0), "06:00", utc); due {
			t.Error("fallback delivery time should apply when the stored one is invalid")
		}
		if _, due := reportDue(s, day(6, 0), "06:00", utc); !due {
			t.Error("report should be due at the fallback delivery time")
		}
	})

	t.Run("owner_timezone_honored", func(t *testing.T) {
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			t.Skipf("tzdata unavailable: %v", err)
		}
		s := domain.UserSettings{OwnerID: 1, ReportTime: "06:00", Timezone: "Asia/Kolkata"}
		// 01:00 UTC is 06:30 IST, past the owner's delivery time.
		midnight, due := reportDue(s, day(1, 0), "06:00", utc)
		if !due {
			t.Fatal("report should be due by the owner's local clock")
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
		if !midnight.Equal(want) {
			t.Errorf("expected IST midnight %v, got %v", want, midnight)
		}
	})
}
