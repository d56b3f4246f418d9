package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

func TestParseAmount(t *testing.T) {
	t.Run("whole_rupees", func(t *testing.T) {
		got, err := ParseAmount("500")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 50000 {
			t.Errorf("expected 50000 paise, got %d", got)
		}
	})

	t.Run("rupees_and_paise", func(t *testing.T) {
		got, err := ParseAmount("500.50")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 50050 {
			t.Errorf("expected 50050 paise, got %d", got)
		}
	})

	t.Run("comma_grouping_accepted", func(t *testing.T) {
		got, err := ParseAmount("1,500")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 150000 {
			t.Errorf("expected 150000 paise, got %d", got)
		}
	})

	t.Run("rejects_zero", func(t *testing.T) {
		if _, err := ParseAmount("0"); !errors.Is(err, ErrBadAmount) {
			t.Errorf("expected ErrBadAmount, got %v", err)
		}
	})

	t.Run("rejects_negative", func(t *testing.T) {
		if _, err := ParseAmount("-50"); !errors.Is(err, ErrBadAmount) {
			t.Errorf("expected ErrBadAmount, got %v", err)
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := ParseAmount("lots"); !errors.Is(err, ErrBadAmount) {
			t.Errorf("expected ErrBadAmount, got %v", err)
		}
	})

	t.Run("rejects_overflow", func(t *testing.T) {
		// Shifting these past the paise column's int64 range must fail
		// instead of wrapping into a bogus positive amount.
		for _, s := range []string{"200000000000000000", "100000000000000000", "92233720368547758.08"} {
			if _, err := ParseAmount(s); !errors.Is(err, ErrBadAmount) {
				t.Errorf("ParseAmount(%q): expected ErrBadAmount, got %v", s, err)
			}
		}
	})

	t.Run("accepts_max_paise", func(t *testing.T) {
		got, err := ParseAmount("92233720368547758.07")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != math.MaxInt64 {
			t.Errorf("expected %d paise, got %d", int64(math.MaxInt64), got)
		}
	})

	t.Run("rejects_empty", func(t *testing.T) {
		if _, err := ParseAmount("  "); !errors.Is(err, ErrMissingAmount) {
			t.Errorf("expected ErrMissingAmount, got %v", err)
		}
	})
}

func TestParseEntry(t *testing.T) {
	t.Run("explicit_category", func(t *testing.T) {
		e, err := ParseEntry("500 food lunch")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.AmountPaise != 50000 || e.Category != domain.CategoryFood || e.Note != "lunch" {
			t.Errorf("got %+v", e)
		}
	})

	t.Run("unknown_category_coerces_to_other", func(t *testing.T) {
		e, err := ParseEntry("500 xyz something")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Category != domain.CategoryOther {
			t.Errorf("expected other, got %q", e.Category)
		}
		if e.Note != "xyz something" {
			t.Errorf("note should keep the unrecognized token, got %q", e.Note)
		}
	})

	t.Run("note_keyword_classifies", func(t *testing.T) {
		e, err := ParseEntry("500 lunch")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Category != domain.CategoryFood {
			t.Errorf("expected food from note keyword, got %q", e.Category)
		}
	})

	t.Run("amount_only", func(t *testing.T) {
		e, err := ParseEntry("250")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Category != domain.CategoryOther || e.Note != "" {
			t.Errorf("got %+v", e)
		}
	})

	t.Run("bad_amount", func(t *testing.T) {
		if _, err := ParseEntry("abc food"); !errors.Is(err, ErrBadAmount) {
			t.Errorf("expected ErrBadAmount, got %v", err)
		}
	})
}

func TestParseDebtEntry(t *testing.T) {
	t.Run("full_line", func(t *testing.T) {
		e, err := ParseDebtEntry("500 John bike repair")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.AmountPaise != 50000 || e.Contact != "John" || e.Purpose != "bike repair" {
			t.Errorf("got %+v", e)
		}
	})

	t.Run("no_purpose", func(t *testing.T) {
		e, err := ParseDebtEntry("1000 Priya")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Contact != "Priya" || e.Purpose != "" {
			t.Errorf("got %+v", e)
		}
	})

	t.Run("missing_contact", func(t *testing.T) {
		if _, err := ParseDebtEntry("500"); !errors.Is(err, ErrMissingContact) {
			t.Errorf("expected ErrMissingContact, got %v", err)
		}
	})
}
