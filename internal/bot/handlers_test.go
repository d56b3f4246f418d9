package bot

import (
	"testing"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

func TestMatchEntryCommand(t *testing.T) {
	t.Run("prefix_matches_any_case", func(t *testing.T) {
		kind, rest, amountOnly, ok := matchEntryCommand("Salary Credited 50000")
		if !ok || kind != domain.KindIncome || !amountOnly {
			t.Fatalf("got kind=%q amountOnly=%v ok=%v", kind, amountOnly, ok)
		}
		if rest != "50000" {
			t.Errorf("rest = %q, want %q", rest, "50000")
		}
	})

	t.Run("note_keeps_original_casing", func(t *testing.T) {
		_, rest, _, ok := matchEntryCommand("SPEND 500 food Lunch at Saravana Bhavan")
		if !ok {
			t.Fatal("expected a match")
		}
		if rest != "500 food Lunch at Saravana Bhavan" {
			t.Errorf("rest = %q, note casing must survive", rest)
		}
	})

	t.Run("longest_prefix_wins", func(t *testing.T) {
		kind, rest, amountOnly, ok := matchEntryCommand("salary credited 1000")
		if !ok || kind != domain.KindIncome || !amountOnly || rest != "1000" {
			t.Errorf("got kind=%q rest=%q amountOnly=%v ok=%v", kind, rest, amountOnly, ok)
		}
	})

	t.Run("spend_takes_full_entry", func(t *testing.T) {
		kind, rest, amountOnly, ok := matchEntryCommand("spend 500 food lunch")
		if !ok || kind != domain.KindExpense || amountOnly {
			t.Fatalf("got kind=%q amountOnly=%v ok=%v", kind, amountOnly, ok)
		}
		if rest != "500 food lunch" {
			t.Errorf("rest = %q", rest)
		}
	})

	t.Run("savings_aliases", func(t *testing.T) {
		for _, text := range []string{"credit savings 2000", "save 2000"} {
			kind, rest, amountOnly, ok := matchEntryCommand(text)
			if !ok || kind != domain.KindSavings || !amountOnly || rest != "2000" {
				t.Errorf("%q: got kind=%q rest=%q amountOnly=%v ok=%v", text, kind, rest, amountOnly, ok)
			}
		}
	})

	t.Run("no_match_for_reports", func(t *testing.T) {
		if _, _, _, ok := matchEntryCommand("today report"); ok {
			t.Error("report requests are not entry commands")
		}
	})
}
