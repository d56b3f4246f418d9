package ledger

import (
	"strings"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

// Rule maps a category to the note keywords that imply it.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules is the ordered keyword ruleset for classifying free-text
// notes. First matching rule wins; order resolves ties.
var DefaultRules = []Rule{
	{domain.CategoryFood, []string{"lunch", "dinner", "breakfast", "snack", "grocer", "restaurant", "food", "tea", "coffee", "swiggy", "zomato"}},
	{domain.CategoryTransport, []string{"bus", "train", "metro", "auto", "taxi", "uber", "ola", "fuel", "petrol", "diesel", "cab"}},
	{domain.CategoryBills, []string{"bill", "electricity", "recharge", "rent", "wifi", "internet", "water", "gas", "emi"}},
	{domain.CategoryShopping, []string{"shop", "amazon", "flipkart", "clothes", "dress", "shoes"}},
	{domain.CategoryHealth, []string{"medicine", "doctor", "hospital", "pharmacy", "gym", "medical"}},
	{domain.CategoryEntertainment, []string{"movie", "netflix", "game", "party", "concert", "outing"}},
	{domain.CategoryEducation, []string{"book", "course", "tuition", "fees", "exam", "college"}},
}

// ClassifyNote buckets a free-text note into a category by keyword match.
// Returns CategoryOther when nothing matches. This is a heuristic, not
// authoritative: it backfills a category when the user gave none.
func ClassifyNote(note string, rules []Rule) string {
	low := strings.ToLower(note)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(low, kw) {
				return r.Category
			}
		}
	}
	return domain.CategoryOther
}

// CoerceCategory maps a user-supplied category label onto the known set,
// falling back to CategoryOther for anything unrecognized.
func CoerceCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if domain.IsCategory(s) {
		return s
	}
	return domain.CategoryOther
}
