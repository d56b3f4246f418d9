package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders paise as rupees: 5000000 -> "₹50,000.00".
func Money(paise int64) string {
	d := decimal.New(paise, -2)
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte(',')
		}
	}
	b.WriteString(frac)
	return b.String()
}

// percent computes part/total as a percentage with one decimal, returning
// "0.0" when total is zero so a quiet period never divides by zero.
func percent(part, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(1)
}
