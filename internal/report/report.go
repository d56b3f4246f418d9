// Package report renders aggregate query results into the Markdown text
// blocks the bot replies with. Everything here is a pure function of its
// inputs: the same rows always produce the same text.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
	"github.com/Wolfjoee/Espresstrackk/internal/repo"
)

const divider = "━━━━━━━━━━━━━━━━━"

// Today renders the single-day summary.
func Today(s repo.Summary, date time.Time) string {
	if s.Empty() {
		return "📊 *Today's Report*\n\nNo transactions recorded today."
	}

	balance := s.IncomePaise - s.ExpensePaise - s.SavingsPaise

	var b strings.Builder
	b.WriteString("📊 *Today's Report*\n")
	fmt.Fprintf(&b, "📅 Date: %s\n\n", date.Format("02 January 2006"))
	fmt.Fprintf(&b, "💰 Income: %s\n", Money(s.IncomePaise))
	fmt.Fprintf(&b, "💸 Total Expenses: %s (%s)\n", Money(s.ExpensePaise), plural(s.ExpenseCount, "transaction"))
	fmt.Fprintf(&b, "🏦 Savings: %s\n", Money(s.SavingsPaise))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Balance: %s", Money(balance))
	return b.String()
}

// Daily renders the summary for an arbitrary past day, used by the
// scheduled push.
func Daily(s repo.Summary, date time.Time) string {
	label := date.Format("02 January 2006")
	if s.Empty() {
		return fmt.Sprintf("📊 *Daily Report*\n\nNo transactions recorded on %s.", label)
	}

	balance := s.IncomePaise - s.ExpensePaise - s.SavingsPaise

	var b strings.Builder
	b.WriteString("📊 *Daily Report*\n")
	fmt.Fprintf(&b, "📅 Date: %s\n\n", label)
	fmt.Fprintf(&b, "💰 Income: %s\n", Money(s.IncomePaise))
	fmt.Fprintf(&b, "💸 Total Expenses: %s (%s)\n", Money(s.ExpensePaise), plural(s.ExpenseCount, "transaction"))
	fmt.Fprintf(&b, "🏦 Savings: %s\n", Money(s.SavingsPaise))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Balance: %s", Money(balance))
	return b.String()
}

// Month renders the calendar-month summary with a savings rate footer.
func Month(s repo.Summary, month time.Time) string {
	label := month.Format("January 2006")
	if s.Empty() {
		return fmt.Sprintf("📊 *Monthly Report - %s*\n\nNo transactions recorded this month.", label)
	}

	balance := s.IncomePaise - s.ExpensePaise - s.SavingsPaise

	var b strings.Builder
	b.WriteString("📊 *Monthly Report*\n")
	fmt.Fprintf(&b, "📅 Month: %s\n\n", label)
	fmt.Fprintf(&b, "💰 Total Income: %s\n", Money(s.IncomePaise))
	fmt.Fprintf(&b, "💸 Total Expenses: %s (%s)\n", Money(s.ExpensePaise), plural(s.ExpenseCount, "transaction"))
	fmt.Fprintf(&b, "🏦 Total Savings: %s\n", Money(s.SavingsPaise))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Net Balance: %s\n\n", Money(balance))
	fmt.Fprintf(&b, "📈 Savings Rate: %s%%", percent(s.SavingsPaise, s.IncomePaise))
	return b.String()
}

// DailyExpenses renders a day-by-day expense series, newest first.
func DailyExpenses(rows []repo.DayExpense) string {
	if len(rows) == 0 {
		return "💸 *Daily Expenses (Last 7 Days)*\n\nNo expenses recorded in this period."
	}

	var total int64
	var b strings.Builder
	b.WriteString("💸 *Daily Expenses (Last 7 Days)*\n\n")
	for _, d := range rows {
		fmt.Fprintf(&b, "📅 %s: %s (%s)\n",
			d.Day.Format("02 Jan, Mon"), Money(d.TotalPaise), plural(d.Count, "expense"))
		total += d.TotalPaise
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Total: %s", Money(total))
	return b.String()
}

// SpendingAnalysis renders the category breakdown with share-of-total
// percentages, largest category first.
func SpendingAnalysis(rows []repo.CategoryTotal) string {
	if len(rows) == 0 {
		return "📈 *Spending Analysis (Last 30 Days)*\n\nNo expenses recorded in this period."
	}

	var total int64
	for _, c := range rows {
		total += c.TotalPaise
	}

	var b strings.Builder
	b.WriteString("📈 *Spending Analysis (Last 30 Days)*\n\n")
	for _, c := range rows {
		fmt.Fprintf(&b, "%s %s: %s (%s%%)\n",
			categoryEmoji(c.Category), titleCase(c.Category), Money(c.TotalPaise), percent(c.TotalPaise, total))
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Total Spent: %s", Money(total))
	return b.String()
}

// PendingDebts lists the owner's open borrow or lend records with ids, so
// a specific one can be settled.
func PendingDebts(debtType domain.DebtType, rows []domain.DebtRecord) string {
	header, empty, verb := "📥 *Pending Borrowed*", "You have not borrowed anything. 👍", "from"
	if debtType == domain.DebtLent {
		header, empty, verb = "📤 *Pending Lent*", "You have not lent anything. 👍", "to"
	}
	if len(rows) == 0 {
		return header + "\n\n" + empty
	}

	var total int64
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, d := range rows {
		fmt.Fprintf(&b, "#%d %s %s %s", d.ID, Money(d.AmountPaise), verb, EscapeMarkdown(d.ContactName))
		if d.Purpose != "" {
			fmt.Fprintf(&b, " (%s)", EscapeMarkdown(d.Purpose))
		}
		fmt.Fprintf(&b, " — since %s\n", d.CreatedAt.Format("02 Jan 2006"))
		total += d.AmountPaise
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "💵 Total Pending: %s", Money(total))
	return b.String()
}

// PersonWise renders the loan ledger grouped by counterparty. Names are
// free text; two spellings of one person are two entries.
func PersonWise(rows []repo.PersonRow) string {
	if len(rows) == 0 {
		return "👥 *Person-wise Loans*\n\nNo loan records yet."
	}

	var b strings.Builder
	b.WriteString("👥 *Person-wise Loans*\n")

	current := ""
	for _, p := range rows {
		if p.Contact != current {
			current = p.Contact
			fmt.Fprintf(&b, "\n*%s*\n", EscapeMarkdown(current))
		}
		dir := "borrowed from"
		if p.DebtType == domain.DebtLent {
			dir = "lent to"
		}
		marker := "✅"
		if p.Status == domain.DebtPending {
			marker = "⏳"
		}
		fmt.Fprintf(&b, "  %s %s: %s (%s)\n", marker, dir, Money(p.TotalPaise), p.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DebtSummary renders the overall borrow/lend position.
func DebtSummary(t repo.Totals) string {
	var b strings.Builder
	b.WriteString("🤝 *Loan Summary*\n\n")
	fmt.Fprintf(&b, "📥 Pending Borrowed: %s\n", Money(t.PendingBorrowed))
	fmt.Fprintf(&b, "📤 Pending Lent: %s\n", Money(t.PendingLent))
	fmt.Fprintf(&b, "✅ Settled Borrowed: %s\n", Money(t.SettledBorrowed))
	fmt.Fprintf(&b, "✅ Settled Lent: %s\n", Money(t.SettledLent))
	b.WriteString(divider + "\n")
	net := t.PendingLent - t.PendingBorrowed
	fmt.Fprintf(&b, "💵 Net Position: %s", Money(net))
	return b.String()
}

// MiniStatement renders the latest transactions, newest first, signed per
// kind.
func MiniStatement(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return "📝 *Mini Statement*\n\nNo transactions yet."
	}

	var b strings.Builder
	b.WriteString("📝 *Mini Statement*\n")
	fmt.Fprintf(&b, "Last %d transactions:\n\n", len(txs))
	for _, t := range txs {
		sign := "+"
		if t.Kind == domain.KindExpense {
			sign = "-"
		}
		fmt.Fprintf(&b, "%s %s%s · %s", kindEmoji(t.Kind), sign, Money(t.AmountPaise), titleCase(string(t.Kind)))
		if t.Note != "" {
			fmt.Fprintf(&b, " · %s", EscapeMarkdown(t.Note))
		}
		fmt.Fprintf(&b, "\n   %s\n", t.CreatedAt.Format("02 Jan 2006, 03:04 PM"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func plural(n int64, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func kindEmoji(k domain.Kind) string {
	switch k {
	case domain.KindIncome:
		return "💰"
	case domain.KindExpense:
		return "💸"
	case domain.KindSavings:
		return "🏦"
	}
	return "•"
}

func categoryEmoji(c string) string {
	switch c {
	case domain.CategoryFood:
		return "🍛"
	case domain.CategoryTransport:
		return "🚌"
	case domain.CategoryBills:
		return "🧾"
	case domain.CategoryShopping:
		return "🛍"
	case domain.CategoryHealth:
		return "🩺"
	case domain.CategoryEntertainment:
		return "🎬"
	case domain.CategoryEducation:
		return "📚"
	}
	return "📦"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EscapeMarkdown escapes the minimal set of Markdown metacharacters that
// user-supplied text could break replies with. Every place a contact name,
// purpose or note is interpolated into reply text must go through it.
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return r.Replace(s)
}
