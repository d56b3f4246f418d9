// Package ledger holds the pure input-side logic of the ledger: amount
// parsing, entry tokenizing, and note classification.
package ledger

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

var (
	ErrBadAmount      = errors.New("amount must be a positive number")
	ErrMissingAmount  = errors.New("missing amount")
	ErrMissingContact = errors.New("missing contact name")
)

// ParseAmount converts a user-typed amount into paise. Accepts "500",
// "500.50", "1,500"; rejects zero, negatives, and non-numbers.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, ErrMissingAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrBadAmount
	}
	if !d.IsPositive() {
		return 0, ErrBadAmount
	}
	paise := d.Shift(2).Round(0)
	if paise.GreaterThan(maxPaise) {
		return 0, ErrBadAmount
	}
	return paise.IntPart(), nil
}

// maxPaise is the largest amount representable in the store's integer column.
var maxPaise = decimal.NewFromInt(math.MaxInt64)

// Entry is a parsed `amount [category] [description]` line.
type Entry struct {
	AmountPaise int64
	Category    string
	Note        string
}

// ParseEntry tokenizes an expense/income line. The first token is the
// amount. If the second token is a known category it is taken as such and
// the remainder becomes the note; otherwise the whole remainder is the note
// and the category is derived from it by keyword classification.
func ParseEntry(text string) (Entry, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Entry{}, ErrMissingAmount
	}
	amount, err := ParseAmount(fields[0])
	if err != nil {
		return Entry{}, err
	}

	e := Entry{AmountPaise: amount, Category: domain.CategoryOther}
	if len(fields) == 1 {
		return e, nil
	}

	if cat := strings.ToLower(fields[1]); domain.IsCategory(cat) {
		e.Category = cat
		e.Note = strings.Join(fields[2:], " ")
		return e, nil
	}

	e.Note = strings.Join(fields[1:], " ")
	e.Category = ClassifyNote(e.Note, DefaultRules)
	return e, nil
}

// DebtEntry is a parsed `amount contact [purpose]` line.
type DebtEntry struct {
	AmountPaise int64
	Contact     string
	Purpose     string
}

// ParseDebtEntry tokenizes a borrow/lend line. The first token is the
// amount, the second the counterparty name, the rest the purpose.
func ParseDebtEntry(text string) (DebtEntry, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return DebtEntry{}, ErrMissingAmount
	}
	amount, err := ParseAmount(fields[0])
	if err != nil {
		return DebtEntry{}, err
	}
	if len(fields) < 2 {
		return DebtEntry{}, ErrMissingContact
	}
	return DebtEntry{
		AmountPaise: amount,
		Contact:     fields[1],
		Purpose:     strings.Join(fields[2:], " "),
	}, nil
}
