package domain

import "time"

// Kind is the type of a financial event.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSavings Kind = "savings"
)

// Expense categories. Anything outside this set is coerced to CategoryOther.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryBills         = "bills"
	CategoryShopping      = "shopping"
	CategoryHealth        = "health"
	CategoryEntertainment = "entertainment"
	CategoryEducation     = "education"
	CategoryOther         = "other"
)

// Categories lists the known categories in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryShopping,
	CategoryHealth,
	CategoryEntertainment,
	CategoryEducation,
	CategoryOther,
}

// IsCategory reports whether s is one of the known categories.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

// Transaction is one immutable financial event. Rows are inserted and
// bulk-deleted per owner, never updated.
type Transaction struct {
	ID          int64
	OwnerID     int64
	Kind        Kind
	AmountPaise int64
	Category    string
	Note        string
	CreatedAt   time.Time
}

type DebtType string

const (
	DebtBorrowed DebtType = "borrowed"
	DebtLent     DebtType = "lent"
)

type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtSettled DebtStatus = "settled"
)

// DebtRecord is one loan event between the owner and a named counterparty.
// ContactName is free text, matched by string equality in person-wise
// reports; there is no identity resolution across name variants.
type DebtRecord struct {
	ID          int64
	OwnerID     int64
	DebtType    DebtType
	AmountPaise int64
	ContactName string
	Purpose     string
	Status      DebtStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ReturnedAt  *time.Time
}

// UserSettings is the per-owner preference row. LastReportDate guards the
// daily push against duplicate sends.
type UserSettings struct {
	OwnerID        int64
	DailyReport    bool
	ReportTime     string // "15:04"
	Timezone       string // IANA name, empty means the bot default
	LastReportDate *time.Time
}
