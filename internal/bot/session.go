package bot

import (
	"sync"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
)

// State names the multi-step entry flow awaiting the owner's next message.
type State string

const (
	StateIdle                  State = ""
	StateAwaitIncomeAmount     State = "awaiting_income_amount"
	StateAwaitExpenseDetail    State = "awaiting_expense_detail"
	StateAwaitSavingsAmount    State = "awaiting_savings_amount"
	StateAwaitBorrowDetail     State = "awaiting_borrow_detail"
	StateAwaitLendDetail       State = "awaiting_lend_detail"
	StateAwaitSettlementDetail State = "awaiting_settlement_detail"
)

// Session is one owner's conversation state. Debt carries the direction
// for the settlement flow, where the state alone is not enough.
type Session struct {
	State State
	Debt  domain.DebtType
}

// Active reports whether the owner is inside a guided-entry flow.
func (s Session) Active() bool { return s.State != StateIdle }

// Sessions stores per-owner conversation state. Single-process deployments
// use the in-memory implementation; a multi-process one would back this
// with an external key-value store. State is ephemeral either way: an
// in-flight entry does not survive a restart.
type Sessions interface {
	Get(ownerID int64) Session
	Set(ownerID int64, s Session)
	Clear(ownerID int64)
}

type memorySessions struct {
	mu sync.RWMutex
	m  map[int64]Session
}

// NewMemorySessions returns a process-local Sessions store.
func NewMemorySessions() Sessions {
	return &memorySessions{m: make(map[int64]Session)}
}

func (s *memorySessions) Get(ownerID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[ownerID]
}

func (s *memorySessions) Set(ownerID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[ownerID] = sess
}

func (s *memorySessions) Clear(ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, ownerID)
}
