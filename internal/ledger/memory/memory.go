package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Store is an in-process ledger. Every read returns copies, so callers may
// modify what they get back.
type Store struct {
	mu       sync.RWMutex
	txs      []core.Transaction
	accounts []core.FinancialAccount
	budgets  []core.Budget
	goals    []core.SavingGoal
	revision uint64

	now   func() time.Time
	newID func() string
}

var _ ledger.Ledger = (*Store)(nil)

// Seed is the initial content of a Store.
type Seed struct {
	Transactions []core.Transaction      `json:"transactions"`
	Accounts     []core.FinancialAccount `json:"accounts"`
	Budgets      []core.Budget           `json:"budgets"`
	Goals        []core.SavingGoal       `json:"goals"`
}

func New() *Store {
	return &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the time source used for LastUpdated and relative
// seed dates.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// NewFromSeed validates every seeded record before loading it. Records
// without an ID get one.
func NewFromSeed(seed Seed) (*Store, error) {
	s := New()
	if err := s.load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromFile seeds a Store from a JSON file. A missing file yields an empty
// ledger.
func NewFromFile(path string, now func() time.Time) (*Store, error) {
	s := New()
	if now != nil {
		s.now = now
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	seed, err := decodeSeed(raw, s.now())
	if err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if err := s.load(seed); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) load(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range seed.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		if tx.ID == "" {
			tx.ID = s.newID()
		}
		s.txs = append(s.txs, tx)
	}
	for i, a := range seed.Accounts {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("account %d: %w", i, err)
		}
		if a.ID == "" {
			a.ID = s.newID()
		}
		if a.LastUpdated.IsZero() {
			a.LastUpdated = s.now()
		}
		s.accounts = append(s.accounts, a)
	}
	for i, b := range seed.Budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("budget %d: %w", i, err)
		}
		s.budgets = append(s.budgets, b)
	}
	for i, g := range seed.Goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}
		if g.ID == "" {
			g.ID = s.newID()
		}
		s.goals = append(s.goals, g)
	}
	return nil
}

// ListTransactions returns transactions newest first; equal dates keep
// insertion order.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.txs)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	if out == nil {
		out = []core.Transaction{}
	}
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.txIndex(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	return s.txs[i], nil
}

func (s *Store) AddTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = s.newID()
	} else if s.txIndex(tx.ID) >= 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", tx.ID, ledger.ErrConflict)
	}
	s.txs = append(s.txs, tx)
	s.revision++
	return tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.txIndex(tx.ID)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", tx.ID, ledger.ErrNotFound)
	}
	s.txs[i] = tx
	s.revision++
	return tx, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.txIndex(id)
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	s.txs = slices.Delete(s.txs, i, i+1)
	s.revision++
	return nil
}

// ImportTransactions validates the whole batch before storing any of it.
// IDs already present, in the store or earlier in the batch, are replaced
// with fresh ones.
func (s *Store) ImportTransactions(_ context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(txs))
	out := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		_, dup := seen[tx.ID]
		if tx.ID == "" || dup || s.txIndex(tx.ID) >= 0 {
			tx.ID = s.newID()
		}
		seen[tx.ID] = struct{}{}
		out[i] = tx
	}
	if len(out) == 0 {
		return out, nil
	}
	s.txs = append(s.txs, out...)
	s.revision++
	return slices.Clone(out), nil
}

func (s *Store) txIndex(id string) int {
	return slices.IndexFunc(s.txs, func(t core.Transaction) bool { return t.ID == id })
}

func (s *Store) ListAccounts(_ context.Context) ([]core.FinancialAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.accounts)
	if out == nil {
		out = []core.FinancialAccount{}
	}
	return out, nil
}

func (s *Store) GetAccount(_ context.Context, id string) (core.FinancialAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.accountIndex(id)
	if i < 0 {
		return core.FinancialAccount{}, fmt.Errorf("account %s: %w", id, ledger.ErrNotFound)
	}
	return s.accounts[i], nil
}

// AddAccount stores a and stamps LastUpdated.
func (s *Store) AddAccount(_ context.Context, a core.FinancialAccount) (core.FinancialAccount, error) {
	if err := a.Validate(); err != nil {
		return core.FinancialAccount{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = s.newID()
	} else if s.accountIndex(a.ID) >= 0 {
		return core.FinancialAccount{}, fmt.Errorf("account %s: %w", a.ID, ledger.ErrConflict)
	}
	a.LastUpdated = s.now()
	s.accounts = append(s.accounts, a)
	s.revision++
	return a, nil
}

// UpdateAccount replaces the account with the same ID and stamps LastUpdated.
func (s *Store) UpdateAccount(_ context.Context, a core.FinancialAccount) (core.FinancialAccount, error) {
	if err := a.Validate(); err != nil {
		return core.FinancialAccount{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.accountIndex(a.ID)
	if i < 0 {
		return core.FinancialAccount{}, fmt.Errorf("account %s: %w", a.ID, ledger.ErrNotFound)
	}
	a.LastUpdated = s.now()
	s.accounts[i] = a
	s.revision++
	return a, nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.accountIndex(id)
	if i < 0 {
		return fmt.Errorf("account %s: %w", id, ledger.ErrNotFound)
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)
	s.revision++
	return nil
}

func (s *Store) accountIndex(id string) int {
	return slices.IndexFunc(s.accounts, func(a core.FinancialAccount) bool { return a.ID == id })
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.budgets)
	if out == nil {
		out = []core.Budget{}
	}
	return out, nil
}

func (s *Store) PutBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.budgets, func(x core.Budget) bool {
		return x.UserID == b.UserID && x.Category == b.Category
	})
	if i < 0 {
		s.budgets = append(s.budgets, b)
	} else {
		s.budgets[i] = b
	}
	s.revision++
	return b, nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.goals)
	if out == nil {
		out = []core.SavingGoal{}
	}
	return out, nil
}

// Snapshot copies every collection under one read lock, so the result
// reflects a single revision.
func (s *Store) Snapshot(_ context.Context) (ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := slices.Clone(s.txs)
	slices.SortStableFunc(txs, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return ledger.Snapshot{
		Transactions: nonNil(txs),
		Accounts:     nonNil(slices.Clone(s.accounts)),
		Budgets:      nonNil(slices.Clone(s.budgets)),
		Goals:        nonNil(slices.Clone(s.goals)),
		Revision:     s.revision,
		TakenAt:      s.now(),
	}, nil
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// seedTransaction and seedGoal accept dates relative to load time, so a seed
// file stays current: "daysAgo": 3 or "daysAhead": 90.
type (
	seedTransaction struct {
		core.Transaction
		DaysAgo *int `json:"daysAgo,omitempty"`
	}
	seedGoal struct {
		core.SavingGoal
		DaysAhead *int `json:"daysAhead,omitempty"`
	}
	seedFile struct {
		Transactions []seedTransaction       `json:"transactions"`
		Accounts     []core.FinancialAccount `json:"accounts"`
		Budgets      []core.Budget           `json:"budgets"`
		Goals        []seedGoal              `json:"goals"`
	}
)

func decodeSeed(raw []byte, now time.Time) (Seed, error) {
	var f seedFile
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Seed{}, err
	}
	seed := Seed{Accounts: f.Accounts, Budgets: f.Budgets}
	for _, st := range f.Transactions {
		tx := st.Transaction
		if st.DaysAgo != nil {
			tx.Date = now.AddDate(0, 0, -*st.DaysAgo)
		}
		seed.Transactions = append(seed.Transactions, tx)
	}
	for _, sg := range f.Goals {
		g := sg.SavingGoal
		if sg.DaysAhead != nil {
			d := now.AddDate(0, 0, *sg.DaysAhead)
			g.TargetDate = &d
		}
		seed.Goals = append(seed.Goals, g)
	}
	return seed, nil
}
