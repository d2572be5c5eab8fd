package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// LedgerSnapshotMessage carries the whole ledger at one revision. The
// ledger is small, so the worker gets everything it needs to build a report
// without calling back into the API.
type LedgerSnapshotMessage struct {
	Transactions []core.Transaction      `json:"transactions"`
	Accounts     []core.FinancialAccount `json:"accounts"`
	Budgets      []core.Budget           `json:"budgets"`
	Goals        []core.SavingGoal       `json:"goals"`
	Currency     core.Currency           `json:"currency,omitempty"`
	Revision     uint64                  `json:"revision"`
	Timestamp    time.Time               `json:"timestamp"`
}

var ErrMissingTimestamp = errors.New("snapshot message has no timestamp")

func NewLedgerSnapshotMessage(snap ledger.Snapshot, currency core.Currency) *LedgerSnapshotMessage {
	ts := snap.TakenAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return &LedgerSnapshotMessage{
		Transactions: snap.Transactions,
		Accounts:     snap.Accounts,
		Budgets:      snap.Budgets,
		Goals:        snap.Goals,
		Currency:     currency,
		Revision:     snap.Revision,
		Timestamp:    ts,
	}
}

func (m *LedgerSnapshotMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Validate checks every record the message carries.
func (m *LedgerSnapshotMessage) Validate() error {
	if m.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	for i, tx := range m.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	for i, a := range m.Accounts {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("account %d: %w", i, err)
		}
	}
	for i, b := range m.Budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("budget %d: %w", i, err)
		}
	}
	for i, g := range m.Goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}
	}
	return nil
}

// LedgerSnapshotMessageFromJSON decodes and validates a message.
func LedgerSnapshotMessageFromJSON(data []byte) (*LedgerSnapshotMessage, error) {
	var msg LedgerSnapshotMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
