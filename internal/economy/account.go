// Package economy implements the virtual-points ledger: daily reward claims
// with streaks, fee-charging transfers, wagers and the work quiz. It knows
// nothing about Discord; the command layer feeds it account ids, timestamps
// and replies, and renders the result structs it returns.
package economy

import "time"

// Account is one ledger row, keyed by the platform user id. A zero-value
// timestamp means the user never performed that action.
type Account struct {
	UserID        string    `json:"user_id"`
	Points        int64     `json:"points"`
	Streak        int       `json:"streak"`
	LastCollected time.Time `json:"last_collected,omitempty"`
	LastWorked    time.Time `json:"last_worked,omitempty"`
}

// Ledger is the persistence contract the engines run against. Rows are
// created implicitly: update callbacks receive a zero-value Account for ids
// that were never written. Implementations must make each call a single
// atomic unit so concurrent operations on the same account serialize.
type Ledger interface {
	// GetAccount returns the row for id, reporting whether it exists.
	GetAccount(id string) (Account, bool, error)

	// UpdateAccount applies fn to the current row (or a default) and writes
	// the result back atomically. If fn returns an error nothing is written
	// and the error is returned as-is.
	UpdateAccount(id string, fn func(Account) (Account, error)) (Account, error)

	// TransferPoints debits fromID by amount+fee, credits toID by amount and
	// feeID by fee as one indivisible unit. It fails with
	// InsufficientFundsError and no partial effect if the debit would make
	// the sender negative.
	TransferPoints(fromID, toID, feeID string, amount, fee int64) error

	// TopAccounts returns up to n accounts ordered by points descending,
	// ties broken by ascending user id.
	TopAccounts(n int) ([]Account, error)
}

// Bank bundles the ledger with the fee-collector account id and is the entry
// point for every economy operation.
type Bank struct {
	ledger       Ledger
	feeAccountID string
}

// NewBank returns a Bank writing transfer fees to feeAccountID.
func NewBank(ledger Ledger, feeAccountID string) *Bank {
	return &Bank{ledger: ledger, feeAccountID: feeAccountID}
}

// FeeAccountID returns the id of the fee-collector account.
func (b *Bank) FeeAccountID() string {
	return b.feeAccountID
}

// Balance returns the account row for id. Accounts that were never written
// report ErrUnknownAccount rather than a phantom zero row.
func (b *Bank) Balance(id string) (Account, error) {
	acc, ok, err := b.ledger.GetAccount(id)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, ErrUnknownAccount
	}
	return acc, nil
}

// Leaderboard returns up to n accounts richest-first.
func (b *Bank) Leaderboard(n int) ([]Account, error) {
	return b.ledger.TopAccounts(n)
}
