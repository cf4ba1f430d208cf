package economy

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAmount rejects zero or negative amounts before any ledger access.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// ErrUnknownAccount is returned by balance lookups for ids that never touched
// the ledger.
var ErrUnknownAccount = errors.New("account does not exist")

// InsufficientFundsError reports a debit that would overdraw the account.
type InsufficientFundsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d, have %d", e.Required, e.Available)
}

// CooldownError reports a time gate that has not elapsed yet.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %s remaining", e.Remaining.Round(time.Minute))
}
