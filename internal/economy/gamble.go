package economy

import "math/rand"

// Outcome classifies a resolved wager.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeBreakEven
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeBreakEven:
		return "break-even"
	default:
		return "loss"
	}
}

// GambleResult describes a resolved wager.
type GambleResult struct {
	Multiplier float64
	Winnings   int64
	NewBalance int64
	Outcome    Outcome
}

// Gamble wagers bet points. The multiplier is drawn uniformly from
// {0.0, 0.1, ..., 2.0}; winnings are bet*multiplier rounded down. The
// balance is rewritten in a single atomic step, so there is never a visible
// state where the bet is debited but the winnings not yet credited.
func (b *Bank) Gamble(accountID string, bet int64, rng *rand.Rand) (GambleResult, error) {
	if bet <= 0 {
		return GambleResult{}, ErrInvalidAmount
	}

	var result GambleResult

	_, err := b.ledger.UpdateAccount(accountID, func(acc Account) (Account, error) {
		if bet > acc.Points {
			return acc, &InsufficientFundsError{Required: bet, Available: acc.Points}
		}

		// One decimal place of precision, so integer math is exact.
		tenths := int64(rng.Intn(21))
		winnings := bet * tenths / 10

		acc.Points = acc.Points - bet + winnings

		outcome := OutcomeBreakEven
		switch {
		case tenths > 10:
			outcome = OutcomeWin
		case tenths < 10:
			outcome = OutcomeLoss
		}

		result = GambleResult{
			Multiplier: float64(tenths) / 10,
			Winnings:   winnings,
			NewBalance: acc.Points,
			Outcome:    outcome,
		}
		return acc, nil
	})
	if err != nil {
		return GambleResult{}, err
	}
	return result, nil
}
