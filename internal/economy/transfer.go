package economy

import "time"

// TransferResult describes a committed transfer.
type TransferResult struct {
	Amount     int64
	Fee        int64
	FeePercent int
	TotalCost  int64
}

// Transfer moves amount points from senderID to recipientID, charging the
// day's fee on top. The sender pays amount+fee, the recipient receives
// amount, and the fee lands on the fee-collector account. All three rows
// move as one indivisible unit or not at all. Delivery notifications are the
// caller's business and must happen after this returns.
func (b *Bank) Transfer(senderID, recipientID string, amount int64, now time.Time) (TransferResult, error) {
	if amount <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}

	percent := FeePercentForDay(now)
	fee := amount * int64(percent) / 100

	if err := b.ledger.TransferPoints(senderID, recipientID, b.feeAccountID, amount, fee); err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		Amount:     amount,
		Fee:        fee,
		FeePercent: percent,
		TotalCost:  amount + fee,
	}, nil
}
