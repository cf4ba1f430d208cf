package economy

import "time"

const (
	dailyBaseReward   = 100
	dailyCooldown     = 24 * time.Hour
	streakGracePeriod = 48 * time.Hour
	premiumMultiplier = 5
)

// streakBonusThresholds maps the streak milestones to their flat bonus. The
// largest threshold not above the current streak applies.
var streakBonusThresholds = []struct {
	days  int
	bonus int64
}{
	{365, 10000},
	{180, 5000},
	{90, 2000},
	{30, 1000},
	{14, 500},
	{7, 200},
}

// DailyResult is the outcome of a successful daily claim.
type DailyResult struct {
	PointsEarned int64
	Streak       int
}

// ClaimDaily credits the daily reward for accountID. It fails with
// CooldownError while less than 24h have passed since the previous claim.
// Missing a full day (more than 48h since the last claim) resets the streak
// to 1; otherwise it increments. Premium holders earn five times the total.
// The cooldown check, streak math and credit happen in one atomic unit, so
// two near-simultaneous claims cannot both succeed.
func (b *Bank) ClaimDaily(accountID string, premium bool, now time.Time) (DailyResult, error) {
	var result DailyResult

	_, err := b.ledger.UpdateAccount(accountID, func(acc Account) (Account, error) {
		if !acc.LastCollected.IsZero() {
			elapsed := now.Sub(acc.LastCollected)
			if elapsed < dailyCooldown {
				return acc, &CooldownError{Remaining: dailyCooldown - elapsed}
			}
			if elapsed > streakGracePeriod {
				acc.Streak = 1
			} else {
				acc.Streak++
			}
		} else {
			acc.Streak = 1
		}

		earned := dailyBaseReward + streakBonus(acc.Streak)
		if premium {
			earned *= premiumMultiplier
		}

		acc.Points += earned
		acc.LastCollected = now

		result = DailyResult{PointsEarned: earned, Streak: acc.Streak}
		return acc, nil
	})
	if err != nil {
		return DailyResult{}, err
	}
	return result, nil
}

func streakBonus(streak int) int64 {
	for _, tier := range streakBonusThresholds {
		if streak >= tier.days {
			return tier.bonus
		}
	}
	return 0
}
