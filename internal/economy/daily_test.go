package economy_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"server-banker/internal/economy"
	"server-banker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T) (*economy.Bank, *storage.Storage) {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return economy.NewBank(store, "vault"), store
}

func TestClaimDaily_FirstClaim(t *testing.T) {
	bank, _ := newTestBank(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	result, err := bank.ClaimDaily("alice", false, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.PointsEarned)
	assert.Equal(t, 1, result.Streak)

	acc, err := bank.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Points)
	assert.True(t, acc.LastCollected.Equal(t0))
}

func TestClaimDaily_CooldownThenSecondDay(t *testing.T) {
	bank, _ := newTestBank(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := bank.ClaimDaily("alice", false, t0)
	require.NoError(t, err)

	// 23h later: still gated.
	_, err = bank.ClaimDaily("alice", false, t0.Add(23*time.Hour))
	var cooldown *economy.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, time.Hour, cooldown.Remaining)

	// Balance unchanged by the failed claim.
	acc, err := bank.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Points)

	// 25h later: streak continues.
	result, err := bank.ClaimDaily("alice", false, t0.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
}

func TestClaimDaily_StreakResetsAfterMissedDay(t *testing.T) {
	bank, _ := newTestBank(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := bank.ClaimDaily("alice", false, t0)
	require.NoError(t, err)
	result, err := bank.ClaimDaily("alice", false, t0.Add(25*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, result.Streak)

	// More than 48h since the last claim: back to 1.
	result, err = bank.ClaimDaily("alice", false, t0.Add(25*time.Hour).Add(49*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestClaimDaily_StreakBonusAtSevenDays(t *testing.T) {
	bank, _ := newTestBank(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var result economy.DailyResult
	var err error
	for day := 0; day < 7; day++ {
		result, err = bank.ClaimDaily("alice", false, now)
		require.NoError(t, err)
		now = now.Add(25 * time.Hour)
	}

	assert.Equal(t, 7, result.Streak)
	assert.Equal(t, int64(300), result.PointsEarned) // 100 base + 200 streak bonus
}

func TestClaimDaily_PremiumMultiplier(t *testing.T) {
	bank, _ := newTestBank(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	result, err := bank.ClaimDaily("booster", true, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.PointsEarned)
}

func TestClaimDaily_ConcurrentClaimsYieldOneReward(t *testing.T) {
	bank, _ := newTestBank(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for n := 0; n < attempts; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = bank.ClaimDaily("alice", false, t0)
		}(n)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)

	acc, err := bank.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Points)
}
