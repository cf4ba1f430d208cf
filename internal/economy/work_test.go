package economy_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"server-banker/internal/economy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWork_ReturnsSolvableChallenge(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))

	ch, err := bank.StartWork("alice", time.Now(), rng)
	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.Contains(t, ch.Question, "Solve for x")
	assert.Greater(t, ch.Answer(), 0)
}

func TestWork_CorrectAnswerPaysWithinRange(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ch, err := bank.StartWork("alice", t0, rng)
	require.NoError(t, err)

	result, err := bank.FinishWork("alice", ch, fmt.Sprintf("x = %d", ch.Answer()), true, rng)
	require.NoError(t, err)
	assert.Equal(t, economy.WorkCorrect, result.Status)
	assert.GreaterOrEqual(t, result.Reward, int64(10))
	assert.LessOrEqual(t, result.Reward, int64(50))

	acc, err := bank.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, result.Reward, acc.Points)
	assert.True(t, acc.LastWorked.Equal(t0))
}

func TestWork_WrongAnswerPaysNothing(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))

	ch, err := bank.StartWork("alice", time.Now(), rng)
	require.NoError(t, err)

	result, err := bank.FinishWork("alice", ch, fmt.Sprintf("%d", ch.Answer()+1), true, rng)
	require.NoError(t, err)
	assert.Equal(t, economy.WorkIncorrect, result.Status)
	assert.Zero(t, result.Reward)

	acc, err := bank.Balance("alice")
	require.NoError(t, err)
	assert.Zero(t, acc.Points)
}

func TestWork_UnparseableAnswerCountsAsIncorrect(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))

	ch, err := bank.StartWork("alice", time.Now(), rng)
	require.NoError(t, err)

	result, err := bank.FinishWork("alice", ch, "forty two", true, rng)
	require.NoError(t, err)
	assert.Equal(t, economy.WorkIncorrect, result.Status)
}

func TestWork_TimeoutStillConsumesTheDay(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// A source that never delivers: the wait resolves by deadline.
	blocked := economy.ReplySourceFunc(func(ctx context.Context) (string, error) {
		return "", context.DeadlineExceeded
	})

	result, err := bank.Work(context.Background(), "alice", t0, rng,
		func(string) error { return nil }, blocked)
	require.NoError(t, err)
	assert.Equal(t, economy.WorkTimedOut, result.Status)
	assert.Zero(t, result.Reward)

	// The attempt is spent regardless of outcome.
	_, err = bank.StartWork("alice", t0.Add(time.Hour), rng)
	var cooldown *economy.CooldownError
	require.ErrorAs(t, err, &cooldown)
}

func TestWork_SecondAttemptSameDayGated(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ch, err := bank.StartWork("alice", t0, rng)
	require.NoError(t, err)
	_, err = bank.FinishWork("alice", ch, fmt.Sprintf("%d", ch.Answer()), true, rng)
	require.NoError(t, err)

	_, err = bank.StartWork("alice", t0.Add(23*time.Hour), rng)
	var cooldown *economy.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, time.Hour, cooldown.Remaining)

	// Next day is fine.
	_, err = bank.StartWork("alice", t0.Add(25*time.Hour), rng)
	assert.NoError(t, err)
}

func TestWork_FullFlowWithImmediateReply(t *testing.T) {
	bank, _ := newTestBank(t)
	rng := rand.New(rand.NewSource(7))

	questions := make(chan string, 1)
	prompt := func(question string) error {
		questions <- question
		return nil
	}

	// The test "user" actually solves the posted equation.
	source := economy.ReplySourceFunc(func(ctx context.Context) (string, error) {
		return fmt.Sprintf("%d", solveQuestion(t, <-questions)), nil
	})

	result, err := bank.Work(context.Background(), "alice", time.Now(), rng, prompt, source)
	require.NoError(t, err)
	assert.Equal(t, economy.WorkCorrect, result.Status)
	assert.GreaterOrEqual(t, result.Reward, int64(10))
}

// solveQuestion extracts a, b and c from "Solve for x: a·x + b = c".
func solveQuestion(t *testing.T, question string) int {
	t.Helper()

	var a, b, c int
	_, err := fmt.Sscanf(question, "Solve for x: %d·x + %d = %d", &a, &b, &c)
	require.NoError(t, err)
	require.NotZero(t, a)
	return (c - b) / a
}
