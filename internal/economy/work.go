package economy

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	workCooldown    = 24 * time.Hour
	workRewardMin   = 10
	workRewardMax   = 50
	WorkReplyWindow = 30 * time.Second
)

// WorkStatus is the terminal state of a work attempt. Every started attempt
// ends in exactly one of these.
type WorkStatus int

const (
	WorkTimedOut WorkStatus = iota
	WorkIncorrect
	WorkCorrect
)

func (s WorkStatus) String() string {
	switch s {
	case WorkCorrect:
		return "correct"
	case WorkIncorrect:
		return "incorrect"
	default:
		return "timed out"
	}
}

// Challenge is an open work quiz: a linear equation whose integer solution
// the user must reply with inside the reply window.
type Challenge struct {
	ID       string
	Question string
	answer   int
}

// Answer exposes the expected solution, mainly for rendering after a miss.
func (c *Challenge) Answer() int { return c.answer }

// WorkResult is the outcome of a finished work attempt.
type WorkResult struct {
	Status WorkStatus
	Reward int64
	Answer int
}

// ReplySource delivers the next qualifying reply for a work challenge, or an
// error once ctx is done. Which replies qualify (same user, same channel) is
// the source's concern.
type ReplySource interface {
	NextReply(ctx context.Context) (string, error)
}

// ReplySourceFunc adapts a plain function to a ReplySource.
type ReplySourceFunc func(ctx context.Context) (string, error)

func (f ReplySourceFunc) NextReply(ctx context.Context) (string, error) { return f(ctx) }

// StartWork opens a work attempt for accountID. It fails with CooldownError
// while less than 24h have passed since the previous attempt; otherwise it
// marks the attempt as consumed (LastWorked = now) in the same atomic step as
// the check and returns the challenge. Consuming at entry means a second
// concurrent attempt cannot slip through, and the day stays spent even if the
// caller never finishes the wait.
func (b *Bank) StartWork(accountID string, now time.Time, rng *rand.Rand) (*Challenge, error) {
	_, err := b.ledger.UpdateAccount(accountID, func(acc Account) (Account, error) {
		if !acc.LastWorked.IsZero() {
			elapsed := now.Sub(acc.LastWorked)
			if elapsed < workCooldown {
				return acc, &CooldownError{Remaining: workCooldown - elapsed}
			}
		}
		acc.LastWorked = now
		return acc, nil
	})
	if err != nil {
		return nil, err
	}

	// a*x + b = c with a small integer solution.
	x := rng.Intn(11) + 2
	a := rng.Intn(8) + 2
	bTerm := rng.Intn(20) + 1
	c := a*x + bTerm

	return &Challenge{
		ID:       uuid.NewString(),
		Question: fmt.Sprintf("Solve for x: %d·x + %d = %d", a, bTerm, c),
		answer:   x,
	}, nil
}

// FinishWork resolves an open challenge. replied=false records a timeout.
// A reply that parses to the expected solution credits a reward drawn
// uniformly from [10, 50]; anything else finishes the attempt without pay.
// The cooldown was already consumed by StartWork, so every path here is a
// terminal transition and none of them can fail the attempt open again.
func (b *Bank) FinishWork(accountID string, ch *Challenge, reply string, replied bool, rng *rand.Rand) (WorkResult, error) {
	if !replied {
		return WorkResult{Status: WorkTimedOut, Answer: ch.answer}, nil
	}

	value, ok := parseAnswer(reply)
	if !ok || value != ch.answer {
		return WorkResult{Status: WorkIncorrect, Answer: ch.answer}, nil
	}

	reward := int64(workRewardMin + rng.Intn(workRewardMax-workRewardMin+1))
	_, err := b.ledger.UpdateAccount(accountID, func(acc Account) (Account, error) {
		acc.Points += reward
		return acc, nil
	})
	if err != nil {
		return WorkResult{}, err
	}

	return WorkResult{Status: WorkCorrect, Reward: reward, Answer: ch.answer}, nil
}

// Work runs a whole attempt: open the challenge, hand the question to prompt,
// wait up to WorkReplyWindow for one qualifying reply from replies, and
// resolve. Exactly one terminal transition fires even when ctx is cancelled
// mid-wait: cancellation resolves as a timeout, never as an abandoned
// attempt.
func (b *Bank) Work(ctx context.Context, accountID string, now time.Time, rng *rand.Rand, prompt func(question string) error, replies ReplySource) (WorkResult, error) {
	ch, err := b.StartWork(accountID, now, rng)
	if err != nil {
		return WorkResult{}, err
	}

	if err := prompt(ch.Question); err != nil {
		// The attempt is already consumed; resolve it as timed out rather
		// than leaving the wait unresolved.
		return b.FinishWork(accountID, ch, "", false, rng)
	}

	waitCtx, cancel := context.WithTimeout(ctx, WorkReplyWindow)
	defer cancel()

	reply, err := replies.NextReply(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return b.FinishWork(accountID, ch, "", false, rng)
		}
		return WorkResult{}, err
	}

	return b.FinishWork(accountID, ch, reply, true, rng)
}

// parseAnswer accepts "6", "x=6" and "x = 6" style replies.
func parseAnswer(reply string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(reply))
	s = strings.TrimPrefix(s, "x")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimSpace(s)

	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return value, true
}
