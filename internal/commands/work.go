package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"server-banker/internal/economy"
)

func init() {
	Register(&Command{
		Sort:        13,
		Name:        "work",
		Description: "Solve a quick math problem for points. Once a day.",
		Category:    "💰 Economy",

		SlashHandler: workSlashHandler,
	})
}

func workSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction
	userID, channelID := i.Member.User.ID, i.ChannelID

	rng := rand.New(rand.NewSource(rand.Int63()))

	// One qualifying reply: same user, same channel, first message wins.
	source := economy.ReplySourceFunc(func(waitCtx context.Context) (string, error) {
		return ctx.Replies.WaitForReply(waitCtx, channelID, userID)
	})

	prompt := func(question string) error {
		respond(s, i, fmt.Sprintf("🛠️ Time to work!\n**%s**\nReply in this channel within **%d seconds**.",
			question, int(economy.WorkReplyWindow.Seconds())))
		return nil
	}

	result, err := ctx.Bank.Work(context.Background(), userID, time.Now(), rng, prompt, source)
	if err != nil {
		var cooldown *economy.CooldownError
		if errors.As(err, &cooldown) {
			respondEphemeral(s, i, fmt.Sprintf("You already worked today. Come back in **%s**.", humanDuration(cooldown.Remaining)))
			return
		}
		respondEphemeral(s, i, "Something went wrong at work. Try again later.")
		return
	}

	switch result.Status {
	case economy.WorkCorrect:
		followUp(s, i, fmt.Sprintf("✅ Correct! You earned **%d** points.", result.Reward))
	case economy.WorkIncorrect:
		followUp(s, i, fmt.Sprintf("❌ Wrong answer — it was **%d**. No pay today.", result.Answer))
	case economy.WorkTimedOut:
		followUp(s, i, "⌛ Too slow. The shift is over and the day is spent.")
	}

	logCommand(ctx, "work")
}
