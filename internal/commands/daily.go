package commands

import (
	"errors"
	"fmt"
	"time"

	"server-banker/internal/economy"
)

func init() {
	Register(&Command{
		Sort:        10,
		Name:        "daily",
		Description: "Collect your daily points. Streaks pay extra.",
		Category:    "💰 Economy",

		SlashHandler: dailySlashHandler,
	})
}

func dailySlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction
	member := i.Member

	result, err := ctx.Bank.ClaimDaily(member.User.ID, isPremiumHolder(member), time.Now())
	if err != nil {
		var cooldown *economy.CooldownError
		if errors.As(err, &cooldown) {
			respondEphemeral(s, i, fmt.Sprintf("You already collected today. Come back in **%s**.", humanDuration(cooldown.Remaining)))
			return
		}
		respondEphemeral(s, i, "Something went wrong collecting your daily reward. Try again later.")
		return
	}

	msg := fmt.Sprintf("💰 You collected **%d** points! Current streak: **%d** day%s.",
		result.PointsEarned, result.Streak, pluralize(result.Streak))
	if isPremiumHolder(member) {
		msg += " (×5 booster bonus applied)"
	}
	respond(s, i, msg)

	logCommand(ctx, "daily")
}
