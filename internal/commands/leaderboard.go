package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const leaderboardSize = 10

func init() {
	Register(&Command{
		Sort:        15,
		Name:        "leaderboard",
		Description: "The richest members on the server.",
		Category:    "💰 Economy",

		SlashHandler: leaderboardSlashHandler,
	})
}

func leaderboardSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	accounts, err := ctx.Bank.Leaderboard(leaderboardSize)
	if err != nil {
		respondEphemeral(s, i, "Couldn't fetch the leaderboard. Try again later.")
		return
	}
	if len(accounts) == 0 {
		respondEphemeral(s, i, "Nobody has any points yet. Be the first with `/daily`.")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var lines []string
	for idx, acc := range accounts {
		rank := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			rank = medals[idx]
		}

		name := acc.UserID
		if acc.UserID == ctx.Bank.FeeAccountID() {
			name = "🏦 the vault"
		} else if user, err := s.User(acc.UserID); err == nil {
			name = user.Username
		}

		lines = append(lines, fmt.Sprintf("%s **%s** — %d points", rank, name, acc.Points))
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🏆 Points Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       embedColor,
	})

	logCommand(ctx, "leaderboard")
}
