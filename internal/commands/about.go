package commands

import (
	"fmt"

	v "server-banker/internal/version"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        502,
		Name:        "about",
		Description: "What this bot is and how the economy works.",
		Category:    "Information",

		SlashHandler: aboutSlashHandler,
	})
}

func aboutSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s v%s", v.AppName, v.AppVersion),
		Description: "A points economy for this server.\n\n" +
			"Collect `/daily` rewards (streaks pay bonuses, boosters earn ×5), " +
			"`/give` points to friends — the vault takes a daily fee between 5% and 15% — " +
			"`/gamble` them away, or `/work` an honest math problem once a day.",
		Color: embedColor,
	})

	logCommand(ctx, "about")
}
