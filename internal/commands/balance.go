package commands

import (
	"errors"
	"fmt"

	"server-banker/internal/economy"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        14,
		Name:        "balance",
		Description: "Check your points balance, or someone else's.",
		Category:    "💰 Economy",

		SlashHandler: balanceSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Whose balance to check (defaults to you)",
				Required:    false,
			},
		},
	})
}

func balanceSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	target := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "member" {
			target = opt.UserValue(s)
		}
	}

	acc, err := ctx.Bank.Balance(target.ID)
	if err != nil {
		if errors.Is(err, economy.ErrUnknownAccount) {
			if target.ID == i.Member.User.ID {
				respondEphemeral(s, i, "You don't have an account yet. `/daily` opens one.")
			} else {
				respondEphemeral(s, i, fmt.Sprintf("%s hasn't earned any points yet.", target.Username))
			}
			return
		}
		respondEphemeral(s, i, "Couldn't fetch the balance. Try again later.")
		return
	}

	desc := fmt.Sprintf("**%d** points", acc.Points)
	if acc.Streak > 0 {
		desc += fmt.Sprintf(" · daily streak **%d**", acc.Streak)
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏦 %s's account", target.Username),
		Description: desc,
		Color:       embedColor,
	})

	logCommand(ctx, "balance")
}
