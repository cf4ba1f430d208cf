package commands

import (
	"errors"
	"fmt"
	"math/rand"

	"server-banker/internal/economy"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        12,
		Name:        "gamble",
		Description: "Wager points on a multiplier between ×0.0 and ×2.0",
		Category:    "💰 Economy",

		SlashHandler: gambleSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many points to put on the line",
				Required:    true,
			},
		},
	})
}

func gambleSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	result, err := ctx.Bank.Gamble(i.Member.User.ID, amount, rand.New(rand.NewSource(rand.Int63())))
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrInvalidAmount):
			respondEphemeral(s, i, "The wager has to be a positive number.")
		default:
			var funds *economy.InsufficientFundsError
			if errors.As(err, &funds) {
				respondEphemeral(s, i, fmt.Sprintf(
					"You can't bet **%d** with only **%d** points.", funds.Required, funds.Available))
				return
			}
			respondEphemeral(s, i, "The wager failed. Try again later.")
		}
		return
	}

	var headline string
	switch result.Outcome {
	case economy.OutcomeWin:
		headline = "🎉 You won!"
	case economy.OutcomeBreakEven:
		headline = "😐 Break-even."
	default:
		headline = "💀 You lost."
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "🎰 Gamble",
		Description: fmt.Sprintf("%s Multiplier: **×%.1f**\nWager: **%d** → Payout: **%d**\nNew balance: **%d**",
			headline, result.Multiplier, amount, result.Winnings, result.NewBalance),
		Color: embedColor,
	})

	logCommand(ctx, fmt.Sprintf("gamble %d", amount))
}
