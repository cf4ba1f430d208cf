package commands

import (
	"errors"
	"fmt"
	"log"
	"time"

	"server-banker/internal/economy"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        11,
		Name:        "give",
		Description: "Send points to another member. The bank takes its cut.",
		Category:    "💰 Economy",

		SlashHandler: giveSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "recipient",
				Description: "Who receives the points",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many points to send",
				Required:    true,
			},
		},
	})
}

func giveSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction
	sender := i.Member.User

	var recipient *discordgo.User
	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "recipient":
			recipient = opt.UserValue(s)
		case "amount":
			amount = opt.IntValue()
		}
	}

	if recipient == nil {
		respondEphemeral(s, i, "Pick someone to send points to.")
		return
	}
	if recipient.ID == sender.ID {
		respondEphemeral(s, i, "Sending points to yourself? The fee would be the only thing that moves.")
		return
	}
	if recipient.Bot {
		respondEphemeral(s, i, "Bots have no use for points.")
		return
	}

	result, err := ctx.Bank.Transfer(sender.ID, recipient.ID, amount, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrInvalidAmount):
			respondEphemeral(s, i, "The amount has to be a positive number.")
		default:
			var funds *economy.InsufficientFundsError
			if errors.As(err, &funds) {
				respondEphemeral(s, i, fmt.Sprintf(
					"Not enough points: that transfer costs **%d** (amount + fee) and you have **%d**.",
					funds.Required, funds.Available))
				return
			}
			respondEphemeral(s, i, "The transfer failed. Try again later.")
		}
		return
	}

	// The ledger mutation is committed; everything below is best-effort
	// notification and must not undo it.
	respond(s, i, fmt.Sprintf(
		"💸 Sent **%d** points to %s. Today's fee is **%d%%**, so **%d** left your account (**%d** went to the vault).",
		result.Amount, recipient.Mention(), result.FeePercent, result.TotalCost, result.Fee))

	if dm, err := s.UserChannelCreate(recipient.ID); err == nil {
		_, err := s.ChannelMessageSend(dm.ID, fmt.Sprintf(
			"💸 %s sent you **%d** points!", sender.Username, result.Amount))
		if err != nil {
			log.Println("[WARN] Failed to DM transfer recipient:", err)
		}
	}

	logCommand(ctx, fmt.Sprintf("give %d", amount))
}
