package commands

import (
	"server-banker/internal/economy"
	"server-banker/internal/replies"
	"server-banker/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type SlashContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Storage     *storage.Storage
	Bank        *economy.Bank
	Replies     *replies.Hub
}
