package commands

import (
	"fmt"
	"log"
	"time"

	"server-banker/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x2e8b57

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// followUp posts an additional message after the initial interaction response.
func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		log.Println("[ERR] Failed to send follow-up:", err)
	}
}

func logCommand(ctx *SlashContext, commandName string) {
	s, i := ctx.Session, ctx.Interaction

	channelName := ""
	if channel, err := s.State.Channel(i.ChannelID); err == nil && channel != nil {
		channelName = channel.Name
	}

	guildName := ""
	if guild, err := s.State.Guild(i.GuildID); err == nil && guild != nil {
		guildName = guild.Name
	}

	err := ctx.Storage.AppendCommandToHistory(storage.CommandHistoryRecord{
		ChannelID:   i.ChannelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      i.Member.User.ID,
		Username:    i.Member.User.Username,
		Command:     commandName,
		Datetime:    time.Now(),
	})
	if err != nil {
		log.Println("Failed to log command:", err)
	}
}

// isPremiumHolder is the external "premium" capability flag: server boosters
// get the multiplied daily reward.
func isPremiumHolder(member *discordgo.Member) bool {
	return member != nil && member.PremiumSince != nil
}

func humanDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%d hour%s", int(d.Hours()), pluralize(int(d.Hours())))
	}
	if d.Minutes() >= 1 {
		return fmt.Sprintf("%d minute%s", int(d.Minutes()), pluralize(int(d.Minutes())))
	}
	return fmt.Sprintf("%d second%s", int(d.Seconds()), pluralize(int(d.Seconds())))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
