package discord

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"server-banker/internal/commands"
	"server-banker/internal/config"
	"server-banker/internal/economy"
	"server-banker/internal/replies"
	"server-banker/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord adapter: it owns the gateway session and translates
// interactions into command invocations against the economy core.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	bank    *economy.Bank
	replies *replies.Hub
	limiter *userLimiter
}

func NewBot(cfg *config.Config, store *storage.Storage, bank *economy.Bank, hub *replies.Hub) *Bot {
	return &Bot{
		cfg:     cfg,
		storage: store,
		bank:    bank,
		replies: hub,
		limiter: newUserLimiter(),
	}
}

// Run opens the gateway session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if b.cfg.InitSlashCommands {
		for _, g := range r.Guilds {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", s.State.User.Username)
}

// onGuildCreate is called when the bot joins a guild
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

// onMessageCreate feeds plain messages to the reply hub so an open work
// challenge can consume the first qualifying one. Everything else is ignored.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	b.replies.Deliver(m.ChannelID, m.Author.ID, m.Content)
}

// onInteractionCreate dispatches slash commands
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.Member == nil {
		// Economy commands only make sense inside a guild.
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := commands.Get(cmdName)
	if !ok {
		log.Printf("[WARN] Unknown command: %s", cmdName)
		return
	}

	if !b.limiter.Allow(i.Member.User.ID) {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Slow down a little — try again in a few seconds.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	ctx := &commands.SlashContext{
		Session:     s,
		Interaction: i,
		Storage:     b.storage,
		Bank:        b.bank,
		Replies:     b.replies,
	}

	// Each interaction runs on its own goroutine; the work command can block
	// on its reply window without holding up other users.
	go cmd.SlashHandler(ctx)
}

// registerCommands registers slash commands for a guild
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	for _, cmd := range commands.All() {
		wanted = append(wanted, &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.SlashOptions,
		})
	}

	registerWithRateLimit(b.dg, appID, guildID, wanted)
	return nil
}

// registerWithRateLimit spaces out command creation so bulk registration does
// not trip the Discord API.
func registerWithRateLimit(dg *discordgo.Session, appID, guildID string, cmds []*discordgo.ApplicationCommand) {
	ticker := time.NewTicker(time.Second / 40)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for _, job := range cmds {
		wg.Add(1)
		go func(cmd *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			if _, err := dg.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
				log.Printf("[ERR] Can't create command %s: %v", cmd.Name, err)
			}
		}(job)
	}
	wg.Wait()
}
