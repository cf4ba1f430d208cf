package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        501,
		Name:        "help",
		Description: "List all available commands.",
		Category:    "Information",

		SlashHandler: helpSlashHandler,
	})
}

func helpSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	cmds := All()
	sort.Slice(cmds, func(a, b int) bool { return cmds[a].Sort < cmds[b].Sort })

	grouped := map[string][]*Command{}
	var order []string
	for _, cmd := range cmds {
		if _, seen := grouped[cmd.Category]; !seen {
			order = append(order, cmd.Category)
		}
		grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
	}

	var sb strings.Builder
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("**%s**\n", category))
		for _, cmd := range grouped[category] {
			sb.WriteString(fmt.Sprintf("`/%s` — %s\n", cmd.Name, cmd.Description))
		}
		sb.WriteString("\n")
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "📖 Commands",
		Description: sb.String(),
		Color:       embedColor,
	})

	logCommand(ctx, "help")
}
