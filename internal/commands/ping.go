package commands

import (
	"fmt"
)

func init() {
	Register(&Command{
		Sort:        500,
		Name:        "ping",
		Description: "Pong!",
		Category:    "Information",

		SlashHandler: pingSlashHandler,
	})
}

func pingSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	latency := s.HeartbeatLatency().Milliseconds()
	respond(s, i, fmt.Sprintf("🏓 Pong! Response time: `%dms`", latency))

	logCommand(ctx, "ping")
}
