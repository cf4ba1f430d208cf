package commands

import (
	"github.com/bwmarrin/discordgo"
)

type Command struct {
	Sort        int
	Name        string
	Description string
	Category    string

	SlashHandler func(ctx *SlashContext)
	SlashOptions []*discordgo.ApplicationCommandOption
}

var commandRegistry = map[string]*Command{}

func Register(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

func All() []*Command {
	var list []*Command
	for _, cmd := range commandRegistry {
		list = append(list, cmd)
	}
	return list
}
