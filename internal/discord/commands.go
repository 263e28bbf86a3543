package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CommandKind is the closed set of commands this bot answers. Interaction
// names are parsed into it exactly once at dispatch; everything downstream
// switches on the kind, not the string.
type CommandKind int

const (
	CommandPing CommandKind = iota
	CommandPlay
	CommandPause
	CommandResume
	CommandSkip
	CommandStop
)

// ParseCommand maps an interaction name onto the command set
func ParseCommand(name string) (CommandKind, bool) {
	switch name {
	case "ping":
		return CommandPing, true
	case "play":
		return CommandPlay, true
	case "pause":
		return CommandPause, true
	case "resume":
		return CommandResume, true
	case "skip":
		return CommandSkip, true
	case "stop":
		return CommandStop, true
	default:
		return 0, false
	}
}

// CommandDefinitions is the slash command schema registered at startup
func CommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "ping",
		},
		{
			Name:        "play",
			Description: "Add a track to the queue.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "url or search term",
					Required:    true,
				},
			},
		},
		{
			Name:        "pause",
			Description: "Pause the current track.",
		},
		{
			Name:        "resume",
			Description: "Resume the current track.",
		},
		{
			Name:        "skip",
			Description: "Skip the current track.",
		},
		{
			Name:        "stop",
			Description: "Stop and remove all tracks from the queue.",
		},
	}
}

// RegisterCommands registers the schema, guild-scoped when guildID is set
// and globally otherwise
func RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range CommandDefinitions() {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}
