package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestInteractionUserID(t *testing.T) {
	tests := []struct {
		name        string
		interaction *discordgo.InteractionCreate
		want        string
	}{
		{
			name: "guild interaction carries a member",
			interaction: &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{
					Member: &discordgo.Member{User: &discordgo.User{ID: "member-1"}},
				},
			},
			want: "member-1",
		},
		{
			name: "dm interaction carries a bare user",
			interaction: &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{
					User: &discordgo.User{ID: "user-2"},
				},
			},
			want: "user-2",
		},
		{
			name: "member wins when both are set",
			interaction: &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{
					Member: &discordgo.Member{User: &discordgo.User{ID: "member-1"}},
					User:   &discordgo.User{ID: "user-2"},
				},
			},
			want: "member-1",
		},
		{
			name: "nothing set",
			interaction: &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interactionUserID(tt.interaction))
		})
	}
}
