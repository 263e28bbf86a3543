package voice

import (
	"github.com/bwmarrin/discordgo"
)

// Transport is the subset of a live voice connection the playback layer
// needs. The real implementation is discordgo's; tests substitute fakes.
type Transport interface {
	// Speaking toggles the speaking indicator before/after sending audio
	Speaking(flag bool) error
	// Send returns the channel opus frames are written to
	Send() chan<- []byte
	// Disconnect tears the voice connection down
	Disconnect() error
}

// Joiner establishes voice connections. *discordgo.Session is adapted to it
// via SessionJoiner.
type Joiner interface {
	Join(guildID, channelID string) (Transport, error)
}

// discordTransport wraps *discordgo.VoiceConnection as a Transport
type discordTransport struct {
	vc *discordgo.VoiceConnection
}

func (t *discordTransport) Speaking(flag bool) error {
	return t.vc.Speaking(flag)
}

func (t *discordTransport) Send() chan<- []byte {
	return t.vc.OpusSend
}

func (t *discordTransport) Disconnect() error {
	return t.vc.Disconnect()
}

// SessionJoiner adapts a discordgo session to the Joiner interface
type SessionJoiner struct {
	Session *discordgo.Session
}

// Join connects to a voice channel, muted=false deafened=true
func (j *SessionJoiner) Join(guildID, channelID string) (Transport, error) {
	vc, err := j.Session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return &discordTransport{vc: vc}, nil
}
