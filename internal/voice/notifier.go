package voice

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"bami/pkg/errors"
)

// EmbedColor is the accent color for playback notifications
const EmbedColor = 0xf04628

// MessageSender is the slice of the Discord REST client the notifier needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts "Now playing" messages back to the text channel a track
// was requested from. Delivery failures are logged and dropped; playback
// never waits on them.
type Notifier struct {
	sender MessageSender
	log    *zap.Logger
}

// NewNotifier creates a playback notifier
func NewNotifier(sender MessageSender, log *zap.Logger) *Notifier {
	return &Notifier{sender: sender, log: log}
}

// TrackStarted announces that a track's audio has begun
func (n *Notifier) TrackStarted(t *TrackEntry) {
	if t.ChannelID == "" {
		return
	}

	if _, err := n.sender.ChannelMessageSendEmbed(t.ChannelID, NowPlayingEmbed(t)); err != nil {
		n.log.Warn("failed to send now-playing notification",
			zap.String("track_id", t.ID),
			zap.Error(errors.NewMessageSendFailed(t.ChannelID, err)),
		)
	}
}

// NowPlayingEmbed builds the notification embed: linked title, formatted
// duration, requester mention and thumbnail. Missing metadata fields render
// as "Unknown" rather than breaking the message.
func NowPlayingEmbed(t *TrackEntry) *discordgo.MessageEmbed {
	song := t.DisplayTitle()
	if t.Metadata.SourceURL != "" {
		song = fmt.Sprintf("[%s](%s)", t.DisplayTitle(), t.Metadata.SourceURL)
	}

	duration := "Unknown"
	if t.Metadata.Duration > 0 {
		duration = FormatDuration(t.Metadata.Duration)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Now playing",
		Color: EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Song", Value: song, Inline: true},
			{Name: "Duration", Value: duration, Inline: true},
			{Name: "Requested by", Value: fmt.Sprintf("<@%s>", t.Requester), Inline: true},
		},
	}
	if t.Metadata.Thumbnail != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: t.Metadata.Thumbnail}
	}
	return embed
}

// QueuedEmbed builds the confirmation embed sent when a track is accepted
// into the queue
func QueuedEmbed(t *TrackEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       t.DisplayTitle(),
		URL:         t.Metadata.SourceURL,
		Color:       EmbedColor,
		Description: fmt.Sprintf("Requested by <@%s>", t.Requester),
	}
	if t.Metadata.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.Metadata.Thumbnail}
	}
	return embed
}
