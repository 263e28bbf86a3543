package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"bami/internal/resolver"
	"bami/internal/voice"
	"bami/pkg/errors"
)

// Router dispatches slash command interactions. Every interaction runs on
// its own goroutine so one slow handler never holds up gateway ingestion or
// another guild's commands; handler errors stop at the dispatch boundary.
type Router struct {
	ctx      context.Context
	session  *discordgo.Session
	registry *voice.Registry
	resolver *resolver.Resolver
	log      *zap.Logger
}

// NewRouter wires the command dispatcher. ctx is the process root context;
// interactions arriving after it is cancelled are dropped.
func NewRouter(ctx context.Context, session *discordgo.Session, registry *voice.Registry, res *resolver.Resolver, log *zap.Logger) *Router {
	return &Router{
		ctx:      ctx,
		session:  session,
		registry: registry,
		resolver: res,
		log:      log,
	}
}

// Attach registers the router on the gateway session
func (r *Router) Attach() {
	r.session.AddHandler(r.onInteractionCreate)
}

func (r *Router) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if r.ctx.Err() != nil {
		return // shutting down, stop taking new work
	}
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	go r.dispatch(i)
}

func (r *Router) dispatch(i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	kind, ok := ParseCommand(name)
	if !ok {
		r.log.Warn("unknown command", zap.Error(errors.NewUnknownCommand(name)))
		return
	}

	var err error
	switch kind {
	case CommandPing:
		err = r.handlePing(i)
	case CommandPlay:
		err = r.handlePlay(i)
	case CommandPause:
		err = r.handlePause(i)
	case CommandResume:
		err = r.handleResume(i)
	case CommandSkip:
		err = r.handleSkip(i)
	case CommandStop:
		err = r.handleStop(i)
	}

	if err != nil {
		// User-side voice errors (not in a channel) are noise at error level
		logAt := r.log.Error
		if errors.IsErrorType(err, errors.ErrorTypeVoice) {
			logAt = r.log.Warn
		}
		logAt("error while handling command",
			zap.String("command", name),
			zap.String("guild_id", i.GuildID),
			zap.Error(err),
		)
	}
}

func (r *Router) handlePing(i *discordgo.InteractionCreate) error {
	return Respond(r.session, i, "pong")
}

// handlePlay resolves the query, makes sure a voice session exists for the
// guild and enqueues everything that resolved. The session lock is never
// held across the Discord calls here; Enqueue takes and releases it per
// track.
func (r *Router) handlePlay(i *discordgo.InteractionCreate) error {
	query := i.ApplicationCommandData().Options[0].StringValue()
	userID := interactionUserID(i)

	if i.GuildID == "" {
		return RespondEphemeral(r.session, i, "This command only works in a server")
	}

	if err := Respond(r.session, i, "Processing"); err != nil {
		return err
	}

	sess, ok := r.registry.Get(i.GuildID)
	if !ok {
		vs, err := r.session.State.VoiceState(i.GuildID, userID)
		if err != nil || vs == nil || vs.ChannelID == "" {
			if e := EditResponse(r.session, i, "You are not in a voice channel"); e != nil {
				return e
			}
			return errors.ErrNotInVoiceChannel
		}

		r.log.Debug("joining voice channel",
			zap.String("guild_id", i.GuildID),
			zap.String("channel_id", vs.ChannelID),
		)
		sess, err = r.registry.Join(i.GuildID, vs.ChannelID)
		if err != nil {
			if e := EditResponse(r.session, i, "Failed to join voice channel"); e != nil {
				return e
			}
			return err
		}
	}

	res, err := r.resolver.Resolve(r.ctx, query)
	if err != nil {
		if e := EditResponse(r.session, i, "Error processing your request"); e != nil {
			return e
		}
		return err
	}

	for _, skipped := range res.Skipped {
		if err := Followup(r.session, i, fmt.Sprintf("Couldn't resolve `%s`, skipping it", skipped.Source)); err != nil {
			r.log.Warn("failed to send skip notice", zap.Error(err))
		}
	}

	for _, t := range res.Tracks {
		entry := voice.NewTrackEntry(t.Source, userID, i.ChannelID)
		entry.Metadata = t.Metadata
		sess.Enqueue(entry)

		if err := FollowupEmbed(r.session, i, voice.QueuedEmbed(entry)); err != nil {
			r.log.Warn("failed to send queued embed",
				zap.String("channel_id", i.ChannelID),
				zap.Error(err),
			)
		}
	}

	return EditResponse(r.session, i, fmt.Sprintf("Queued %d tracks", len(res.Tracks)))
}

// The four queue commands keep the original behavior for a guild with no
// session or an idle queue: the operation quietly becomes a no-op and the
// user still gets the confirmation word.

func (r *Router) handlePause(i *discordgo.InteractionCreate) error {
	if sess, ok := r.registry.Get(i.GuildID); ok {
		if err := sess.Pause(); err != nil {
			r.log.Debug("pause ignored", zap.String("guild_id", i.GuildID), zap.Error(err))
		}
	} else {
		r.log.Debug("pause with no active session", zap.String("guild_id", i.GuildID), zap.Error(errors.ErrNoActiveSession))
	}
	return Respond(r.session, i, "Pausing")
}

func (r *Router) handleResume(i *discordgo.InteractionCreate) error {
	if sess, ok := r.registry.Get(i.GuildID); ok {
		if err := sess.Resume(); err != nil {
			r.log.Debug("resume ignored", zap.String("guild_id", i.GuildID), zap.Error(err))
		}
	} else {
		r.log.Debug("resume with no active session", zap.String("guild_id", i.GuildID), zap.Error(errors.ErrNoActiveSession))
	}
	return Respond(r.session, i, "Resuming")
}

func (r *Router) handleSkip(i *discordgo.InteractionCreate) error {
	if sess, ok := r.registry.Get(i.GuildID); ok {
		if err := sess.Skip(); err != nil {
			r.log.Debug("skip ignored", zap.String("guild_id", i.GuildID), zap.Error(err))
		}
	} else {
		r.log.Debug("skip with no active session", zap.String("guild_id", i.GuildID), zap.Error(errors.ErrNoActiveSession))
	}
	return Respond(r.session, i, "Skipping")
}

func (r *Router) handleStop(i *discordgo.InteractionCreate) error {
	if sess, ok := r.registry.Get(i.GuildID); ok {
		sess.Stop()
	} else {
		r.log.Debug("stop with no active session", zap.String("guild_id", i.GuildID), zap.Error(errors.ErrNoActiveSession))
	}
	return Respond(r.session, i, "Stopping")
}

// interactionUserID pulls the invoking user's ID, wherever the interaction
// came from
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
