package voice

import (
	"sync"

	"go.uber.org/zap"

	"bami/pkg/errors"
)

// Registry owns every voice session, at most one per guild. Lookups are
// safe for concurrent callers; structural changes take the write lock. The
// map lock only ever guards the map itself — per-session queue work happens
// under each session's own mutex, so guilds never contend with each other.
type Registry struct {
	joiner Joiner
	engine Engine
	notify func(*TrackEntry)
	log    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	// joinMu serializes session establishment so racing Join calls never
	// obtain a second transport for the same guild. Held across the
	// transport join, but never while holding mu or a session lock.
	joinMu sync.Mutex
}

// NewRegistry creates an empty session registry
func NewRegistry(joiner Joiner, engine Engine, notify func(*TrackEntry), log *zap.Logger) *Registry {
	return &Registry{
		joiner:   joiner,
		engine:   engine,
		notify:   notify,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Join returns the guild's session, establishing one when none exists. A
// guild that already has a session gets it back untouched, whatever channel
// was asked for. A failed transport join registers nothing.
func (r *Registry) Join(guildID, channelID string) (*Session, error) {
	r.mu.RLock()
	if s, ok := r.sessions[guildID]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()

	r.joinMu.Lock()
	defer r.joinMu.Unlock()

	// Re-check: a racing caller may have established the session while we
	// waited on the join gate.
	r.mu.RLock()
	if s, ok := r.sessions[guildID]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()

	// Transport join happens outside the map lock; it is a network call.
	transport, err := r.joiner.Join(guildID, channelID)
	if err != nil {
		return nil, errors.NewVoiceJoinFailed(guildID, channelID, err)
	}

	s := newSession(guildID, channelID, transport, r.engine, r.notify, r.log)
	r.mu.Lock()
	r.sessions[guildID] = s
	r.mu.Unlock()

	r.log.Info("voice session established",
		zap.String("guild_id", guildID),
		zap.String("channel_id", channelID),
	)
	return s, nil
}

// Get looks a session up without creating one
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Leave tears the guild's session down. Idempotent when none exists.
func (r *Registry) Leave(guildID string) {
	r.mu.Lock()
	s, ok := r.sessions[guildID]
	if ok {
		delete(r.sessions, guildID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	r.log.Info("voice session dropped", zap.String("guild_id", guildID))
}

// Shutdown tears every session down, for process exit
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// GuildStatus is a read-only snapshot of one guild's queue
type GuildStatus struct {
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	NowPlaying  string `json:"now_playing,omitempty"`
	State       string `json:"state"`
	QueueLength int    `json:"queue_length"`
}

// Snapshot reports every active session, for the status surface
func (r *Registry) Snapshot() []GuildStatus {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	out := make([]GuildStatus, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Status())
	}
	return out
}
