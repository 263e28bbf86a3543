package voice

import (
	"sync"

	"go.uber.org/zap"

	"bami/pkg/errors"
)

// Session is this bot's live voice presence in one guild: the transport
// connection plus the guild's playback queue. Queue state changes commit
// atomically under the session mutex; engine effects (process start/kill,
// frame gating) are applied after the lock is released, so callers observe
// the new queue state immediately while the audio stream catches up.
type Session struct {
	GuildID   string
	ChannelID string

	transport Transport
	engine    Engine
	notify    func(*TrackEntry)
	log       *zap.Logger

	mu     sync.Mutex
	queue  Queue
	handle Handle
}

func newSession(guildID, channelID string, transport Transport, engine Engine, notify func(*TrackEntry), log *zap.Logger) *Session {
	return &Session{
		GuildID:   guildID,
		ChannelID: channelID,
		transport: transport,
		engine:    engine,
		notify:    notify,
		log:       log.With(zap.String("guild_id", guildID)),
	}
}

// Enqueue appends a track. On an idle queue the track is promoted to
// playing immediately and the engine is started for it.
func (s *Session) Enqueue(t *TrackEntry) {
	s.mu.Lock()
	start := s.queue.Append(t)
	queued := s.queue.Len()
	s.mu.Unlock()

	s.log.Info("track enqueued",
		zap.String("track_id", t.ID),
		zap.String("title", t.DisplayTitle()),
		zap.Bool("starts_now", start),
		zap.Int("queue_length", queued),
	)

	if start {
		s.startCurrent(t)
	}
}

// Skip terminates the current track and promotes the next queued entry.
// With an empty queue playback simply halts; the session stays up.
func (s *Session) Skip() error {
	s.mu.Lock()
	cur := s.queue.Current()
	if cur == nil {
		s.mu.Unlock()
		return errors.ErrNotPlaying
	}
	h := s.handle
	s.handle = nil
	next := s.queue.Advance()
	s.mu.Unlock()

	s.log.Info("track skipped", zap.String("track_id", cur.ID))

	if h != nil {
		h.Stop()
	}
	if next != nil {
		s.startCurrent(next)
	}
	return nil
}

// Pause gates the current track without touching queue order
func (s *Session) Pause() error {
	s.mu.Lock()
	cur := s.queue.Current()
	if cur == nil || cur.state != StatePlaying {
		s.mu.Unlock()
		return errors.ErrNotPlaying
	}
	cur.state = StatePaused
	h := s.handle
	s.mu.Unlock()

	if h != nil {
		h.Pause()
	}
	return nil
}

// Resume lifts a pause
func (s *Session) Resume() error {
	s.mu.Lock()
	cur := s.queue.Current()
	if cur == nil || cur.state != StatePaused {
		s.mu.Unlock()
		return errors.ErrNotPaused
	}
	cur.state = StatePlaying
	h := s.handle
	s.mu.Unlock()

	if h != nil {
		h.Resume()
	}
	return nil
}

// Stop clears the whole queue and halts playback. The voice connection is
// left standing; Leave on the registry tears it down.
func (s *Session) Stop() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.queue.Clear()
	s.mu.Unlock()

	s.log.Info("queue stopped and cleared")

	if h != nil {
		h.Stop()
	}
}

// NowPlaying returns the current entry, nil when idle
func (s *Session) NowPlaying() *TrackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

// QueueLen counts entries waiting behind the current track
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Status copies the queue's observable state under the lock. Read-only
// surfaces use this instead of the live entry, whose state field keeps
// changing under the session mutex.
func (s *Session) Status() GuildStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := GuildStatus{
		GuildID:     s.GuildID,
		ChannelID:   s.ChannelID,
		State:       "idle",
		QueueLength: s.queue.Len(),
	}
	if cur := s.queue.Current(); cur != nil {
		st.NowPlaying = cur.DisplayTitle()
		st.State = cur.state.String()
	}
	return st
}

// close halts playback and drops the voice connection
func (s *Session) close() {
	s.Stop()
	if err := s.transport.Disconnect(); err != nil {
		s.log.Warn("voice disconnect failed", zap.Error(err))
	}
}

// startCurrent launches the engine for a freshly promoted entry. Runs
// outside the session lock; if the entry was displaced before the pipeline
// came up, the stray run is stopped instead of adopted.
func (s *Session) startCurrent(t *TrackEntry) {
	h, err := s.engine.Start(s.transport, t,
		func() { s.onStarted(t) },
		func(err error) { s.onDone(t, err) },
	)
	if err != nil {
		s.log.Error("failed to start playback",
			zap.String("track_id", t.ID),
			zap.String("source", t.Source),
			zap.Error(err),
		)
		s.advanceFrom(t)
		return
	}

	s.mu.Lock()
	if s.queue.Current() == t {
		s.handle = h
		// A Pause that landed while the pipeline was still coming up had
		// no handle to gate; apply it now so the committed state holds.
		paused := t.state == StatePaused
		s.mu.Unlock()
		if paused {
			h.Pause()
		}
		return
	}
	s.mu.Unlock()
	h.Stop()
}

// onStarted fires when audio for an entry actually begins
func (s *Session) onStarted(t *TrackEntry) {
	s.log.Info("track playable",
		zap.String("track_id", t.ID),
		zap.String("title", t.DisplayTitle()),
	)
	if s.notify != nil {
		go s.notify(t)
	}
}

// onDone fires when a run ends naturally or with an error
func (s *Session) onDone(t *TrackEntry, err error) {
	if err != nil {
		s.log.Warn("playback ended with error",
			zap.String("track_id", t.ID),
			zap.Error(err),
		)
	}
	s.advanceFrom(t)
}

// advanceFrom promotes the next entry if t is still current. Guards against
// a completion callback racing a skip that already advanced past t.
func (s *Session) advanceFrom(t *TrackEntry) {
	s.mu.Lock()
	if s.queue.Current() != t {
		s.mu.Unlock()
		return
	}
	s.handle = nil
	next := s.queue.Advance()
	s.mu.Unlock()

	if next != nil {
		s.startCurrent(next)
	}
}
