package voice

// Queue is the ordered track sequence for one guild plus the current entry.
// It is pure state with no locking of its own; the owning Session serializes
// access under its per-guild mutex. At most one entry is ever current, and
// consumed entries are dropped, not kept as history.
type Queue struct {
	entries []*TrackEntry
	current *TrackEntry
}

// Append adds a track at the tail. If nothing is current the track is
// promoted immediately and marked playing; the return value reports whether
// the caller must start playback for it.
func (q *Queue) Append(t *TrackEntry) (startNow bool) {
	if q.current == nil {
		t.state = StatePlaying
		q.current = t
		return true
	}
	t.state = StateQueued
	q.entries = append(q.entries, t)
	return false
}

// Advance drops the current entry and promotes the head of the queue, if
// any. Returns the new current entry, nil when the queue ran dry.
func (q *Queue) Advance() *TrackEntry {
	q.current = nil
	if len(q.entries) == 0 {
		return nil
	}
	next := q.entries[0]
	q.entries = q.entries[1:]
	next.state = StatePlaying
	q.current = next
	return next
}

// Clear removes every entry, current included
func (q *Queue) Clear() {
	q.entries = nil
	q.current = nil
}

// Current returns the playing or paused entry, nil when idle
func (q *Queue) Current() *TrackEntry {
	return q.current
}

// Len counts queued entries, not including the current one
func (q *Queue) Len() int {
	return len(q.entries)
}

// Pending returns a copy of the queued entries in order
func (q *Queue) Pending() []*TrackEntry {
	out := make([]*TrackEntry, len(q.entries))
	copy(out, q.entries)
	return out
}
