package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueAppendPromotesFirstTrack(t *testing.T) {
	var q Queue

	first := NewTrackEntry("a", "u", "c")
	assert.True(t, q.Append(first), "first track on an idle queue starts now")
	assert.Equal(t, StatePlaying, first.State())
	assert.Equal(t, first, q.Current())
	assert.Equal(t, 0, q.Len())

	second := NewTrackEntry("b", "u", "c")
	third := NewTrackEntry("c", "u", "c")
	assert.False(t, q.Append(second))
	assert.False(t, q.Append(third))

	assert.Equal(t, StateQueued, second.State())
	assert.Equal(t, StateQueued, third.State())
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []*TrackEntry{second, third}, q.Pending(), "FIFO order preserved")
}

func TestQueueAdvance(t *testing.T) {
	var q Queue

	a := NewTrackEntry("a", "u", "c")
	b := NewTrackEntry("b", "u", "c")
	q.Append(a)
	q.Append(b)

	next := q.Advance()
	require.Equal(t, b, next)
	assert.Equal(t, StatePlaying, b.State())
	assert.Equal(t, 0, q.Len())

	assert.Nil(t, q.Advance(), "advance on drained queue goes idle")
	assert.Nil(t, q.Current())
}

func TestQueueClear(t *testing.T) {
	var q Queue
	q.Append(NewTrackEntry("a", "u", "c"))
	q.Append(NewTrackEntry("b", "u", "c"))

	q.Clear()
	assert.Nil(t, q.Current())
	assert.Equal(t, 0, q.Len())
	assert.True(t, q.Append(NewTrackEntry("c", "u", "c")), "cleared queue behaves as idle")
}
