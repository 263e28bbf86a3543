package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseErrorFormatting(t *testing.T) {
	plain := NewBaseError(ErrorTypeQueue, "something went wrong", nil)
	assert.Equal(t, "[queue] something went wrong", plain.Error())
	assert.False(t, plain.Timestamp.IsZero())

	cause := stderrors.New("exit status 1")
	wrapped := NewBaseError(ErrorTypeResolve, "probe failed", cause)
	assert.Equal(t, "[resolve] probe failed: exit status 1", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsErrorType(t *testing.T) {
	assert.True(t, IsErrorType(ErrNotInVoiceChannel, ErrorTypeVoice))
	assert.True(t, IsErrorType(ErrNoActiveSession, ErrorTypeVoice))
	assert.True(t, IsErrorType(ErrNotPlaying, ErrorTypeQueue))
	assert.False(t, IsErrorType(ErrNotPlaying, ErrorTypeVoice))
	assert.False(t, IsErrorType(stderrors.New("plain"), ErrorTypeQueue))

	// fmt wrapping keeps the category reachable
	wrapped := fmt.Errorf("handling play: %w", ErrNotInVoiceChannel)
	assert.True(t, IsErrorType(wrapped, ErrorTypeVoice))
}

func TestTypedConstructors(t *testing.T) {
	cause := stderrors.New("gateway timeout")
	join := NewVoiceJoinFailed("g1", "vc-1", cause)
	assert.Equal(t, "g1", join.GuildID)
	assert.Equal(t, "vc-1", join.ChannelID)
	assert.ErrorIs(t, join, cause)

	send := NewMessageSendFailed("chan-1", cause)
	assert.Equal(t, "chan-1", send.ChannelID)
	assert.ErrorIs(t, send, cause)

	missing := NewConfigMissingRequired("DISCORD_BOT_TOKEN")
	require.Contains(t, missing.Error(), "DISCORD_BOT_TOKEN")
	assert.Equal(t, ErrorTypeConfig, missing.BaseError.Type)
}
