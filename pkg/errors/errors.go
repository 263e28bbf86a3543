package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeDiscord represents Discord-related errors
	ErrorTypeDiscord ErrorType = "discord"
	// ErrorTypeVoice represents voice session errors
	ErrorTypeVoice ErrorType = "voice"
	// ErrorTypeQueue represents playback queue errors
	ErrorTypeQueue ErrorType = "queue"
	// ErrorTypeResolve represents track resolution errors
	ErrorTypeResolve ErrorType = "resolve"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Voice Errors

// ErrNotInVoiceChannel is returned when the invoking user has no voice state
var ErrNotInVoiceChannel = NewBaseError(ErrorTypeVoice, "you are not in a voice channel", nil)

// ErrNoActiveSession is returned when a queue operation targets a guild with no session
var ErrNoActiveSession = NewBaseError(ErrorTypeVoice, "no active voice session", nil)

// ErrVoiceJoinFailed is returned when the voice transport rejects a join
type ErrVoiceJoinFailed struct {
	*BaseError
	GuildID   string
	ChannelID string
}

func NewVoiceJoinFailed(guildID, channelID string, err error) *ErrVoiceJoinFailed {
	return &ErrVoiceJoinFailed{
		BaseError: NewBaseError(ErrorTypeVoice, fmt.Sprintf("failed to join voice channel %s in guild %s", channelID, guildID), err),
		GuildID:   guildID,
		ChannelID: channelID,
	}
}

// Queue Errors

// ErrNotPlaying is returned by skip/pause when no track is playing
var ErrNotPlaying = NewBaseError(ErrorTypeQueue, "no track is currently playing", nil)

// ErrNotPaused is returned by resume when the current track is not paused
var ErrNotPaused = NewBaseError(ErrorTypeQueue, "playback is not paused", nil)

// Resolution Errors

// ErrTrackResolutionFailed is returned when one track's metadata probe fails
type ErrTrackResolutionFailed struct {
	*BaseError
	Query string
}

func NewTrackResolutionFailed(query string, err error) *ErrTrackResolutionFailed {
	return &ErrTrackResolutionFailed{
		BaseError: NewBaseError(ErrorTypeResolve, fmt.Sprintf("failed to resolve track: %s", query), err),
		Query:     query,
	}
}

// ErrPlaylistExpansionFailed is returned when playlist expansion fails as a whole
type ErrPlaylistExpansionFailed struct {
	*BaseError
	URL string
}

func NewPlaylistExpansionFailed(url string, err error) *ErrPlaylistExpansionFailed {
	return &ErrPlaylistExpansionFailed{
		BaseError: NewBaseError(ErrorTypeResolve, fmt.Sprintf("failed to expand playlist: %s", url), err),
		URL:       url,
	}
}

// Discord Errors

// ErrUnknownCommand is returned on a dispatch table miss
type ErrUnknownCommand struct {
	*BaseError
	Name string
}

func NewUnknownCommand(name string) *ErrUnknownCommand {
	return &ErrUnknownCommand{
		BaseError: NewBaseError(ErrorTypeDiscord, fmt.Sprintf("unknown command: %s", name), nil),
		Name:      name,
	}
}

// ErrMessageSendFailed is returned when posting a channel message fails
type ErrMessageSendFailed struct {
	*BaseError
	ChannelID string
}

func NewMessageSendFailed(channelID string, err error) *ErrMessageSendFailed {
	return &ErrMessageSendFailed{
		BaseError: NewBaseError(ErrorTypeDiscord, "failed to send message", err),
		ChannelID: channelID,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	// Check wrapped errors
	if baseErr, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(baseErr.Unwrap(), errType)
	}
	return false
}
