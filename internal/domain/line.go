package domain

import (
	"fmt"
	"time"
)

type (
	// LineEventType is the "type" of a webhook event
	LineEventType string

	// LineMessageType is the "type" of the message carried by a message event
	LineMessageType string

	// LineSourceType is the kind of chat an event came from
	LineSourceType string
)

// Webhook event types handled by the bot
const (
	LineEventTypeMessage  LineEventType = "message"
	LineEventTypeFollow   LineEventType = "follow"
	LineEventTypeUnfollow LineEventType = "unfollow"
	LineEventTypeJoin     LineEventType = "join"
	LineEventTypeLeave    LineEventType = "leave"
)

// Message types of incoming message events
const (
	LineMessageTypeText     LineMessageType = "text"
	LineMessageTypeSticker  LineMessageType = "sticker"
	LineMessageTypeImage    LineMessageType = "image"
	LineMessageTypeVideo    LineMessageType = "video"
	LineMessageTypeAudio    LineMessageType = "audio"
	LineMessageTypeFile     LineMessageType = "file"
	LineMessageTypeLocation LineMessageType = "location"
)

// Event sources. Profile and leave operations pick their endpoint from these.
const (
	LineSourceTypeUser  LineSourceType = "user"
	LineSourceTypeGroup LineSourceType = "group"
	LineSourceTypeRoom  LineSourceType = "room"
)

// LineWebhookRequest is one signature-checked webhook delivery. Destination is
// the user id of the bot that received it; a verification request has no events.
type LineWebhookRequest struct {
	Destination string
	Events      []LineWebhookEvent
}

// LineWebhookEvent is an event converted from the webhook payload. ReplyToken
// is empty for unfollow and leave events, Message is nil for non-message events.
type LineWebhookEvent struct {
	ID         string
	Type       LineEventType
	Timestamp  time.Time
	Source     LineSource
	ReplyToken string
	Message    *LineMessage
}

// LineSource identifies the chat of an event. UserID may be empty for group
// and room events when the user has not consented to share it.
type LineSource struct {
	Type    LineSourceType
	UserID  string
	GroupID string
	RoomID  string
}

// IsMultiPerson reports whether the source is a group or a room chat
func (s LineSource) IsMultiPerson() bool {
	return s.Type == LineSourceTypeGroup || s.Type == LineSourceTypeRoom
}

// LineMessage is the message of a message event. Only the fields of its Type
// are set: Text for text, PackageID/StickerID for stickers, Duration (millis)
// for video and audio, FileName/FileSize for files, and Title, Address,
// Latitude and Longitude for locations.
type LineMessage struct {
	ID   string
	Type LineMessageType

	Text      string
	PackageID string
	StickerID string

	Duration int64
	FileName string
	FileSize int64

	Title     string
	Address   string
	Latitude  float64
	Longitude float64
}

// HasContent reports whether the binary content of the message can be
// downloaded with GetMessageContent.
func (m LineMessage) HasContent() bool {
	switch m.Type {
	case LineMessageTypeImage, LineMessageTypeVideo, LineMessageTypeAudio, LineMessageTypeFile:
		return true
	}
	return false
}

// Summary describes a non-text message in one line
func (m LineMessage) Summary() string {
	switch m.Type {
	case LineMessageTypeText:
		return m.Text
	case LineMessageTypeSticker:
		return fmt.Sprintf("sticker %s/%s", m.PackageID, m.StickerID)
	case LineMessageTypeVideo, LineMessageTypeAudio:
		return fmt.Sprintf("%s (%s)", m.Type, (time.Duration(m.Duration) * time.Millisecond).Round(time.Second))
	case LineMessageTypeFile:
		return fmt.Sprintf("file %s (%d bytes)", m.FileName, m.FileSize)
	case LineMessageTypeLocation:
		if m.Title != "" {
			return fmt.Sprintf("location %s, %s (%.6f, %.6f)", m.Title, m.Address, m.Latitude, m.Longitude)
		}
		return fmt.Sprintf("location %s (%.6f, %.6f)", m.Address, m.Latitude, m.Longitude)
	default:
		return string(m.Type)
	}
}
