package domain

import (
	"bytes"
	"encoding/json"
)

// Message is any LINE message object. The line-bot-sdk messaging_api message
// types (TextMessage, StickerMessage, ...) satisfy it, as does RawMessage.
type Message interface {
	GetType() string
}

// RawMessage is a message object kept as its original JSON text.
type RawMessage json.RawMessage

// GetType returns the "type" field of the message, or "" when it has none.
func (m RawMessage) GetType() string {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(m, &head); err != nil {
		return ""
	}
	return head.Type
}

// MarshalJSON func
func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON func
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	*m = append((*m)[0:0], data...)
	return nil
}

// Messages is the message list of a send request. It always encodes as a JSON
// array; a single JSON object is accepted on decode and becomes a one-element list.
type Messages []Message

// MarshalJSON func
func (m Messages) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Message(m))
}

// UnmarshalJSON func
func (m *Messages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}

	if data[0] == '{' {
		*m = Messages{RawMessage(append([]byte(nil), data...))}
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Target: "Messages", Reason: "expected a message object or an array of message objects", Err: err}
	}
	out := make(Messages, 0, len(raws))
	for _, raw := range raws {
		out = append(out, RawMessage(raw))
	}
	*m = out
	return nil
}
