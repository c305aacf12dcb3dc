package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AudienceRecipient is a recipient leaf selecting one audience group
type AudienceRecipient struct {
	AudienceGroupID int64
}

// RecipientFilter is the recipient tree of a narrowcast
type RecipientFilter = FilterNode[AudienceRecipient]

// AudienceLeaf func
func AudienceLeaf(audienceGroupID int64) RecipientFilter {
	return Leaf(AudienceRecipient{AudienceGroupID: audienceGroupID})
}

// Validate func
func (r AudienceRecipient) Validate() error {
	if r.AudienceGroupID <= 0 {
		return fmt.Errorf("%w: audienceGroupId must be positive", ErrInvalidRequest)
	}
	return nil
}

// MarshalJSON func
func (r AudienceRecipient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string `json:"type"`
		AudienceGroupID int64  `json:"audienceGroupId"`
	}{"audience", r.AudienceGroupID})
}

// UnmarshalJSON func
func (r *AudienceRecipient) UnmarshalJSON(data []byte) error {
	const target = "AudienceRecipient"

	var w struct {
		Type            *string `json:"type"`
		AudienceGroupID *int64  `json:"audienceGroupId"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if w.Type == nil {
		return missingField(target, "type")
	}
	if *w.Type != "audience" {
		return unknownValue(target, "type", *w.Type)
	}
	if w.AudienceGroupID == nil {
		return missingField(target, "audienceGroupId")
	}
	r.AudienceGroupID = *w.AudienceGroupID
	return nil
}

// NarrowcastFilter wraps the demographic filter tree
type NarrowcastFilter struct {
	Demographic DemographicFilter `json:"demographic"`
}

// NarrowcastLimit caps the number of narrowcast recipients
type NarrowcastLimit struct {
	Max                int64 `json:"max,omitempty" validate:"omitempty,min=1"`
	UpToRemainingQuota bool  `json:"upToRemainingQuota,omitempty"`
}

// NarrowcastRequest is the body of message/narrowcast
type NarrowcastRequest struct {
	Messages             Messages          `json:"messages" validate:"required,min=1,max=5"`
	Recipient            *RecipientFilter  `json:"recipient,omitempty"`
	Filter               *NarrowcastFilter `json:"filter,omitempty"`
	Limit                *NarrowcastLimit  `json:"limit,omitempty"`
	NotificationDisabled *bool             `json:"notificationDisabled,omitempty"`
}

// Validate checks the recipient and demographic trees
func (r NarrowcastRequest) Validate() error {
	if r.Recipient != nil {
		if err := r.Recipient.Validate(); err != nil {
			return fmt.Errorf("recipient: %w", err)
		}
	}
	if r.Filter != nil {
		if err := r.Filter.Demographic.Validate(); err != nil {
			return fmt.Errorf("filter.demographic: %w", err)
		}
	}
	return nil
}

// NarrowcastResult is what a narrowcast submission returns. RequestID comes
// from the x-line-request-id header and is empty when the header was absent.
type NarrowcastResult struct {
	RequestID  string `json:"requestId,omitempty"`
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// HasRequestID reports whether progress can be polled for this submission
func (r NarrowcastResult) HasRequestID() bool {
	return r.RequestID != ""
}

// NarrowcastPhase type
type NarrowcastPhase string

const (
	// NarrowcastPhaseWaiting const
	NarrowcastPhaseWaiting NarrowcastPhase = "waiting"
	// NarrowcastPhaseSending const
	NarrowcastPhaseSending NarrowcastPhase = "sending"
	// NarrowcastPhaseSucceeded const
	NarrowcastPhaseSucceeded NarrowcastPhase = "succeeded"
	// NarrowcastPhaseFailed const
	NarrowcastPhaseFailed NarrowcastPhase = "failed"
)

// HasCounters reports whether the phase carries success/failure/target counts
func (p NarrowcastPhase) HasCounters() bool {
	return p == NarrowcastPhaseSending || p == NarrowcastPhaseSucceeded || p == NarrowcastPhaseFailed
}

// NarrowcastErrorCode type
type NarrowcastErrorCode int

const (
	// NarrowcastErrorCodeInternal const
	NarrowcastErrorCodeInternal NarrowcastErrorCode = 1
	// NarrowcastErrorCodeNoTarget const
	NarrowcastErrorCodeNoTarget NarrowcastErrorCode = 2
)

// NarrowcastProgress is the response of message/progress/narrowcast. The
// counters are nil in the waiting phase; FailedDescription is set only when
// the phase is failed. ErrorCode is nil when the field was absent.
type NarrowcastProgress struct {
	Phase             NarrowcastPhase
	SuccessCount      *int64
	FailureCount      *int64
	TargetCount       *int64
	FailedDescription string
	ErrorCode         *NarrowcastErrorCode
	AcceptedTime      string
	CompletedTime     string
}

type narrowcastProgressWire struct {
	Phase             *NarrowcastPhase     `json:"phase"`
	SuccessCount      json.RawMessage      `json:"successCount,omitempty"`
	FailureCount      json.RawMessage      `json:"failureCount,omitempty"`
	TargetCount       json.RawMessage      `json:"targetCount,omitempty"`
	FailedDescription *string              `json:"failedDescription,omitempty"`
	ErrorCode         *NarrowcastErrorCode `json:"errorCode,omitempty"`
	AcceptedTime      string               `json:"acceptedTime,omitempty"`
	CompletedTime     string               `json:"completedTime,omitempty"`
}

// UnmarshalJSON func
func (p *NarrowcastProgress) UnmarshalJSON(data []byte) error {
	const target = "NarrowcastProgress"

	var w narrowcastProgressWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if w.Phase == nil {
		return missingField(target, "phase")
	}

	out := NarrowcastProgress{
		Phase:         *w.Phase,
		AcceptedTime:  w.AcceptedTime,
		CompletedTime: w.CompletedTime,
	}

	switch *w.Phase {
	case NarrowcastPhaseWaiting:
	case NarrowcastPhaseSending, NarrowcastPhaseSucceeded, NarrowcastPhaseFailed:
		counters := []struct {
			name string
			raw  json.RawMessage
			dst  **int64
		}{
			{"successCount", w.SuccessCount, &out.SuccessCount},
			{"failureCount", w.FailureCount, &out.FailureCount},
			{"targetCount", w.TargetCount, &out.TargetCount},
		}
		for _, c := range counters {
			value, err := decodeCount(c.raw)
			if err != nil {
				return &DecodeError{Target: target, Field: c.name, Reason: "invalid count", Err: err}
			}
			if value == nil {
				return missingField(target, c.name)
			}
			*c.dst = value
		}
		if *w.Phase == NarrowcastPhaseFailed {
			if w.FailedDescription == nil {
				return missingField(target, "failedDescription")
			}
			out.FailedDescription = *w.FailedDescription
		}
	default:
		return unknownValue(target, "phase", string(*w.Phase))
	}

	if w.ErrorCode != nil {
		switch *w.ErrorCode {
		case NarrowcastErrorCodeInternal, NarrowcastErrorCodeNoTarget:
		default:
			return unknownValue(target, "errorCode", strconv.Itoa(int(*w.ErrorCode)))
		}
		code := *w.ErrorCode
		out.ErrorCode = &code
	}

	*p = out
	return nil
}

// MarshalJSON func
func (p NarrowcastProgress) MarshalJSON() ([]byte, error) {
	phase := p.Phase
	w := narrowcastProgressWire{
		Phase:         &phase,
		ErrorCode:     p.ErrorCode,
		AcceptedTime:  p.AcceptedTime,
		CompletedTime: p.CompletedTime,
	}
	if p.Phase.HasCounters() {
		w.SuccessCount = encodeCount(p.SuccessCount)
		w.FailureCount = encodeCount(p.FailureCount)
		w.TargetCount = encodeCount(p.TargetCount)
	}
	if p.Phase == NarrowcastPhaseFailed {
		description := p.FailedDescription
		w.FailedDescription = &description
	}
	return json.Marshal(w)
}

// decodeCount reads a count sent either as a JSON number or a numeric string.
// It returns nil when the field was absent or null.
func decodeCount(raw json.RawMessage) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func encodeCount(value *int64) json.RawMessage {
	if value == nil {
		return json.RawMessage("0")
	}
	return json.RawMessage(strconv.FormatInt(*value, 10))
}
