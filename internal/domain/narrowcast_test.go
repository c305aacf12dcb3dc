package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrowcastProgress_WaitingDropsCounters(t *testing.T) {
	var progress NarrowcastProgress
	require.NoError(t, json.Unmarshal([]byte(`{"phase":"waiting","successCount":3,"failureCount":1,"targetCount":4,"acceptedTime":"2020-12-03T10:43:51.213Z"}`), &progress))

	assert.Equal(t, NarrowcastPhaseWaiting, progress.Phase)
	assert.Nil(t, progress.SuccessCount)
	assert.Nil(t, progress.FailureCount)
	assert.Nil(t, progress.TargetCount)

	encoded, err := json.Marshal(progress)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"waiting","acceptedTime":"2020-12-03T10:43:51.213Z"}`, string(encoded))
}

func TestNarrowcastProgress_CountersRequired(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{"sending without successCount", `{"phase":"sending","failureCount":0,"targetCount":1}`, "successCount"},
		{"succeeded without targetCount", `{"phase":"succeeded","successCount":1,"failureCount":0}`, "targetCount"},
		{"failed without failedDescription", `{"phase":"failed","successCount":0,"failureCount":1,"targetCount":1}`, "failedDescription"},
		{"unknown phase", `{"phase":"queued"}`, "phase"},
		{"missing phase", `{}`, "phase"},
		{"unknown errorCode", `{"phase":"failed","successCount":0,"failureCount":1,"targetCount":1,"failedDescription":"x","errorCode":3}`, "errorCode"},
		{"non numeric count", `{"phase":"sending","successCount":"many","failureCount":0,"targetCount":1}`, "successCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var progress NarrowcastProgress
			err := json.Unmarshal([]byte(tt.input), &progress)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %v", err)
			assert.Equal(t, tt.wantField, decodeErr.Field)
		})
	}
}

func TestNarrowcastProgress_Failed(t *testing.T) {
	input := `{"phase":"failed","successCount":0,"failureCount":0,"targetCount":"0","failedDescription":"no target","errorCode":2,"acceptedTime":"a","completedTime":"b"}`

	var progress NarrowcastProgress
	require.NoError(t, json.Unmarshal([]byte(input), &progress))
	assert.Equal(t, "no target", progress.FailedDescription)
	require.NotNil(t, progress.ErrorCode)
	assert.Equal(t, NarrowcastErrorCodeNoTarget, *progress.ErrorCode)
	require.NotNil(t, progress.TargetCount)
	assert.Equal(t, int64(0), *progress.TargetCount)

	encoded, err := json.Marshal(progress)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"phase":"failed","successCount":0,"failureCount":0,"targetCount":0,"failedDescription":"no target","errorCode":2,"acceptedTime":"a","completedTime":"b"}`,
		string(encoded))
}

func TestNarrowcastProgress_SucceededOmitsFailedDescription(t *testing.T) {
	progress := NarrowcastProgress{
		Phase:             NarrowcastPhaseSucceeded,
		SuccessCount:      int64Ptr(5),
		FailureCount:      int64Ptr(0),
		TargetCount:       int64Ptr(5),
		FailedDescription: "ignored",
	}

	encoded, err := json.Marshal(progress)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"succeeded","successCount":5,"failureCount":0,"targetCount":5}`, string(encoded))
}

func TestAudienceRecipient(t *testing.T) {
	encoded, err := json.Marshal(AudienceLeaf(5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"audience","audienceGroupId":5}`, string(encoded))

	var node RecipientFilter
	require.NoError(t, json.Unmarshal(encoded, &node))
	require.NotNil(t, node.Leaf)
	assert.Equal(t, int64(5), node.Leaf.AudienceGroupID)

	err = json.Unmarshal([]byte(`{"type":"redelivery","requestId":"x"}`), &node)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "type", decodeErr.Field)

	err = json.Unmarshal([]byte(`{"type":"audience"}`), &node)
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "audienceGroupId", decodeErr.Field)
}

func TestNarrowcastRequest_Encode(t *testing.T) {
	recipient := And(AudienceLeaf(1), Not(AudienceLeaf(2)))
	request := NarrowcastRequest{
		Messages:  Messages{RawMessage(`{"type":"text","text":"hi"}`)},
		Recipient: &recipient,
		Limit:     &NarrowcastLimit{Max: 100},
	}
	require.NoError(t, request.Validate())

	encoded, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"messages":[{"type":"text","text":"hi"}],
		"recipient":{"type":"operator","and":[
			{"type":"audience","audienceGroupId":1},
			{"type":"operator","not":{"type":"audience","audienceGroupId":2}}
		]},
		"limit":{"max":100}
	}`, string(encoded))
}

func TestNarrowcastRequest_ValidateDemographic(t *testing.T) {
	request := NarrowcastRequest{
		Messages: Messages{RawMessage(`{"type":"text","text":"hi"}`)},
		Filter:   &NarrowcastFilter{Demographic: AgeRange("age_40", "age_20")},
	}
	err := request.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestNarrowcastResult_HasRequestID(t *testing.T) {
	assert.True(t, NarrowcastResult{RequestID: "abc", StatusCode: 202}.HasRequestID())
	assert.False(t, NarrowcastResult{StatusCode: 400}.HasRequestID())
}

func int64Ptr(v int64) *int64 {
	return &v
}
