package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang-connect-line/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Test helper to create a basic text message event
func createTextMessageEvent(text string) domain.LineWebhookEvent {
	return domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		ReplyToken: "test-reply-token",
		Source: domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: "test-user-id",
		},
		Message: &domain.LineMessage{
			ID:   "test-message-id",
			Type: domain.LineMessageTypeText,
			Text: text,
		},
	}
}

func createGroupTextMessageEvent(text string) domain.LineWebhookEvent {
	event := createTextMessageEvent(text)
	event.Source = domain.LineSource{
		Type:    domain.LineSourceTypeGroup,
		UserID:  "test-user-id",
		GroupID: "test-group-id",
	}
	return event
}

func handle(t *testing.T, service *LineWebhookService, events ...domain.LineWebhookEvent) error {
	t.Helper()
	return service.HandleWebhook(context.Background(), domain.LineWebhookRequest{Events: events})
}

// TestPlainText_IsEchoedBack tests that non-command text gets a "You said" reply
func TestPlainText_IsEchoedBack(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createTextMessageEvent("  Hello!  "))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mockLineClient.LastReplyToken != "test-reply-token" {
		t.Errorf("Expected reply token 'test-reply-token', got '%s'", mockLineClient.LastReplyToken)
	}
	if got := mockLineClient.lastReplyText(); got != "You said: Hello!" {
		t.Errorf("Expected 'You said: Hello!', got '%s'", got)
	}
}

// TestReply_IsSentAsTextMessage tests the reply message type
func TestReply_IsSentAsTextMessage(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	_ = handle(t, service, createTextMessageEvent("/about"))

	// Assert
	if len(mockLineClient.LastReplyMessages) != 1 {
		t.Fatalf("Expected exactly one reply message, got %d", len(mockLineClient.LastReplyMessages))
	}
	if _, ok := mockLineClient.LastReplyMessages[0].(*messaging_api.TextMessage); !ok {
		t.Errorf("Expected *messaging_api.TextMessage, got %T", mockLineClient.LastReplyMessages[0])
	}
	if got := mockLineClient.LastReplyMessages[0].GetType(); got != "text" {
		t.Errorf("Expected message type 'text', got '%s'", got)
	}
}

// TestHelpCommand_ListsEveryCommand tests /help output
func TestHelpCommand_ListsEveryCommand(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createTextMessageEvent("/HELP"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	reply := mockLineClient.lastReplyText()
	for _, command := range []string{"/help", "/about", "/echo", "/profile", "/leave", "/progress"} {
		if !strings.Contains(reply, command) {
			t.Errorf("Expected help text to contain '%s', got: %s", command, reply)
		}
	}
}

// TestEchoCommand tests /echo with and without arguments
func TestEchoCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "with text", text: "/echo hello   line world", expected: "hello line world"},
		{name: "without text", text: "/echo", expected: "Usage: /echo <text>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockLineClient := &MockLineClient{}
			service := NewLineWebhookService(mockLineClient)

			// Act
			err := handle(t, service, createTextMessageEvent(tt.text))

			// Assert
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := mockLineClient.lastReplyText(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

// TestUnknownCommand tests the fallback reply
func TestUnknownCommand(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	_ = handle(t, service, createTextMessageEvent("/dance"))

	// Assert
	if got := mockLineClient.lastReplyText(); !strings.HasPrefix(got, "Unknown command: /dance") {
		t.Errorf("Expected unknown command reply, got '%s'", got)
	}
}

// TestProfileCommand_UsesEventSource tests /profile formatting
func TestProfileCommand_UsesEventSource(t *testing.T) {
	// Arrange
	var gotSource domain.LineSource
	mockLineClient := &MockLineClient{
		GetProfileWithEventSourceFunc: func(source domain.LineSource) (*domain.UserProfile, error) {
			gotSource = source
			return &domain.UserProfile{
				DisplayName:   "Brown",
				UserID:        source.UserID,
				StatusMessage: "busy",
			}, nil
		},
	}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createGroupTextMessageEvent("/profile"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotSource.GroupID != "test-group-id" {
		t.Errorf("Expected group source to be passed through, got %+v", gotSource)
	}
	expected := "Display name: Brown\nUser ID: test-user-id\nStatus: busy"
	if got := mockLineClient.lastReplyText(); got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}

// TestProfileCommand_ErrorRepliesApology tests /profile when LINE fails
func TestProfileCommand_ErrorRepliesApology(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{
		GetProfileWithEventSourceFunc: func(domain.LineSource) (*domain.UserProfile, error) {
			return nil, &domain.HTTPStatusError{StatusCode: 404, Body: `{"message":"Not found"}`}
		},
	}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createTextMessageEvent("/profile"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := mockLineClient.lastReplyText(); got != "Sorry, I could not read your profile." {
		t.Errorf("Expected apology, got '%s'", got)
	}
}

// TestLeaveCommand_FromUserChatDoesNotLeave tests /leave in a one-to-one chat
func TestLeaveCommand_FromUserChatDoesNotLeave(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createTextMessageEvent("/leave"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mockLineClient.LastLeaveSource != nil {
		t.Error("Expected LeaveWithEventSource not to be called for a user source")
	}
	if got := mockLineClient.lastReplyText(); got != "I can only leave groups and rooms." {
		t.Errorf("Unexpected reply: '%s'", got)
	}
}

// TestLeaveCommand_FromGroupRepliesThenLeaves tests /leave ordering in a group
func TestLeaveCommand_FromGroupRepliesThenLeaves(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createGroupTextMessageEvent("/leave"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mockLineClient.LastLeaveSource == nil || mockLineClient.LastLeaveSource.GroupID != "test-group-id" {
		t.Fatalf("Expected to leave test-group-id, got %+v", mockLineClient.LastLeaveSource)
	}
	if got := mockLineClient.lastReplyText(); got != "Bye!" {
		t.Errorf("Expected 'Bye!', got '%s'", got)
	}
	expectedCalls := []string{"ReplyMessage", "LeaveWithEventSource"}
	if strings.Join(mockLineClient.Calls, ",") != strings.Join(expectedCalls, ",") {
		t.Errorf("Expected calls %v, got %v", expectedCalls, mockLineClient.Calls)
	}
}

// TestLeaveCommand_LeaveErrorIsReturned tests error propagation of /leave
func TestLeaveCommand_LeaveErrorIsReturned(t *testing.T) {
	// Arrange
	leaveErr := &domain.HTTPStatusError{StatusCode: 500, Body: "{}"}
	mockLineClient := &MockLineClient{
		LeaveWithEventSourceFunc: func(domain.LineSource) error { return leaveErr },
	}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createGroupTextMessageEvent("/leave"))

	// Assert
	var statusErr *domain.HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 500 {
		t.Errorf("Expected wrapped HTTPStatusError 500, got: %v", err)
	}
}

// TestProgressCommand tests /progress formatting for each phase
func TestProgressCommand(t *testing.T) {
	five, one, six := int64(5), int64(1), int64(6)

	tests := []struct {
		name     string
		progress *domain.NarrowcastProgress
		expected string
	}{
		{
			name:     "waiting has no counters",
			progress: &domain.NarrowcastProgress{Phase: domain.NarrowcastPhaseWaiting},
			expected: "Narrowcast req-9: waiting",
		},
		{
			name: "succeeded lists counters",
			progress: &domain.NarrowcastProgress{
				Phase:        domain.NarrowcastPhaseSucceeded,
				SuccessCount: &five,
				FailureCount: &one,
				TargetCount:  &six,
			},
			expected: "Narrowcast req-9: succeeded\nSuccess: 5\nFailure: 1\nTarget: 6",
		},
		{
			name: "failed includes reason",
			progress: &domain.NarrowcastProgress{
				Phase:             domain.NarrowcastPhaseFailed,
				SuccessCount:      &five,
				FailureCount:      &one,
				TargetCount:       &six,
				FailedDescription: "no target",
			},
			expected: "Narrowcast req-9: failed\nSuccess: 5\nFailure: 1\nTarget: 6\nReason: no target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockLineClient := &MockLineClient{
				GetNarrowcastProgressFunc: func(string) (*domain.NarrowcastProgress, error) {
					return tt.progress, nil
				},
			}
			service := NewLineWebhookService(mockLineClient)

			// Act
			err := handle(t, service, createTextMessageEvent("/progress req-9"))

			// Assert
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if mockLineClient.LastProgressID != "req-9" {
				t.Errorf("Expected request id 'req-9', got '%s'", mockLineClient.LastProgressID)
			}
			if got := mockLineClient.lastReplyText(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

// TestProgressCommand_WithoutRequestID tests /progress usage
func TestProgressCommand_WithoutRequestID(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)

	// Act
	_ = handle(t, service, createTextMessageEvent("/progress"))

	// Assert
	if mockLineClient.LastProgressID != "" {
		t.Error("Expected no progress lookup without a request id")
	}
	if got := mockLineClient.lastReplyText(); got != "Usage: /progress <requestId>" {
		t.Errorf("Unexpected reply: '%s'", got)
	}
}

// TestFollowEvent_PushesWelcome tests the welcome push on follow
func TestFollowEvent_PushesWelcome(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)
	event := domain.LineWebhookEvent{
		Type:   domain.LineEventTypeFollow,
		Source: domain.LineSource{Type: domain.LineSourceTypeUser, UserID: "new-friend"},
	}

	// Act
	err := handle(t, service, event)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mockLineClient.LastPushTo != "new-friend" {
		t.Errorf("Expected push to 'new-friend', got '%s'", mockLineClient.LastPushTo)
	}
	if len(mockLineClient.LastPushMessages) != 1 {
		t.Fatalf("Expected one welcome message, got %d", len(mockLineClient.LastPushMessages))
	}
	welcome, ok := mockLineClient.LastPushMessages[0].(*messaging_api.TextMessage)
	if !ok || !strings.HasPrefix(welcome.Text, "Welcome!") {
		t.Errorf("Expected welcome text message, got %#v", mockLineClient.LastPushMessages[0])
	}
}

// TestFollowEvent_PushErrorIsReturned tests error propagation on follow
func TestFollowEvent_PushErrorIsReturned(t *testing.T) {
	// Arrange
	pushErr := &domain.TransportError{Method: "POST", URL: "message/push", Err: context.DeadlineExceeded}
	mockLineClient := &MockLineClient{
		PushMessageFunc: func(string, ...domain.Message) error { return pushErr },
	}
	service := NewLineWebhookService(mockLineClient)
	event := domain.LineWebhookEvent{
		Type:   domain.LineEventTypeFollow,
		Source: domain.LineSource{Type: domain.LineSourceTypeUser, UserID: "new-friend"},
	}

	// Act
	err := handle(t, service, event)

	// Assert
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded in error chain, got: %v", err)
	}
}

// TestJoinEvent_RepliesGreeting tests the group greeting
func TestJoinEvent_RepliesGreeting(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)
	event := domain.LineWebhookEvent{
		Type:       domain.LineEventTypeJoin,
		ReplyToken: "join-token",
		Source:     domain.LineSource{Type: domain.LineSourceTypeGroup, GroupID: "g"},
	}

	// Act
	err := handle(t, service, event)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mockLineClient.LastReplyToken != "join-token" {
		t.Errorf("Expected reply on 'join-token', got '%s'", mockLineClient.LastReplyToken)
	}
	if got := mockLineClient.lastReplyText(); !strings.HasPrefix(got, "Hello everyone!") {
		t.Errorf("Unexpected greeting: '%s'", got)
	}
}

// TestIgnoredEvents_MakeNoCalls tests events that need no LINE round trip
func TestIgnoredEvents_MakeNoCalls(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)
	sticker := createTextMessageEvent("")
	sticker.Message = &domain.LineMessage{Type: domain.LineMessageTypeSticker, PackageID: "1", StickerID: "2"}
	noToken := createTextMessageEvent("hi")
	noToken.ReplyToken = ""

	// Act
	err := handle(t, service,
		domain.LineWebhookEvent{Type: domain.LineEventTypeUnfollow, Source: domain.LineSource{UserID: "u"}},
		domain.LineWebhookEvent{Type: domain.LineEventType("postback")},
		domain.LineWebhookEvent{Type: domain.LineEventTypeMessage},
		sticker,
		noToken,
	)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(mockLineClient.Calls) != 0 {
		t.Errorf("Expected no LINE calls, got %v", mockLineClient.Calls)
	}
}

// TestReplyError_StopsProcessing tests that a failing event aborts the delivery
func TestReplyError_StopsProcessing(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{
		ReplyMessageFunc: func(string, ...domain.Message) error {
			return &domain.HTTPStatusError{StatusCode: 400, Body: `{"message":"Invalid reply token"}`}
		},
	}
	service := NewLineWebhookService(mockLineClient)

	// Act
	err := handle(t, service, createTextMessageEvent("first"), createTextMessageEvent("second"))

	// Assert
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest in error chain, got: %v", err)
	}
	if len(mockLineClient.Calls) != 1 {
		t.Errorf("Expected processing to stop after the first event, got %v", mockLineClient.Calls)
	}
}

// TestLocationMessage_IsDescribed tests that location and file messages are answered with a summary
func TestLocationMessage_IsDescribed(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient)
	location := createTextMessageEvent("")
	location.Message = &domain.LineMessage{
		Type:      domain.LineMessageTypeLocation,
		Title:     "office",
		Address:   "Tokyo",
		Latitude:  35.5,
		Longitude: 139.25,
	}
	file := createTextMessageEvent("")
	file.Message = &domain.LineMessage{Type: domain.LineMessageTypeFile, FileName: "report.pdf", FileSize: 2138}

	// Act
	errLocation := handle(t, service, location)
	locationReply := mockLineClient.lastReplyText()
	errFile := handle(t, service, file)

	// Assert
	if errLocation != nil || errFile != nil {
		t.Fatalf("Expected no error, got: %v, %v", errLocation, errFile)
	}
	if locationReply != "Received location office, Tokyo (35.500000, 139.250000)" {
		t.Errorf("Unexpected location reply: '%s'", locationReply)
	}
	if got := mockLineClient.lastReplyText(); got != "Received file report.pdf (2138 bytes)" {
		t.Errorf("Unexpected file reply: '%s'", got)
	}
}
