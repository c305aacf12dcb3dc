package application

import (
	"context"
	"fmt"
	"strings"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

const helpText = "Available commands:\n" +
	"/help - Show this message\n" +
	"/about - About this bot\n" +
	"/echo <text> - Echo your message\n" +
	"/profile - Show your LINE profile\n" +
	"/leave - Make the bot leave this group or room\n" +
	"/progress <requestId> - Show narrowcast progress"

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, source=%s, userID=%s",
			event.Type, event.Source.Type, event.Source.UserID)

		switch event.Type {
		case domain.LineEventTypeMessage:
			if err := s.handleMessageEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle message event: %v", err)
				return err
			}

		case domain.LineEventTypeFollow:
			if err := s.handleFollowEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle follow event: %v", err)
				return err
			}

		case domain.LineEventTypeJoin:
			if err := s.reply(ctx, event, "Hello everyone! Type /help to see available commands."); err != nil {
				logrus.Errorf("Failed to handle join event: %v", err)
				return err
			}

		case domain.LineEventTypeUnfollow:
			logrus.Infof("User unfollowed: userID=%s", event.Source.UserID)

		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
	}

	return nil
}

// handleMessageEvent - Business logic for message events
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}

	switch {
	case event.Message.Type == domain.LineMessageTypeText:
	case event.Message.HasContent() || event.Message.Type == domain.LineMessageTypeLocation:
		return s.reply(ctx, event, fmt.Sprintf("Received %s", event.Message.Summary()))
	default:
		logrus.Infof("Ignoring message: type=%s", event.Message.Type)
		return nil
	}

	text := strings.TrimSpace(event.Message.Text)
	if !strings.HasPrefix(text, "/") {
		return s.reply(ctx, event, fmt.Sprintf("You said: %s", text))
	}
	return s.handleCommand(ctx, event, text)
}

// handleCommand - Business logic for command processing
func (s *LineWebhookService) handleCommand(ctx context.Context, event domain.LineWebhookEvent, text string) error {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help":
		return s.reply(ctx, event, helpText)

	case "/about":
		return s.reply(ctx, event, "LINE Messaging API gateway powered by Go + Fiber\nBuilt with Hexagonal Architecture")

	case "/echo":
		if len(args) == 0 {
			return s.reply(ctx, event, "Usage: /echo <text>")
		}
		return s.reply(ctx, event, strings.Join(args, " "))

	case "/profile":
		profile, err := s.lineClient.GetProfileWithEventSource(ctx, event.Source)
		if err != nil {
			logrus.Errorf("Failed to get profile: %v", err)
			return s.reply(ctx, event, "Sorry, I could not read your profile.")
		}
		return s.reply(ctx, event, formatProfile(profile))

	case "/leave":
		if !event.Source.IsMultiPerson() {
			return s.reply(ctx, event, "I can only leave groups and rooms.")
		}
		if err := s.reply(ctx, event, "Bye!"); err != nil {
			return err
		}
		if err := s.lineClient.LeaveWithEventSource(ctx, event.Source); err != nil {
			return fmt.Errorf("failed to leave chat: %w", err)
		}
		return nil

	case "/progress":
		if len(args) == 0 {
			return s.reply(ctx, event, "Usage: /progress <requestId>")
		}
		progress, err := s.lineClient.GetNarrowcastProgress(ctx, args[0])
		if err != nil {
			logrus.Errorf("Failed to get narrowcast progress: %v", err)
			return s.reply(ctx, event, fmt.Sprintf("Could not get progress of %s", args[0]))
		}
		return s.reply(ctx, event, formatProgress(args[0], progress))

	default:
		return s.reply(ctx, event, fmt.Sprintf("Unknown command: %s\nType /help for available commands", command))
	}
}

// handleFollowEvent - Business logic for follow events
func (s *LineWebhookService) handleFollowEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.Source.UserID)

	welcome := &messaging_api.TextMessage{
		Text: "Welcome! Thank you for adding me as a friend!\n\nType /help to see available commands.",
	}
	if err := s.lineClient.PushMessage(ctx, event.Source.UserID, welcome); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	return nil
}

// reply - sends one text message through the event's reply token
func (s *LineWebhookService) reply(ctx context.Context, event domain.LineWebhookEvent, text string) error {
	if event.ReplyToken == "" {
		return nil
	}
	if err := s.lineClient.ReplyMessage(ctx, event.ReplyToken, &messaging_api.TextMessage{Text: text}); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func formatProfile(profile *domain.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Display name: %s\nUser ID: %s", profile.DisplayName, profile.UserID)
	if profile.StatusMessage != "" {
		fmt.Fprintf(&b, "\nStatus: %s", profile.StatusMessage)
	}
	if profile.Language != "" {
		fmt.Fprintf(&b, "\nLanguage: %s", profile.Language)
	}
	return b.String()
}

func formatProgress(requestID string, progress *domain.NarrowcastProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Narrowcast %s: %s", requestID, progress.Phase)
	if progress.Phase.HasCounters() {
		fmt.Fprintf(&b, "\nSuccess: %d\nFailure: %d\nTarget: %d",
			derefCount(progress.SuccessCount), derefCount(progress.FailureCount), derefCount(progress.TargetCount))
	}
	if progress.FailedDescription != "" {
		fmt.Fprintf(&b, "\nReason: %s", progress.FailedDescription)
	}
	return b.String()
}

func derefCount(count *int64) int64 {
	if count == nil {
		return 0
	}
	return *count
}
