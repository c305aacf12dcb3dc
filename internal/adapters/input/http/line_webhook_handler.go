package http

import (
	"bytes"
	"errors"
	"net/http"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// Convert Fiber request to http.Request for LINE SDK
	body := c.Body()
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	// Copy headers
	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	// Parse and validate webhook request
	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logrus.Errorf("Failed to parse webhook request: %v", err)
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return c.Status(fiber.StatusUnauthorized).JSON(ResponseBody{Status: Unauthorized})
		}
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	// Convert LINE SDK events to domain events
	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		domainEvent := h.convertToDomainEvent(event)
		if domainEvent != nil {
			domainEvents = append(domainEvents, *domainEvent)
		}
	}

	webhookReq := domain.LineWebhookRequest{
		Destination: cb.Destination,
		Events:      domainEvents,
	}

	// Call application service
	if err := h.service.HandleWebhook(c.UserContext(), webhookReq); err != nil {
		logrus.Errorf("Failed to handle webhook: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func (h *LineWebhookHandler) convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return h.convertMessageEvent(e)
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			ID:         e.WebhookEventId,
			Type:       domain.LineEventTypeFollow,
			Timestamp:  domain.EpochMillisToTime(e.Timestamp),
			ReplyToken: e.ReplyToken,
			Source:     h.convertSource(e.Source),
		}
	case webhook.UnfollowEvent:
		return &domain.LineWebhookEvent{
			ID:        e.WebhookEventId,
			Type:      domain.LineEventTypeUnfollow,
			Timestamp: domain.EpochMillisToTime(e.Timestamp),
			Source:    h.convertSource(e.Source),
		}
	case webhook.JoinEvent:
		return &domain.LineWebhookEvent{
			ID:         e.WebhookEventId,
			Type:       domain.LineEventTypeJoin,
			Timestamp:  domain.EpochMillisToTime(e.Timestamp),
			ReplyToken: e.ReplyToken,
			Source:     h.convertSource(e.Source),
		}
	case webhook.LeaveEvent:
		return &domain.LineWebhookEvent{
			ID:        e.WebhookEventId,
			Type:      domain.LineEventTypeLeave,
			Timestamp: domain.EpochMillisToTime(e.Timestamp),
			Source:    h.convertSource(e.Source),
		}
	default:
		logrus.Warnf("Unsupported event type: %T", event)
		return nil
	}
}

// convertMessageEvent - Converts message event
func (h *LineWebhookHandler) convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		ID:         event.WebhookEventId,
		Type:       domain.LineEventTypeMessage,
		Timestamp:  domain.EpochMillisToTime(event.Timestamp),
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}

	// Convert message based on type
	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:        msg.Id,
			Type:      domain.LineMessageTypeSticker,
			PackageID: msg.PackageId,
			StickerID: msg.StickerId,
		}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{ID: msg.Id, Type: domain.LineMessageTypeImage}
	case webhook.VideoMessageContent:
		domainEvent.Message = &domain.LineMessage{ID: msg.Id, Type: domain.LineMessageTypeVideo, Duration: msg.Duration}
	case webhook.AudioMessageContent:
		domainEvent.Message = &domain.LineMessage{ID: msg.Id, Type: domain.LineMessageTypeAudio, Duration: msg.Duration}
	case webhook.FileMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:       msg.Id,
			Type:     domain.LineMessageTypeFile,
			FileName: msg.FileName,
			FileSize: int64(msg.FileSize),
		}
	case webhook.LocationMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:        msg.Id,
			Type:      domain.LineMessageTypeLocation,
			Title:     msg.Title,
			Address:   msg.Address,
			Latitude:  msg.Latitude,
			Longitude: msg.Longitude,
		}
	default:
		logrus.Warnf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// convertSource - Converts event source
func (h *LineWebhookHandler) convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: s.UserId,
		}
	case webhook.GroupSource:
		return domain.LineSource{
			Type:    domain.LineSourceTypeGroup,
			UserID:  s.UserId,
			GroupID: s.GroupId,
		}
	case webhook.RoomSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeRoom,
			UserID: s.UserId,
			RoomID: s.RoomId,
		}
	default:
		return domain.LineSource{}
	}
}
