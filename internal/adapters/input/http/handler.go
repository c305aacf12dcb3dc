package http

import (
	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/input"
	"golang-connect-line/pkg/validator"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	messaging input.MessagingService
	audience  input.AudienceService
	richMenu  input.RichMenuService
	db        *gorm.DB
	validator validator.Validator
}

// New func - Creates new HTTP handler. db is nil when narrowcasts are tracked in memory.
func New(messaging input.MessagingService, audience input.AudienceService, richMenu input.RichMenuService, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		messaging: messaging,
		audience:  audience,
		richMenu:  richMenu,
		db:        db,
		validator: validator.New(),
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.db == nil {
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
	}
	sqlDB, err := hdl.db.DB()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	err = sqlDB.Ping()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// PushMessage godoc
// @Summary Push messages
// @Description Send messages to a user, group or room
// @Tags MESSAGE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/push	[post]
// @Produce json
// @param PushMessage body domain.PushMessageRequest true "PushMessage"
func (hdl *HTTPHandler) PushMessage(c *fiber.Ctx) error {
	var request domain.PushMessageRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.messaging.PushMessage(c.UserContext(), request); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// ReplyMessage godoc
// @Summary Reply messages
// @Description Answer an event through its reply token
// @Tags MESSAGE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/reply	[post]
// @Produce json
// @param ReplyMessage body domain.ReplyMessageRequest true "ReplyMessage"
func (hdl *HTTPHandler) ReplyMessage(c *fiber.Ctx) error {
	var request domain.ReplyMessageRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.messaging.ReplyMessage(c.UserContext(), request); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// Multicast godoc
// @Summary Multicast messages
// @Description Send messages to several users
// @Tags MESSAGE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/multicast	[post]
// @Produce json
// @param Multicast body domain.MulticastRequest true "Multicast"
func (hdl *HTTPHandler) Multicast(c *fiber.Ctx) error {
	var request domain.MulticastRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.messaging.Multicast(c.UserContext(), request); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// Broadcast godoc
// @Summary Broadcast messages
// @Description Send messages to every friend of the bot
// @Tags MESSAGE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/broadcast	[post]
// @Produce json
// @param Broadcast body domain.BroadcastRequest true "Broadcast"
func (hdl *HTTPHandler) Broadcast(c *fiber.Ctx) error {
	var request domain.BroadcastRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.messaging.Broadcast(c.UserContext(), request); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// Narrowcast godoc
// @Summary Narrowcast messages
// @Description Send messages to an audience and demographic filter. The submission is tracked.
// @Tags MESSAGE
// @Accept application/json
// @Success 202 {object} map[string]interface{}
// @Router /v1/api/messages/narrowcast	[post]
// @Produce json
// @param Narrowcast body domain.NarrowcastRequest true "Narrowcast"
func (hdl *HTTPHandler) Narrowcast(c *fiber.Ctx) error {
	var request domain.NarrowcastRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return badRequest(c, err)
	}
	if err := request.Validate(); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}

	record, err := hdl.messaging.Narrowcast(c.UserContext(), request)
	if err != nil {
		logrus.Errorln(err)
		status := errorStatus(err)
		msg := ResponseBody{Status: status}
		if record != nil {
			msg.Data = toNarrowcastResponse(*record)
		}
		return c.Status(status.Code).JSON(msg)
	}
	return c.Status(fiber.StatusAccepted).JSON(ResponseBody{Status: Accepted, Data: toNarrowcastResponse(*record)})
}

// GetNarrowcast godoc
// @Summary Refresh narrowcast
// @Description Poll LINE for the progress of a tracked narrowcast and return the stored record
// @Tags NARROWCAST
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/narrowcasts/{id}	[get]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) GetNarrowcast(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	record, err := hdl.messaging.RefreshNarrowcast(c.UserContext(), uid)
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toNarrowcastResponse(*record)})
}

// GetNarrowcasts godoc
// @Summary List narrowcasts
// @Description List tracked narrowcasts
// @Tags NARROWCAST
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/narrowcasts	[get]
// @Produce json
// @param request_id query string false "x-line-request-id"
// @param phase query string false "phase"
// @param page query int false "page"
// @param limit query int false "limit"
// @param order_by query string false "order_by"
// @param asc query bool false "asc"
func (hdl *HTTPHandler) GetNarrowcasts(c *fiber.Ctx) error {
	condition := QueryNarrowcastRequest{}
	if err := c.QueryParser(&condition); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(condition); err != nil {
		logrus.Errorln(err)
		return badRequest(c, err)
	}

	result, err := hdl.messaging.GetNarrowcasts(condition.ToDomain())
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	// Convert domain response to HTTP response
	data := make([]NarrowcastResponse, 0, len(result.Records))
	for _, record := range result.Records {
		data = append(data, toNarrowcastResponse(record))
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        data,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		TotalItem:   result.TotalItem,
	})
}

// bind parses and validates a JSON body
func (hdl *HTTPHandler) bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logrus.Errorln(err)
		return err
	}
	if err := hdl.validator.ValidateStruct(out); err != nil {
		return err
	}
	return nil
}
