package http

import (
	"errors"
	"strconv"

	"golang-connect-line/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CreateUploadAudienceGroup godoc
// @Summary Create upload audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/upload	[post]
// @Produce json
// @param CreateUploadAudienceGroup body domain.CreateUploadAudienceGroupRequest true "CreateUploadAudienceGroup"
func (hdl *HTTPHandler) CreateUploadAudienceGroup(c *fiber.Ctx) error {
	var request domain.CreateUploadAudienceGroupRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	response, err := hdl.audience.CreateUploadAudienceGroup(c.UserContext(), request)
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: response})
}

// UpdateUploadAudienceGroup godoc
// @Summary Add user ids to an upload audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/upload	[put]
// @Produce json
// @param UpdateUploadAudienceGroup body domain.UpdateUploadAudienceGroupRequest true "UpdateUploadAudienceGroup"
func (hdl *HTTPHandler) UpdateUploadAudienceGroup(c *fiber.Ctx) error {
	var request domain.UpdateUploadAudienceGroupRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.audience.UpdateUploadAudienceGroup(c.UserContext(), request); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// CreateClickAudienceGroup godoc
// @Summary Create click audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/click	[post]
// @Produce json
// @param CreateClickAudienceGroup body domain.CreateClickAudienceGroupRequest true "CreateClickAudienceGroup"
func (hdl *HTTPHandler) CreateClickAudienceGroup(c *fiber.Ctx) error {
	var request domain.CreateClickAudienceGroupRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	response, err := hdl.audience.CreateClickAudienceGroup(c.UserContext(), request)
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: response})
}

// CreateImpAudienceGroup godoc
// @Summary Create impression audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/imp	[post]
// @Produce json
// @param CreateImpAudienceGroup body domain.CreateImpAudienceGroupRequest true "CreateImpAudienceGroup"
func (hdl *HTTPHandler) CreateImpAudienceGroup(c *fiber.Ctx) error {
	var request domain.CreateImpAudienceGroupRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	response, err := hdl.audience.CreateImpAudienceGroup(c.UserContext(), request)
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: response})
}

// SetAudienceGroupDescription godoc
// @Summary Rename audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/{id}/description	[put]
// @Produce json
// @param id path int true "audience group id"
// @param UpdateDescription body domain.UpdateAudienceGroupDescriptionRequest true "UpdateDescription"
func (hdl *HTTPHandler) SetAudienceGroupDescription(c *fiber.Ctx) error {
	id, err := audienceGroupID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var request domain.UpdateAudienceGroupDescriptionRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.audience.SetAudienceGroupDescription(c.UserContext(), id, request.Description); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// DeleteAudienceGroup godoc
// @Summary Delete audience group
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/{id}	[delete]
// @Produce json
// @param id path int true "audience group id"
func (hdl *HTTPHandler) DeleteAudienceGroup(c *fiber.Ctx) error {
	id, err := audienceGroupID(c)
	if err != nil {
		return badRequest(c, err)
	}
	if err := hdl.audience.DeleteAudienceGroup(c.UserContext(), id); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// GetAudienceGroup godoc
// @Summary Get audience group
// @Description Audience group with its jobs
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/{id}	[get]
// @Produce json
// @param id path int true "audience group id"
func (hdl *HTTPHandler) GetAudienceGroup(c *fiber.Ctx) error {
	id, err := audienceGroupID(c)
	if err != nil {
		return badRequest(c, err)
	}
	detail, err := hdl.audience.GetAudienceGroup(c.UserContext(), id)
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: detail})
}

// GetAudienceGroups godoc
// @Summary List audience groups
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups	[get]
// @Produce json
// @param page query int false "page"
// @param description query string false "description"
// @param status query string false "IN_PROGRESS, READY, EXPIRED or FAILED"
// @param size query int false "size"
// @param createRoute query string false "OA_MANAGER or MESSAGING_API"
// @param includesExternalPublicGroups query bool false "includesExternalPublicGroups"
func (hdl *HTTPHandler) GetAudienceGroups(c *fiber.Ctx) error {
	condition := QueryAudienceGroupsRequest{}
	if err := c.QueryParser(&condition); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(condition); err != nil {
		return badRequest(c, err)
	}

	result, err := hdl.audience.GetAudienceGroups(c.UserContext(), condition.ToDomain())
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	page := int(result.Page)
	perPage := int(result.Size)
	total := result.TotalCount
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        result,
		CurrentPage: &page,
		PerPage:     &perPage,
		TotalItem:   &total,
	})
}

// GetAuthorityLevel godoc
// @Summary Get audience group authority level
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/authority-level	[get]
// @Produce json
func (hdl *HTTPHandler) GetAuthorityLevel(c *fiber.Ctx) error {
	level, err := hdl.audience.GetAuthorityLevel(c.UserContext())
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AuthorityLevelResponse{AuthorityLevel: level}})
}

// ChangeAuthorityLevel godoc
// @Summary Change audience group authority level
// @Tags AUDIENCE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/audience-groups/authority-level	[put]
// @Produce json
// @param ChangeAuthorityLevel body domain.UpdateAudienceGroupAuthorityLevelRequest true "ChangeAuthorityLevel"
func (hdl *HTTPHandler) ChangeAuthorityLevel(c *fiber.Ctx) error {
	var request domain.UpdateAudienceGroupAuthorityLevelRequest
	if err := hdl.bind(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.audience.ChangeAuthorityLevel(c.UserContext(), request.AuthorityLevel); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

func audienceGroupID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("audience group id must be a positive integer")
	}
	return id, nil
}
