package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GetRichMenus godoc
// @Summary List rich menus
// @Description Every rich menu of the channel and the default one
// @Tags RICHMENU
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/richmenus	[get]
// @Produce json
func (hdl *HTTPHandler) GetRichMenus(c *fiber.Ctx) error {
	overview, err := hdl.richMenu.GetRichMenus(c.UserContext())
	if err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: overview})
}

// SetDefaultRichMenu godoc
// @Summary Set default rich menu
// @Tags RICHMENU
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/richmenus/{id}/default	[post]
// @Produce json
// @param id path string true "rich menu id"
func (hdl *HTTPHandler) SetDefaultRichMenu(c *fiber.Ctx) error {
	if err := hdl.richMenu.SetDefaultRichMenu(c.UserContext(), c.Params("id")); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// ClearDefaultRichMenu godoc
// @Summary Clear default rich menu
// @Tags RICHMENU
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/richmenus/default	[delete]
// @Produce json
func (hdl *HTTPHandler) ClearDefaultRichMenu(c *fiber.Ctx) error {
	if err := hdl.richMenu.ClearDefaultRichMenu(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// LinkRichMenu godoc
// @Summary Link rich menu to user
// @Tags RICHMENU
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/richmenus/{id}/users/{userId}	[post]
// @Produce json
// @param id path string true "rich menu id"
// @param userId path string true "user id"
func (hdl *HTTPHandler) LinkRichMenu(c *fiber.Ctx) error {
	if err := hdl.richMenu.LinkRichMenu(c.UserContext(), c.Params("userId"), c.Params("id")); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// UnlinkRichMenu godoc
// @Summary Unlink rich menu from user
// @Tags RICHMENU
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/richmenus/users/{userId}	[delete]
// @Produce json
// @param userId path string true "user id"
func (hdl *HTTPHandler) UnlinkRichMenu(c *fiber.Ctx) error {
	if err := hdl.richMenu.UnlinkRichMenu(c.UserContext(), c.Params("userId")); err != nil {
		logrus.Errorln(err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}
