package http

import "github.com/gofiber/fiber/v2"

// Routes func - mounts the REST surface under router
func Routes(router fiber.Router, hdl *HTTPHandler) {
	messages := router.Group("/messages")
	{
		messages.Post("/push", hdl.PushMessage)
		messages.Post("/reply", hdl.ReplyMessage)
		messages.Post("/multicast", hdl.Multicast)
		messages.Post("/broadcast", hdl.Broadcast)
		messages.Post("/narrowcast", hdl.Narrowcast)
	}

	narrowcasts := router.Group("/narrowcasts")
	{
		narrowcasts.Get("/", hdl.GetNarrowcasts)
		narrowcasts.Get("/:id", hdl.GetNarrowcast)
	}

	audienceGroups := router.Group("/audience-groups")
	{
		audienceGroups.Get("/", hdl.GetAudienceGroups)
		audienceGroups.Get("/authority-level", hdl.GetAuthorityLevel)
		audienceGroups.Put("/authority-level", hdl.ChangeAuthorityLevel)
		audienceGroups.Post("/upload", hdl.CreateUploadAudienceGroup)
		audienceGroups.Put("/upload", hdl.UpdateUploadAudienceGroup)
		audienceGroups.Post("/click", hdl.CreateClickAudienceGroup)
		audienceGroups.Post("/imp", hdl.CreateImpAudienceGroup)
		audienceGroups.Get("/:id", hdl.GetAudienceGroup)
		audienceGroups.Put("/:id/description", hdl.SetAudienceGroupDescription)
		audienceGroups.Delete("/:id", hdl.DeleteAudienceGroup)
	}

	richMenus := router.Group("/richmenus")
	{
		richMenus.Get("/", hdl.GetRichMenus)
		richMenus.Delete("/default", hdl.ClearDefaultRichMenu)
		richMenus.Delete("/users/:userId", hdl.UnlinkRichMenu)
		richMenus.Post("/:id/default", hdl.SetDefaultRichMenu)
		richMenus.Post("/:id/users/:userId", hdl.LinkRichMenu)
	}
}
