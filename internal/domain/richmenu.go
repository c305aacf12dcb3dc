package domain

type (
	// RichMenuSize struct
	RichMenuSize struct {
		Width  int `json:"width" validate:"eq=2500"`
		Height int `json:"height" validate:"oneof=1686 843"`
	}

	// RichMenuBounds struct
	RichMenuBounds struct {
		X      int `json:"x" validate:"gte=0"`
		Y      int `json:"y" validate:"gte=0"`
		Width  int `json:"width" validate:"gt=0"`
		Height int `json:"height" validate:"gt=0"`
	}

	// RichMenuAction struct - the action fired when an area is tapped
	RichMenuAction struct {
		Type        string `json:"type" validate:"required,oneof=postback message uri datetimepicker richmenuswitch"`
		Label       string `json:"label,omitempty" validate:"max=20"`
		Text        string `json:"text,omitempty"`
		URI         string `json:"uri,omitempty"`
		Data        string `json:"data,omitempty"`
		DisplayText string `json:"displayText,omitempty"`
	}

	// RichMenuArea struct
	RichMenuArea struct {
		Bounds RichMenuBounds `json:"bounds"`
		Action RichMenuAction `json:"action"`
	}

	// RichMenu struct - rich menu definition sent on create
	RichMenu struct {
		Size        RichMenuSize   `json:"size"`
		Selected    bool           `json:"selected"`
		Name        string         `json:"name" validate:"required,max=300"`
		ChatBarText string         `json:"chatBarText" validate:"required,max=14"`
		Areas       []RichMenuArea `json:"areas" validate:"max=20,dive"`
	}

	// RichMenuResponse struct - rich menu as returned by the API
	RichMenuResponse struct {
		RichMenuID string `json:"richMenuId"`
		RichMenu
	}

	// RichMenuListResponse struct
	RichMenuListResponse struct {
		RichMenus []RichMenuResponse `json:"richmenus"`
	}

	// RichMenuIDResponse struct
	RichMenuIDResponse struct {
		RichMenuID string `json:"richMenuId"`
	}

	// RichMenuOverview struct - every rich menu plus the channel default
	RichMenuOverview struct {
		RichMenus         []RichMenuResponse `json:"richmenus"`
		DefaultRichMenuID string             `json:"default_rich_menu_id,omitempty"`
	}
)
