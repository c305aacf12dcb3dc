package input

import (
	"context"

	"golang-connect-line/internal/domain"
)

// RichMenuService interface - Input port (use case)
type RichMenuService interface {
	GetRichMenus(ctx context.Context) (*domain.RichMenuOverview, error)
	SetDefaultRichMenu(ctx context.Context, richMenuID string) error
	ClearDefaultRichMenu(ctx context.Context) error
	LinkRichMenu(ctx context.Context, userID, richMenuID string) error
	UnlinkRichMenu(ctx context.Context, userID string) error
}
