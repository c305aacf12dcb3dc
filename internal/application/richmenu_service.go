package application

import (
	"context"
	"errors"
	"net/http"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"
)

// RichMenuService struct - Application service implementing rich menu use cases
type RichMenuService struct {
	lineClient output.LineClient
}

// NewRichMenuService func - Creates new rich menu service
func NewRichMenuService(lineClient output.LineClient) *RichMenuService {
	return &RichMenuService{
		lineClient: lineClient,
	}
}

// GetRichMenus func - Use case: list rich menus together with the channel default.
// A channel without a default menu is not an error.
func (s *RichMenuService) GetRichMenus(ctx context.Context) (*domain.RichMenuOverview, error) {
	menus, err := s.lineClient.GetRichMenuList(ctx)
	if err != nil {
		return nil, err
	}

	defaultID, err := s.lineClient.GetDefaultRichMenuID(ctx)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	return &domain.RichMenuOverview{
		RichMenus:         menus,
		DefaultRichMenuID: defaultID,
	}, nil
}

// SetDefaultRichMenu func
func (s *RichMenuService) SetDefaultRichMenu(ctx context.Context, richMenuID string) error {
	return s.lineClient.SetDefaultRichMenu(ctx, richMenuID)
}

// ClearDefaultRichMenu func
func (s *RichMenuService) ClearDefaultRichMenu(ctx context.Context) error {
	return s.lineClient.DeleteDefaultRichMenu(ctx)
}

// LinkRichMenu func
func (s *RichMenuService) LinkRichMenu(ctx context.Context, userID, richMenuID string) error {
	return s.lineClient.LinkRichMenuToUser(ctx, userID, richMenuID)
}

// UnlinkRichMenu func
func (s *RichMenuService) UnlinkRichMenu(ctx context.Context, userID string) error {
	return s.lineClient.UnlinkRichMenuFromUser(ctx, userID)
}

func isNotFound(err error) bool {
	var statusErr *domain.HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
