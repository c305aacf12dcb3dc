package input

import (
	"context"

	"golang-connect-line/internal/domain"
)

// AudienceService interface - Input port (use case)
type AudienceService interface {
	CreateUploadAudienceGroup(ctx context.Context, request domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	UpdateUploadAudienceGroup(ctx context.Context, request domain.UpdateUploadAudienceGroupRequest) error
	CreateClickAudienceGroup(ctx context.Context, request domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	CreateImpAudienceGroup(ctx context.Context, request domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	SetAudienceGroupDescription(ctx context.Context, audienceGroupID int64, description string) error
	DeleteAudienceGroup(ctx context.Context, audienceGroupID int64) error
	GetAudienceGroup(ctx context.Context, audienceGroupID int64) (*domain.AudienceGroupDetail, error)
	GetAudienceGroups(ctx context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error)
	GetAuthorityLevel(ctx context.Context) (domain.AudienceGroupAuthorityLevel, error)
	ChangeAuthorityLevel(ctx context.Context, level domain.AudienceGroupAuthorityLevel) error
}
