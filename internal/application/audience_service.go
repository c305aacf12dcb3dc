package application

import (
	"context"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// defaultAudienceGroupPageSize is used when a listing does not ask for a size
const defaultAudienceGroupPageSize = 20

// AudienceService struct - Application service implementing audience group use cases
type AudienceService struct {
	lineClient output.LineClient
}

// NewAudienceService func - Creates new audience service
func NewAudienceService(lineClient output.LineClient) *AudienceService {
	return &AudienceService{
		lineClient: lineClient,
	}
}

// CreateUploadAudienceGroup func
func (s *AudienceService) CreateUploadAudienceGroup(ctx context.Context, request domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return s.lineClient.CreateUploadAudienceGroup(ctx, request)
}

// UpdateUploadAudienceGroup func
func (s *AudienceService) UpdateUploadAudienceGroup(ctx context.Context, request domain.UpdateUploadAudienceGroupRequest) error {
	return s.lineClient.UpdateUploadAudienceGroup(ctx, request)
}

// CreateClickAudienceGroup func
func (s *AudienceService) CreateClickAudienceGroup(ctx context.Context, request domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return s.lineClient.CreateClickAudienceGroup(ctx, request)
}

// CreateImpAudienceGroup func
func (s *AudienceService) CreateImpAudienceGroup(ctx context.Context, request domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return s.lineClient.CreateImpAudienceGroup(ctx, request)
}

// SetAudienceGroupDescription func
func (s *AudienceService) SetAudienceGroupDescription(ctx context.Context, audienceGroupID int64, description string) error {
	return s.lineClient.SetAudienceGroupDescription(ctx, audienceGroupID, description)
}

// DeleteAudienceGroup func
func (s *AudienceService) DeleteAudienceGroup(ctx context.Context, audienceGroupID int64) error {
	return s.lineClient.DeleteAudienceGroup(ctx, audienceGroupID)
}

// GetAudienceGroup func
func (s *AudienceService) GetAudienceGroup(ctx context.Context, audienceGroupID int64) (*domain.AudienceGroupDetail, error) {
	return s.lineClient.GetAudienceGroup(ctx, audienceGroupID)
}

// GetAudienceGroups func - Use case: one page of audience groups, page 1 and
// size 20 unless asked otherwise
func (s *AudienceService) GetAudienceGroups(ctx context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Size == nil {
		size := defaultAudienceGroupPageSize
		query.Size = &size
	}

	result, err := s.lineClient.GetAudienceGroups(ctx, query)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return result, nil
}

// GetAuthorityLevel func
func (s *AudienceService) GetAuthorityLevel(ctx context.Context) (domain.AudienceGroupAuthorityLevel, error) {
	return s.lineClient.GetAudienceGroupAuthorityLevel(ctx)
}

// ChangeAuthorityLevel func
func (s *AudienceService) ChangeAuthorityLevel(ctx context.Context, level domain.AudienceGroupAuthorityLevel) error {
	return s.lineClient.ChangeAudienceGroupAuthorityLevel(ctx, level)
}
