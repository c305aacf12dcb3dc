package http

import (
	"golang-connect-line/internal/domain"

	"github.com/google/uuid"
)

type (
	// QueryNarrowcastRequest struct - HTTP query request DTO
	QueryNarrowcastRequest struct {
		ID        *uuid.UUID `json:"id" form:"id" query:"id"`
		RequestID *string    `json:"request_id" form:"request_id" query:"request_id"`
		Phase     *string    `json:"phase" validate:"omitempty,oneof=waiting sending succeeded failed unavailable" form:"phase" query:"phase"`

		Limit   *int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100" form:"limit" query:"limit"`
		Page    *int    `json:"page,omitempty" validate:"omitempty,gte=1,lte=1000000" form:"page" query:"page"`
		OrderBy *string `json:"order_by,omitempty" form:"order_by" query:"order_by"`
		Asc     *bool   `json:"asc,omitempty" form:"asc" query:"asc"`
	}

	// QueryAudienceGroupsRequest struct - HTTP query request DTO of the audience group listing
	QueryAudienceGroupsRequest struct {
		Page                         *int    `json:"page,omitempty" validate:"omitempty,gte=1" query:"page"`
		Description                  *string `json:"description,omitempty" query:"description"`
		Status                       *string `json:"status,omitempty" validate:"omitempty,oneof=IN_PROGRESS READY EXPIRED FAILED" query:"status"`
		Size                         *int    `json:"size,omitempty" validate:"omitempty,gte=1,lte=40" query:"size"`
		CreateRoute                  *string `json:"createRoute,omitempty" validate:"omitempty,oneof=OA_MANAGER MESSAGING_API" query:"createRoute"`
		IncludesExternalPublicGroups *bool   `json:"includesExternalPublicGroups,omitempty" query:"includesExternalPublicGroups"`
	}
)

// ToDomain converts the HTTP query into the domain query
func (r QueryNarrowcastRequest) ToDomain() domain.QueryNarrowcastRequest {
	return domain.QueryNarrowcastRequest{
		ID:        r.ID,
		RequestID: r.RequestID,
		Phase:     r.Phase,
		Limit:     r.Limit,
		Page:      r.Page,
		OrderBy:   r.OrderBy,
		Asc:       r.Asc,
	}
}

// ToDomain converts the HTTP query into the domain query. A missing page is
// left at zero for the application layer to default.
func (r QueryAudienceGroupsRequest) ToDomain() domain.GetAudienceGroupsQuery {
	query := domain.GetAudienceGroupsQuery{
		Description:                  r.Description,
		Size:                         r.Size,
		IncludesExternalPublicGroups: r.IncludesExternalPublicGroups,
	}
	if r.Page != nil {
		query.Page = *r.Page
	}
	if r.Status != nil {
		status := domain.AudienceGroupStatus(*r.Status)
		query.Status = &status
	}
	if r.CreateRoute != nil {
		route := domain.AudienceGroupCreateRoute(*r.CreateRoute)
		query.CreateRoute = &route
	}
	return query
}
