package domain

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// PushMessageRequest struct - body of message/push
	PushMessageRequest struct {
		To                   string   `json:"to" validate:"required"`
		Messages             Messages `json:"messages" validate:"required,min=1,max=5"`
		NotificationDisabled *bool    `json:"notificationDisabled,omitempty"`
	}

	// ReplyMessageRequest struct - body of message/reply
	ReplyMessageRequest struct {
		ReplyToken           string   `json:"replyToken" validate:"required"`
		Messages             Messages `json:"messages" validate:"required,min=1,max=5"`
		NotificationDisabled *bool    `json:"notificationDisabled,omitempty"`
	}

	// MulticastRequest struct - body of message/multicast
	MulticastRequest struct {
		To                   []string `json:"to" validate:"required,min=1,max=500,dive,required"`
		Messages             Messages `json:"messages" validate:"required,min=1,max=5"`
		NotificationDisabled *bool    `json:"notificationDisabled,omitempty"`
	}

	// BroadcastRequest struct - body of message/broadcast
	BroadcastRequest struct {
		Messages             Messages `json:"messages" validate:"required,min=1,max=5"`
		NotificationDisabled *bool    `json:"notificationDisabled,omitempty"`
	}

	// AudienceID struct - one user id or IFA of an upload audience
	AudienceID struct {
		ID string `json:"id" validate:"required"`
	}

	// CreateUploadAudienceGroupRequest struct - body of POST audienceGroup/upload
	CreateUploadAudienceGroupRequest struct {
		Description       string       `json:"description" validate:"required,max=120"`
		IsIfaAudience     bool         `json:"isIfaAudience"`
		UploadDescription string       `json:"uploadDescription,omitempty"`
		Audiences         []AudienceID `json:"audiences" validate:"max=10000,dive"`
	}

	// UpdateUploadAudienceGroupRequest struct - body of PUT audienceGroup/upload
	UpdateUploadAudienceGroupRequest struct {
		AudienceGroupID   int64        `json:"audienceGroupId" validate:"required,gt=0"`
		UploadDescription string       `json:"uploadDescription,omitempty"`
		Audiences         []AudienceID `json:"audiences" validate:"required,min=1,max=10000,dive"`
	}

	// CreateClickAudienceGroupRequest struct - body of POST audienceGroup/click
	CreateClickAudienceGroupRequest struct {
		Description string `json:"description" validate:"required,max=120"`
		RequestID   string `json:"requestId" validate:"required"`
		ClickURL    string `json:"clickUrl,omitempty" validate:"omitempty,url,max=2000"`
	}

	// CreateImpAudienceGroupRequest struct - body of POST audienceGroup/imp
	CreateImpAudienceGroupRequest struct {
		Description string `json:"description" validate:"required,max=120"`
		RequestID   string `json:"requestId" validate:"required"`
	}

	// UpdateAudienceGroupDescriptionRequest struct - body of PUT audienceGroup/{id}/updateDescription
	UpdateAudienceGroupDescriptionRequest struct {
		Description string `json:"description" validate:"required,max=120"`
	}

	// UpdateAudienceGroupAuthorityLevelRequest struct - body of PUT audienceGroup/authorityLevel
	UpdateAudienceGroupAuthorityLevelRequest struct {
		AuthorityLevel AudienceGroupAuthorityLevel `json:"authorityLevel" validate:"required,oneof=PUBLIC PRIVATE"`
	}

	// GetAudienceGroupsQuery struct - query of audienceGroup/list. Nil fields are omitted.
	GetAudienceGroupsQuery struct {
		Page                         int                       `validate:"min=1"`
		Description                  *string                   `validate:"omitempty"`
		Status                       *AudienceGroupStatus      `validate:"omitempty,oneof=IN_PROGRESS READY EXPIRED FAILED"`
		Size                         *int                      `validate:"omitempty,min=1,max=40"`
		CreateRoute                  *AudienceGroupCreateRoute `validate:"omitempty,oneof=OA_MANAGER MESSAGING_API"`
		IncludesExternalPublicGroups *bool
	}

	// TransportRequest struct - a request ready for the HTTP transport
	TransportRequest struct {
		Operation string
		Method    string
		URL       string
		Header    http.Header
		Body      []byte
	}

	// TransportResponse struct - what the HTTP transport returns, whatever the status
	TransportResponse struct {
		StatusCode int
		Header     http.Header
		Body       []byte
	}

	// QueryNarrowcastRequest struct - Domain query request DTO for tracked narrowcasts
	QueryNarrowcastRequest struct {
		ID        *uuid.UUID
		RequestID *string
		Phase     *string

		Limit      *int
		Page       *int
		OrderBy    *string
		Asc        *bool
		Pagination *Pagination
		SortMethod *SortMethod
	}

	// Pagination struct
	Pagination struct {
		Limit  int
		Offset int
	}

	// SortMethod struct
	SortMethod struct {
		Asc     bool
		OrderBy string
	}

	// NarrowcastRecordResponse struct - Domain response DTO of a tracked narrowcast
	NarrowcastRecordResponse struct {
		ID                *uuid.UUID `json:"id,omitempty"`
		RequestID         string     `json:"request_id,omitempty"`
		StatusCode        int        `json:"status_code"`
		Phase             string     `json:"phase"`
		SuccessCount      *int64     `json:"success_count,omitempty"`
		FailureCount      *int64     `json:"failure_count,omitempty"`
		TargetCount       *int64     `json:"target_count,omitempty"`
		FailedDescription string     `json:"failed_description,omitempty"`
		ErrorCode         *int       `json:"error_code,omitempty"`
		CreatedAt         *time.Time `json:"created_at,omitempty"`
		UpdatedAt         *time.Time `json:"updated_at,omitempty"`
	}

	// NarrowcastRecordListResponse struct - Domain list response DTO
	NarrowcastRecordListResponse struct {
		Records     []NarrowcastRecordResponse
		CurrentPage *int
		PerPage     *int
		TotalItem   *int64
	}
)

// Encode returns the query string of q with keys in declaration order:
// page, description, status, size, createRoute, includesExternalPublicGroups.
func (q GetAudienceGroupsQuery) Encode() string {
	pairs := make([]string, 0, 6)
	add := func(key, value string) {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	add("page", strconv.Itoa(q.Page))
	if q.Description != nil {
		add("description", *q.Description)
	}
	if q.Status != nil {
		add("status", string(*q.Status))
	}
	if q.Size != nil {
		add("size", strconv.Itoa(*q.Size))
	}
	if q.CreateRoute != nil {
		add("createRoute", string(*q.CreateRoute))
	}
	if q.IncludesExternalPublicGroups != nil {
		add("includesExternalPublicGroups", strconv.FormatBool(*q.IncludesExternalPublicGroups))
	}
	return strings.Join(pairs, "&")
}
