package application

import (
	"context"
	"fmt"
	"math"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"
	"golang-connect-line/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MessagingService struct - Application service implementing messaging use cases
type MessagingService struct {
	lineClient output.LineClient
	repo       output.NarrowcastRepository
}

// NewMessagingService func - Creates new messaging service
func NewMessagingService(lineClient output.LineClient, repo output.NarrowcastRepository) *MessagingService {
	return &MessagingService{
		lineClient: lineClient,
		repo:       repo,
	}
}

// PushMessage func - Use case: Send messages to one user, group or room
func (s *MessagingService) PushMessage(ctx context.Context, request domain.PushMessageRequest) error {
	return s.lineClient.PushMessage(ctx, request.To, request.Messages...)
}

// ReplyMessage func - Use case: Answer an event through its reply token
func (s *MessagingService) ReplyMessage(ctx context.Context, request domain.ReplyMessageRequest) error {
	return s.lineClient.ReplyMessage(ctx, request.ReplyToken, request.Messages...)
}

// Multicast func - Use case: Send messages to several users
func (s *MessagingService) Multicast(ctx context.Context, request domain.MulticastRequest) error {
	return s.lineClient.Multicast(ctx, request.To, request.Messages...)
}

// Broadcast func - Use case: Send messages to every friend
func (s *MessagingService) Broadcast(ctx context.Context, request domain.BroadcastRequest) error {
	return s.lineClient.Broadcast(ctx, request.Messages...)
}

// Narrowcast func - Use case: Send to a filtered audience and track the submission
func (s *MessagingService) Narrowcast(ctx context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastRecordResponse, error) {
	result, sendErr := s.lineClient.Narrowcast(ctx, request)
	if result == nil {
		return nil, sendErr
	}

	record := domain.NewNarrowcastRecord(*result)
	if sendErr != nil {
		record.Phase = string(domain.NarrowcastPhaseFailed)
		record.FailedDescription = result.Body
	}

	response, err := s.repo.CreateRecord(record)
	if err != nil {
		logrus.Errorln(err)
		if sendErr != nil {
			return nil, sendErr
		}
		return nil, fmt.Errorf("narrowcast %s sent but not tracked: %w", result.RequestID, err)
	}
	metrics.IncNarrowcastRecords(record.Phase)

	if sendErr != nil {
		return response, sendErr
	}
	return response, nil
}

// RefreshNarrowcast func - Use case: Poll and persist the progress of a tracked narrowcast
func (s *MessagingService) RefreshNarrowcast(ctx context.Context, id uuid.UUID) (*domain.NarrowcastRecordResponse, error) {
	record, err := s.repo.GetRecord(id)
	if err != nil {
		return nil, err
	}

	if record.RequestID == "" {
		return nil, &domain.InvalidOperationError{
			Operation: "refreshNarrowcast",
			Reason:    fmt.Sprintf("narrowcast %s has no request id", id),
			Err:       domain.ErrRequestIDUnavailable,
		}
	}

	switch domain.NarrowcastPhase(record.Phase) {
	case domain.NarrowcastPhaseSucceeded, domain.NarrowcastPhaseFailed:
		// final phases never change
		response := record.ToResponse()
		return &response, nil
	}

	progress, err := s.lineClient.GetNarrowcastProgress(ctx, record.RequestID)
	if err != nil {
		logrus.Errorf("Failed to refresh narrowcast %s: %v", id, err)
		return nil, err
	}

	record.ApplyProgress(*progress)
	return s.repo.UpdateRecord(record)
}

// GetNarrowcasts func - Use case: Get tracked narrowcasts with pagination and filtering
func (s *MessagingService) GetNarrowcasts(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error) {
	var (
		page    int
		perPage int
		offset  int
	)
	if condition.Page != nil && *condition.Page > 0 {
		page = *condition.Page
	} else {
		page = 1
	}
	condition.Page = &page
	if condition.Limit != nil && *condition.Limit > 0 {
		perPage = *condition.Limit
	} else {
		perPage = 100
	}
	condition.Limit = &perPage
	if page-1 > math.MaxInt/perPage {
		return nil, &domain.InvalidOperationError{
			Operation: "getNarrowcasts",
			Reason:    fmt.Sprintf("page %d is out of range", page),
			Err:       domain.ErrInvalidRequest,
		}
	}
	offset = (page - 1) * perPage
	condition.Pagination = &domain.Pagination{
		Limit:  perPage,
		Offset: offset,
	}

	asc := true
	if condition.Asc != nil {
		asc = *condition.Asc
	}
	orderBy := "created_at"
	if condition.OrderBy != nil && isSortableColumn(*condition.OrderBy) {
		orderBy = *condition.OrderBy
	}
	condition.SortMethod = &domain.SortMethod{
		Asc:     asc,
		OrderBy: orderBy,
	}
	return s.repo.ListRecords(condition)
}

func isSortableColumn(column string) bool {
	switch column {
	case "created_at", "updated_at", "phase", "status_code", "request_id":
		return true
	}
	return false
}
