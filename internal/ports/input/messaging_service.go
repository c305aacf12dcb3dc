package input

import (
	"context"

	"golang-connect-line/internal/domain"

	"github.com/google/uuid"
)

// MessagingService interface - Input port (use case)
// Sends messages and keeps track of narrowcast submissions
type MessagingService interface {
	PushMessage(ctx context.Context, request domain.PushMessageRequest) error
	ReplyMessage(ctx context.Context, request domain.ReplyMessageRequest) error
	Multicast(ctx context.Context, request domain.MulticastRequest) error
	Broadcast(ctx context.Context, request domain.BroadcastRequest) error

	// Narrowcast submits the request and stores a record of it, even when
	// LINE rejected the submission.
	Narrowcast(ctx context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastRecordResponse, error)

	// RefreshNarrowcast polls LINE for the progress of a tracked narrowcast and persists it
	RefreshNarrowcast(ctx context.Context, id uuid.UUID) (*domain.NarrowcastRecordResponse, error)

	GetNarrowcasts(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error)
}
