package output

import (
	"github.com/google/uuid"

	"golang-connect-line/internal/domain"
)

// NarrowcastRepository interface - Output port
// Defines what the application needs to keep track of narrowcast submissions
type NarrowcastRepository interface {
	CreateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error)
	UpdateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error)
	GetRecord(id uuid.UUID) (*domain.NarrowcastRecord, error)
	ListRecords(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error)
}
