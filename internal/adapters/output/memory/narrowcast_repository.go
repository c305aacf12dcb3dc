package memory

import (
	"sort"
	"sync"
	"time"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/google/uuid"
)

// Compile-time check to ensure NarrowcastRepository implements the output port
var _ output.NarrowcastRepository = (*NarrowcastRepository)(nil)

// NarrowcastRepository struct - Output adapter keeping narrowcast records in memory.
// Uses sync.Map for thread-safe concurrent access. Records older than the
// retention are dropped lazily on access; a zero retention keeps them forever.
type NarrowcastRepository struct {
	records   sync.Map
	retention time.Duration
	now       func() time.Time
}

// NewNarrowcastRepository creates a new in-memory narrowcast repository
func NewNarrowcastRepository(retention time.Duration) *NarrowcastRepository {
	return &NarrowcastRepository{
		retention: retention,
		now:       time.Now,
	}
}

// CreateRecord stores a new record under a fresh uuid
func (m *NarrowcastRepository) CreateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	if record.ID == nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		record.ID = &id
	}
	now := m.now().UTC()
	record.CreatedAt = &now
	record.UpdatedAt = &now

	stored := *record
	m.records.Store(*record.ID, &stored)

	response := stored.ToResponse()
	return &response, nil
}

// UpdateRecord replaces the progress fields of an existing record.
// Updating a record that does not exist returns domain.ErrNotFound. The swap
// is retried when another update stored the record in between.
func (m *NarrowcastRepository) UpdateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	if record.ID == nil {
		return nil, domain.ErrNotFound
	}
	for {
		value, exists := m.records.Load(*record.ID)
		if !exists {
			return nil, domain.ErrNotFound
		}
		previous, ok := value.(*domain.NarrowcastRecord)
		if !ok || m.isExpired(previous) {
			m.records.CompareAndDelete(*record.ID, value)
			return nil, domain.ErrNotFound
		}

		now := m.now().UTC()
		current := *previous
		current.Phase = record.Phase
		current.SuccessCount = record.SuccessCount
		current.FailureCount = record.FailureCount
		current.TargetCount = record.TargetCount
		current.FailedDescription = record.FailedDescription
		current.ErrorCode = record.ErrorCode
		current.UpdatedAt = &now

		if m.records.CompareAndSwap(*record.ID, value, &current) {
			response := current.ToResponse()
			return &response, nil
		}
	}
}

// GetRecord returns a copy of the record, or domain.ErrNotFound when it does
// not exist or has passed the retention.
func (m *NarrowcastRepository) GetRecord(id uuid.UUID) (*domain.NarrowcastRecord, error) {
	value, exists := m.records.Load(id)
	if !exists {
		return nil, domain.ErrNotFound
	}

	record, ok := value.(*domain.NarrowcastRecord)
	if !ok {
		m.records.Delete(id)
		return nil, domain.ErrNotFound
	}
	if m.isExpired(record) {
		// Lazy cleanup
		m.records.Delete(id)
		return nil, domain.ErrNotFound
	}

	copied := *record
	return &copied, nil
}

// ListRecords filters, sorts and pages the stored records
func (m *NarrowcastRepository) ListRecords(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error) {
	var matched []domain.NarrowcastRecord
	m.records.Range(func(key, value interface{}) bool {
		record, ok := value.(*domain.NarrowcastRecord)
		if !ok {
			return true
		}
		if m.isExpired(record) {
			m.records.Delete(key)
			return true
		}
		if matches(*record, condition) {
			matched = append(matched, *record)
		}
		return true
	})

	sortMethod := domain.SortMethod{Asc: true, OrderBy: "created_at"}
	if condition.SortMethod != nil {
		sortMethod = *condition.SortMethod
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if sortMethod.Asc {
			return less(matched[i], matched[j], sortMethod.OrderBy)
		}
		return less(matched[j], matched[i], sortMethod.OrderBy)
	})

	totalItem := int64(len(matched))
	if condition.ID == nil && condition.Pagination != nil {
		matched = page(matched, condition.Pagination.Offset, condition.Pagination.Limit)
	}

	result := domain.NarrowcastRecordListResponse{
		Records:     make([]domain.NarrowcastRecordResponse, 0, len(matched)),
		CurrentPage: condition.Page,
		TotalItem:   &totalItem,
	}
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	for i := range matched {
		result.Records = append(result.Records, matched[i].ToResponse())
	}
	return &result, nil
}

func (m *NarrowcastRepository) isExpired(record *domain.NarrowcastRecord) bool {
	if m.retention <= 0 || record.CreatedAt == nil {
		return false
	}
	return m.now().Sub(*record.CreatedAt) > m.retention
}

func matches(record domain.NarrowcastRecord, condition domain.QueryNarrowcastRequest) bool {
	if condition.ID != nil && (record.ID == nil || *record.ID != *condition.ID) {
		return false
	}
	if condition.RequestID != nil && record.RequestID != *condition.RequestID {
		return false
	}
	if condition.Phase != nil && record.Phase != *condition.Phase {
		return false
	}
	return true
}

func less(a, b domain.NarrowcastRecord, orderBy string) bool {
	switch orderBy {
	case "updated_at":
		return timeOf(a.UpdatedAt).Before(timeOf(b.UpdatedAt))
	case "phase":
		return a.Phase < b.Phase
	case "status_code":
		return a.StatusCode < b.StatusCode
	case "request_id":
		return a.RequestID < b.RequestID
	default:
		return timeOf(a.CreatedAt).Before(timeOf(b.CreatedAt))
	}
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func page(records []domain.NarrowcastRecord, offset, limit int) []domain.NarrowcastRecord {
	if offset < 0 || offset >= len(records) {
		return nil
	}
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return records[offset:end]
}
