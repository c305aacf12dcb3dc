package postgres

import (
	"errors"
	"time"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var _ output.NarrowcastRepository = (*NarrowcastRepository)(nil)

// NarrowcastRepository struct - Secondary/Driven adapter for PostgreSQL
type NarrowcastRepository struct {
	dbGorm *gorm.DB
}

// NewNarrowcastRepository func - Creates new PostgreSQL repository
func NewNarrowcastRepository(dbGorm *gorm.DB) *NarrowcastRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)
	return &NarrowcastRepository{
		dbGorm: dbGorm,
	}
}

// CreateRecord func - Stores a new narrowcast submission
func (p *NarrowcastRepository) CreateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	now := time.Now().UTC()
	record.CreatedAt = &now
	record.UpdatedAt = &now
	if err := p.dbGorm.Create(record).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	response := record.ToResponse()
	return &response, nil
}

// UpdateRecord func - Persists the latest known progress of a submission
func (p *NarrowcastRepository) UpdateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	var stored domain.NarrowcastRecord
	if record.ID == nil {
		return nil, domain.ErrNotFound
	}
	columns := p.updateColumns(record)

	tx := p.dbGorm.Begin()
	defer func() {
		tx.Rollback()
	}()
	result := tx.Table(stored.TableName()).Where("id = ?", *record.ID).Updates(columns)
	if result.Error != nil {
		logrus.Errorln(result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	if err := tx.Where("id = ?", *record.ID).First(&stored).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	response := stored.ToResponse()
	return &response, nil
}

// GetRecord func - Retrieves one narrowcast submission by id
func (p *NarrowcastRepository) GetRecord(id uuid.UUID) (*domain.NarrowcastRecord, error) {
	var record domain.NarrowcastRecord
	if err := p.dbGorm.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		logrus.Errorln(err)
		return nil, err
	}
	return &record, nil
}

// ListRecords func - Retrieves narrowcast submissions with filtering and pagination
func (p *NarrowcastRepository) ListRecords(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error) {
	var (
		record  domain.NarrowcastRecord
		records []domain.NarrowcastRecord
	)
	tx := p.dbGorm.Model(&record).Where(p.condition(condition))

	var totalItem int64
	if err := tx.Count(&totalItem).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	if condition.ID == nil {
		order := "created_at"
		asc := true
		if condition.SortMethod != nil {
			if condition.SortMethod.OrderBy != "" {
				order = condition.SortMethod.OrderBy
			}
			asc = condition.SortMethod.Asc
		}
		if asc {
			tx = tx.Order(order + " ASC")
		} else {
			tx = tx.Order(order + " DESC")
		}
		if condition.Pagination != nil {
			tx = tx.Limit(condition.Pagination.Limit).Offset(condition.Pagination.Offset)
		}
	}

	if err := tx.Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	result := domain.NarrowcastRecordListResponse{
		Records: []domain.NarrowcastRecordResponse{},
	}
	result.CurrentPage = condition.Page
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	result.TotalItem = &totalItem
	for i := range records {
		result.Records = append(result.Records, records[i].ToResponse())
	}
	return &result, nil
}

func (p *NarrowcastRepository) condition(condition domain.QueryNarrowcastRequest) map[string]interface{} {
	expression := make(map[string]interface{})
	if condition.ID != nil {
		expression["id"] = *condition.ID
	}
	if condition.RequestID != nil {
		expression["request_id"] = *condition.RequestID
	}
	if condition.Phase != nil {
		expression["phase"] = *condition.Phase
	}
	return expression
}

func (p *NarrowcastRepository) updateColumns(record *domain.NarrowcastRecord) map[string]interface{} {
	return map[string]interface{}{
		"phase":              record.Phase,
		"success_count":      record.SuccessCount,
		"failure_count":      record.FailureCount,
		"target_count":       record.TargetCount,
		"failed_description": record.FailedDescription,
		"error_code":         record.ErrorCode,
		"updated_at":         time.Now().UTC(),
	}
}
