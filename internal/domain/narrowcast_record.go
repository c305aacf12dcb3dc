package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NarrowcastPhaseUnavailable marks a record whose submission returned no request id
const NarrowcastPhaseUnavailable NarrowcastPhase = "unavailable"

// NarrowcastRecord struct - a narrowcast submission tracked for progress polling
type NarrowcastRecord struct {
	ID                *uuid.UUID `gorm:"type:uuid;primary_key;"`
	RequestID         string     `gorm:"type:varchar(64);index"`
	StatusCode        int        `gorm:"type:integer;not null;"`
	Phase             string     `gorm:"type:varchar(16);not null;"`
	SuccessCount      *int64     `gorm:"type:bigint"`
	FailureCount      *int64     `gorm:"type:bigint"`
	TargetCount       *int64     `gorm:"type:bigint"`
	FailedDescription string     `gorm:"type:text"`
	ErrorCode         *int       `gorm:"type:integer"`
	ResponseBody      string     `gorm:"type:text"`
	CreatedAt         *time.Time `gorm:"type:timestamp"`
	UpdatedAt         *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (r *NarrowcastRecord) TableName() string {
	return "narrowcast_records"
}

// BeforeCreate hook - generates UUID before creating
func (r *NarrowcastRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID != nil {
		return nil
	}
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	r.ID = &id
	return nil
}

// NewNarrowcastRecord builds the record of a narrowcast submission
func NewNarrowcastRecord(result NarrowcastResult) *NarrowcastRecord {
	phase := NarrowcastPhaseWaiting
	if !result.HasRequestID() {
		phase = NarrowcastPhaseUnavailable
	}
	return &NarrowcastRecord{
		RequestID:    result.RequestID,
		StatusCode:   result.StatusCode,
		Phase:        string(phase),
		ResponseBody: result.Body,
	}
}

// ApplyProgress copies a polled progress into the record
func (r *NarrowcastRecord) ApplyProgress(progress NarrowcastProgress) {
	r.Phase = string(progress.Phase)
	r.SuccessCount = progress.SuccessCount
	r.FailureCount = progress.FailureCount
	r.TargetCount = progress.TargetCount
	r.FailedDescription = progress.FailedDescription
	r.ErrorCode = nil
	if progress.ErrorCode != nil {
		code := int(*progress.ErrorCode)
		r.ErrorCode = &code
	}
}

// ToResponse func
func (r *NarrowcastRecord) ToResponse() NarrowcastRecordResponse {
	return NarrowcastRecordResponse{
		ID:                r.ID,
		RequestID:         r.RequestID,
		StatusCode:        r.StatusCode,
		Phase:             r.Phase,
		SuccessCount:      r.SuccessCount,
		FailureCount:      r.FailureCount,
		TargetCount:       r.TargetCount,
		FailedDescription: r.FailedDescription,
		ErrorCode:         r.ErrorCode,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	logrus.Info("Migrate narrowcast_records ...")
	err := db.AutoMigrate(&NarrowcastRecord{})
	if err != nil {
		panic(err)
	}
}
