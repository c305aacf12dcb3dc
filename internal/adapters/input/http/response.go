package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang-connect-line/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// Accepted response
	Accepted = Status{Code: http.StatusAccepted, Message: []string{"Accepted"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// Unauthorized response
	Unauthorized = Status{Code: http.StatusUnauthorized, Message: []string{"Sorry, We are not able to process your request. Please try again"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Data not found"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, LINE is not reachable"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	CurrentPage *int   `json:"current_page,omitempty"`
	PerPage     *int   `json:"per_page,omitempty"`
	TotalItem   *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// NarrowcastResponse struct - HTTP response DTO for a tracked narrowcast
type NarrowcastResponse struct {
	ID                *uuid.UUID `json:"id,omitempty" mapstructure:"id"`
	RequestID         string     `json:"request_id,omitempty" mapstructure:"request_id"`
	StatusCode        int        `json:"status_code" mapstructure:"status_code"`
	Phase             string     `json:"phase" mapstructure:"phase"`
	SuccessCount      *int64     `json:"success_count,omitempty" mapstructure:"success_count"`
	FailureCount      *int64     `json:"failure_count,omitempty" mapstructure:"failure_count"`
	TargetCount       *int64     `json:"target_count,omitempty" mapstructure:"target_count"`
	FailedDescription string     `json:"failed_description,omitempty" mapstructure:"failed_description"`
	ErrorCode         *int       `json:"error_code,omitempty" mapstructure:"error_code"`
	CreatedAt         *time.Time `json:"created_at,omitempty" mapstructure:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty" mapstructure:"updated_at"`
}

// AuthorityLevelResponse struct
type AuthorityLevelResponse struct {
	AuthorityLevel domain.AudienceGroupAuthorityLevel `json:"authorityLevel"`
}

func toNarrowcastResponse(record domain.NarrowcastRecordResponse) NarrowcastResponse {
	return NarrowcastResponse{
		ID:                record.ID,
		RequestID:         record.RequestID,
		StatusCode:        record.StatusCode,
		Phase:             record.Phase,
		SuccessCount:      record.SuccessCount,
		FailureCount:      record.FailureCount,
		TargetCount:       record.TargetCount,
		FailedDescription: record.FailedDescription,
		ErrorCode:         record.ErrorCode,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}

// errorStatus maps an application error to the status returned to the caller.
// Upstream LINE errors keep their status and body.
func errorStatus(err error) Status {
	var (
		statusErr    *domain.HTTPStatusError
		invalidErr   *domain.InvalidOperationError
		decodeErr    *domain.DecodeError
		transportErr *domain.TransportError
	)
	switch {
	case errors.As(err, &statusErr):
		return Status{Code: statusErr.StatusCode, Message: []string{statusErr.Body}}
	case errors.Is(err, domain.ErrNotFound):
		return NotFound
	case errors.As(err, &invalidErr):
		return Status{Code: http.StatusBadRequest, Message: []string{invalidErr.Error()}}
	case errors.As(err, &decodeErr):
		return Status{Code: http.StatusBadGateway, Message: []string{decodeErr.Error()}}
	case errors.As(err, &transportErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return Status{Code: http.StatusGatewayTimeout, Message: []string{transportErr.Error()}}
		}
		return Status{Code: http.StatusBadGateway, Message: []string{transportErr.Error()}}
	default:
		return Status{Code: http.StatusInternalServerError, Message: []string{err.Error()}}
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	return c.Status(status.Code).JSON(ResponseBody{Status: status})
}

func badRequest(c *fiber.Ctx, err error) error {
	msg := ResponseBody{
		Status: BadRequest,
	}
	if err != nil {
		msg.Status.Message = []string{
			err.Error(),
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}
