package output

import (
	"context"

	"golang-connect-line/internal/domain"
)

// HTTPTransport interface - Output port
// Executes one synchronous HTTP round trip. A non-2xx status is a normal
// response, not an error: only network or transport failures are returned
// as errors (*domain.TransportError). Timeouts and cancellation belong to
// the implementation and the given context.
type HTTPTransport interface {
	Execute(ctx context.Context, request domain.TransportRequest) (*domain.TransportResponse, error)
}
