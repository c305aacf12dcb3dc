package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang-connect-line/internal/domain"
	"golang-connect-line/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// maxResponseBytes bounds a response body; a longer body is a TransportError
const maxResponseBytes = 64 << 20

// HTTPTransportAdapter struct - Output adapter executing requests with net/http
type HTTPTransportAdapter struct {
	httpClient   *http.Client
	maxBodyBytes int64
}

// NewHTTPTransportAdapter func - timeoutSeconds <= 0 selects 30 seconds
func NewHTTPTransportAdapter(timeoutSeconds int) *HTTPTransportAdapter {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeoutSeconds <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("HTTP transport initialized with timeout: %v", timeout)

	return NewHTTPTransportAdapterWithClient(httpClient)
}

// NewHTTPTransportAdapterWithClient func - wraps an existing client
func NewHTTPTransportAdapterWithClient(httpClient *http.Client) *HTTPTransportAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPTransportAdapter{httpClient: httpClient, maxBodyBytes: maxResponseBytes}
}

// Execute performs one round trip. Any status code is a response; only
// failures to obtain one are returned as *domain.TransportError.
func (a *HTTPTransportAdapter) Execute(ctx context.Context, request domain.TransportRequest) (*domain.TransportResponse, error) {
	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, request.URL, body)
	if err != nil {
		return nil, &domain.TransportError{Method: request.Method, URL: request.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, values := range request.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		metrics.IncLineTransportErrors(request.Operation)
		return nil, &domain.TransportError{Method: request.Method, URL: request.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBodyBytes+1))
	if err != nil {
		metrics.IncLineTransportErrors(request.Operation)
		return nil, &domain.TransportError{Method: request.Method, URL: request.URL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(data)) > a.maxBodyBytes {
		metrics.IncLineTransportErrors(request.Operation)
		return nil, &domain.TransportError{Method: request.Method, URL: request.URL, Err: fmt.Errorf("response body exceeds %d bytes", a.maxBodyBytes)}
	}

	metrics.ObserveLineRequest(request.Operation, resp.StatusCode, time.Since(start).Seconds())
	logrus.Debugf("%s %s -> %d (%d bytes)", request.Method, request.URL, resp.StatusCode, len(data))

	return &domain.TransportResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
