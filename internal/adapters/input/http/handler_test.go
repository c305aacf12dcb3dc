package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-connect-line/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMessagingService struct {
	pushErr        error
	narrowcast     *domain.NarrowcastRecordResponse
	narrowcastErr  error
	refreshErr     error
	lastPush       *domain.PushMessageRequest
	lastNarrowcast *domain.NarrowcastRequest
	lastCondition  *domain.QueryNarrowcastRequest
}

func (m *mockMessagingService) PushMessage(_ context.Context, request domain.PushMessageRequest) error {
	m.lastPush = &request
	return m.pushErr
}

func (m *mockMessagingService) ReplyMessage(context.Context, domain.ReplyMessageRequest) error {
	return nil
}

func (m *mockMessagingService) Multicast(context.Context, domain.MulticastRequest) error { return nil }

func (m *mockMessagingService) Broadcast(context.Context, domain.BroadcastRequest) error { return nil }

func (m *mockMessagingService) Narrowcast(_ context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastRecordResponse, error) {
	m.lastNarrowcast = &request
	return m.narrowcast, m.narrowcastErr
}

func (m *mockMessagingService) RefreshNarrowcast(_ context.Context, id uuid.UUID) (*domain.NarrowcastRecordResponse, error) {
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return &domain.NarrowcastRecordResponse{ID: &id, Phase: "sending"}, nil
}

func (m *mockMessagingService) GetNarrowcasts(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error) {
	m.lastCondition = &condition
	page, perPage, total := 1, 100, int64(1)
	return &domain.NarrowcastRecordListResponse{
		Records:     []domain.NarrowcastRecordResponse{{RequestID: "req-1", Phase: "waiting"}},
		CurrentPage: &page,
		PerPage:     &perPage,
		TotalItem:   &total,
	}, nil
}

type mockAudienceService struct {
	lastQuery *domain.GetAudienceGroupsQuery
	calls     []string
}

func (m *mockAudienceService) CreateUploadAudienceGroup(context.Context, domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 1}, nil
}

func (m *mockAudienceService) UpdateUploadAudienceGroup(context.Context, domain.UpdateUploadAudienceGroupRequest) error {
	return nil
}

func (m *mockAudienceService) CreateClickAudienceGroup(context.Context, domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 2}, nil
}

func (m *mockAudienceService) CreateImpAudienceGroup(context.Context, domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 3}, nil
}

func (m *mockAudienceService) SetAudienceGroupDescription(context.Context, int64, string) error {
	return nil
}

func (m *mockAudienceService) DeleteAudienceGroup(context.Context, int64) error {
	m.calls = append(m.calls, "DeleteAudienceGroup")
	return nil
}

func (m *mockAudienceService) GetAudienceGroup(_ context.Context, id int64) (*domain.AudienceGroupDetail, error) {
	m.calls = append(m.calls, "GetAudienceGroup")
	return &domain.AudienceGroupDetail{AudienceGroup: domain.AudienceGroup{AudienceGroupID: id}}, nil
}

func (m *mockAudienceService) GetAudienceGroups(_ context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error) {
	m.lastQuery = &query
	return &domain.GetAudienceGroupsResponse{AudienceGroups: []domain.AudienceGroup{}, Page: 1, Size: 20}, nil
}

func (m *mockAudienceService) GetAuthorityLevel(context.Context) (domain.AudienceGroupAuthorityLevel, error) {
	m.calls = append(m.calls, "GetAuthorityLevel")
	return domain.AudienceGroupAuthorityLevelPrivate, nil
}

func (m *mockAudienceService) ChangeAuthorityLevel(context.Context, domain.AudienceGroupAuthorityLevel) error {
	return nil
}

type mockRichMenuService struct {
	lastUserID     string
	lastRichMenuID string
}

func (m *mockRichMenuService) GetRichMenus(context.Context) (*domain.RichMenuOverview, error) {
	return &domain.RichMenuOverview{RichMenus: []domain.RichMenuResponse{}}, nil
}

func (m *mockRichMenuService) SetDefaultRichMenu(_ context.Context, richMenuID string) error {
	m.lastRichMenuID = richMenuID
	return nil
}

func (m *mockRichMenuService) ClearDefaultRichMenu(context.Context) error { return nil }

func (m *mockRichMenuService) LinkRichMenu(_ context.Context, userID, richMenuID string) error {
	m.lastUserID, m.lastRichMenuID = userID, richMenuID
	return nil
}

func (m *mockRichMenuService) UnlinkRichMenu(_ context.Context, userID string) error {
	m.lastUserID = userID
	return nil
}

type testServer struct {
	app       *fiber.App
	messaging *mockMessagingService
	audience  *mockAudienceService
	richMenu  *mockRichMenuService
}

func newTestServer() *testServer {
	s := &testServer{
		app:       fiber.New(),
		messaging: &mockMessagingService{},
		audience:  &mockAudienceService{},
		richMenu:  &mockRichMenuService{},
	}
	hdl := New(s.messaging, s.audience, s.richMenu, nil)
	s.app.Get("/health", hdl.HealthCheck)
	Routes(s.app.Group("/v1/api"), hdl)
	return s
}

func (s *testServer) do(t *testing.T, method, target, body string) (int, ResponseBody) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ResponseBody
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, Success.Code, body.Status.Code)
}

func TestPushMessage(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodPost, "/v1/api/messages/push",
		`{"to":"U123","messages":[{"type":"text","text":"hello"}]}`)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, s.messaging.lastPush)
	assert.Equal(t, "U123", s.messaging.lastPush.To)
	require.Len(t, s.messaging.lastPush.Messages, 1)
	assert.Equal(t, "text", s.messaging.lastPush.Messages[0].GetType())
}

func TestPushMessageValidation(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, http.MethodPost, "/v1/api/messages/push", `{"to":"U123","messages":[]}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Nil(t, s.messaging.lastPush)
	require.NotEmpty(t, body.Status.Message)
	assert.Contains(t, body.Status.Message[0], "messages")
}

func TestUpstreamErrorKeepsStatusAndBody(t *testing.T) {
	s := newTestServer()
	s.messaging.pushErr = &domain.HTTPStatusError{StatusCode: http.StatusTooManyRequests, Body: `{"message":"You have reached your monthly limit."}`}

	status, body := s.do(t, http.MethodPost, "/v1/api/messages/push",
		`{"to":"U123","messages":[{"type":"text","text":"hello"}]}`)

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, []string{`{"message":"You have reached your monthly limit."}`}, body.Status.Message)
}

func TestNarrowcastAccepted(t *testing.T) {
	s := newTestServer()
	id := uuid.New()
	s.messaging.narrowcast = &domain.NarrowcastRecordResponse{ID: &id, RequestID: "req-1", StatusCode: 202, Phase: "waiting"}

	status, body := s.do(t, http.MethodPost, "/v1/api/messages/narrowcast",
		`{"messages":[{"type":"text","text":"hi"}],"recipient":{"type":"operator","and":[{"type":"audience","audienceGroupId":5},{"type":"operator","not":{"type":"audience","audienceGroupId":6}}]}}`)

	assert.Equal(t, http.StatusAccepted, status)
	require.NotNil(t, s.messaging.lastNarrowcast)
	assert.NotNil(t, s.messaging.lastNarrowcast.Recipient)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "req-1", data["request_id"])
}

func TestNarrowcastRejectedUpstreamReturnsRecord(t *testing.T) {
	s := newTestServer()
	s.messaging.narrowcast = &domain.NarrowcastRecordResponse{RequestID: "req-2", StatusCode: 400, Phase: "failed"}
	s.messaging.narrowcastErr = &domain.HTTPStatusError{StatusCode: 400, Body: `{"message":"bad"}`}

	status, body := s.do(t, http.MethodPost, "/v1/api/messages/narrowcast",
		`{"messages":[{"type":"text","text":"hi"}]}`)

	assert.Equal(t, http.StatusBadRequest, status)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "failed", data["phase"])
}

func TestNarrowcastMalformedRecipient(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodPost, "/v1/api/messages/narrowcast",
		`{"messages":[{"type":"text","text":"hi"}],"recipient":{"type":"audience"}}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Nil(t, s.messaging.lastNarrowcast)
}

func TestGetNarrowcast(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodGet, "/v1/api/narrowcasts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/v1/api/narrowcasts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusOK, status)

	s.messaging.refreshErr = domain.ErrNotFound
	status, _ = s.do(t, http.MethodGet, "/v1/api/narrowcasts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)

	s.messaging.refreshErr = &domain.InvalidOperationError{Operation: "refreshNarrowcast", Reason: "no request id", Err: domain.ErrRequestIDUnavailable}
	status, _ = s.do(t, http.MethodGet, "/v1/api/narrowcasts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetNarrowcastsQuery(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, http.MethodGet, "/v1/api/narrowcasts?phase=waiting&page=2&limit=10&order_by=phase&asc=false", "")

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, s.messaging.lastCondition)
	assert.Equal(t, "waiting", *s.messaging.lastCondition.Phase)
	assert.Equal(t, 2, *s.messaging.lastCondition.Page)
	assert.Equal(t, 10, *s.messaging.lastCondition.Limit)
	assert.False(t, *s.messaging.lastCondition.Asc)
	assert.Equal(t, int64(1), *body.TotalItem)

	status, _ = s.do(t, http.MethodGet, "/v1/api/narrowcasts?phase=unknown", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetNarrowcastsRejectsHugePage(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodGet, "/v1/api/narrowcasts?page=4611686018427387904&limit=4", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Nil(t, s.messaging.lastCondition)
}

func TestGetAudienceGroupsQuery(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, http.MethodGet, "/v1/api/audience-groups?page=1&status=READY&size=20", "")

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, s.audience.lastQuery)
	assert.Equal(t, "page=1&status=READY&size=20", s.audience.lastQuery.Encode())
	assert.Equal(t, 20, *body.PerPage)

	status, _ = s.do(t, http.MethodGet, "/v1/api/audience-groups?status=DONE", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAudienceGroupRoutes(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, http.MethodGet, "/v1/api/audience-groups/authority-level", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"authorityLevel": "PRIVATE"}, body.Data)

	status, _ = s.do(t, http.MethodGet, "/v1/api/audience-groups/42", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, "/v1/api/audience-groups/0", "")
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, []string{"GetAuthorityLevel", "GetAudienceGroup"}, s.audience.calls)
}

func TestChangeAuthorityLevelValidation(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodPut, "/v1/api/audience-groups/authority-level", `{"authorityLevel":"SECRET"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPut, "/v1/api/audience-groups/authority-level", `{"authorityLevel":"PUBLIC"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestRichMenuRoutes(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodPost, "/v1/api/richmenus/rm-1/users/U1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "U1", s.richMenu.lastUserID)
	assert.Equal(t, "rm-1", s.richMenu.lastRichMenuID)

	status, _ = s.do(t, http.MethodPost, "/v1/api/richmenus/rm-2/default", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "rm-2", s.richMenu.lastRichMenuID)

	status, _ = s.do(t, http.MethodDelete, "/v1/api/richmenus/users/U9", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "U9", s.richMenu.lastUserID)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"upstream", &domain.HTTPStatusError{StatusCode: 403, Body: "{}"}, 403},
		{"not found", domain.ErrNotFound, 404},
		{"invalid operation", &domain.InvalidOperationError{Operation: "leave", Reason: "user"}, 400},
		{"decode", &domain.DecodeError{Target: "AudienceGroup"}, 502},
		{"transport", &domain.TransportError{Method: "GET", URL: "x", Err: io.ErrUnexpectedEOF}, 502},
		{"timeout", &domain.TransportError{Method: "GET", URL: "x", Err: context.DeadlineExceeded}, 504},
		{"other", io.EOF, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errorStatus(tt.err).Code)
		})
	}
}
