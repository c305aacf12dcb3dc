package application

import (
	"context"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

var _ output.LineClient = (*MockLineClient)(nil)

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc              func(replyToken string, messages ...domain.Message) error
	PushMessageFunc               func(to string, messages ...domain.Message) error
	NarrowcastFunc                func(request domain.NarrowcastRequest) (*domain.NarrowcastResult, error)
	GetNarrowcastProgressFunc     func(requestID string) (*domain.NarrowcastProgress, error)
	GetProfileWithEventSourceFunc func(source domain.LineSource) (*domain.UserProfile, error)
	LeaveWithEventSourceFunc      func(source domain.LineSource) error
	GetRichMenuListFunc           func() ([]domain.RichMenuResponse, error)
	GetDefaultRichMenuIDFunc      func() (string, error)
	GetAudienceGroupsFunc         func(query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error)

	// Captured values for assertions
	LastReplyToken    string
	LastReplyMessages []domain.Message
	LastPushTo        string
	LastPushMessages  []domain.Message
	LastProgressID    string
	LastLeaveSource   *domain.LineSource
	LastQuery         *domain.GetAudienceGroupsQuery

	// Track every call by operation name
	Calls []string
}

func (m *MockLineClient) ReplyMessage(_ context.Context, replyToken string, messages ...domain.Message) error {
	m.Calls = append(m.Calls, "ReplyMessage")
	m.LastReplyToken = replyToken
	m.LastReplyMessages = messages
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(replyToken, messages...)
	}
	return nil
}

func (m *MockLineClient) PushMessage(_ context.Context, to string, messages ...domain.Message) error {
	m.Calls = append(m.Calls, "PushMessage")
	m.LastPushTo = to
	m.LastPushMessages = messages
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(to, messages...)
	}
	return nil
}

func (m *MockLineClient) Multicast(_ context.Context, _ []string, _ ...domain.Message) error {
	m.Calls = append(m.Calls, "Multicast")
	return nil
}

func (m *MockLineClient) Broadcast(_ context.Context, _ ...domain.Message) error {
	m.Calls = append(m.Calls, "Broadcast")
	return nil
}

func (m *MockLineClient) Narrowcast(_ context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastResult, error) {
	m.Calls = append(m.Calls, "Narrowcast")
	if m.NarrowcastFunc != nil {
		return m.NarrowcastFunc(request)
	}
	return &domain.NarrowcastResult{RequestID: "req-1", StatusCode: 202, Body: "{}"}, nil
}

func (m *MockLineClient) GetNarrowcastProgress(_ context.Context, requestID string) (*domain.NarrowcastProgress, error) {
	m.Calls = append(m.Calls, "GetNarrowcastProgress")
	m.LastProgressID = requestID
	if m.GetNarrowcastProgressFunc != nil {
		return m.GetNarrowcastProgressFunc(requestID)
	}
	return &domain.NarrowcastProgress{Phase: domain.NarrowcastPhaseWaiting}, nil
}

func (m *MockLineClient) GetMessageContent(_ context.Context, _ string) (*domain.Blob, error) {
	return &domain.Blob{}, nil
}

func (m *MockLineClient) GetProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	return &domain.UserProfile{UserID: userID}, nil
}

func (m *MockLineClient) GetGroupMemberProfile(_ context.Context, _, userID string) (*domain.UserProfile, error) {
	return &domain.UserProfile{UserID: userID}, nil
}

func (m *MockLineClient) GetRoomMemberProfile(_ context.Context, _, userID string) (*domain.UserProfile, error) {
	return &domain.UserProfile{UserID: userID}, nil
}

func (m *MockLineClient) GetProfileWithEventSource(_ context.Context, source domain.LineSource) (*domain.UserProfile, error) {
	m.Calls = append(m.Calls, "GetProfileWithEventSource")
	if m.GetProfileWithEventSourceFunc != nil {
		return m.GetProfileWithEventSourceFunc(source)
	}
	return &domain.UserProfile{UserID: source.UserID}, nil
}

func (m *MockLineClient) GetGroupMemberIDs(_ context.Context, _, _ string) (*domain.MemberIDsResponse, error) {
	return &domain.MemberIDsResponse{MemberIDs: []string{}}, nil
}

func (m *MockLineClient) GetRoomMemberIDs(_ context.Context, _, _ string) (*domain.MemberIDsResponse, error) {
	return &domain.MemberIDsResponse{MemberIDs: []string{}}, nil
}

func (m *MockLineClient) LeaveGroup(_ context.Context, _ string) error { return nil }

func (m *MockLineClient) LeaveRoom(_ context.Context, _ string) error { return nil }

func (m *MockLineClient) LeaveWithEventSource(_ context.Context, source domain.LineSource) error {
	m.Calls = append(m.Calls, "LeaveWithEventSource")
	m.LastLeaveSource = &source
	if m.LeaveWithEventSourceFunc != nil {
		return m.LeaveWithEventSourceFunc(source)
	}
	return nil
}

func (m *MockLineClient) GetRichMenu(_ context.Context, richMenuID string) (*domain.RichMenuResponse, error) {
	return &domain.RichMenuResponse{RichMenuID: richMenuID}, nil
}

func (m *MockLineClient) CreateRichMenu(_ context.Context, _ domain.RichMenu) (string, error) {
	return "rm-new", nil
}

func (m *MockLineClient) DeleteRichMenu(_ context.Context, _ string) error { return nil }

func (m *MockLineClient) GetRichMenuList(_ context.Context) ([]domain.RichMenuResponse, error) {
	m.Calls = append(m.Calls, "GetRichMenuList")
	if m.GetRichMenuListFunc != nil {
		return m.GetRichMenuListFunc()
	}
	return []domain.RichMenuResponse{}, nil
}

func (m *MockLineClient) GetRichMenuIDOfUser(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *MockLineClient) LinkRichMenuToUser(_ context.Context, _, _ string) error {
	m.Calls = append(m.Calls, "LinkRichMenuToUser")
	return nil
}

func (m *MockLineClient) UnlinkRichMenuFromUser(_ context.Context, _ string) error {
	m.Calls = append(m.Calls, "UnlinkRichMenuFromUser")
	return nil
}

func (m *MockLineClient) GetRichMenuImage(_ context.Context, _ string) (*domain.Blob, error) {
	return &domain.Blob{}, nil
}

func (m *MockLineClient) SetRichMenuImage(_ context.Context, _ string, _ []byte, _ string) error {
	return nil
}

func (m *MockLineClient) SetDefaultRichMenu(_ context.Context, _ string) error {
	m.Calls = append(m.Calls, "SetDefaultRichMenu")
	return nil
}

func (m *MockLineClient) GetDefaultRichMenuID(_ context.Context) (string, error) {
	m.Calls = append(m.Calls, "GetDefaultRichMenuID")
	if m.GetDefaultRichMenuIDFunc != nil {
		return m.GetDefaultRichMenuIDFunc()
	}
	return "", nil
}

func (m *MockLineClient) DeleteDefaultRichMenu(_ context.Context) error {
	m.Calls = append(m.Calls, "DeleteDefaultRichMenu")
	return nil
}

func (m *MockLineClient) CreateUploadAudienceGroup(_ context.Context, request domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 1, Type: domain.AudienceGroupTypeUpload, Description: request.Description}, nil
}

func (m *MockLineClient) UpdateUploadAudienceGroup(_ context.Context, _ domain.UpdateUploadAudienceGroupRequest) error {
	return nil
}

func (m *MockLineClient) CreateClickAudienceGroup(_ context.Context, request domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 2, Type: domain.AudienceGroupTypeClick, Description: request.Description}, nil
}

func (m *MockLineClient) CreateImpAudienceGroup(_ context.Context, request domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	return &domain.CreateAudienceGroupResponse{AudienceGroupID: 3, Type: domain.AudienceGroupTypeImp, Description: request.Description}, nil
}

func (m *MockLineClient) SetAudienceGroupDescription(_ context.Context, _ int64, _ string) error {
	return nil
}

func (m *MockLineClient) DeleteAudienceGroup(_ context.Context, _ int64) error { return nil }

func (m *MockLineClient) GetAudienceGroup(_ context.Context, audienceGroupID int64) (*domain.AudienceGroupDetail, error) {
	return &domain.AudienceGroupDetail{AudienceGroup: domain.AudienceGroup{AudienceGroupID: audienceGroupID}}, nil
}

func (m *MockLineClient) GetAudienceGroups(_ context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error) {
	m.Calls = append(m.Calls, "GetAudienceGroups")
	m.LastQuery = &query
	if m.GetAudienceGroupsFunc != nil {
		return m.GetAudienceGroupsFunc(query)
	}
	return &domain.GetAudienceGroupsResponse{AudienceGroups: []domain.AudienceGroup{}}, nil
}

func (m *MockLineClient) GetAudienceGroupAuthorityLevel(_ context.Context) (domain.AudienceGroupAuthorityLevel, error) {
	return domain.AudienceGroupAuthorityLevelPublic, nil
}

func (m *MockLineClient) ChangeAudienceGroupAuthorityLevel(_ context.Context, _ domain.AudienceGroupAuthorityLevel) error {
	return nil
}

// lastReplyText returns the text of the first captured reply message
func (m *MockLineClient) lastReplyText() string {
	if len(m.LastReplyMessages) == 0 {
		return ""
	}
	if text, ok := m.LastReplyMessages[0].(*messaging_api.TextMessage); ok {
		return text.Text
	}
	return ""
}

var _ output.NarrowcastRepository = (*MockNarrowcastRepository)(nil)

// MockNarrowcastRepository implements output.NarrowcastRepository for testing
type MockNarrowcastRepository struct {
	CreateRecordFunc func(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error)
	GetRecordFunc    func(id uuid.UUID) (*domain.NarrowcastRecord, error)

	// Captured values for assertions
	LastCreated   *domain.NarrowcastRecord
	LastUpdated   *domain.NarrowcastRecord
	LastCondition *domain.QueryNarrowcastRequest
}

func (m *MockNarrowcastRepository) CreateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	m.LastCreated = record
	if m.CreateRecordFunc != nil {
		return m.CreateRecordFunc(record)
	}
	response := record.ToResponse()
	return &response, nil
}

func (m *MockNarrowcastRepository) UpdateRecord(record *domain.NarrowcastRecord) (*domain.NarrowcastRecordResponse, error) {
	m.LastUpdated = record
	response := record.ToResponse()
	return &response, nil
}

func (m *MockNarrowcastRepository) GetRecord(id uuid.UUID) (*domain.NarrowcastRecord, error) {
	if m.GetRecordFunc != nil {
		return m.GetRecordFunc(id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockNarrowcastRepository) ListRecords(condition domain.QueryNarrowcastRequest) (*domain.NarrowcastRecordListResponse, error) {
	m.LastCondition = &condition
	return &domain.NarrowcastRecordListResponse{Records: []domain.NarrowcastRecordResponse{}}, nil
}
