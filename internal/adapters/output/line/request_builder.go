package line

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang-connect-line/internal/domain"
	"golang-connect-line/pkg/validator"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultBaseURL is the versioned root of the Messaging API
const DefaultBaseURL = "https://api.line.me/v2/bot/"

// Operation names, used in errors, logs and metrics
const (
	OpPushMessage                       = "pushMessage"
	OpReplyMessage                      = "replyMessage"
	OpMulticast                         = "multicast"
	OpBroadcast                         = "broadcast"
	OpNarrowcast                        = "narrowcast"
	OpGetNarrowcastProgress             = "getNarrowcastProgress"
	OpGetMessageContent                 = "getMessageContent"
	OpGetProfile                        = "getProfile"
	OpGetGroupMemberProfile             = "getGroupMemberProfile"
	OpGetRoomMemberProfile              = "getRoomMemberProfile"
	OpGetProfileWithEventSource         = "getProfileWithEventSource"
	OpGetGroupMemberIDs                 = "getGroupMemberIds"
	OpGetRoomMemberIDs                  = "getRoomMemberIds"
	OpLeaveGroup                        = "leaveGroup"
	OpLeaveRoom                         = "leaveRoom"
	OpLeaveWithEventSource              = "leaveWithEventSource"
	OpGetRichMenu                       = "getRichMenu"
	OpCreateRichMenu                    = "createRichMenu"
	OpDeleteRichMenu                    = "deleteRichMenu"
	OpGetRichMenuList                   = "getRichMenuList"
	OpGetRichMenuIDOfUser               = "getRichMenuIdOfUser"
	OpLinkRichMenuToUser                = "linkRichMenuToUser"
	OpUnlinkRichMenuFromUser            = "unlinkRichMenuFromUser"
	OpGetRichMenuImage                  = "getRichMenuImage"
	OpSetRichMenuImage                  = "setRichMenuImage"
	OpSetDefaultRichMenu                = "setDefaultRichMenu"
	OpGetDefaultRichMenuID              = "getDefaultRichMenuId"
	OpDeleteDefaultRichMenu             = "deleteDefaultRichMenu"
	OpCreateUploadAudienceGroup         = "createUploadAudienceGroup"
	OpUpdateUploadAudienceGroup         = "updateUploadAudienceGroup"
	OpCreateClickAudienceGroup          = "createClickAudienceGroup"
	OpCreateImpAudienceGroup            = "createImpAudienceGroup"
	OpSetAudienceGroupDescription       = "setAudienceGroupDescription"
	OpDeleteAudienceGroup               = "deleteAudienceGroup"
	OpGetAudienceGroup                  = "getAudienceGroup"
	OpGetAudienceGroups                 = "getAudienceGroups"
	OpGetAudienceGroupAuthorityLevel    = "getAudienceGroupAuthorityLevel"
	OpChangeAudienceGroupAuthorityLevel = "changeAudienceGroupAuthorityLevel"
)

const contentTypeJSON = "application/json"

// RequestBuilder struct - maps Messaging API operations to transport requests.
// It never performs I/O.
type RequestBuilder struct {
	baseURL      string
	channelToken string
	validator    validator.Validator
}

// NewRequestBuilder func - an empty baseURL selects DefaultBaseURL
func NewRequestBuilder(baseURL, channelToken string) *RequestBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &RequestBuilder{
		baseURL:      baseURL,
		channelToken: channelToken,
		validator:    validator.New(),
	}
}

// BaseURL returns the root every path is joined to
func (b *RequestBuilder) BaseURL() string {
	return b.baseURL
}

// PushMessage - POST message/push
func (b *RequestBuilder) PushMessage(to string, messages ...domain.Message) (*domain.TransportRequest, error) {
	if err := requireID(OpPushMessage, "to", to); err != nil {
		return nil, err
	}
	body := domain.PushMessageRequest{To: to, Messages: domain.Messages(messages)}
	return b.jsonRequest(OpPushMessage, http.MethodPost, "message/push", body)
}

// ReplyMessage - POST message/reply
func (b *RequestBuilder) ReplyMessage(replyToken string, messages ...domain.Message) (*domain.TransportRequest, error) {
	if err := requireID(OpReplyMessage, "replyToken", replyToken); err != nil {
		return nil, err
	}
	body := domain.ReplyMessageRequest{ReplyToken: replyToken, Messages: domain.Messages(messages)}
	return b.jsonRequest(OpReplyMessage, http.MethodPost, "message/reply", body)
}

// Multicast - POST message/multicast
func (b *RequestBuilder) Multicast(to []string, messages ...domain.Message) (*domain.TransportRequest, error) {
	body := domain.MulticastRequest{To: to, Messages: domain.Messages(messages)}
	return b.jsonRequest(OpMulticast, http.MethodPost, "message/multicast", body)
}

// Broadcast - POST message/broadcast
func (b *RequestBuilder) Broadcast(messages ...domain.Message) (*domain.TransportRequest, error) {
	body := domain.BroadcastRequest{Messages: domain.Messages(messages)}
	return b.jsonRequest(OpBroadcast, http.MethodPost, "message/broadcast", body)
}

// Narrowcast - POST message/narrowcast
func (b *RequestBuilder) Narrowcast(request domain.NarrowcastRequest) (*domain.TransportRequest, error) {
	if err := request.Validate(); err != nil {
		return nil, &domain.InvalidOperationError{Operation: OpNarrowcast, Reason: "invalid filter", Err: err}
	}
	return b.jsonRequest(OpNarrowcast, http.MethodPost, "message/narrowcast", request)
}

// NarrowcastProgress - GET message/progress/narrowcast?requestId=<id>
func (b *RequestBuilder) NarrowcastProgress(requestID string) (*domain.TransportRequest, error) {
	if strings.TrimSpace(requestID) == "" {
		return nil, &domain.InvalidOperationError{
			Operation: OpGetNarrowcastProgress,
			Reason:    "requestId is required",
			Err:       domain.ErrRequestIDUnavailable,
		}
	}
	return b.request(OpGetNarrowcastProgress, http.MethodGet, "message/progress/narrowcast?requestId="+url.QueryEscape(requestID)), nil
}

// MessageContent - GET message/{id}/content
func (b *RequestBuilder) MessageContent(messageID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetMessageContent, "messageId", messageID); err != nil {
		return nil, err
	}
	return b.request(OpGetMessageContent, http.MethodGet, "message/"+url.PathEscape(messageID)+"/content"), nil
}

// Profile - GET profile/{userId}
func (b *RequestBuilder) Profile(userID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetProfile, "userId", userID); err != nil {
		return nil, err
	}
	return b.request(OpGetProfile, http.MethodGet, "profile/"+url.PathEscape(userID)), nil
}

// GroupMemberProfile - GET group/{groupId}/member/{userId}
func (b *RequestBuilder) GroupMemberProfile(groupID, userID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetGroupMemberProfile, "groupId", groupID); err != nil {
		return nil, err
	}
	if err := requireID(OpGetGroupMemberProfile, "userId", userID); err != nil {
		return nil, err
	}
	return b.request(OpGetGroupMemberProfile, http.MethodGet, "group/"+url.PathEscape(groupID)+"/member/"+url.PathEscape(userID)), nil
}

// RoomMemberProfile - GET room/{roomId}/member/{userId}
func (b *RequestBuilder) RoomMemberProfile(roomID, userID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetRoomMemberProfile, "roomId", roomID); err != nil {
		return nil, err
	}
	if err := requireID(OpGetRoomMemberProfile, "userId", userID); err != nil {
		return nil, err
	}
	return b.request(OpGetRoomMemberProfile, http.MethodGet, "room/"+url.PathEscape(roomID)+"/member/"+url.PathEscape(userID)), nil
}

// ProfileWithEventSource - picks the profile endpoint matching the source type
func (b *RequestBuilder) ProfileWithEventSource(source domain.LineSource) (*domain.TransportRequest, error) {
	var (
		request *domain.TransportRequest
		err     error
	)
	switch source.Type {
	case domain.LineSourceTypeGroup:
		request, err = b.GroupMemberProfile(source.GroupID, source.UserID)
	case domain.LineSourceTypeRoom:
		request, err = b.RoomMemberProfile(source.RoomID, source.UserID)
	default:
		request, err = b.Profile(source.UserID)
	}
	if err != nil {
		return nil, err
	}
	request.Operation = OpGetProfileWithEventSource
	return request, nil
}

// GroupMemberIDs - GET group/{groupId}/members/ids
func (b *RequestBuilder) GroupMemberIDs(groupID, start string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetGroupMemberIDs, "groupId", groupID); err != nil {
		return nil, err
	}
	return b.request(OpGetGroupMemberIDs, http.MethodGet, withStart("group/"+url.PathEscape(groupID)+"/members/ids", start)), nil
}

// RoomMemberIDs - GET room/{roomId}/members/ids
func (b *RequestBuilder) RoomMemberIDs(roomID, start string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetRoomMemberIDs, "roomId", roomID); err != nil {
		return nil, err
	}
	return b.request(OpGetRoomMemberIDs, http.MethodGet, withStart("room/"+url.PathEscape(roomID)+"/members/ids", start)), nil
}

// LeaveGroup - POST group/{groupId}/leave
func (b *RequestBuilder) LeaveGroup(groupID string) (*domain.TransportRequest, error) {
	if err := requireID(OpLeaveGroup, "groupId", groupID); err != nil {
		return nil, err
	}
	return b.request(OpLeaveGroup, http.MethodPost, "group/"+url.PathEscape(groupID)+"/leave"), nil
}

// LeaveRoom - POST room/{roomId}/leave
func (b *RequestBuilder) LeaveRoom(roomID string) (*domain.TransportRequest, error) {
	if err := requireID(OpLeaveRoom, "roomId", roomID); err != nil {
		return nil, err
	}
	return b.request(OpLeaveRoom, http.MethodPost, "room/"+url.PathEscape(roomID)+"/leave"), nil
}

// LeaveWithEventSource - group or room leave; a one-to-one chat cannot be left
func (b *RequestBuilder) LeaveWithEventSource(source domain.LineSource) (*domain.TransportRequest, error) {
	var (
		request *domain.TransportRequest
		err     error
	)
	switch source.Type {
	case domain.LineSourceTypeGroup:
		request, err = b.LeaveGroup(source.GroupID)
	case domain.LineSourceTypeRoom:
		request, err = b.LeaveRoom(source.RoomID)
	default:
		return nil, &domain.InvalidOperationError{
			Operation: OpLeaveWithEventSource,
			Reason:    fmt.Sprintf("event source type %q has no leave endpoint", source.Type),
		}
	}
	if err != nil {
		return nil, err
	}
	request.Operation = OpLeaveWithEventSource
	return request, nil
}

// RichMenu - GET richmenu/{richMenuId}
func (b *RequestBuilder) RichMenu(richMenuID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetRichMenu, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	return b.request(OpGetRichMenu, http.MethodGet, "richmenu/"+url.PathEscape(richMenuID)), nil
}

// CreateRichMenu - POST richmenu
func (b *RequestBuilder) CreateRichMenu(richMenu domain.RichMenu) (*domain.TransportRequest, error) {
	return b.jsonRequest(OpCreateRichMenu, http.MethodPost, "richmenu", richMenu)
}

// DeleteRichMenu - DELETE richmenu/{richMenuId}
func (b *RequestBuilder) DeleteRichMenu(richMenuID string) (*domain.TransportRequest, error) {
	if err := requireID(OpDeleteRichMenu, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	return b.request(OpDeleteRichMenu, http.MethodDelete, "richmenu/"+url.PathEscape(richMenuID)), nil
}

// RichMenuList - GET richmenu/list
func (b *RequestBuilder) RichMenuList() *domain.TransportRequest {
	return b.request(OpGetRichMenuList, http.MethodGet, "richmenu/list")
}

// UserRichMenu - GET user/{userId}/richmenu
func (b *RequestBuilder) UserRichMenu(userID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetRichMenuIDOfUser, "userId", userID); err != nil {
		return nil, err
	}
	return b.request(OpGetRichMenuIDOfUser, http.MethodGet, "user/"+url.PathEscape(userID)+"/richmenu"), nil
}

// LinkRichMenu - POST user/{userId}/richmenu/{richMenuId}
func (b *RequestBuilder) LinkRichMenu(userID, richMenuID string) (*domain.TransportRequest, error) {
	if err := requireID(OpLinkRichMenuToUser, "userId", userID); err != nil {
		return nil, err
	}
	if err := requireID(OpLinkRichMenuToUser, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	return b.request(OpLinkRichMenuToUser, http.MethodPost, "user/"+url.PathEscape(userID)+"/richmenu/"+url.PathEscape(richMenuID)), nil
}

// UnlinkRichMenu - DELETE user/{userId}/richmenu
func (b *RequestBuilder) UnlinkRichMenu(userID string) (*domain.TransportRequest, error) {
	if err := requireID(OpUnlinkRichMenuFromUser, "userId", userID); err != nil {
		return nil, err
	}
	return b.request(OpUnlinkRichMenuFromUser, http.MethodDelete, "user/"+url.PathEscape(userID)+"/richmenu"), nil
}

// RichMenuImage - GET richmenu/{richMenuId}/content
func (b *RequestBuilder) RichMenuImage(richMenuID string) (*domain.TransportRequest, error) {
	if err := requireID(OpGetRichMenuImage, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	return b.request(OpGetRichMenuImage, http.MethodGet, "richmenu/"+url.PathEscape(richMenuID)+"/content"), nil
}

// SetRichMenuImage - POST richmenu/{richMenuId}/content with a binary body.
// An empty contentType is detected from the data.
func (b *RequestBuilder) SetRichMenuImage(richMenuID string, data []byte, contentType string) (*domain.TransportRequest, error) {
	if err := requireID(OpSetRichMenuImage, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &domain.InvalidOperationError{Operation: OpSetRichMenuImage, Reason: "image data is empty"}
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	request := b.request(OpSetRichMenuImage, http.MethodPost, "richmenu/"+url.PathEscape(richMenuID)+"/content")
	request.Header.Set("Content-Type", contentType)
	request.Body = data
	return request, nil
}

// SetDefaultRichMenu - POST user/all/richmenu/{richMenuId}
func (b *RequestBuilder) SetDefaultRichMenu(richMenuID string) (*domain.TransportRequest, error) {
	if err := requireID(OpSetDefaultRichMenu, "richMenuId", richMenuID); err != nil {
		return nil, err
	}
	return b.request(OpSetDefaultRichMenu, http.MethodPost, "user/all/richmenu/"+url.PathEscape(richMenuID)), nil
}

// DefaultRichMenu - GET user/all/richmenu
func (b *RequestBuilder) DefaultRichMenu() *domain.TransportRequest {
	return b.request(OpGetDefaultRichMenuID, http.MethodGet, "user/all/richmenu")
}

// DeleteDefaultRichMenu - DELETE user/all/richmenu
func (b *RequestBuilder) DeleteDefaultRichMenu() *domain.TransportRequest {
	return b.request(OpDeleteDefaultRichMenu, http.MethodDelete, "user/all/richmenu")
}

// CreateUploadAudienceGroup - POST audienceGroup/upload
func (b *RequestBuilder) CreateUploadAudienceGroup(request domain.CreateUploadAudienceGroupRequest) (*domain.TransportRequest, error) {
	return b.jsonRequest(OpCreateUploadAudienceGroup, http.MethodPost, "audienceGroup/upload", request)
}

// UpdateUploadAudienceGroup - PUT audienceGroup/upload
func (b *RequestBuilder) UpdateUploadAudienceGroup(request domain.UpdateUploadAudienceGroupRequest) (*domain.TransportRequest, error) {
	if err := requirePositive(OpUpdateUploadAudienceGroup, "audienceGroupId", request.AudienceGroupID); err != nil {
		return nil, err
	}
	return b.jsonRequest(OpUpdateUploadAudienceGroup, http.MethodPut, "audienceGroup/upload", request)
}

// CreateClickAudienceGroup - POST audienceGroup/click
func (b *RequestBuilder) CreateClickAudienceGroup(request domain.CreateClickAudienceGroupRequest) (*domain.TransportRequest, error) {
	return b.jsonRequest(OpCreateClickAudienceGroup, http.MethodPost, "audienceGroup/click", request)
}

// CreateImpAudienceGroup - POST audienceGroup/imp
func (b *RequestBuilder) CreateImpAudienceGroup(request domain.CreateImpAudienceGroupRequest) (*domain.TransportRequest, error) {
	return b.jsonRequest(OpCreateImpAudienceGroup, http.MethodPost, "audienceGroup/imp", request)
}

// SetAudienceGroupDescription - PUT audienceGroup/{audienceGroupId}/updateDescription
func (b *RequestBuilder) SetAudienceGroupDescription(audienceGroupID int64, description string) (*domain.TransportRequest, error) {
	if err := requirePositive(OpSetAudienceGroupDescription, "audienceGroupId", audienceGroupID); err != nil {
		return nil, err
	}
	body := domain.UpdateAudienceGroupDescriptionRequest{Description: description}
	return b.jsonRequest(OpSetAudienceGroupDescription, http.MethodPut, "audienceGroup/"+strconv.FormatInt(audienceGroupID, 10)+"/updateDescription", body)
}

// DeleteAudienceGroup - DELETE audienceGroup/{audienceGroupId}
func (b *RequestBuilder) DeleteAudienceGroup(audienceGroupID int64) (*domain.TransportRequest, error) {
	if err := requirePositive(OpDeleteAudienceGroup, "audienceGroupId", audienceGroupID); err != nil {
		return nil, err
	}
	return b.request(OpDeleteAudienceGroup, http.MethodDelete, "audienceGroup/"+strconv.FormatInt(audienceGroupID, 10)), nil
}

// AudienceGroup - GET audienceGroup/{audienceGroupId}
func (b *RequestBuilder) AudienceGroup(audienceGroupID int64) (*domain.TransportRequest, error) {
	if err := requirePositive(OpGetAudienceGroup, "audienceGroupId", audienceGroupID); err != nil {
		return nil, err
	}
	return b.request(OpGetAudienceGroup, http.MethodGet, "audienceGroup/"+strconv.FormatInt(audienceGroupID, 10)), nil
}

// AudienceGroups - GET audienceGroup/list?<query>
func (b *RequestBuilder) AudienceGroups(query domain.GetAudienceGroupsQuery) (*domain.TransportRequest, error) {
	if err := b.validator.ValidateStruct(query); err != nil {
		return nil, &domain.InvalidOperationError{Operation: OpGetAudienceGroups, Reason: "invalid query", Err: err}
	}
	return b.request(OpGetAudienceGroups, http.MethodGet, "audienceGroup/list?"+query.Encode()), nil
}

// AudienceGroupAuthorityLevel - GET audienceGroup/authorityLevel
func (b *RequestBuilder) AudienceGroupAuthorityLevel() *domain.TransportRequest {
	return b.request(OpGetAudienceGroupAuthorityLevel, http.MethodGet, "audienceGroup/authorityLevel")
}

// ChangeAudienceGroupAuthorityLevel - PUT audienceGroup/authorityLevel
func (b *RequestBuilder) ChangeAudienceGroupAuthorityLevel(level domain.AudienceGroupAuthorityLevel) (*domain.TransportRequest, error) {
	body := domain.UpdateAudienceGroupAuthorityLevelRequest{AuthorityLevel: level}
	return b.jsonRequest(OpChangeAudienceGroupAuthorityLevel, http.MethodPut, "audienceGroup/authorityLevel", body)
}

// request - bare request with the bearer token header
func (b *RequestBuilder) request(operation, method, path string) *domain.TransportRequest {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+b.channelToken)
	return &domain.TransportRequest{
		Operation: operation,
		Method:    method,
		URL:       b.baseURL + path,
		Header:    header,
	}
}

// jsonRequest - validates body and attaches it as JSON text
func (b *RequestBuilder) jsonRequest(operation, method, path string, body interface{}) (*domain.TransportRequest, error) {
	if err := b.validator.ValidateStruct(body); err != nil {
		return nil, &domain.InvalidOperationError{Operation: operation, Reason: "invalid request body", Err: err}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	request := b.request(operation, method, path)
	request.Header.Set("Content-Type", contentTypeJSON)
	request.Body = data
	return request, nil
}

func requireID(operation, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.InvalidOperationError{Operation: operation, Reason: name + " is required"}
	}
	return nil
}

func requirePositive(operation, name string, value int64) error {
	if value <= 0 {
		return &domain.InvalidOperationError{Operation: operation, Reason: name + " must be a positive integer"}
	}
	return nil
}

func withStart(path, start string) string {
	if start == "" {
		return path
	}
	return path + "?start=" + url.QueryEscape(start)
}
