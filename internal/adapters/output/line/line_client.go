package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang-connect-line/internal/domain"
	"golang-connect-line/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id used to poll narrowcast progress
const RequestIDHeader = "X-Line-Request-Id"

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	builder   *RequestBuilder
	transport output.HTTPTransport
}

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(transport output.HTTPTransport, baseURL, channelToken string) (*LineClientAdapter, error) {
	if transport == nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: transport is nil")
	}
	if channelToken == "" {
		return nil, fmt.Errorf("failed to create LINE messaging API client: channel token is empty")
	}

	builder := NewRequestBuilder(baseURL, channelToken)
	logrus.Infof("LINE client adapter initialized with base URL: %s", builder.BaseURL())

	return &LineClientAdapter{
		builder:   builder,
		transport: transport,
	}, nil
}

// PushMessage - Sends push messages to LINE user directly
func (a *LineClientAdapter) PushMessage(ctx context.Context, to string, messages ...domain.Message) error {
	req, err := a.builder.PushMessage(to, messages...)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Successfully sent push message to: %s", to)
	return nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(ctx context.Context, replyToken string, messages ...domain.Message) error {
	req, err := a.builder.ReplyMessage(replyToken, messages...)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Successfully sent reply message with token: %s", replyToken)
	return nil
}

// Multicast - Sends the same messages to several users
func (a *LineClientAdapter) Multicast(ctx context.Context, to []string, messages ...domain.Message) error {
	req, err := a.builder.Multicast(to, messages...)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to send multicast message: %w", err)
	}

	logrus.Infof("Successfully sent multicast message to %d users", len(to))
	return nil
}

// Broadcast - Sends messages to every friend of the bot
func (a *LineClientAdapter) Broadcast(ctx context.Context, messages ...domain.Message) error {
	req, err := a.builder.Broadcast(messages...)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to send broadcast message: %w", err)
	}

	logrus.Info("Successfully sent broadcast message")
	return nil
}

// Narrowcast - Sends messages to a filtered audience.
// The result carries the request id, status and raw body whatever the status code.
func (a *LineClientAdapter) Narrowcast(ctx context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastResult, error) {
	req, err := a.builder.Narrowcast(request)
	if err != nil {
		return nil, err
	}

	resp, err := a.execute(ctx, req)
	if resp == nil {
		return nil, fmt.Errorf("failed to send narrowcast message: %w", err)
	}

	result := &domain.NarrowcastResult{
		RequestID:  resp.Header.Get(RequestIDHeader),
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
	if err != nil {
		return result, fmt.Errorf("failed to send narrowcast message: %w", err)
	}
	if !result.HasRequestID() {
		logrus.Errorf("Narrowcast accepted with status %d but no request id was returned", resp.StatusCode)
	} else {
		logrus.Infof("Successfully sent narrowcast message, request id: %s", result.RequestID)
	}
	return result, nil
}

// GetNarrowcastProgress - Polls the progress of a narrowcast
func (a *LineClientAdapter) GetNarrowcastProgress(ctx context.Context, requestID string) (*domain.NarrowcastProgress, error) {
	req, err := a.builder.NarrowcastProgress(requestID)
	if err != nil {
		return nil, err
	}

	var progress domain.NarrowcastProgress
	if err := a.fetch(ctx, req, &progress); err != nil {
		return nil, fmt.Errorf("failed to get narrowcast progress: %w", err)
	}
	return &progress, nil
}

// GetMessageContent - Downloads the binary content of a message
func (a *LineClientAdapter) GetMessageContent(ctx context.Context, messageID string) (*domain.Blob, error) {
	req, err := a.builder.MessageContent(messageID)
	if err != nil {
		return nil, err
	}
	blob, err := a.download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get message content: %w", err)
	}
	return blob, nil
}

// GetProfile - Gets user profile information
func (a *LineClientAdapter) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	req, err := a.builder.Profile(userID)
	if err != nil {
		return nil, err
	}
	return a.profile(ctx, req)
}

// GetGroupMemberProfile - Gets profile of a group member
func (a *LineClientAdapter) GetGroupMemberProfile(ctx context.Context, groupID, userID string) (*domain.UserProfile, error) {
	req, err := a.builder.GroupMemberProfile(groupID, userID)
	if err != nil {
		return nil, err
	}
	return a.profile(ctx, req)
}

// GetRoomMemberProfile - Gets profile of a room member
func (a *LineClientAdapter) GetRoomMemberProfile(ctx context.Context, roomID, userID string) (*domain.UserProfile, error) {
	req, err := a.builder.RoomMemberProfile(roomID, userID)
	if err != nil {
		return nil, err
	}
	return a.profile(ctx, req)
}

// GetProfileWithEventSource - Gets the profile of whoever sent an event
func (a *LineClientAdapter) GetProfileWithEventSource(ctx context.Context, source domain.LineSource) (*domain.UserProfile, error) {
	req, err := a.builder.ProfileWithEventSource(source)
	if err != nil {
		return nil, err
	}
	return a.profile(ctx, req)
}

func (a *LineClientAdapter) profile(ctx context.Context, req *domain.TransportRequest) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := a.fetch(ctx, req, &profile); err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &profile, nil
}

// GetGroupMemberIDs - Gets one page of group member ids
func (a *LineClientAdapter) GetGroupMemberIDs(ctx context.Context, groupID, start string) (*domain.MemberIDsResponse, error) {
	req, err := a.builder.GroupMemberIDs(groupID, start)
	if err != nil {
		return nil, err
	}
	return a.memberIDs(ctx, req)
}

// GetRoomMemberIDs - Gets one page of room member ids
func (a *LineClientAdapter) GetRoomMemberIDs(ctx context.Context, roomID, start string) (*domain.MemberIDsResponse, error) {
	req, err := a.builder.RoomMemberIDs(roomID, start)
	if err != nil {
		return nil, err
	}
	return a.memberIDs(ctx, req)
}

func (a *LineClientAdapter) memberIDs(ctx context.Context, req *domain.TransportRequest) (*domain.MemberIDsResponse, error) {
	var ids domain.MemberIDsResponse
	if err := a.fetch(ctx, req, &ids); err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}
	if ids.MemberIDs == nil {
		ids.MemberIDs = []string{}
	}
	return &ids, nil
}

// LeaveGroup - Makes the bot leave a group
func (a *LineClientAdapter) LeaveGroup(ctx context.Context, groupID string) error {
	return a.leave(ctx)(a.builder.LeaveGroup(groupID))
}

// LeaveRoom - Makes the bot leave a room
func (a *LineClientAdapter) LeaveRoom(ctx context.Context, roomID string) error {
	return a.leave(ctx)(a.builder.LeaveRoom(roomID))
}

// LeaveWithEventSource - Leaves the group or room an event came from
func (a *LineClientAdapter) LeaveWithEventSource(ctx context.Context, source domain.LineSource) error {
	return a.leave(ctx)(a.builder.LeaveWithEventSource(source))
}

func (a *LineClientAdapter) leave(ctx context.Context) func(*domain.TransportRequest, error) error {
	return func(req *domain.TransportRequest, err error) error {
		if err != nil {
			return err
		}
		if _, err := a.execute(ctx, req); err != nil {
			return fmt.Errorf("failed to leave chat: %w", err)
		}
		logrus.Infof("Successfully left chat: %s", req.URL)
		return nil
	}
}

// GetRichMenu - Gets a rich menu by id
func (a *LineClientAdapter) GetRichMenu(ctx context.Context, richMenuID string) (*domain.RichMenuResponse, error) {
	req, err := a.builder.RichMenu(richMenuID)
	if err != nil {
		return nil, err
	}
	var richMenu domain.RichMenuResponse
	if err := a.fetch(ctx, req, &richMenu); err != nil {
		return nil, fmt.Errorf("failed to get rich menu: %w", err)
	}
	return &richMenu, nil
}

// CreateRichMenu - Creates a rich menu and returns its id
func (a *LineClientAdapter) CreateRichMenu(ctx context.Context, richMenu domain.RichMenu) (string, error) {
	req, err := a.builder.CreateRichMenu(richMenu)
	if err != nil {
		return "", err
	}
	var created domain.RichMenuIDResponse
	if err := a.fetch(ctx, req, &created); err != nil {
		return "", fmt.Errorf("failed to create rich menu: %w", err)
	}

	logrus.Infof("Successfully created rich menu: %s", created.RichMenuID)
	return created.RichMenuID, nil
}

// DeleteRichMenu - Deletes a rich menu
func (a *LineClientAdapter) DeleteRichMenu(ctx context.Context, richMenuID string) error {
	req, err := a.builder.DeleteRichMenu(richMenuID)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to delete rich menu: %w", err)
	}
	return nil
}

// GetRichMenuList - Lists every rich menu of the channel
func (a *LineClientAdapter) GetRichMenuList(ctx context.Context) ([]domain.RichMenuResponse, error) {
	var list domain.RichMenuListResponse
	if err := a.fetch(ctx, a.builder.RichMenuList(), &list); err != nil {
		return nil, fmt.Errorf("failed to list rich menus: %w", err)
	}
	if list.RichMenus == nil {
		return []domain.RichMenuResponse{}, nil
	}
	return list.RichMenus, nil
}

// GetRichMenuIDOfUser - Gets the id of the rich menu linked to a user
func (a *LineClientAdapter) GetRichMenuIDOfUser(ctx context.Context, userID string) (string, error) {
	req, err := a.builder.UserRichMenu(userID)
	if err != nil {
		return "", err
	}
	var linked domain.RichMenuIDResponse
	if err := a.fetch(ctx, req, &linked); err != nil {
		return "", fmt.Errorf("failed to get rich menu of user: %w", err)
	}
	return linked.RichMenuID, nil
}

// LinkRichMenuToUser - Links a rich menu to a user
func (a *LineClientAdapter) LinkRichMenuToUser(ctx context.Context, userID, richMenuID string) error {
	req, err := a.builder.LinkRichMenu(userID, richMenuID)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to link rich menu: %w", err)
	}
	return nil
}

// UnlinkRichMenuFromUser - Unlinks the rich menu of a user
func (a *LineClientAdapter) UnlinkRichMenuFromUser(ctx context.Context, userID string) error {
	req, err := a.builder.UnlinkRichMenu(userID)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to unlink rich menu: %w", err)
	}
	return nil
}

// GetRichMenuImage - Downloads the image of a rich menu
func (a *LineClientAdapter) GetRichMenuImage(ctx context.Context, richMenuID string) (*domain.Blob, error) {
	req, err := a.builder.RichMenuImage(richMenuID)
	if err != nil {
		return nil, err
	}
	blob, err := a.download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get rich menu image: %w", err)
	}
	return blob, nil
}

// SetRichMenuImage - Uploads the image of a rich menu
func (a *LineClientAdapter) SetRichMenuImage(ctx context.Context, richMenuID string, data []byte, contentType string) error {
	req, err := a.builder.SetRichMenuImage(richMenuID, data, contentType)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to set rich menu image: %w", err)
	}

	logrus.Infof("Successfully uploaded %d bytes of %s to rich menu: %s", len(data), req.Header.Get("Content-Type"), richMenuID)
	return nil
}

// SetDefaultRichMenu - Makes a rich menu the default of the channel
func (a *LineClientAdapter) SetDefaultRichMenu(ctx context.Context, richMenuID string) error {
	req, err := a.builder.SetDefaultRichMenu(richMenuID)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to set default rich menu: %w", err)
	}
	return nil
}

// GetDefaultRichMenuID - Gets the id of the default rich menu
func (a *LineClientAdapter) GetDefaultRichMenuID(ctx context.Context) (string, error) {
	var current domain.RichMenuIDResponse
	if err := a.fetch(ctx, a.builder.DefaultRichMenu(), &current); err != nil {
		return "", fmt.Errorf("failed to get default rich menu: %w", err)
	}
	return current.RichMenuID, nil
}

// DeleteDefaultRichMenu - Clears the default rich menu
func (a *LineClientAdapter) DeleteDefaultRichMenu(ctx context.Context) error {
	if _, err := a.execute(ctx, a.builder.DeleteDefaultRichMenu()); err != nil {
		return fmt.Errorf("failed to delete default rich menu: %w", err)
	}
	return nil
}

// CreateUploadAudienceGroup - Creates an audience from uploaded user ids
func (a *LineClientAdapter) CreateUploadAudienceGroup(ctx context.Context, request domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	req, err := a.builder.CreateUploadAudienceGroup(request)
	if err != nil {
		return nil, err
	}
	return a.createAudienceGroup(ctx, req)
}

// UpdateUploadAudienceGroup - Adds user ids to an upload audience
func (a *LineClientAdapter) UpdateUploadAudienceGroup(ctx context.Context, request domain.UpdateUploadAudienceGroupRequest) error {
	req, err := a.builder.UpdateUploadAudienceGroup(request)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to update audience group: %w", err)
	}
	return nil
}

// CreateClickAudienceGroup - Creates an audience of users who clicked a message url
func (a *LineClientAdapter) CreateClickAudienceGroup(ctx context.Context, request domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	req, err := a.builder.CreateClickAudienceGroup(request)
	if err != nil {
		return nil, err
	}
	return a.createAudienceGroup(ctx, req)
}

// CreateImpAudienceGroup - Creates an audience of users who viewed a message
func (a *LineClientAdapter) CreateImpAudienceGroup(ctx context.Context, request domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error) {
	req, err := a.builder.CreateImpAudienceGroup(request)
	if err != nil {
		return nil, err
	}
	return a.createAudienceGroup(ctx, req)
}

func (a *LineClientAdapter) createAudienceGroup(ctx context.Context, req *domain.TransportRequest) (*domain.CreateAudienceGroupResponse, error) {
	var created domain.CreateAudienceGroupResponse
	if err := a.fetch(ctx, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create audience group: %w", err)
	}

	logrus.Infof("Successfully created %s audience group: %d", created.Type, created.AudienceGroupID)
	return &created, nil
}

// SetAudienceGroupDescription - Renames an audience group
func (a *LineClientAdapter) SetAudienceGroupDescription(ctx context.Context, audienceGroupID int64, description string) error {
	req, err := a.builder.SetAudienceGroupDescription(audienceGroupID, description)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to update audience group description: %w", err)
	}
	return nil
}

// DeleteAudienceGroup - Deletes an audience group
func (a *LineClientAdapter) DeleteAudienceGroup(ctx context.Context, audienceGroupID int64) error {
	req, err := a.builder.DeleteAudienceGroup(audienceGroupID)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to delete audience group: %w", err)
	}

	logrus.Infof("Successfully deleted audience group: %d", audienceGroupID)
	return nil
}

// GetAudienceGroup - Gets an audience group with its jobs
func (a *LineClientAdapter) GetAudienceGroup(ctx context.Context, audienceGroupID int64) (*domain.AudienceGroupDetail, error) {
	req, err := a.builder.AudienceGroup(audienceGroupID)
	if err != nil {
		return nil, err
	}
	var detail domain.AudienceGroupDetail
	if err := a.fetch(ctx, req, &detail); err != nil {
		return nil, fmt.Errorf("failed to get audience group: %w", err)
	}
	return &detail, nil
}

// GetAudienceGroups - Gets one page of audience groups
func (a *LineClientAdapter) GetAudienceGroups(ctx context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error) {
	req, err := a.builder.AudienceGroups(query)
	if err != nil {
		return nil, err
	}
	var groups domain.GetAudienceGroupsResponse
	if err := a.fetch(ctx, req, &groups); err != nil {
		return nil, fmt.Errorf("failed to list audience groups: %w", err)
	}
	return &groups, nil
}

// GetAudienceGroupAuthorityLevel - Gets the authority level of the channel's audiences
func (a *LineClientAdapter) GetAudienceGroupAuthorityLevel(ctx context.Context) (domain.AudienceGroupAuthorityLevel, error) {
	var level domain.AudienceGroupAuthorityLevelResponse
	if err := a.fetch(ctx, a.builder.AudienceGroupAuthorityLevel(), &level); err != nil {
		return "", fmt.Errorf("failed to get audience group authority level: %w", err)
	}
	return level.AuthorityLevel, nil
}

// ChangeAudienceGroupAuthorityLevel - Changes the authority level of the channel's audiences
func (a *LineClientAdapter) ChangeAudienceGroupAuthorityLevel(ctx context.Context, level domain.AudienceGroupAuthorityLevel) error {
	req, err := a.builder.ChangeAudienceGroupAuthorityLevel(level)
	if err != nil {
		return err
	}
	if _, err := a.execute(ctx, req); err != nil {
		return fmt.Errorf("failed to change audience group authority level: %w", err)
	}

	logrus.Infof("Successfully changed audience group authority level to: %s", level)
	return nil
}

// execute runs one round trip. A non-2xx response is returned together with
// an *domain.HTTPStatusError so callers can still read its headers.
func (a *LineClientAdapter) execute(ctx context.Context, req *domain.TransportRequest) (*domain.TransportResponse, error) {
	resp, err := a.transport.Execute(ctx, *req)
	if err != nil {
		logrus.Errorf("LINE %s %s failed: %v", req.Method, req.Operation, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &domain.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			RequestID:  resp.Header.Get(RequestIDHeader),
		}
		logrus.Errorf("LINE %s returned status %d: %s", req.Operation, resp.StatusCode, statusErr.Body)
		return resp, statusErr
	}
	return resp, nil
}

// fetch runs a round trip and decodes the JSON body into out
func (a *LineClientAdapter) fetch(ctx context.Context, req *domain.TransportRequest, out interface{}) error {
	resp, err := a.execute(ctx, req)
	if err != nil {
		return err
	}
	return decodeBody(req.Operation, resp.Body, out)
}

// download runs a round trip and returns the body as a blob
func (a *LineClientAdapter) download(ctx context.Context, req *domain.TransportRequest) (*domain.Blob, error) {
	resp, err := a.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return &domain.Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        resp.Body,
	}, nil
}

func decodeBody(operation string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		var decodeErr *domain.DecodeError
		if errors.As(err, &decodeErr) {
			return decodeErr
		}
		return &domain.DecodeError{Target: operation, Reason: "malformed response body", Err: err}
	}
	return nil
}
