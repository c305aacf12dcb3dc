package output

import (
	"context"

	"golang-connect-line/internal/domain"
)

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform.
// Every method is one blocking round trip. Non-2xx responses are returned as
// *domain.HTTPStatusError carrying the upstream body unchanged.
type LineClient interface {
	// PushMessage sends messages to a user, group or room
	PushMessage(ctx context.Context, to string, messages ...domain.Message) error

	// ReplyMessage sends reply messages via reply token
	ReplyMessage(ctx context.Context, replyToken string, messages ...domain.Message) error

	// Multicast sends messages to several users at once
	Multicast(ctx context.Context, to []string, messages ...domain.Message) error

	// Broadcast sends messages to every friend of the bot
	Broadcast(ctx context.Context, messages ...domain.Message) error

	// Narrowcast sends messages to a filtered audience. The result is returned
	// even for non-2xx responses, together with the *domain.HTTPStatusError.
	Narrowcast(ctx context.Context, request domain.NarrowcastRequest) (*domain.NarrowcastResult, error)

	// GetNarrowcastProgress polls the progress of a narrowcast by request id
	GetNarrowcastProgress(ctx context.Context, requestID string) (*domain.NarrowcastProgress, error)

	// GetMessageContent downloads the binary content of a user message
	GetMessageContent(ctx context.Context, messageID string) (*domain.Blob, error)

	// GetProfile gets user profile information
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	GetGroupMemberProfile(ctx context.Context, groupID, userID string) (*domain.UserProfile, error)
	GetRoomMemberProfile(ctx context.Context, roomID, userID string) (*domain.UserProfile, error)
	GetProfileWithEventSource(ctx context.Context, source domain.LineSource) (*domain.UserProfile, error)
	GetGroupMemberIDs(ctx context.Context, groupID, start string) (*domain.MemberIDsResponse, error)
	GetRoomMemberIDs(ctx context.Context, roomID, start string) (*domain.MemberIDsResponse, error)

	// LeaveGroup, LeaveRoom and LeaveWithEventSource make the bot leave a chat.
	// A one-to-one chat has no leave semantics and yields *domain.InvalidOperationError.
	LeaveGroup(ctx context.Context, groupID string) error
	LeaveRoom(ctx context.Context, roomID string) error
	LeaveWithEventSource(ctx context.Context, source domain.LineSource) error

	// Rich menu management
	GetRichMenu(ctx context.Context, richMenuID string) (*domain.RichMenuResponse, error)
	CreateRichMenu(ctx context.Context, richMenu domain.RichMenu) (string, error)
	DeleteRichMenu(ctx context.Context, richMenuID string) error
	GetRichMenuList(ctx context.Context) ([]domain.RichMenuResponse, error)
	GetRichMenuIDOfUser(ctx context.Context, userID string) (string, error)
	LinkRichMenuToUser(ctx context.Context, userID, richMenuID string) error
	UnlinkRichMenuFromUser(ctx context.Context, userID string) error
	GetRichMenuImage(ctx context.Context, richMenuID string) (*domain.Blob, error)
	SetRichMenuImage(ctx context.Context, richMenuID string, data []byte, contentType string) error
	SetDefaultRichMenu(ctx context.Context, richMenuID string) error
	GetDefaultRichMenuID(ctx context.Context) (string, error)
	DeleteDefaultRichMenu(ctx context.Context) error

	// Audience group management
	CreateUploadAudienceGroup(ctx context.Context, request domain.CreateUploadAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	UpdateUploadAudienceGroup(ctx context.Context, request domain.UpdateUploadAudienceGroupRequest) error
	CreateClickAudienceGroup(ctx context.Context, request domain.CreateClickAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	CreateImpAudienceGroup(ctx context.Context, request domain.CreateImpAudienceGroupRequest) (*domain.CreateAudienceGroupResponse, error)
	SetAudienceGroupDescription(ctx context.Context, audienceGroupID int64, description string) error
	DeleteAudienceGroup(ctx context.Context, audienceGroupID int64) error
	GetAudienceGroup(ctx context.Context, audienceGroupID int64) (*domain.AudienceGroupDetail, error)
	GetAudienceGroups(ctx context.Context, query domain.GetAudienceGroupsQuery) (*domain.GetAudienceGroupsResponse, error)
	GetAudienceGroupAuthorityLevel(ctx context.Context) (domain.AudienceGroupAuthorityLevel, error)
	ChangeAudienceGroupAuthorityLevel(ctx context.Context, level domain.AudienceGroupAuthorityLevel) error
}
