package domain

import (
	"encoding/json"
	"errors"
)

// AudienceGroupStatus type
type AudienceGroupStatus string

const (
	// AudienceGroupStatusInProgress const
	AudienceGroupStatusInProgress AudienceGroupStatus = "IN_PROGRESS"
	// AudienceGroupStatusReady const
	AudienceGroupStatusReady AudienceGroupStatus = "READY"
	// AudienceGroupStatusExpired const
	AudienceGroupStatusExpired AudienceGroupStatus = "EXPIRED"
	// AudienceGroupStatusFailed const
	AudienceGroupStatusFailed AudienceGroupStatus = "FAILED"
)

// Valid func
func (s AudienceGroupStatus) Valid() bool {
	switch s {
	case AudienceGroupStatusInProgress, AudienceGroupStatusReady, AudienceGroupStatusExpired, AudienceGroupStatusFailed:
		return true
	}
	return false
}

// AudienceGroupFailedType type
type AudienceGroupFailedType string

const (
	// AudienceGroupFailedTypeAudienceInsufficient const
	AudienceGroupFailedTypeAudienceInsufficient AudienceGroupFailedType = "AUDIENCE_GROUP_AUDIENCE_INSUFFICIENT"
	// AudienceGroupFailedTypeInternalError const
	AudienceGroupFailedTypeInternalError AudienceGroupFailedType = "INTERNAL_ERROR"
)

// Valid func
func (t AudienceGroupFailedType) Valid() bool {
	return t == AudienceGroupFailedTypeAudienceInsufficient || t == AudienceGroupFailedTypeInternalError
}

// AudienceGroupType type - how the audience was collected
type AudienceGroupType string

const (
	// AudienceGroupTypeUpload const
	AudienceGroupTypeUpload AudienceGroupType = "UPLOAD"
	// AudienceGroupTypeClick const
	AudienceGroupTypeClick AudienceGroupType = "CLICK"
	// AudienceGroupTypeImp const
	AudienceGroupTypeImp AudienceGroupType = "IMP"
)

// AudienceGroupPermission type
type AudienceGroupPermission string

const (
	// AudienceGroupPermissionRead const
	AudienceGroupPermissionRead AudienceGroupPermission = "READ"
	// AudienceGroupPermissionReadWrite const
	AudienceGroupPermissionReadWrite AudienceGroupPermission = "READ_WRITE"
)

// AudienceGroupCreateRoute type
type AudienceGroupCreateRoute string

const (
	// AudienceGroupCreateRouteOAManager const
	AudienceGroupCreateRouteOAManager AudienceGroupCreateRoute = "OA_MANAGER"
	// AudienceGroupCreateRouteMessagingAPI const
	AudienceGroupCreateRouteMessagingAPI AudienceGroupCreateRoute = "MESSAGING_API"
)

// Valid func
func (r AudienceGroupCreateRoute) Valid() bool {
	return r == AudienceGroupCreateRouteOAManager || r == AudienceGroupCreateRouteMessagingAPI
}

// AudienceGroupAuthorityLevel type
type AudienceGroupAuthorityLevel string

const (
	// AudienceGroupAuthorityLevelPublic const
	AudienceGroupAuthorityLevelPublic AudienceGroupAuthorityLevel = "PUBLIC"
	// AudienceGroupAuthorityLevelPrivate const
	AudienceGroupAuthorityLevelPrivate AudienceGroupAuthorityLevel = "PRIVATE"
)

// Valid func
func (l AudienceGroupAuthorityLevel) Valid() bool {
	return l == AudienceGroupAuthorityLevelPublic || l == AudienceGroupAuthorityLevelPrivate
}

// AudienceGroup is an audience group record. Status and Type are the two
// discriminants: FailedType is set only for FAILED, ClickURL only for CLICK
// and RequestID only for IMP.
type AudienceGroup struct {
	AudienceGroupID int64
	Description     string
	AudienceCount   int64
	Created         int64
	IsIfaAudience   bool
	Permission      AudienceGroupPermission
	CreateRoute     AudienceGroupCreateRoute

	Status     AudienceGroupStatus
	FailedType AudienceGroupFailedType

	Type      AudienceGroupType
	ClickURL  string
	RequestID string

	// Jobs is nil for list entries and set for single group lookups.
	Jobs []AudienceGroupJob
}

type audienceGroupWire struct {
	AudienceGroupID *int64                   `json:"audienceGroupId"`
	Type            *AudienceGroupType       `json:"type"`
	Description     string                   `json:"description"`
	Status          *AudienceGroupStatus     `json:"status"`
	FailedType      *AudienceGroupFailedType `json:"failedType,omitempty"`
	AudienceCount   int64                    `json:"audienceCount"`
	Created         int64                    `json:"created"`
	Permission      AudienceGroupPermission  `json:"permission,omitempty"`
	CreateRoute     AudienceGroupCreateRoute `json:"createRoute,omitempty"`
	IsIfaAudience   bool                     `json:"isIfaAudience"`
	ClickURL        *string                  `json:"clickUrl,omitempty"`
	RequestID       *string                  `json:"requestId,omitempty"`
	Jobs            *[]AudienceGroupJob      `json:"jobs,omitempty"`
}

// UnmarshalJSON decodes an audience group, selecting the status and type
// variants before reading their fields.
func (g *AudienceGroup) UnmarshalJSON(data []byte) error {
	const target = "AudienceGroup"

	var w audienceGroupWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if w.AudienceGroupID == nil {
		return missingField(target, "audienceGroupId")
	}

	out := AudienceGroup{
		AudienceGroupID: *w.AudienceGroupID,
		Description:     w.Description,
		AudienceCount:   w.AudienceCount,
		Created:         w.Created,
		IsIfaAudience:   w.IsIfaAudience,
		Permission:      w.Permission,
		CreateRoute:     w.CreateRoute,
	}

	switch w.Permission {
	case "", AudienceGroupPermissionRead, AudienceGroupPermissionReadWrite:
	default:
		return unknownValue(target, "permission", string(w.Permission))
	}
	if w.CreateRoute != "" && !w.CreateRoute.Valid() {
		return unknownValue(target, "createRoute", string(w.CreateRoute))
	}

	if w.Status == nil {
		return missingField(target, "status")
	}
	out.Status = *w.Status
	switch *w.Status {
	case AudienceGroupStatusInProgress, AudienceGroupStatusReady, AudienceGroupStatusExpired:
	case AudienceGroupStatusFailed:
		if w.FailedType == nil {
			return missingField(target, "failedType")
		}
		if !w.FailedType.Valid() {
			return unknownValue(target, "failedType", string(*w.FailedType))
		}
		out.FailedType = *w.FailedType
	default:
		return unknownValue(target, "status", string(*w.Status))
	}

	if w.Type == nil {
		return missingField(target, "type")
	}
	out.Type = *w.Type
	switch *w.Type {
	case AudienceGroupTypeUpload:
	case AudienceGroupTypeClick:
		if w.ClickURL == nil {
			return missingField(target, "clickUrl")
		}
		out.ClickURL = *w.ClickURL
	case AudienceGroupTypeImp:
		if w.RequestID == nil {
			return missingField(target, "requestId")
		}
		out.RequestID = *w.RequestID
	default:
		return unknownValue(target, "type", string(*w.Type))
	}

	if w.Jobs != nil {
		out.Jobs = *w.Jobs
		if out.Jobs == nil {
			out.Jobs = []AudienceGroupJob{}
		}
	}

	*g = out
	return nil
}

// MarshalJSON encodes only the fields legal for the active variants.
func (g AudienceGroup) MarshalJSON() ([]byte, error) {
	id := g.AudienceGroupID
	status := g.Status
	groupType := g.Type
	w := audienceGroupWire{
		AudienceGroupID: &id,
		Type:            &groupType,
		Description:     g.Description,
		Status:          &status,
		AudienceCount:   g.AudienceCount,
		Created:         g.Created,
		Permission:      g.Permission,
		CreateRoute:     g.CreateRoute,
		IsIfaAudience:   g.IsIfaAudience,
	}
	if g.Status == AudienceGroupStatusFailed {
		failedType := g.FailedType
		w.FailedType = &failedType
	}
	switch g.Type {
	case AudienceGroupTypeClick:
		clickURL := g.ClickURL
		w.ClickURL = &clickURL
	case AudienceGroupTypeImp:
		requestID := g.RequestID
		w.RequestID = &requestID
	}
	if g.Jobs != nil {
		jobs := g.Jobs
		w.Jobs = &jobs
	}
	return json.Marshal(w)
}

// AudienceGroupJobType type
type AudienceGroupJobType string

const (
	// AudienceGroupJobTypeDiffAdd const
	AudienceGroupJobTypeDiffAdd AudienceGroupJobType = "DIFF_ADD"
)

// AudienceGroupJobStatus type
type AudienceGroupJobStatus string

const (
	// AudienceGroupJobStatusQueued const
	AudienceGroupJobStatusQueued AudienceGroupJobStatus = "QUEUED"
	// AudienceGroupJobStatusWorking const
	AudienceGroupJobStatusWorking AudienceGroupJobStatus = "WORKING"
	// AudienceGroupJobStatusFinished const
	AudienceGroupJobStatusFinished AudienceGroupJobStatus = "FINISHED"
	// AudienceGroupJobStatusFailed const
	AudienceGroupJobStatusFailed AudienceGroupJobStatus = "FAILED"
)

// AudienceGroupJobFailedType type
type AudienceGroupJobFailedType string

const (
	// AudienceGroupJobFailedTypeInternalError const
	AudienceGroupJobFailedTypeInternalError AudienceGroupJobFailedType = "INTERNAL_ERROR"
)

// AudienceGroupJob is an upload job of an audience group. FailedType is
// set only when JobStatus is FAILED.
type AudienceGroupJob struct {
	AudienceGroupJobID int64
	AudienceGroupID    int64
	Description        string
	Type               AudienceGroupJobType
	AudienceCount      int64
	Created            int64
	JobStatus          AudienceGroupJobStatus
	FailedType         AudienceGroupJobFailedType
}

type audienceGroupJobWire struct {
	AudienceGroupJobID *int64                      `json:"audienceGroupJobId"`
	AudienceGroupID    int64                       `json:"audienceGroupId"`
	Description        string                      `json:"description"`
	Type               *AudienceGroupJobType       `json:"type"`
	AudienceCount      int64                       `json:"audienceCount"`
	Created            int64                       `json:"created"`
	JobStatus          *AudienceGroupJobStatus     `json:"jobStatus"`
	FailedType         *AudienceGroupJobFailedType `json:"failedType,omitempty"`
}

// UnmarshalJSON func
func (j *AudienceGroupJob) UnmarshalJSON(data []byte) error {
	const target = "AudienceGroupJob"

	var w audienceGroupJobWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if w.AudienceGroupJobID == nil {
		return missingField(target, "audienceGroupJobId")
	}
	if w.Type == nil {
		return missingField(target, "type")
	}
	if *w.Type != AudienceGroupJobTypeDiffAdd {
		return unknownValue(target, "type", string(*w.Type))
	}

	out := AudienceGroupJob{
		AudienceGroupJobID: *w.AudienceGroupJobID,
		AudienceGroupID:    w.AudienceGroupID,
		Description:        w.Description,
		Type:               *w.Type,
		AudienceCount:      w.AudienceCount,
		Created:            w.Created,
	}

	if w.JobStatus == nil {
		return missingField(target, "jobStatus")
	}
	out.JobStatus = *w.JobStatus
	switch *w.JobStatus {
	case AudienceGroupJobStatusQueued, AudienceGroupJobStatusWorking, AudienceGroupJobStatusFinished:
	case AudienceGroupJobStatusFailed:
		if w.FailedType == nil {
			return missingField(target, "failedType")
		}
		if *w.FailedType != AudienceGroupJobFailedTypeInternalError {
			return unknownValue(target, "failedType", string(*w.FailedType))
		}
		out.FailedType = *w.FailedType
	default:
		return unknownValue(target, "jobStatus", string(*w.JobStatus))
	}

	*j = out
	return nil
}

// MarshalJSON func
func (j AudienceGroupJob) MarshalJSON() ([]byte, error) {
	id := j.AudienceGroupJobID
	jobType := j.Type
	status := j.JobStatus
	w := audienceGroupJobWire{
		AudienceGroupJobID: &id,
		AudienceGroupID:    j.AudienceGroupID,
		Description:        j.Description,
		Type:               &jobType,
		AudienceCount:      j.AudienceCount,
		Created:            j.Created,
		JobStatus:          &status,
	}
	if j.JobStatus == AudienceGroupJobStatusFailed {
		failedType := j.FailedType
		w.FailedType = &failedType
	}
	return json.Marshal(w)
}

// AudienceGroupDetail is the response of a single audience group lookup
type AudienceGroupDetail struct {
	AudienceGroup AudienceGroup      `json:"audienceGroup"`
	Jobs          []AudienceGroupJob `json:"jobs"`
}

// UnmarshalJSON accepts both the nested {"audienceGroup":..,"jobs":..} shape
// and a flat audience group carrying its own "jobs" array.
func (d *AudienceGroupDetail) UnmarshalJSON(data []byte) error {
	var probe struct {
		AudienceGroup json.RawMessage `json:"audienceGroup"`
		Jobs          json.RawMessage `json:"jobs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return &DecodeError{Target: "AudienceGroupDetail", Reason: "malformed json", Err: err}
	}

	var out AudienceGroupDetail
	if len(probe.AudienceGroup) > 0 && string(probe.AudienceGroup) != "null" {
		if err := json.Unmarshal(probe.AudienceGroup, &out.AudienceGroup); err != nil {
			return err
		}
		if len(probe.Jobs) > 0 && string(probe.Jobs) != "null" {
			if err := json.Unmarshal(probe.Jobs, &out.Jobs); err != nil {
				return err
			}
		}
	} else {
		if err := json.Unmarshal(data, &out.AudienceGroup); err != nil {
			return err
		}
		out.Jobs = out.AudienceGroup.Jobs
	}
	if out.Jobs == nil {
		out.Jobs = []AudienceGroupJob{}
	}
	out.AudienceGroup.Jobs = out.Jobs

	*d = out
	return nil
}

// MarshalJSON func
func (d AudienceGroupDetail) MarshalJSON() ([]byte, error) {
	group := d.AudienceGroup
	group.Jobs = nil
	jobs := d.Jobs
	if jobs == nil {
		jobs = []AudienceGroupJob{}
	}
	return json.Marshal(struct {
		AudienceGroup AudienceGroup      `json:"audienceGroup"`
		Jobs          []AudienceGroupJob `json:"jobs"`
	}{group, jobs})
}

// GetAudienceGroupsResponse is one page of audience groups
type GetAudienceGroupsResponse struct {
	AudienceGroups                   []AudienceGroup `json:"audienceGroups"`
	HasNextPage                      bool            `json:"hasNextPage"`
	TotalCount                       int64           `json:"totalCount"`
	ReadWriteAudienceGroupTotalCount int64           `json:"readWriteAudienceGroupTotalCount"`
	Page                             int64           `json:"page"`
	Size                             int64           `json:"size"`
}

// UnmarshalJSON func
func (r *GetAudienceGroupsResponse) UnmarshalJSON(data []byte) error {
	type alias GetAudienceGroupsResponse
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return err
		}
		return &DecodeError{Target: "GetAudienceGroupsResponse", Reason: "malformed json", Err: err}
	}
	if out.AudienceGroups == nil {
		out.AudienceGroups = []AudienceGroup{}
	}
	*r = GetAudienceGroupsResponse(out)
	return nil
}

// AudienceGroupAuthorityLevelResponse type
type AudienceGroupAuthorityLevelResponse struct {
	AuthorityLevel AudienceGroupAuthorityLevel `json:"authorityLevel"`
}

// UnmarshalJSON func
func (r *AudienceGroupAuthorityLevelResponse) UnmarshalJSON(data []byte) error {
	var w struct {
		AuthorityLevel *AudienceGroupAuthorityLevel `json:"authorityLevel"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: "AudienceGroupAuthorityLevel", Reason: "malformed json", Err: err}
	}
	if w.AuthorityLevel == nil {
		return missingField("AudienceGroupAuthorityLevel", "authorityLevel")
	}
	if !w.AuthorityLevel.Valid() {
		return unknownValue("AudienceGroupAuthorityLevel", "authorityLevel", string(*w.AuthorityLevel))
	}
	r.AuthorityLevel = *w.AuthorityLevel
	return nil
}

// CreateAudienceGroupResponse is returned by the upload, click and imp create endpoints
type CreateAudienceGroupResponse struct {
	AudienceGroupID int64                    `json:"audienceGroupId"`
	Type            AudienceGroupType        `json:"type"`
	Description     string                   `json:"description"`
	Created         int64                    `json:"created"`
	Permission      AudienceGroupPermission  `json:"permission,omitempty"`
	CreateRoute     AudienceGroupCreateRoute `json:"createRoute,omitempty"`
	ExpireTimestamp int64                    `json:"expireTimestamp,omitempty"`
	IsIfaAudience   bool                     `json:"isIfaAudience"`
	RequestID       string                   `json:"requestId,omitempty"`
	ClickURL        string                   `json:"clickUrl,omitempty"`
}
