package domain

type (
	// UserProfile struct - profile of a user, or of a member of a group or room
	UserProfile struct {
		DisplayName   string `json:"displayName"`
		UserID        string `json:"userId"`
		PictureURL    string `json:"pictureUrl,omitempty"`
		StatusMessage string `json:"statusMessage,omitempty"`
		Language      string `json:"language,omitempty"`
	}

	// MemberIDsResponse struct - one page of group or room member ids
	MemberIDsResponse struct {
		MemberIDs []string `json:"memberIds"`
		Next      string   `json:"next,omitempty"`
	}

	// Blob struct - binary content with its media type
	Blob struct {
		ContentType string
		Data        []byte
	}
)

// HasNext reports whether another page of member ids can be requested
func (r MemberIDsResponse) HasNext() bool {
	return r.Next != ""
}
