package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an upstream identifier. The provider sends some as JSON strings and
// some as numbers, so both decode into the same string form.
type ID string

// UnmarshalJSON accepts a string, a number, or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as text
func (id ID) String() string {
	return string(id)
}

// MediaType is the provider's numeric media code
type MediaType int

const (
	MediaTypeUnknown  MediaType = 0
	MediaTypePhoto    MediaType = 1
	MediaTypeVideo    MediaType = 2
	MediaTypeCarousel MediaType = 8
)

// Kind folds unrecognised codes into MediaTypeUnknown
func (t MediaType) Kind() MediaType {
	switch t {
	case MediaTypePhoto, MediaTypeVideo, MediaTypeCarousel:
		return t
	default:
		return MediaTypeUnknown
	}
}

func (t MediaType) String() string {
	switch t.Kind() {
	case MediaTypePhoto:
		return "photo"
	case MediaTypeVideo:
		return "video"
	case MediaTypeCarousel:
		return "carousel"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// IsVideo reports whether the code is the video code
func (t MediaType) IsVideo() bool {
	return t == MediaTypeVideo
}

// SearchResponse is the body of the search endpoint
type SearchResponse struct {
	Users []SearchEntry `json:"users"`
}

// SearchEntry wraps one matched account; User may be missing
type SearchEntry struct {
	User *SearchUser `json:"user"`
}

// SearchUser is the account summary inside a search entry
type SearchUser struct {
	PK            ID     `json:"pk"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// Profile is the body of the profile endpoint
type Profile struct {
	PK             ID                `json:"pk"`
	Username       string            `json:"username"`
	FullName       string            `json:"full_name"`
	ProfilePicURL  string            `json:"profile_pic_url"`
	Biography      string            `json:"biography"`
	FollowerCount  int64             `json:"follower_count"`
	FollowingCount int64             `json:"following_count"`
	MediaCount     int64             `json:"media_count"`
	IsVerified     bool              `json:"is_verified"`
	IsPrivate      bool              `json:"is_private"`
	ExternalURL    string            `json:"external_url"`
	Category       string            `json:"category"`
	BioLinks       []json.RawMessage `json:"bio_links"`
}

// MediaResponse is one page from the posts endpoint
type MediaResponse struct {
	Posts           []Edge `json:"posts"`
	PaginationToken string `json:"pagination_token"`
}

// Edge wraps a single media node; Node may be missing
type Edge struct {
	Node *Node `json:"node"`
}

// Node represents a single media item
type Node struct {
	PK             ID             `json:"pk"`
	ProductType    string         `json:"product_type"`
	Code           string         `json:"code"`
	Caption        *Caption       `json:"caption"`
	LikeCount      int64          `json:"like_count"`
	CommentCount   int64          `json:"comment_count"`
	ViewCount      int64          `json:"view_count"`
	TakenAt        int64          `json:"taken_at"`
	MediaType      MediaType      `json:"media_type"`
	ImageVersions2 *ImageVersions `json:"image_versions2"`
	CarouselMedia  []CarouselItem `json:"carousel_media"`
}

// CaptionText returns the caption or an empty string
func (n *Node) CaptionText() string {
	if n.Caption == nil {
		return ""
	}
	return n.Caption.Text
}

// Caption holds the post text
type Caption struct {
	Text string `json:"text"`
}

// ImageVersions lists renditions, largest first
type ImageVersions struct {
	Candidates []ImageCandidate `json:"candidates"`
}

// FirstURL returns the first candidate URL, empty when there is none
func (v *ImageVersions) FirstURL() string {
	if v == nil || len(v.Candidates) == 0 {
		return ""
	}
	return v.Candidates[0].URL
}

// ImageCandidate is one rendition of an image
type ImageCandidate struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CarouselItem is one child of a carousel node
type CarouselItem struct {
	PK             ID             `json:"pk"`
	MediaType      MediaType      `json:"media_type"`
	ImageVersions2 *ImageVersions `json:"image_versions2"`
}
