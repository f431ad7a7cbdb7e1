package models

import "encoding/json"

type SearchResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	ScreenName string `json:"screenName"`
}

// Profile is the dashboard view of an account, including engagement analytics
type Profile struct {
	ID             string            `json:"id"`
	Username       string            `json:"username"`
	Name           string            `json:"name"`
	Image          string            `json:"image"`
	Description    string            `json:"description"`
	FollowersCount int64             `json:"followersCount"`
	FollowingCount int64             `json:"followingCount"`
	PostsCount     int64             `json:"postsCount"`
	IsVerified     bool              `json:"is_verified"`
	IsPrivate      bool              `json:"is_private"`
	ExternalURL    string            `json:"external_url"`
	Category       string            `json:"category"`
	BioLinks       []json.RawMessage `json:"bio_links"`
	AvgLikes       int64             `json:"avgLikes"`
	AvgComments    int64             `json:"avgComments"`
	AvgER          float64           `json:"avgER"`
}

type Engagement struct {
	AvgLikes    int64
	AvgComments int64
	AvgER       float64
}

type MediaItem struct {
	PostID        string          `json:"postId"`
	Type          string          `json:"type"`
	PostURL       string          `json:"postUrl"`
	Caption       string          `json:"caption"`
	Likes         int64           `json:"likes"`
	Comments      int64           `json:"comments"`
	ViewCount     int64           `json:"viewCount"`
	Timestamp     int64           `json:"timestamp"`
	DisplayURL    string          `json:"displayUrl,omitempty"`
	IsVideo       bool            `json:"isVideo"`
	CarouselMedia []CarouselChild `json:"carouselMedia,omitempty"`
	Interactions  int64           `json:"interactions"`
}

type CarouselChild struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	IsVideo bool   `json:"isVideo"`
}

// MediaPage is one or more merged pages of media, split into posts and reels.
// PaginationToken is nil when there is nothing more to load.
type MediaPage struct {
	Posts           []MediaItem `json:"posts"`
	Reels           []MediaItem `json:"reels"`
	PaginationToken *string     `json:"pagination_token"`
}

// HasNextPage reports whether another page can be requested
func (p MediaPage) HasNextPage() bool {
	return p.PaginationToken != nil && *p.PaginationToken != ""
}

// Token returns the cursor, empty when there is none
func (p MediaPage) Token() string {
	if p.PaginationToken == nil {
		return ""
	}
	return *p.PaginationToken
}

// Items returns posts followed by reels
func (p MediaPage) Items() []MediaItem {
	items := make([]MediaItem, 0, len(p.Posts)+len(p.Reels))
	items = append(items, p.Posts...)
	return append(items, p.Reels...)
}
