package provider

import (
	"context"
	"fmt"
	"strings"
)

const (
	// InstagramBaseURL is used to build public post links
	InstagramBaseURL = "https://www.instagram.com"

	// SearchEndpoint finds accounts matching a query
	SearchEndpoint = "/search_ig.php"

	// ProfileEndpoint returns a single account profile
	ProfileEndpoint = "/ig_get_fb_profile_v3.php"

	// PostsEndpoint returns one page of an account's media
	PostsEndpoint = "/get_ig_user_posts.php"

	// DefaultMediaAmount is the page size when the caller does not pick one
	DefaultMediaAmount = 12
)

// MediaQuery selects one page of media
type MediaQuery struct {
	Username        string
	Amount          int
	PaginationToken string
}

// SanitizeUsername trims whitespace and a leading @
func SanitizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// PostURL builds the public link for a post shortcode
func PostURL(code string) string {
	return fmt.Sprintf("%s/p/%s/", InstagramBaseURL, code)
}

// SearchUsers queries accounts by name
func (c *Client) SearchUsers(ctx context.Context, query string) (*SearchResponse, error) {
	var response SearchResponse
	if err := c.Call(ctx, SearchEndpoint, Fields{"search_query": query}, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetProfile fetches an account profile
func (c *Client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	if err := c.Call(ctx, ProfileEndpoint, Fields{"username_or_url": username}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMedia fetches one page of media. Amount falls back to DefaultMediaAmount
// and the token is only sent when set.
func (c *Client) GetMedia(ctx context.Context, q MediaQuery) (*MediaResponse, error) {
	amount := q.Amount
	if amount <= 0 {
		amount = DefaultMediaAmount
	}

	fields := Fields{
		"username_or_url": q.Username,
		"amount":          amount,
	}
	if q.PaginationToken != "" {
		fields["pagination_token"] = q.PaginationToken
	}

	var response MediaResponse
	if err := c.Call(ctx, PostsEndpoint, fields, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
