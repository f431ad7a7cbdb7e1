package media

import (
	"encoding/json"

	"igdash/pkg/models"
	"igdash/pkg/provider"
)

// NormalizeSearchResults maps provider search entries to dashboard results.
// Entries without a user object are skipped.
func NormalizeSearchResults(resp *provider.SearchResponse) []models.SearchResult {
	results := make([]models.SearchResult, 0)
	if resp == nil {
		return results
	}

	for _, entry := range resp.Users {
		if entry.User == nil {
			continue
		}
		results = append(results, models.SearchResult{
			ID:         entry.User.PK.String(),
			Name:       entry.User.FullName,
			Image:      entry.User.ProfilePicURL,
			ScreenName: entry.User.Username,
		})
	}
	return results
}

// NormalizeProfile maps a provider profile with zero analytics
func NormalizeProfile(p *provider.Profile) models.Profile {
	if p == nil {
		return models.Profile{BioLinks: []json.RawMessage{}}
	}

	bioLinks := p.BioLinks
	if bioLinks == nil {
		bioLinks = []json.RawMessage{}
	}

	return models.Profile{
		ID:             p.PK.String(),
		Username:       p.Username,
		Name:           p.FullName,
		Image:          p.ProfilePicURL,
		Description:    p.Biography,
		FollowersCount: p.FollowerCount,
		FollowingCount: p.FollowingCount,
		PostsCount:     p.MediaCount,
		IsVerified:     p.IsVerified,
		IsPrivate:      p.IsPrivate,
		ExternalURL:    p.ExternalURL,
		Category:       p.Category,
		BioLinks:       bioLinks,
	}
}

// NormalizeMediaItem maps one node. It returns false for a missing node.
func NormalizeMediaItem(node *provider.Node) (models.MediaItem, bool) {
	if node == nil {
		return models.MediaItem{}, false
	}

	item := models.MediaItem{
		PostID:     node.PK.String(),
		Type:       node.ProductType,
		PostURL:    provider.PostURL(node.Code),
		Caption:    node.CaptionText(),
		Likes:      node.LikeCount,
		Comments:   node.CommentCount,
		ViewCount:  node.ViewCount,
		Timestamp:  node.TakenAt,
		DisplayURL: displayURL(node),
		IsVideo:    node.MediaType.IsVideo(),
	}

	if node.MediaType.Kind() == provider.MediaTypeCarousel && len(node.CarouselMedia) > 0 {
		item.CarouselMedia = make([]models.CarouselChild, 0, len(node.CarouselMedia))
		for _, child := range node.CarouselMedia {
			item.CarouselMedia = append(item.CarouselMedia, models.CarouselChild{
				ID:      child.PK.String(),
				URL:     child.ImageVersions2.FirstURL(),
				IsVideo: child.MediaType.IsVideo(),
			})
		}
	}

	item.Interactions = item.Likes + item.Comments
	return item, true
}

// displayURL prefers the node's own image, then the first carousel child's
func displayURL(node *provider.Node) string {
	if u := node.ImageVersions2.FirstURL(); u != "" {
		return u
	}
	if len(node.CarouselMedia) > 0 {
		return node.CarouselMedia[0].ImageVersions2.FirstURL()
	}
	return ""
}
