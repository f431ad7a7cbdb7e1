package media

import (
	"igdash/pkg/models"
	"igdash/pkg/provider"
)

// Classify splits edges into posts and reels, keeping upstream order.
// Videos are reels. Photos, carousels and unknown codes are posts.
func Classify(edges []provider.Edge) (posts, reels []models.MediaItem) {
	posts = make([]models.MediaItem, 0, len(edges))
	reels = make([]models.MediaItem, 0)

	for _, edge := range edges {
		item, ok := NormalizeMediaItem(edge.Node)
		if !ok {
			continue
		}

		switch edge.Node.MediaType.Kind() {
		case provider.MediaTypeVideo:
			reels = append(reels, item)
		case provider.MediaTypePhoto, provider.MediaTypeCarousel, provider.MediaTypeUnknown:
			posts = append(posts, item)
		}
	}
	return posts, reels
}

// NewPage builds a media page from one provider response
func NewPage(resp *provider.MediaResponse) models.MediaPage {
	if resp == nil {
		return models.MediaPage{Posts: []models.MediaItem{}, Reels: []models.MediaItem{}}
	}

	posts, reels := Classify(resp.Posts)
	page := models.MediaPage{Posts: posts, Reels: reels}
	if resp.PaginationToken != "" {
		token := resp.PaginationToken
		page.PaginationToken = &token
	}
	return page
}

// Merge appends next after prev and takes next's cursor. Neither input is modified.
func Merge(prev, next models.MediaPage) models.MediaPage {
	merged := models.MediaPage{
		Posts: make([]models.MediaItem, 0, len(prev.Posts)+len(next.Posts)),
		Reels: make([]models.MediaItem, 0, len(prev.Reels)+len(next.Reels)),
	}
	merged.Posts = append(append(merged.Posts, prev.Posts...), next.Posts...)
	merged.Reels = append(append(merged.Reels, prev.Reels...), next.Reels...)

	if next.PaginationToken != nil {
		token := *next.PaginationToken
		merged.PaginationToken = &token
	}
	return merged
}
