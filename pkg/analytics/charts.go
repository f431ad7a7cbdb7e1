package analytics

import (
	"sort"

	"igdash/pkg/models"
)

// DefaultTrendSize is the number of points in a performance trend
const DefaultTrendSize = 12

// Distribution counts posts against reels
type Distribution struct {
	Posts int `json:"posts"`
	Reels int `json:"reels"`
}

// TrendPoint is one media item on the performance chart. PostLikes is set for
// non-video items and ReelViews for videos.
type TrendPoint struct {
	PostID    string `json:"postId"`
	Timestamp int64  `json:"timestamp"`
	PostLikes int64  `json:"postLikes"`
	ReelViews int64  `json:"reelViews"`
	Comments  int64  `json:"comments"`
	IsVideo   bool   `json:"isVideo"`
}

// ContentDistribution counts the posts and reels in page
func ContentDistribution(page models.MediaPage) Distribution {
	return Distribution{Posts: len(page.Posts), Reels: len(page.Reels)}
}

// PerformanceTrend picks the n most recent items and returns them oldest first
func PerformanceTrend(page models.MediaPage, n int) []TrendPoint {
	if n <= 0 {
		n = DefaultTrendSize
	}

	items := page.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	if len(items) > n {
		items = items[:n]
	}

	points := make([]TrendPoint, len(items))
	for i, item := range items {
		point := TrendPoint{
			PostID:    item.PostID,
			Timestamp: item.Timestamp,
			Comments:  item.Comments,
			IsVideo:   item.IsVideo,
		}
		if item.IsVideo {
			point.ReelViews = item.ViewCount
		} else {
			point.PostLikes = item.Likes
		}
		// newest first, reversed so the chart reads left to right
		points[len(items)-1-i] = point
	}
	return points
}
