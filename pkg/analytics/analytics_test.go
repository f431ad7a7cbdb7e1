package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdash/pkg/models"
)

func TestComputeEngagement(t *testing.T) {
	tests := []struct {
		name      string
		followers int64
		sample    []models.MediaItem
		want      models.Engagement
	}{
		{
			name:      "empty sample",
			followers: 1000,
			want:      models.Engagement{},
		},
		{
			name:      "zero followers",
			followers: 0,
			sample:    []models.MediaItem{{Likes: 10, Comments: 2}},
			want:      models.Engagement{AvgLikes: 10, AvgComments: 2},
		},
		{
			name:      "averages and rate",
			followers: 1000,
			sample: []models.MediaItem{
				{Likes: 100, Comments: 10},
				{Likes: 50, Comments: 5},
			},
			want: models.Engagement{AvgLikes: 75, AvgComments: 8, AvgER: 0.0825},
		},
		{
			name:      "rounds half up",
			followers: 10,
			sample: []models.MediaItem{
				{Likes: 1, Comments: 0},
				{Likes: 2, Comments: 1},
			},
			want: models.Engagement{AvgLikes: 2, AvgComments: 1, AvgER: 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEngagement(models.Profile{FollowersCount: tt.followers}, tt.sample)
			assert.Equal(t, tt.want.AvgLikes, got.AvgLikes)
			assert.Equal(t, tt.want.AvgComments, got.AvgComments)
			assert.InDelta(t, tt.want.AvgER, got.AvgER, 1e-9)
			assert.False(t, math.IsNaN(got.AvgER))
			assert.False(t, math.IsInf(got.AvgER, 0))
			assert.GreaterOrEqual(t, got.AvgER, 0.0)
		})
	}
}

func TestApplyEngagement(t *testing.T) {
	p := models.Profile{Username: "nasa"}
	ApplyEngagement(&p, models.Engagement{AvgLikes: 3, AvgComments: 1, AvgER: 0.5})
	assert.Equal(t, int64(3), p.AvgLikes)
	assert.Equal(t, int64(1), p.AvgComments)
	assert.Equal(t, 0.5, p.AvgER)
	assert.Equal(t, "nasa", p.Username)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{2500000, "2.5M"},
		{1000000, "1.0M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%d)", tt.in)
	}
}

func TestFormatEngagementRate(t *testing.T) {
	assert.Equal(t, "0%", FormatEngagementRate(0))
	assert.Equal(t, "12.3%", FormatEngagementRate(0.1234))
	assert.Equal(t, "150.0%", FormatEngagementRate(1.5))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hel...", TruncateText("hello", 3))
	assert.Equal(t, "🚀🚀...", TruncateText("🚀🚀🚀", 2))
	assert.Equal(t, "", TruncateText("", 5))
}

func TestExtractHashtags(t *testing.T) {
	assert.Equal(t, []string{"#space", "#Artemis_II", "#2024"}, ExtractHashtags("Liftoff! #space #Artemis_II and #2024."))
	assert.Equal(t, []string{}, ExtractHashtags("no tags here"))
}

func TestContentDistribution(t *testing.T) {
	page := models.MediaPage{
		Posts: make([]models.MediaItem, 9),
		Reels: make([]models.MediaItem, 3),
	}
	assert.Equal(t, Distribution{Posts: 9, Reels: 3}, ContentDistribution(page))
}

func TestPerformanceTrend(t *testing.T) {
	var page models.MediaPage
	for i := int64(1); i <= 10; i++ {
		page.Posts = append(page.Posts, models.MediaItem{PostID: "p", Timestamp: i * 10, Likes: i, Comments: 1})
	}
	for i := int64(1); i <= 5; i++ {
		page.Reels = append(page.Reels, models.MediaItem{PostID: "r", Timestamp: i*10 + 5, ViewCount: i * 100, Likes: 999, IsVideo: true})
	}

	points := PerformanceTrend(page, 0)
	require.Len(t, points, DefaultTrendSize)

	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Timestamp, points[i].Timestamp)
	}
	// 15 items, the three oldest (10, 15, 20) drop out
	assert.Equal(t, int64(25), points[0].Timestamp)
	assert.Equal(t, int64(100), points[len(points)-1].Timestamp)

	for _, p := range points {
		if p.IsVideo {
			assert.Zero(t, p.PostLikes)
			assert.NotZero(t, p.ReelViews)
		} else {
			assert.Zero(t, p.ReelViews)
			assert.Equal(t, p.Timestamp/10, p.PostLikes)
		}
	}
}

func TestPerformanceTrendSmallPage(t *testing.T) {
	page := models.MediaPage{Posts: []models.MediaItem{{Timestamp: 2}, {Timestamp: 1}}}
	points := PerformanceTrend(page, 5)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1), points[0].Timestamp)
	assert.Empty(t, PerformanceTrend(models.MediaPage{}, 5))
}
