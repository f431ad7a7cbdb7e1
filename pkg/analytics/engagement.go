// Package analytics derives engagement figures and chart data from media samples.
package analytics

import (
	"math"

	"igdash/pkg/models"
)

// DefaultSampleSize is how many recent media items the profile analytics look at.
// Averages are an approximation over this sample, not the full history.
const DefaultSampleSize = 20

// ComputeEngagement averages likes and comments over sample and divides the
// mean interactions by the follower count. Every figure is 0 when the sample
// is empty, and the rate is 0 when there are no followers.
func ComputeEngagement(profile models.Profile, sample []models.MediaItem) models.Engagement {
	count := len(sample)
	if count == 0 {
		return models.Engagement{}
	}

	var totalLikes, totalComments int64
	for _, item := range sample {
		totalLikes += item.Likes
		totalComments += item.Comments
	}

	avgLikes := float64(totalLikes) / float64(count)
	avgComments := float64(totalComments) / float64(count)

	engagement := models.Engagement{
		AvgLikes:    int64(math.Round(avgLikes)),
		AvgComments: int64(math.Round(avgComments)),
	}

	if profile.FollowersCount > 0 {
		rate := float64(totalLikes+totalComments) / float64(count) / float64(profile.FollowersCount)
		if !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate > 0 {
			engagement.AvgER = rate
		}
	}
	return engagement
}

// ApplyEngagement copies e onto p
func ApplyEngagement(p *models.Profile, e models.Engagement) {
	p.AvgLikes = e.AvgLikes
	p.AvgComments = e.AvgComments
	p.AvgER = e.AvgER
}
