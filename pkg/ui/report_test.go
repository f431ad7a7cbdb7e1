package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"igdash/pkg/models"
)

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, Report{
		Profile: models.Profile{
			Username:       "nasa",
			Name:           "NASA",
			IsVerified:     true,
			FollowersCount: 2500000,
			AvgLikes:       1500,
			AvgER:          0.1234,
		},
		Media: models.MediaPage{
			Posts: []models.MediaItem{
				{PostURL: "https://www.instagram.com/p/A/", Caption: "Liftoff #space #artemis", Likes: 900, Interactions: 950, Timestamp: 1700000000},
			},
			Reels: []models.MediaItem{
				{PostURL: "https://www.instagram.com/p/B/", ViewCount: 5000, IsVideo: true, Interactions: 10, Timestamp: 1700000100},
			},
		},
		Pages: 1,
	})

	out := buf.String()
	assert.Contains(t, out, "NASA (@nasa)")
	assert.Contains(t, out, "verified")
	assert.Contains(t, out, "2.5M")
	assert.Contains(t, out, "1.5K")
	assert.Contains(t, out, "12.3%")
	assert.Contains(t, out, "Content mix")
	assert.Contains(t, out, "https://www.instagram.com/p/A/")
	assert.Contains(t, out, "#space #artemis")
	assert.Contains(t, out, "2 media items from 1 page(s)")
}

func TestRenderReportEmptyMedia(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, Report{Profile: models.Profile{Username: "quiet"}})
	assert.Contains(t, buf.String(), "no media")
	assert.Contains(t, buf.String(), "0%")
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Success("saved")
	p.Error("failed", errors.New("disk full"))
	p.Info("Store", "keyring")

	out := buf.String()
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "failed: disk full")
	assert.Contains(t, out, "keyring")
}
