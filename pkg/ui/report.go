package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"igdash/pkg/analytics"
	"igdash/pkg/models"
)

const (
	barWidth       = 30
	topPostCount   = 5
	captionPreview = 60
)

// Report is everything the inspect command shows for one account
type Report struct {
	Profile models.Profile
	Media   models.MediaPage
	Pages   int
}

// RenderReport writes the account summary, content mix, trend and top posts to w
func RenderReport(w io.Writer, r Report) {
	s := newStyles(w)

	sections := []string{
		renderHeader(s, r.Profile),
		renderStats(s, r.Profile),
		renderDistribution(s, analytics.ContentDistribution(r.Media)),
		renderTrend(s, analytics.PerformanceTrend(r.Media, analytics.DefaultTrendSize)),
		renderTopPosts(s, r.Media),
		s.dim.Render(fmt.Sprintf("%d media items from %d page(s)", len(r.Media.Posts)+len(r.Media.Reels), r.Pages)),
	}
	fmt.Fprintln(w, strings.Join(sections, s.sectionGap))
}

func renderHeader(s styles, p models.Profile) string {
	name := p.Name
	if name == "" {
		name = p.Username
	}
	title := s.title.Render(fmt.Sprintf("%s (@%s)", name, p.Username))
	if p.IsVerified {
		title += " " + s.success.Render("verified")
	}
	if p.IsPrivate {
		title += " " + s.warning.Render("private")
	}

	lines := []string{title}
	if p.Category != "" {
		lines = append(lines, s.subtitle.Render(p.Category))
	}
	if p.Description != "" {
		lines = append(lines, p.Description)
	}
	if p.ExternalURL != "" {
		lines = append(lines, s.dim.Render(p.ExternalURL))
	}
	return s.panel.Render(strings.Join(lines, "\n"))
}

func renderStats(s styles, p models.Profile) string {
	row := func(label, value string) string {
		return s.label.Render(label) + s.value.Render(value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		row("Followers", analytics.FormatNumber(p.FollowersCount)),
		row("Following", analytics.FormatNumber(p.FollowingCount)),
		row("Posts", analytics.FormatNumber(p.PostsCount)),
		row("Avg likes", analytics.FormatNumber(p.AvgLikes)),
		row("Avg comments", analytics.FormatNumber(p.AvgComments)),
		row("Engagement", analytics.FormatEngagementRate(p.AvgER)),
	)
}

func renderDistribution(s styles, d analytics.Distribution) string {
	total := d.Posts + d.Reels
	bar := func(count int) string {
		if total == 0 {
			return ""
		}
		return strings.Repeat("█", count*barWidth/total)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Content mix"),
		s.barLabel.Render("Posts")+s.barPosts.Render(bar(d.Posts))+fmt.Sprintf(" %d", d.Posts),
		s.barLabel.Render("Reels")+s.barReels.Render(bar(d.Reels))+fmt.Sprintf(" %d", d.Reels),
	)
}

func renderTrend(s styles, points []analytics.TrendPoint) string {
	lines := []string{s.title.Render("Recent performance")}
	if len(points) == 0 {
		return strings.Join(append(lines, s.dim.Render("no media")), "\n")
	}

	var max int64
	for _, p := range points {
		if v := trendValue(p); v > max {
			max = v
		}
	}

	for _, p := range points {
		value := trendValue(p)
		width := 0
		if max > 0 {
			width = int(value * barWidth / max)
		}
		style, kind := s.barPosts, "likes"
		if p.IsVideo {
			style, kind = s.barReels, "views"
		}
		date := time.Unix(p.Timestamp, 0).UTC().Format("2006-01-02")
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			s.dim.Render(date),
			style.Render(strings.Repeat("▇", width)),
			analytics.FormatNumber(value),
			s.dim.Render(fmt.Sprintf("%s, %s comments", kind, analytics.FormatNumber(p.Comments))),
		))
	}
	return strings.Join(lines, "\n")
}

func trendValue(p analytics.TrendPoint) int64 {
	if p.IsVideo {
		return p.ReelViews
	}
	return p.PostLikes
}

func renderTopPosts(s styles, page models.MediaPage) string {
	items := page.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Interactions > items[j].Interactions
	})
	if len(items) > topPostCount {
		items = items[:topPostCount]
	}

	lines := []string{s.title.Render("Top posts")}
	for i, item := range items {
		caption := analytics.TruncateText(strings.ReplaceAll(item.Caption, "\n", " "), captionPreview)
		lines = append(lines, fmt.Sprintf("%d. %s %s",
			i+1,
			s.value.Render(analytics.FormatNumber(item.Interactions)+" interactions"),
			s.dim.Render(item.PostURL),
		))
		if caption != "" {
			lines = append(lines, "   "+caption)
		}
		if tags := analytics.ExtractHashtags(item.Caption); len(tags) > 0 {
			lines = append(lines, "   "+s.subtitle.Render(strings.Join(tags, " ")))
		}
	}
	return strings.Join(lines, "\n")
}
