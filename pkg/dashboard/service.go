// Package dashboard composes provider calls into the responses served by the API.
package dashboard

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"igdash/pkg/analytics"
	"igdash/pkg/errors"
	"igdash/pkg/logger"
	"igdash/pkg/media"
	"igdash/pkg/models"
	"igdash/pkg/provider"
)

const (
	// MsgUsernameRequired is returned when the username is blank
	MsgUsernameRequired = "Username is required in the body"

	// MsgImageURLMissing is returned when the image proxy gets no url
	MsgImageURLMissing = "Image URL parameter is missing."
)

// MediaRequest selects one page of an account's media
type MediaRequest struct {
	Username        string
	Amount          int
	PaginationToken string
}

// Service serves search, profile and media lookups
type Service struct {
	upstream   Upstream
	sampleSize int
	logger     logger.Logger
}

// NewService creates a Service. A non-positive sampleSize uses analytics.DefaultSampleSize.
func NewService(upstream Upstream, sampleSize int, log logger.Logger) *Service {
	if log == nil {
		log = logger.GetLogger()
	}
	if sampleSize <= 0 {
		sampleSize = analytics.DefaultSampleSize
	}
	return &Service{
		upstream:   upstream,
		sampleSize: sampleSize,
		logger:     log.WithField("component", "dashboard"),
	}
}

// Search finds accounts matching username
func (s *Service) Search(ctx context.Context, username string) ([]models.SearchResult, error) {
	username, err := requireUsername(username)
	if err != nil {
		return nil, err
	}

	resp, err := s.upstream.SearchUsers(ctx, username)
	if err != nil {
		s.logger.WithError(err).WithField("query", username).Error("search failed")
		return nil, err
	}

	results := media.NormalizeSearchResults(resp)
	s.logger.DebugWithFields("search completed", map[string]interface{}{
		"query":   username,
		"results": len(results),
	})
	return results, nil
}

// Profile fetches the profile and a recent media sample concurrently, then
// attaches engagement analytics. Both calls must succeed.
func (s *Service) Profile(ctx context.Context, username string) (models.Profile, error) {
	username, err := requireUsername(username)
	if err != nil {
		return models.Profile{}, err
	}

	start := time.Now()
	var (
		rawProfile *provider.Profile
		rawMedia   *provider.MediaResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.upstream.GetProfile(gctx, username)
		if err != nil {
			return err
		}
		rawProfile = p
		return nil
	})
	g.Go(func() error {
		m, err := s.upstream.GetMedia(gctx, provider.MediaQuery{Username: username, Amount: s.sampleSize})
		if err != nil {
			return err
		}
		rawMedia = m
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("username", username).Error("profile lookup failed")
		return models.Profile{}, err
	}

	profile := media.NormalizeProfile(rawProfile)
	sample := media.NewPage(rawMedia).Items()
	engagement := analytics.ComputeEngagement(profile, sample)
	analytics.ApplyEngagement(&profile, engagement)

	s.logger.InfoWithFields("profile fetched", map[string]interface{}{
		"username":    username,
		"followers":   profile.FollowersCount,
		"sample_size": len(sample),
		"avg_er":      profile.AvgER,
		"duration":    time.Since(start),
	})
	return profile, nil
}

// Media fetches one page of media split into posts and reels
func (s *Service) Media(ctx context.Context, req MediaRequest) (models.MediaPage, error) {
	username, err := requireUsername(req.Username)
	if err != nil {
		return models.MediaPage{}, err
	}

	amount := req.Amount
	if amount <= 0 {
		amount = provider.DefaultMediaAmount
	}

	resp, err := s.upstream.GetMedia(ctx, provider.MediaQuery{
		Username:        username,
		Amount:          amount,
		PaginationToken: req.PaginationToken,
	})
	if err != nil {
		s.logger.WithError(err).WithField("username", username).Error("media lookup failed")
		return models.MediaPage{}, err
	}

	page := media.NewPage(resp)
	s.logger.DebugWithFields("media page fetched", map[string]interface{}{
		"username": username,
		"posts":    len(page.Posts),
		"reels":    len(page.Reels),
		"has_next": page.HasNextPage(),
	})
	return page, nil
}

// MediaFetcher adapts Media to the accumulator's fetch signature
func (s *Service) MediaFetcher(username string, amount int) media.FetchFunc {
	return func(ctx context.Context, cursor string) (models.MediaPage, error) {
		return s.Media(ctx, MediaRequest{Username: username, Amount: amount, PaginationToken: cursor})
	}
}

// Image opens an upstream image for relaying
func (s *Service) Image(ctx context.Context, url string) (*provider.Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.Validation(MsgImageURLMissing)
	}
	img, err := s.upstream.OpenImage(ctx, url)
	if err != nil {
		s.logger.WithError(err).WithField("url", url).Warn("image fetch failed")
		return nil, err
	}
	return img, nil
}

func requireUsername(username string) (string, error) {
	username = provider.SanitizeUsername(username)
	if username == "" {
		return "", errors.Validation(MsgUsernameRequired)
	}
	return username, nil
}
