package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"igdash/internal/metrics"
	"igdash/pkg/config"
	"igdash/pkg/errors"
	"igdash/pkg/logger"
)

const imageEndpoint = "image"

// Fields are sent as an application/x-www-form-urlencoded body
type Fields map[string]interface{}

// Client talks to the scraping provider
type Client struct {
	httpClient *http.Client
	apiKey     string
	host       string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a provider client from cfg
func NewClient(cfg config.ProviderConfig, log logger.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, log)
}

// NewClientWithHTTP creates a provider client with a caller-supplied http.Client
func NewClientWithHTTP(cfg config.ProviderConfig, httpClient *http.Client, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://" + cfg.Host
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
		baseURL:    baseURL,
		logger:     log.WithField("component", "provider"),
	}
}

// Call posts fields to endpoint and decodes the JSON answer into target
func (c *Client) Call(ctx context.Context, endpoint string, fields Fields, target interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(endpoint, outcome(err), start)
	}()

	form := url.Values{}
	for key, value := range fields {
		form.Set(key, fmt.Sprint(value))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.RequestSetup(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NoResponse(err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse provider response", map[string]interface{}{
			"endpoint":     endpoint,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errors.Parsing(err)
	}

	return nil
}

// Image is an open upstream image stream. Callers must close Body.
type Image struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// OpenImage fetches rawURL with a plain GET, without provider headers
func (c *Client) OpenImage(ctx context.Context, rawURL string) (img *Image, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(imageEndpoint, outcome(err), start)
	}()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.RequestSetup(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.RequestSetup(fmt.Errorf("unsupported URL scheme %q", u.Scheme))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.RequestSetup(err)
	}

	resp, err := c.do(req, imageEndpoint)
	if err != nil {
		return nil, err
	}

	return &Image{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

// do sends req and turns transport failures and non-2xx answers into typed errors.
// On success the caller owns resp.Body.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	c.logger.DebugWithFields("sending provider request", map[string]interface{}{
		"method":   req.Method,
		"endpoint": endpoint,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("provider request failed", map[string]interface{}{
			"method":   req.Method,
			"endpoint": endpoint,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.NoResponse(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		c.logger.WarnWithFields("provider returned an error status", map[string]interface{}{
			"method":   req.Method,
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"duration": duration,
		})
		return nil, errors.UpstreamStatus(resp.StatusCode, statusText(resp))
	}

	c.logger.DebugWithFields("provider request completed", map[string]interface{}{
		"method":   req.Method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// statusText returns the reason phrase the server sent, or the standard one
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(errors.TypeOf(err))
}
