package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"igdash/pkg/config"
	"igdash/pkg/dashboard"
	"igdash/pkg/errors"
	"igdash/pkg/logger"
	"igdash/pkg/models"
	"igdash/pkg/provider"
)

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Search(ctx context.Context, username string) ([]models.SearchResult, error) {
	args := m.Called(ctx, username)
	results, _ := args.Get(0).([]models.SearchResult)
	return results, args.Error(1)
}

func (m *mockDashboard) Profile(ctx context.Context, username string) (models.Profile, error) {
	args := m.Called(ctx, username)
	profile, _ := args.Get(0).(models.Profile)
	return profile, args.Error(1)
}

func (m *mockDashboard) Media(ctx context.Context, req dashboard.MediaRequest) (models.MediaPage, error) {
	args := m.Called(ctx, req)
	page, _ := args.Get(0).(models.MediaPage)
	return page, args.Error(1)
}

func (m *mockDashboard) Image(ctx context.Context, url string) (*provider.Image, error) {
	args := m.Called(ctx, url)
	img, _ := args.Get(0).(*provider.Image)
	return img, args.Error(1)
}

type panickingDashboard struct {
	mockDashboard
}

func (p *panickingDashboard) Search(ctx context.Context, username string) ([]models.SearchResult, error) {
	panic("boom")
}

// relayPanicDashboard serves an image whose body panics after the first chunk
type relayPanicDashboard struct {
	mockDashboard
}

func (p *relayPanicDashboard) Image(ctx context.Context, url string) (*provider.Image, error) {
	return &provider.Image{Body: io.NopCloser(&panicAfterReader{data: []byte("GIF89a")}), ContentType: "image/gif"}, nil
}

type panicAfterReader struct {
	data []byte
	read bool
}

func (r *panicAfterReader) Read(p []byte) (int, error) {
	if r.read {
		panic("relay broke")
	}
	r.read = true
	return copy(p, r.data), nil
}

func testConfig(env string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "k"
	cfg.Server.Environment = env
	return cfg
}

func newTestHandler(d Dashboard, env string) (http.Handler, *logger.TestLogger) {
	log := logger.NewTestLogger()
	return NewServer(d, testConfig(env), log).Handler(), log
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestSearchBlankUsername(t *testing.T) {
	d := new(mockDashboard)
	d.On("Search", mock.Anything, "").Return(nil, errors.Validation(dashboard.MsgUsernameRequired))
	h, _ := newTestHandler(d, config.EnvProduction)

	rec := doJSON(t, h, http.MethodPost, "/api/search", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is required in the body", decodeError(t, rec))
}

func TestSearchSuccess(t *testing.T) {
	d := new(mockDashboard)
	d.On("Search", mock.Anything, "nasa").Return([]models.SearchResult{{ID: "1", ScreenName: "nasa"}}, nil)
	h, _ := newTestHandler(d, config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodPost, "/api/search", `{"username":"nasa"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var results []models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Equal(t, []models.SearchResult{{ID: "1", ScreenName: "nasa"}}, results)
}

func TestFormEncodedBody(t *testing.T) {
	d := new(mockDashboard)
	d.On("Media", mock.Anything, dashboard.MediaRequest{Username: "nasa", Amount: 24, PaginationToken: "tok"}).
		Return(models.MediaPage{Posts: []models.MediaItem{}, Reels: []models.MediaItem{}}, nil)
	h, _ := newTestHandler(d, config.EnvDevelopment)

	form := url.Values{"username": {"nasa"}, "amount": {"24"}, "pagination_token": {"tok"}}
	req := httptest.NewRequest(http.MethodPost, "/api/media", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	d.AssertExpectations(t)
}

func TestMediaAmountForms(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		amount int
	}{
		{name: "number", body: `{"username":"nasa","amount":20}`, amount: 20},
		{name: "numeric string", body: `{"username":"nasa","amount":"15"}`, amount: 15},
		{name: "absent", body: `{"username":"nasa"}`, amount: 0},
		{name: "null", body: `{"username":"nasa","amount":null}`, amount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(mockDashboard)
			d.On("Media", mock.Anything, dashboard.MediaRequest{Username: "nasa", Amount: tt.amount}).
				Return(models.MediaPage{Posts: []models.MediaItem{}, Reels: []models.MediaItem{}}, nil)
			h, _ := newTestHandler(d, config.EnvDevelopment)

			rec := doJSON(t, h, http.MethodPost, "/api/media", tt.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			d.AssertExpectations(t)
		})
	}
}

func TestInvalidBodies(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodPost, "/api/media", `{"username":"nasa","amount":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/profile", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeError(t, rec))
}

func TestMediaRejectsNonIntegralAmount(t *testing.T) {
	d := new(mockDashboard)
	h, _ := newTestHandler(d, config.EnvDevelopment)

	for _, body := range []string{
		`{"username":"nasa","amount":12.7}`,
		`{"username":"nasa","amount":1e30}`,
		`{"username":"nasa","amount":"12.7"}`,
		`{"username":"nasa","amount":"lots"}`,
	} {
		rec := doJSON(t, h, http.MethodPost, "/api/media", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "amount must be a number", decodeError(t, rec), body)
	}

	form := url.Values{"username": {"nasa"}, "amount": {"12.7"}}
	req := httptest.NewRequest(http.MethodPost, "/api/media", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount must be a number", decodeError(t, rec))
	d.AssertNotCalled(t, "Media", mock.Anything, mock.Anything)
}

func TestEmptyBodyReachesValidation(t *testing.T) {
	d := new(mockDashboard)
	d.On("Profile", mock.Anything, "").Return(models.Profile{}, errors.Validation(dashboard.MsgUsernameRequired))
	h, _ := newTestHandler(d, config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodPost, "/api/profile", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is required in the body", decodeError(t, rec))
}

func TestUpstreamErrorMessages(t *testing.T) {
	upstreamErr := errors.UpstreamStatus(429, "Too Many Requests")

	t.Run("development passes message through", func(t *testing.T) {
		d := new(mockDashboard)
		d.On("Profile", mock.Anything, "nasa").Return(models.Profile{}, upstreamErr)
		h, _ := newTestHandler(d, config.EnvDevelopment)

		rec := doJSON(t, h, http.MethodPost, "/api/profile", `{"username":"nasa"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "API Error: 429 - Too Many Requests", decodeError(t, rec))
	})

	t.Run("production hides message", func(t *testing.T) {
		d := new(mockDashboard)
		d.On("Profile", mock.Anything, "nasa").Return(models.Profile{}, upstreamErr)
		h, _ := newTestHandler(d, config.EnvProduction)

		rec := doJSON(t, h, http.MethodPost, "/api/profile", `{"username":"nasa"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeError(t, rec))
	})
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "Method not allowed", decodeError(t, rec))
}

func TestNotFound(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodGet, "/nope?x=1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body notFoundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Route /nope?x=1 not found", body.Message)
	assert.Contains(t, body.AvailableRoutes, "POST /api/media")
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvProduction)

	rec := doJSON(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "production", body.Environment)
	assert.GreaterOrEqual(t, body.Uptime, 0.0)
	assert.True(t, strings.HasSuffix(body.Timestamp, "Z"))
}

func TestMetricsRoute(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvDevelopment)
	doJSON(t, h, http.MethodGet, "/health", "")

	rec := doJSON(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "igdash_http_requests_total")

	cfg := testConfig(config.EnvDevelopment)
	cfg.Metrics.Enabled = false
	disabled := NewServer(new(mockDashboard), cfg, logger.NewNopLogger()).Handler()
	rec = doJSON(t, disabled, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImageProxy(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		d := new(mockDashboard)
		d.On("Image", mock.Anything, "").Return(nil, errors.Validation(dashboard.MsgImageURLMissing))
		h, _ := newTestHandler(d, config.EnvDevelopment)

		rec := doJSON(t, h, http.MethodGet, "/image-proxy", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Image URL parameter is missing.", decodeError(t, rec))
	})

	t.Run("fetch failure", func(t *testing.T) {
		d := new(mockDashboard)
		d.On("Image", mock.Anything, "https://cdn/x.jpg").Return(nil, errors.UpstreamStatus(403, "Forbidden"))
		h, _ := newTestHandler(d, config.EnvDevelopment)

		rec := doJSON(t, h, http.MethodGet, "/image-proxy?url="+url.QueryEscape("https://cdn/x.jpg"), "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to fetch the image.", decodeError(t, rec))
	})

	t.Run("relays bytes and content type", func(t *testing.T) {
		d := new(mockDashboard)
		d.On("Image", mock.Anything, "https://cdn/x.jpg").Return(&provider.Image{
			Body:          io.NopCloser(strings.NewReader("PNGDATA")),
			ContentType:   "image/png",
			ContentLength: 7,
		}, nil)
		h, _ := newTestHandler(d, config.EnvDevelopment)

		rec := doJSON(t, h, http.MethodGet, "/image-proxy?url="+url.QueryEscape("https://cdn/x.jpg"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "PNGDATA", rec.Body.String())
		assert.Empty(t, rec.Header().Get("Cross-Origin-Resource-Policy"))
	})
}

func TestMiddlewareHeaders(t *testing.T) {
	h, _ := newTestHandler(new(mockDashboard), config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	d := new(mockDashboard)
	h, _ := newTestHandler(d, config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	d.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestPanicRecovery(t *testing.T) {
	h, log := newTestHandler(&panickingDashboard{}, config.EnvDevelopment)

	rec := doJSON(t, h, http.MethodPost, "/api/search", `{"username":"nasa"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec))
	assert.True(t, log.HasMessage("panic while serving request"))
}

func TestPanicAfterResponseStarted(t *testing.T) {
	h, log := newTestHandler(&relayPanicDashboard{}, config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodGet, "/image-proxy?url="+url.QueryEscape("https://cdn.example.com/a.gif"), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	assert.Equal(t, "GIF89a", rec.Body.String())

	panics := log.GetMessagesByLevel("ERROR")
	require.NotEmpty(t, panics)
	var found bool
	for _, msg := range panics {
		if msg.Message == "panic while serving request" {
			found = true
			assert.Equal(t, true, msg.Fields["response_started"])
		}
	}
	assert.True(t, found)
}

func TestAccessLogLevels(t *testing.T) {
	d := new(mockDashboard)
	d.On("Search", mock.Anything, "").Return(nil, errors.Validation(dashboard.MsgUsernameRequired))
	h, log := newTestHandler(d, config.EnvDevelopment)

	doJSON(t, h, http.MethodGet, "/health", "")
	doJSON(t, h, http.MethodPost, "/api/search", `{}`)

	assert.True(t, log.HasMessage("HTTP request completed"))
	warns := log.GetMessagesByLevel("WARN")
	require.NotEmpty(t, warns)
	assert.Equal(t, 400, warns[len(warns)-1].Fields["status_code"])
	assert.NotEmpty(t, warns[len(warns)-1].Fields["request_id"])
}
