package media

import (
	"context"
	"errors"
	"sync"

	"igdash/pkg/models"
)

var (
	// ErrLoadInProgress is returned when LoadMore is called while another load is running
	ErrLoadInProgress = errors.New("a page load is already in progress")

	// ErrNoMorePages is returned once the last page has been loaded
	ErrNoMorePages = errors.New("no more pages to load")

	// ErrLoadDiscarded is returned when Reset ran while the load was in flight
	ErrLoadDiscarded = errors.New("accumulator was reset during the load")
)

// FetchFunc loads the page after cursor. An empty cursor means the first page.
type FetchFunc func(ctx context.Context, cursor string) (models.MediaPage, error)

// Accumulator collects consecutive media pages for one account.
// Only one load may run at a time.
type Accumulator struct {
	mu      sync.Mutex
	page    models.MediaPage
	loading bool
	loaded  bool

	// bumped by Reset so in-flight loads can tell they are stale
	generation uint64
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	a := &Accumulator{}
	a.Reset()
	return a
}

// LoadMore fetches the next page and appends it to the collected media.
// On error the collected media is left untouched. A load that finishes after
// Reset is dropped with ErrLoadDiscarded.
func (a *Accumulator) LoadMore(ctx context.Context, fetch FetchFunc) (models.MediaPage, error) {
	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return models.MediaPage{}, ErrLoadInProgress
	}
	if a.loaded && !a.page.HasNextPage() {
		a.mu.Unlock()
		return models.MediaPage{}, ErrNoMorePages
	}
	a.loading = true
	generation := a.generation
	cursor := a.page.Token()
	a.mu.Unlock()

	next, err := fetch(ctx, cursor)

	a.mu.Lock()
	defer a.mu.Unlock()
	if generation != a.generation {
		return models.MediaPage{}, ErrLoadDiscarded
	}
	a.loading = false
	if err != nil {
		return models.MediaPage{}, err
	}

	a.page = Merge(a.page, next)
	a.loaded = true
	return next, nil
}

// Page returns a copy of everything collected so far
func (a *Accumulator) Page() models.MediaPage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Merge(a.page, models.MediaPage{PaginationToken: a.page.PaginationToken})
}

// Done reports whether the last load returned no cursor
func (a *Accumulator) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded && !a.page.HasNextPage()
}

// Reset drops collected media, for example when the username changes.
// A load still in flight is discarded when it returns.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.page = models.MediaPage{Posts: []models.MediaItem{}, Reels: []models.MediaItem{}}
	a.loaded = false
	a.loading = false
	a.generation++
}
