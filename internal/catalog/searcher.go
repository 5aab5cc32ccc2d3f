package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DefaultDebounce is the settling period before a queued query fires.
const DefaultDebounce = 700 * time.Millisecond

// Searcher debounces catalog queries: rapid successive calls collapse
// into one search per settling period, and a result arriving for a
// superseded query is dropped instead of overwriting the newer one.
type Searcher struct {
	client *Client
	delay  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	current string // key of the most recent query
}

// NewSearcher wraps a client with debouncing. A non-positive delay uses
// DefaultDebounce.
func NewSearcher(client *Client, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Searcher{client: client, delay: delay}
}

// Query schedules a search and delivers the outcome to deliver once the
// input settles. A newer Query supersedes a pending or in-flight one:
// its deliver callback is simply never invoked.
func (s *Searcher) Query(ctx context.Context, term, bodyPart, equipment string, deliver func([]models.Exercise, error)) {
	key := Key(term, normalizeFilter(bodyPart), normalizeFilter(equipment))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = key
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		exercises, err := s.client.Search(ctx, term, bodyPart, equipment, DefaultLimit)

		// a keystroke may have superseded this query while the search
		// was in flight
		s.mu.Lock()
		stale := s.current != key
		s.mu.Unlock()
		if stale {
			return
		}
		deliver(exercises, err)
	})
}
