package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/phenrril/monochrome/internal/domain"
)

// Searcher is the slice of the catalog a search session needs.
type Searcher interface {
	SearchProducts(ctx context.Context, query string) []domain.Product
}

// SearchResult pairs a delivered result set with the query that produced it.
type SearchResult struct {
	Query    string
	Products []domain.Product
}

// SearchSession debounces keystroke-level query updates and discards stale
// responses: only results for the most recently submitted query are ever
// delivered, regardless of the order provider responses arrive in.
type SearchSession struct {
	searcher Searcher
	debounce time.Duration
	results  chan SearchResult

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

func NewSearchSession(searcher Searcher, debounce time.Duration) *SearchSession {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &SearchSession{
		searcher: searcher,
		debounce: debounce,
		results:  make(chan SearchResult, 1),
	}
}

// Submit registers a new query, superseding any pending one. The search runs
// only after the debounce window passes without a newer submission.
func (s *SearchSession) Submit(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	mine := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, mine, query)
	})
}

func (s *SearchSession) run(ctx context.Context, mine uint64, query string) {
	if s.current() != mine {
		return
	}
	products := s.searcher.SearchProducts(ctx, query)
	if s.current() != mine {
		return
	}

	// Latest wins: an unconsumed older result is dropped, not queued behind.
	for {
		select {
		case s.results <- SearchResult{Query: query, Products: products}:
			return
		default:
			select {
			case <-s.results:
			default:
			}
		}
	}
}

// Results delivers at most the freshest result per submission burst.
func (s *SearchSession) Results() <-chan SearchResult { return s.results }

// Close cancels any pending debounce. Submissions after Close are not expected.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchSession) current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}
