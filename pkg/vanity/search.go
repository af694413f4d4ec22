package vanity

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxWorkers caps the worker pool so a search does not starve
// shared hosts; the workload is CPU-bound curve arithmetic.
const DefaultMaxWorkers = 4

// DefaultWorkers returns min(available parallelism, DefaultMaxWorkers).
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > DefaultMaxWorkers {
		n = DefaultMaxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Searcher orchestrates one logical search at a time: it fans workers out
// over the encoding fallback sequence, collects the first success, and
// classifies the outcome. Create one Searcher (and one Token) per
// concurrent search; they share no state with each other.
type Searcher struct {
	keys      KeySource
	workers   int
	encodings []Encoding

	attempts  uint64
	startTime time.Time
}

// NewSearcher creates a searcher running the given number of parallel
// workers. Zero or negative selects the default bounded pool; 1 gives the
// single-threaded mode.
func NewSearcher(workers int) *Searcher {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Searcher{
		keys:      NewKeySource(),
		workers:   workers,
		encodings: Encodings,
	}
}

// Workers returns the size of the worker pool.
func (s *Searcher) Workers() int {
	return s.workers
}

// Stats returns the current performance statistics. Safe to call from any
// goroutine while a search runs.
func (s *Searcher) Stats() Stats {
	attempts := atomic.LoadUint64(&s.attempts)
	elapsed := time.Since(s.startTime).Seconds()

	var rate float64
	if elapsed > 0 {
		rate = float64(attempts) / elapsed
	}

	return Stats{
		Attempts:    attempts,
		KeysPerSec:  rate,
		ElapsedSecs: elapsed,
	}
}

// Generate runs the full search: validate criteria, reset the token, then
// for each encoding in order launch the worker pool with the full budget
// and block until it drains. The first worker to write the result slot
// wins; the token halts its siblings.
//
// The returned error is non-nil only for entropy or derivation failure,
// an environment problem no retry can fix. Every search result, including
// rejection and exhaustion, arrives as a structured Outcome.
func (s *Searcher) Generate(ctx context.Context, token *Token, prefix, suffix string, maxTries uint64) (Outcome, error) {
	criteria := NormalizeCriteria(prefix, suffix)
	if err := criteria.Validate(); err != nil {
		return Outcome{Kind: Rejected, Reason: err.Error()}, nil
	}
	if maxTries == 0 {
		return Outcome{Kind: Rejected, Reason: "max tries must be positive"}, nil
	}

	token.Reset()
	s.startTime = time.Now()
	atomic.StoreUint64(&s.attempts, 0)
	start := s.startTime

	// Bridge context cancellation onto the token so an external stop can
	// come through either. An already-cancelled context stops the search
	// before any worker launches.
	if ctx != nil {
		if ctx.Err() != nil {
			token.Stop()
		} else {
			watchDone := make(chan struct{})
			defer close(watchDone)
			go func() {
				select {
				case <-ctx.Done():
					token.Stop()
				case <-watchDone:
				}
			}()
		}
	}

	matcher := NewMatcher(criteria)

	for _, enc := range s.encodings {
		if token.Stopped() {
			return Outcome{Kind: Stopped, Tries: atomic.LoadUint64(&s.attempts), Elapsed: time.Since(start)}, nil
		}

		// Result slot: capacity 1, only the first send is consumed.
		results := make(chan match, 1)
		errs := make(chan error, s.workers)

		var wg sync.WaitGroup
		for i := 0; i < s.workers; i++ {
			w := &worker{
				keys:     s.keys,
				matcher:  matcher,
				encoding: enc,
				maxTries: maxTries,
				token:    token,
				results:  results,
				attempts: &s.attempts,
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.run(start); err != nil {
					token.Stop()
					errs <- err
				}
			}()
		}
		wg.Wait()

		select {
		case err := <-errs:
			return Outcome{}, err
		default:
		}

		select {
		case m := <-results:
			return Outcome{
				Kind:       Found,
				Address:    m.address,
				PrivateKey: m.privateKey,
				WIF:        m.wif,
				Encoding:   m.encoding,
				Tries:      m.tries,
				Elapsed:    m.elapsed,
			}, nil
		default:
		}

		// The token only tells us to stop, not why. No result landed, so
		// this round was cut short externally rather than won.
		if token.Stopped() {
			return Outcome{Kind: Stopped, Tries: atomic.LoadUint64(&s.attempts), Elapsed: time.Since(start)}, nil
		}
	}

	return Outcome{Kind: Exhausted, Tries: atomic.LoadUint64(&s.attempts), Elapsed: time.Since(start)}, nil
}
