package vanity

import (
	"sync/atomic"
	"time"
)

// match is what a successful worker writes into the shared result slot.
type match struct {
	address    string
	privateKey string
	wif        string
	encoding   Encoding
	tries      uint64
	elapsed    time.Duration
}

// worker runs the sequential search loop for a single encoding: draw a
// key, derive, test, until a match, budget exhaustion, or cancellation.
type worker struct {
	keys     KeySource
	matcher  *Matcher
	encoding Encoding
	maxTries uint64
	token    *Token
	results  chan<- match
	attempts *uint64 // shared aggregate counter
}

// run executes the loop. It returns a non-nil error only for entropy or
// derivation failure, which is fatal to the whole search; a clean exit
// (cancelled or budget exhausted) returns nil and reports nothing.
//
// The results channel has capacity 1 and the send is non-blocking: the
// first writer wins and later writers fall through to the default case.
// Two workers matching on the same iteration before either observes the
// token is a tolerated race; one result lands, the other is dropped.
func (w *worker) run(start time.Time) error {
	for tries := uint64(0); tries < w.maxTries; tries++ {
		if w.token.Stopped() {
			return nil
		}

		priv, err := w.keys.Next()
		if err != nil {
			return err
		}
		addr := Derive(priv, w.encoding)
		atomic.AddUint64(w.attempts, 1)

		if !w.matcher.Matches(addr.Encoded) {
			continue
		}

		wif, err := PrivateKeyWIF(priv)
		if err != nil {
			return err
		}
		select {
		case w.results <- match{
			address:    addr.Encoded,
			privateKey: PrivateKeyHex(priv),
			wif:        wif,
			encoding:   w.encoding,
			tries:      tries + 1,
			elapsed:    time.Since(start),
		}:
			w.token.Stop()
		default:
		}
		return nil
	}
	return nil
}
