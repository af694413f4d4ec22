package vanity

import "sync/atomic"

// Token is the cancellation primitive shared by every worker of one
// logical search. It is level-triggered: once stopped it stays stopped
// until Reset. Workers observe it at iteration boundaries only, so a
// worker mid-derivation always finishes its current candidate.
//
// A Token belongs to exactly one in-flight search; concurrent searches
// must use independent tokens to avoid cross-talk.
type Token struct {
	stopped atomic.Bool
}

// NewToken returns a token in the running (not stopped) state.
func NewToken() *Token {
	return &Token{}
}

// Stop requests cancellation. Idempotent; also set by the first worker to
// succeed, to halt its siblings.
func (t *Token) Stop() {
	t.stopped.Store(true)
}

// Stopped reports whether cancellation was requested.
func (t *Token) Stopped() bool {
	return t.stopped.Load()
}

// Reset rearms the token for a new search.
func (t *Token) Reset() {
	t.stopped.Store(false)
}
