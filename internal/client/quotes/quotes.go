// Package quotes rotates the motivational line shown above the shell prompt.
package quotes

import (
	"context"
	"sync"
	"time"
)

// Builtin is the default rotation.
var Builtin = []string{
	"Success is not the finish line and failure is not the end; the courage to keep going is what counts.",
	"Every day is a new beginning. Embrace change and meet the challenge.",
	"Your time is limited, so don't waste it living someone else's life.",
	"Believe you can do it and you are already halfway there.",
	"Every great dream has a humble beginning.",
	"Life is like riding a bicycle: to keep your balance you must keep moving.",
	"Don't wait for opportunity. Create it.",
	"The secret of success is being a little better than yesterday, every day.",
	"Effort does not guarantee success, but giving up guarantees failure.",
	"Only those who keep looking for chances catch them in time.",
}

// Rotator cycles through a fixed list of quotes. It is safe for concurrent use.
type Rotator struct {
	mu     sync.RWMutex
	quotes []string
	idx    int
}

// NewRotator returns a rotator over quotes, falling back to Builtin when the
// list is empty.
func NewRotator(quotes ...string) *Rotator {
	if len(quotes) == 0 {
		quotes = Builtin
	}
	return &Rotator{quotes: append([]string(nil), quotes...)}
}

func (r *Rotator) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quotes[r.idx]
}

// Next advances to the following quote, wrapping around, and returns it.
func (r *Rotator) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = (r.idx + 1) % len(r.quotes)
	return r.quotes[r.idx]
}

// Run advances the rotator every interval until ctx is done.
func (r *Rotator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Next()
		case <-ctx.Done():
			return
		}
	}
}
