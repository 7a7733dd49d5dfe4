// Package lazyload runs gateway fetches as Bubble Tea commands with
// bounded retry. A screen starts a Loader, receives LoadedMsg on success,
// RetryingMsg while attempts remain, and FailedMsg once they run out; the
// user can then trigger a fresh round manually.
package lazyload

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// MaxAttempts is how many times a fetch runs before giving up.
	MaxAttempts = 3
	// baseDelay is the wait before the second attempt. It doubles after
	// each further failure: 500ms, then 1s.
	baseDelay = 500 * time.Millisecond
)

// Delay returns the backoff after the given failed attempt (1-based).
func Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << (attempt - 1)
}

// Fetch loads a value from the gateway.
type Fetch[T any] func(ctx context.Context) (T, error)

// LoadedMsg delivers a successful fetch.
type LoadedMsg[T any] struct {
	Tag     string
	Value   T
	Attempt int
}

// RetryingMsg reports a failed attempt that will be retried. The screen
// shows it and resumes the loader; the delay has not elapsed yet.
type RetryingMsg struct {
	Tag     string
	Attempt int // the attempt that failed, 1-based
	Delay   time.Duration
	Err     error
}

// FailedMsg reports that every attempt failed.
type FailedMsg struct {
	Tag      string
	Attempts int
	Err      error
}

// Loader retries one fetch with exponential backoff. It carries no mutable
// state, so the commands it returns are safe to run concurrently with the
// update loop.
type Loader[T any] struct {
	ctx   context.Context
	tag   string
	fetch Fetch[T]
}

// New builds a loader. The tag is echoed in every message so screens with
// several loaders can tell them apart.
func New[T any](ctx context.Context, tag string, fetch Fetch[T]) *Loader[T] {
	return &Loader[T]{ctx: ctx, tag: tag, fetch: fetch}
}

// Tag returns the loader's message tag.
func (l *Loader[T]) Tag() string {
	return l.tag
}

// Start returns the command for the first attempt.
func (l *Loader[T]) Start() tea.Cmd {
	return l.attempt(1, 0)
}

// Resume schedules the attempt after a RetryingMsg, honoring its delay.
func (l *Loader[T]) Resume(r RetryingMsg) tea.Cmd {
	return l.attempt(r.Attempt+1, r.Delay)
}

func (l *Loader[T]) attempt(n int, wait time.Duration) tea.Cmd {
	return func() tea.Msg {
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-l.ctx.Done():
				t.Stop()
				return FailedMsg{Tag: l.tag, Attempts: n - 1, Err: l.ctx.Err()}
			case <-t.C:
			}
		}

		v, err := l.fetch(l.ctx)
		if err == nil {
			return LoadedMsg[T]{Tag: l.tag, Value: v, Attempt: n}
		}
		if n >= MaxAttempts || l.ctx.Err() != nil {
			return FailedMsg{Tag: l.tag, Attempts: n, Err: err}
		}
		return RetryingMsg{Tag: l.tag, Attempt: n, Delay: Delay(n), Err: err}
	}
}
