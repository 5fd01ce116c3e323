package services

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// CounterTarget is a stat string split into its animated number and the
// verbatim suffix, e.g. "500+" -> {500, "+"}.
type CounterTarget struct {
	Number int    `json:"number"`
	Suffix string `json:"suffix"`
}

var leadingDigits = regexp.MustCompile(`^(\d+)(.*)$`)

// ParseTarget matches a leading run of digits. Without one the whole string
// becomes the suffix and the number is zero.
func ParseTarget(raw string) CounterTarget {
	m := leadingDigits.FindStringSubmatch(raw)
	if m == nil {
		return CounterTarget{Suffix: raw}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// digit run too long for int
		return CounterTarget{Suffix: raw}
	}
	return CounterTarget{Number: n, Suffix: m[2]}
}

// Display renders a frame value. A zero target never shows a number.
func (t CounterTarget) Display(value int) string {
	if t.Number == 0 {
		return t.Suffix
	}
	return strconv.Itoa(value) + t.Suffix
}

// EaseOutQuart is 1-(1-t)^4 with t clamped to [0,1].
func EaseOutQuart(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(1-t, 4)
}

// CounterValue is the frame value after elapsed of duration. It reaches
// number exactly once elapsed >= duration and never exceeds it.
func CounterValue(number int, elapsed, duration time.Duration) int {
	if number <= 0 {
		return 0
	}
	if duration <= 0 || elapsed >= duration {
		return number
	}
	v := int(math.Floor(EaseOutQuart(float64(elapsed)/float64(duration)) * float64(number)))
	if v > number {
		return number
	}
	return v
}

// CounterState is a snapshot of an animator.
type CounterState struct {
	Current   int        `json:"current"`
	Target    int        `json:"target"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	Visible   bool       `json:"visible"`
}

// CounterOptions tunes an animator. Zero values use 2s and 16ms.
type CounterOptions struct {
	Duration time.Duration
	Tick     time.Duration
	Now      func() time.Time
}

// CounterAnimator drives one counter toward its target while visible. It
// owns at most one timer goroutine; losing visibility or Stop cancels the
// timer, waits for it to exit and resets the value to zero.
type CounterAnimator struct {
	mu        sync.Mutex
	target    CounterTarget
	duration  time.Duration
	tick      time.Duration
	now       func() time.Time
	onFrame   func(value int)
	current   int
	startedAt time.Time
	visible   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewCounterAnimator parses raw and prepares an idle animator. onFrame is
// called from the timer goroutine with each new value; it may be nil.
func NewCounterAnimator(raw string, opts CounterOptions, onFrame func(value int)) *CounterAnimator {
	if opts.Duration <= 0 {
		opts.Duration = 2000 * time.Millisecond
	}
	if opts.Tick <= 0 {
		opts.Tick = 16 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CounterAnimator{
		target:   ParseTarget(raw),
		duration: opts.Duration,
		tick:     opts.Tick,
		now:      opts.Now,
		onFrame:  onFrame,
	}
}

// Target returns the parsed target.
func (a *CounterAnimator) Target() CounterTarget {
	return a.target
}

// SetVisible feeds the visibility signal. Becoming visible starts a run from
// zero under ctx; becoming invisible cancels it and resets to zero. Calls
// must come from a single goroutine.
func (a *CounterAnimator) SetVisible(ctx context.Context, visible bool) {
	a.mu.Lock()
	if visible == a.visible {
		a.mu.Unlock()
		return
	}
	a.visible = visible
	a.mu.Unlock()

	if !visible {
		a.halt()
		a.emit(0)
		return
	}
	a.start(ctx)
}

// Stop cancels any running timer. The animator may be reused afterwards.
func (a *CounterAnimator) Stop() {
	a.mu.Lock()
	a.visible = false
	a.mu.Unlock()
	a.halt()
}

// State returns a snapshot.
func (a *CounterAnimator) State() CounterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := CounterState{Current: a.current, Target: a.target.Number, Visible: a.visible}
	if !a.startedAt.IsZero() {
		started := a.startedAt
		st.StartedAt = &started
	}
	return st
}

// Running reports whether a timer goroutine is active.
func (a *CounterAnimator) Running() bool {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (a *CounterAnimator) start(parent context.Context) {
	a.halt()

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	a.mu.Lock()
	a.cancel = cancel
	a.done = done
	a.current = 0
	a.startedAt = a.now()
	startedAt := a.startedAt
	a.mu.Unlock()

	if a.target.Number <= 0 {
		a.finish(done, 0)
		return
	}

	go a.run(ctx, done, startedAt)
}

func (a *CounterAnimator) run(ctx context.Context, done chan struct{}, startedAt time.Time) {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			value := CounterValue(a.target.Number, a.now().Sub(startedAt), a.duration)
			if ctx.Err() != nil {
				return
			}
			a.emit(value)
			if value >= a.target.Number {
				return
			}
		}
	}
}

func (a *CounterAnimator) finish(done chan struct{}, value int) {
	a.emit(value)
	close(done)
}

// halt cancels the active run and waits for its goroutine to exit.
func (a *CounterAnimator) halt() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	a.mu.Lock()
	if !a.visible {
		a.current = 0
		a.startedAt = time.Time{}
	}
	a.mu.Unlock()
}

func (a *CounterAnimator) emit(value int) {
	a.mu.Lock()
	a.current = value
	cb := a.onFrame
	a.mu.Unlock()
	if cb != nil {
		cb(value)
	}
}
