package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	domainservices "github.com/AtRiskMedia/sitecraft-go/internal/domain/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// CounterFrame is one animation step of one stat counter. Generation
// identifies the Sync or Reload that created the animator.
type CounterFrame struct {
	Index      int    `json:"index"`
	Value      int    `json:"value"`
	Display    string `json:"display"`
	Generation int    `json:"-"`
}

// CounterStreamService creates per-connection counter sessions.
type CounterStreamService struct {
	duration time.Duration
	tick     time.Duration
	logger   *logging.ChanneledLogger
}

func NewCounterStreamService(duration, tick time.Duration, logger *logging.ChanneledLogger) *CounterStreamService {
	return &CounterStreamService{duration: duration, tick: tick, logger: logger}
}

// NewSession starts an empty session bound to ctx. send is called from
// animator goroutines and must not block.
func (s *CounterStreamService) NewSession(ctx context.Context, send func(CounterFrame)) *CounterSession {
	return &CounterSession{
		ctx:    ctx,
		send:   send,
		opts:   domainservices.CounterOptions{Duration: s.duration, Tick: s.tick},
		logger: s.logger,
	}
}

// CounterSession owns one animator per stat for a single viewer.
type CounterSession struct {
	mu        sync.Mutex
	ctx       context.Context
	send      func(CounterFrame)
	opts      domainservices.CounterOptions
	animators []*domainservices.CounterAnimator
	stats     []website.Stat
	gen       int
	closed    bool
	logger    *logging.ChanneledLogger
}

// Sync replaces the animators with fresh ones for stats. Running
// animators are stopped first, so frames for stale targets end here.
func (cs *CounterSession) Sync(stats []website.Stat) []domainservices.CounterTarget {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.replaceLocked(stats, nil)
}

// Reload swaps in new stats after a configuration change. Counters that
// were on screen restart toward their new target without waiting for the
// viewer to report visibility again. changed is false when stats match the
// current ones, in which case nothing is touched.
func (cs *CounterSession) Reload(stats []website.Stat) (targets []domainservices.CounterTarget, changed bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.closed || slices.Equal(cs.stats, stats) {
		return nil, false
	}
	visible := make([]bool, len(cs.animators))
	for i, a := range cs.animators {
		visible[i] = a.State().Visible
	}
	return cs.replaceLocked(stats, visible), true
}

// Generation counts Sync and Reload calls. Frames carry the generation of
// the animator that produced them.
func (cs *CounterSession) Generation() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.gen
}

func (cs *CounterSession) replaceLocked(stats []website.Stat, visible []bool) []domainservices.CounterTarget {
	cs.stopLocked()
	if cs.closed {
		return nil
	}

	cs.gen++
	gen := cs.gen
	cs.stats = slices.Clone(stats)
	targets := make([]domainservices.CounterTarget, len(stats))
	cs.animators = make([]*domainservices.CounterAnimator, len(stats))
	for i, st := range stats {
		target := domainservices.ParseTarget(st.Value)
		cs.animators[i] = domainservices.NewCounterAnimator(st.Value, cs.opts, func(value int) {
			cs.send(CounterFrame{Index: i, Value: value, Display: target.Display(value), Generation: gen})
		})
		targets[i] = target
	}
	for i, a := range cs.animators {
		if i < len(visible) && visible[i] {
			a.SetVisible(cs.ctx, true)
		}
	}
	return targets
}

// SetVisible forwards a visibility change for one counter.
func (cs *CounterSession) SetVisible(index int, visible bool) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.closed {
		return fmt.Errorf("counter session closed")
	}
	if index < 0 || index >= len(cs.animators) {
		return fmt.Errorf("counter index %d out of range", index)
	}
	cs.animators[index].SetVisible(cs.ctx, visible)
	return nil
}

// States snapshots every animator.
func (cs *CounterSession) States() []domainservices.CounterState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]domainservices.CounterState, len(cs.animators))
	for i, a := range cs.animators {
		out[i] = a.State()
	}
	return out
}

// Close stops every animator and waits for their goroutines.
func (cs *CounterSession) Close() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.stopLocked()
	cs.closed = true
}

func (cs *CounterSession) stopLocked() {
	for _, a := range cs.animators {
		a.Stop()
	}
	cs.animators = nil
}
