package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bigendian/newswire/app/feed"
)

// runTimeout bounds a single pipeline cycle.
const runTimeout = 5 * time.Minute

// Runner executes one fetch-merge-persist cycle.
type Runner interface {
	Run(ctx context.Context) ([]feed.Item, error)
}

type SchedulerInterface interface {
	Start()
	Stop()
	TriggerRefresh() error
}

var _ SchedulerInterface = (*Scheduler)(nil)

// Scheduler drives the pipeline from a single runner goroutine: one run at
// startup, one per tick, plus on-demand runs requested via TriggerRefresh.
// The single goroutine serializes cycles, so no two runs ever overlap.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	refresh  chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		runner:   runner,
		interval: interval,
		refresh:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			case <-s.refresh:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// TriggerRefresh requests a run outside the periodic schedule. Requests
// arriving while one is already pending coalesce into a single run.
func (s *Scheduler) TriggerRefresh() error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.refresh <- struct{}{}:
	default:
	}
	return nil
}

func (s *Scheduler) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	started := time.Now()
	items, err := s.runner.Run(runCtx)
	if err != nil {
		slog.Error("Pipeline run failed", "duration", time.Since(started).String(), "error", err)
		return
	}

	slog.Info("Pipeline run finished", "duration", time.Since(started).String(), "items", len(items))
}
