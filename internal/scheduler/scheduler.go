package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// misfireGrace bounds how late a run may start. A run that missed its slot
// by more than this is skipped; the next occurrence will cover it.
const misfireGrace = 30 * time.Second

// Job is one unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type entry struct {
	job   Job
	next  func(after time.Time) time.Time
	lease time.Duration
}

// Scheduler runs jobs on their schedule with at most one live instance per
// job. The instance cap is enforced with a redis SETNX lease, so the
// guarantee holds even when several processes run the scheduler.
type Scheduler struct {
	log     *logrus.Logger
	rdb     *redis.Client
	entries []entry

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(log *logrus.Logger, rdb *redis.Client) *Scheduler {
	return &Scheduler{log: log, rdb: rdb}
}

// AddPeriodic schedules a job on a fixed cadence.
func (s *Scheduler) AddPeriodic(job Job, period time.Duration) {
	// Lease shorter than the period, so clock skew between instances can
	// never starve the next tick.
	s.entries = append(s.entries, entry{
		job:   job,
		next:  func(after time.Time) time.Time { return after.Truncate(period).Add(period) },
		lease: period * 9 / 10,
	})
}

// AddCron schedules a job by a cron expression evaluated in loc.
func (s *Scheduler) AddCron(job Job, spec string, loc *time.Location) error {
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return fmt.Errorf("bad cron spec %q: %w", spec, err)
	}
	s.entries = append(s.entries, entry{
		job:   job,
		next:  func(after time.Time) time.Time { return expr.Next(after.In(loc)) },
		lease: time.Minute,
	})
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.runLoop(ctx, e)
	}
	s.log.Infof("Scheduler started with %d jobs", len(s.entries))
}

// Stop cancels all job loops and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, e entry) {
	defer s.wg.Done()

	for {
		next := e.next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if late := time.Since(next); late > misfireGrace {
			s.log.Warnf("Job %s misfired by %s, skipping run", e.job.Name(), late)
			continue
		}
		if !s.acquireLease(ctx, e.job.Name(), e.lease) {
			continue
		}
		if err := e.job.Run(ctx); err != nil {
			s.log.Errorf("Job %s failed: %+v", e.job.Name(), err)
		}
	}
}

// acquireLease claims the per-job run lease. The lease expires on its own;
// it is never released early so a crashed run cannot be doubled within its
// window.
func (s *Scheduler) acquireLease(ctx context.Context, name string, ttl time.Duration) bool {
	key := "scheduler:lease:" + name
	ok, err := s.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		s.log.Errorf("Failed to acquire lease for %s: %+v", name, err)
		return false
	}
	return ok
}
