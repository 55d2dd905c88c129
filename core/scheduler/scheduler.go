package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-manager/core/reconcile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Config holds the cron specs of the periodic jobs. An empty spec disables the job.
type Config struct {
	// ImportCron schedules the catalog sync.
	ImportCron string `mapstructure:"import_cron" default:"0 3 * * *"`
	// ReconcileCron schedules the reconciliation pass.
	ReconcileCron string `mapstructure:"reconcile_cron" default:"0 5 * * *"`
}

// JobFunc is a scheduled unit of work.
type JobFunc func(ctx context.Context) error

// Scheduler runs jobs on cron specs. A job still running when its next tick fires is
// skipped, and jobs sharing the run lock never overlap each other.
type Scheduler struct {
	cron   *cron.Cron
	lock   *reconcile.RunLock
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	jobs   map[string]cron.EntryID
}

// New creates a scheduler. lock is shared with any manual entry point that must not
// run concurrently with scheduled jobs.
func New(lock *reconcile.RunLock, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lock == nil {
		lock = &reconcile.RunLock{}
	}
	cl := cronLogger{logger.Named("cron").Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		lock:   lock,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Add schedules fn under name. An empty spec leaves the job unscheduled.
func (s *Scheduler) Add(name, spec string, fn JobFunc) error {
	if spec == "" {
		s.logger.Info("Job disabled", zap.String("job", name))
		return nil
	}
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s is already scheduled", name)
	}
	id, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	if err != nil {
		return fmt.Errorf("could not schedule job %s: %w", name, err)
	}
	s.jobs[name] = id
	s.logger.Info("Job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) run(name string, fn JobFunc) {
	start := time.Now()
	err := s.lock.TryRun(name, func() error { return fn(s.ctx) })
	switch {
	case errors.Is(err, reconcile.ErrAlreadyRunning):
		s.logger.Warn("Job skipped, another run is in progress",
			zap.String("job", name), zap.String("running", s.lock.Running()))
	case err != nil:
		s.logger.Error("Job failed", zap.String("job", name), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
	default:
		s.logger.Info("Job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
	}
}

// Next returns the next activation of a scheduled job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	id, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	e := s.cron.Entry(id)
	if e.Next.IsZero() {
		// Not started yet.
		return e.Schedule.Next(time.Now()), true
	}
	return e.Next, true
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
