package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobFunc is a unit of background work. Its error is logged, never returned
// to whoever scheduled it.
type JobFunc func(ctx context.Context) error

type Scheduler struct {
	jobs   map[string]*Job // job key -> running job
	mu     sync.RWMutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

type Job struct {
	key       string
	startedAt time.Time
	ticker    *time.Ticker
	cancel    context.CancelFunc
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Go runs fn detached from the caller. It reports false without starting
// anything when a job with the same key is still running.
func (s *Scheduler) Go(key string, fn JobFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return false
	}

	if _, exists := s.jobs[key]; exists {
		return false
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	job := &Job{key: key, startedAt: time.Now(), cancel: jobCancel}
	s.jobs[key] = job

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.remove(job)

		s.execute(jobCtx, key, fn)
	}()

	return true
}

// Every runs fn immediately and then on every tick until the key is removed
// or the scheduler stops. An existing job under the same key is replaced.
func (s *Scheduler) Every(key string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	if existing, exists := s.jobs[key]; exists {
		existing.stop()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	job := &Job{
		key:       key,
		startedAt: time.Now(),
		ticker:    time.NewTicker(interval),
		cancel:    jobCancel,
	}
	s.jobs[key] = job

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.execute(jobCtx, key, fn)
		s.run(jobCtx, job, fn)
	}()

	s.logger.Info("Scheduled periodic job", zap.String("job", key), zap.Duration("interval", interval))
}

// Remove stops the job under key, if any.
func (s *Scheduler) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, exists := s.jobs[key]; exists {
		job.stop()
		delete(s.jobs, key)
	}
}

// Stop cancels every job and waits for them to return
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cancel()

	s.mu.Lock()
	for _, job := range s.jobs {
		job.stop()
	}
	s.jobs = make(map[string]*Job)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

// GetStatus returns current scheduler status
func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.jobs))
	for key := range s.jobs {
		keys = append(keys, key)
	}

	return map[string]interface{}{
		"active_jobs": len(s.jobs),
		"jobs":        keys,
		"running":     s.ctx.Err() == nil,
	}
}

func (s *Scheduler) run(ctx context.Context, job *Job, fn JobFunc) {
	defer job.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-job.ticker.C:
			s.execute(ctx, job.key, fn)
		}
	}
}

// execute runs one job invocation, logging failures and recovering panics so
// a broken job never takes the process down.
func (s *Scheduler) execute(ctx context.Context, key string, fn JobFunc) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Background job panicked", zap.String("job", key), zap.Any("panic", r))
		}
	}()

	if err := fn(ctx); err != nil {
		s.logger.Error("Background job failed", zap.String("job", key), zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}

	s.logger.Debug("Background job finished", zap.String("job", key), zap.Duration("elapsed", time.Since(start)))
}

func (s *Scheduler) remove(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, exists := s.jobs[job.key]; exists && current == job {
		delete(s.jobs, job.key)
	}
	job.cancel()
}

func (j *Job) stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	j.cancel()
}
