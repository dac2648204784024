package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DuePostProcessor defines the interface for dispatching due posts
type DuePostProcessor interface {
	ProcessDuePosts(ctx context.Context) error
}

// Scheduler periodically dispatches scheduled posts whose time has come
type Scheduler struct {
	processor DuePostProcessor
	interval  time.Duration
	logger    *slog.Logger
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// New creates a new dispatch scheduler
func New(processor DuePostProcessor, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		processor: processor,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("dispatch scheduler started", "interval", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop stops the scheduler and waits for the loop to exit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("dispatch scheduler stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.process(ctx)

	for {
		select {
		case <-ticker.C:
			s.process(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) process(ctx context.Context) {
	s.logger.Debug("checking for due posts")

	if err := s.processor.ProcessDuePosts(ctx); err != nil {
		s.logger.Error("failed to process due posts", "error", err)
	}
}
