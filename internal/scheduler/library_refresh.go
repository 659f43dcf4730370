// Package scheduler runs recurring maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/tasks"
)

// StaleEntrySource lists cached exercises due for a refetch.
type StaleEntrySource interface {
	GetStale(olderThan time.Time, limit int) []entities.LibraryExercise
	Count() (int64, error)
}

// TaskEnqueuer enqueues background tasks.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// Config controls how the refresh scheduler behaves.
type Config struct {
	// Schedule is a five-field cron expression.
	Schedule string

	// MaxAge is how old a cached entry may get before a refetch.
	MaxAge time.Duration

	// BatchSize caps how many refresh tasks one run enqueues.
	BatchSize int

	// RetentionDays is passed through to the cleanup task.
	RetentionDays int
}

// LibraryRefreshScheduler periodically enqueues refresh tasks for
// stale exercise cache entries and a cleanup task for dead ones.
type LibraryRefreshScheduler struct {
	library StaleEntrySource
	queue   TaskEnqueuer
	config  Config

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewLibraryRefreshScheduler creates a new scheduler instance.
func NewLibraryRefreshScheduler(library StaleEntrySource, queue TaskEnqueuer, config Config) *LibraryRefreshScheduler {
	return &LibraryRefreshScheduler{
		library: library,
		queue:   queue,
		config:  config,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *LibraryRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.config.Schedule == "" {
		log.Printf("Library refresh scheduler: no schedule configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule library refresh: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Library refresh scheduler: started with schedule '%s'", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *LibraryRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Library refresh scheduler: stopped")
}

// RunNow triggers an immediate refresh pass.
func (s *LibraryRefreshScheduler) RunNow() {
	go s.runRefresh()
}

// IsRunning returns whether the scheduler is active.
func (s *LibraryRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next refresh pass will occur.
func (s *LibraryRefreshScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runRefresh enqueues one refresh task per stale cache entry plus a
// single cleanup task.
func (s *LibraryRefreshScheduler) runRefresh() {
	maxAge := s.config.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	batch := s.config.BatchSize
	if batch <= 0 {
		batch = 50
	}

	cutoff := time.Now().Add(-maxAge)
	stale := s.library.GetStale(cutoff, batch)
	if len(stale) == 0 {
		if total, err := s.library.Count(); err == nil {
			log.Printf("Library refresh: all %d cached entries are fresh, nothing to do", total)
		}
	}

	enqueued := 0
	for _, entry := range stale {
		if entry.WgerID <= 0 {
			continue
		}
		if _, err := s.queue.Add(tasks.RefreshExerciseTask{WgerID: entry.WgerID}).Save(); err != nil {
			log.Printf("Library refresh: failed to enqueue refresh for %s: %v", entry.ID, err)
			continue
		}
		enqueued++
	}

	if _, err := s.queue.Add(tasks.CleanupLibraryTask{RetentionDays: s.config.RetentionDays}).Save(); err != nil {
		log.Printf("Library refresh: failed to enqueue cleanup: %v", err)
	}

	if enqueued > 0 {
		log.Printf("Library refresh: enqueued %d refresh tasks", enqueued)
	}
}
