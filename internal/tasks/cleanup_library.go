package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	log "github.com/sirupsen/logrus"
)

// LibraryCleaner provides the ability to drop long-unused catalog entries.
type LibraryCleaner interface {
	DeleteStale(olderThan time.Time) (int64, error)
}

// CleanupLibraryTask removes cached exercises that have not been
// refetched within the configured retention period.
type CleanupLibraryTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for library cleanup tasks.
func (t CleanupLibraryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_library",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupLibraryProcessor creates a processor function for CleanupLibraryTask.
func CleanupLibraryProcessor(cleaner LibraryCleaner) backlite.QueueProcessor[CleanupLibraryTask] {
	return func(ctx context.Context, task CleanupLibraryTask) error {
		if cleaner == nil {
			return fmt.Errorf("library cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)

		deleted, err := cleaner.DeleteStale(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup exercise library: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d cached exercises older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupLibraryQueue creates a backlite queue for library cleanup tasks.
func NewCleanupLibraryQueue(cleaner LibraryCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupLibraryProcessor(cleaner))
}
