package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/services"
)

// RefreshExerciseTask refetches a single cached exercise from the
// remote catalog so the local copy does not go stale.
type RefreshExerciseTask struct {
	WgerID int `json:"wger_id"`
}

// Config returns the queue configuration for exercise refresh tasks.
func (t RefreshExerciseTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_exercise",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshExerciseProcessor creates a processor function for RefreshExerciseTask.
func RefreshExerciseProcessor(catalog services.CatalogClient, cache services.LibraryCache) backlite.QueueProcessor[RefreshExerciseTask] {
	return func(ctx context.Context, task RefreshExerciseTask) error {
		if catalog == nil || cache == nil {
			return fmt.Errorf("exercise refresh not configured")
		}

		entry, err := services.RefreshLibraryEntry(ctx, catalog, cache, task.WgerID)
		if err != nil {
			return fmt.Errorf("refresh exercise %d: %w", task.WgerID, err)
		}

		log.Printf("[TASK] Refreshed exercise %s (%s)", entry.ID, entry.Name)
		return nil
	}
}

// NewRefreshExerciseQueue creates a backlite queue for exercise refresh tasks.
func NewRefreshExerciseQueue(catalog services.CatalogClient, cache services.LibraryCache) backlite.Queue {
	return backlite.NewQueue(RefreshExerciseProcessor(catalog, cache))
}
