package services

import (
	"context"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/wger"
)

// CatalogClient is the remote exercise catalog consumed by
// ExerciseService. *wger.Client satisfies it.
type CatalogClient interface {
	FetchExercises(ctx context.Context, opts wger.SearchOptions) (*wger.SearchResult, error)
	FetchExerciseDetail(ctx context.Context, wgerID int) (*wger.Exercise, error)
	FetchMuscles(ctx context.Context) ([]wger.Muscle, error)
}

// LibraryCache is the local exercise_library persistence consumed by
// ExerciseService. *library.Repository satisfies it.
type LibraryCache interface {
	UpsertEntry(entry *entities.LibraryExercise) error
	GetByID(id string) (*entities.LibraryExercise, error)
}
