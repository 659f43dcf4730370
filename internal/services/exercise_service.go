// Package services composes repositories and remote clients into the
// operations the state and HTTP layers consume.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/wger"
)

// ErrInvalidID marks a catalog lookup with a malformed local ID.
var ErrInvalidID = errors.New("invalid exercise id")

// ExerciseService merges the remote wger catalog with the local
// exercise_library cache.
//
// Search is remote-first: results come straight from the API and are
// mirrored into the cache as a side channel. Lookup by ID is
// local-first: the cache answers immediately and only a miss goes to
// the network.
type ExerciseService struct {
	catalog CatalogClient
	cache   LibraryCache
}

// NewExerciseService creates the cache-aside exercise service.
func NewExerciseService(catalog CatalogClient, cache LibraryCache) *ExerciseService {
	return &ExerciseService{catalog: catalog, cache: cache}
}

// SearchExercises fetches one page of catalog records and mirrors each
// hit into the local cache. Cache writes are best-effort: a failed
// upsert is logged and never fails the search. An empty remote result
// set writes nothing.
func (s *ExerciseService) SearchExercises(ctx context.Context, opts wger.SearchOptions) ([]entities.LibraryExercise, error) {
	res, err := s.catalog.FetchExercises(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}

	results := make([]entities.LibraryExercise, 0, len(res.Results))
	for _, remote := range res.Results {
		entry := toLibraryEntry(remote)
		if err := s.cache.UpsertEntry(&entry); err != nil {
			log.Printf("exercise cache upsert failed for %s: %v", entry.ID, err)
		}
		results = append(results, entry)
	}
	return results, nil
}

// GetExerciseByID resolves a local library ID ("wger-<n>"), preferring
// the cache; on a miss it fetches the detail from the catalog and
// persists it best-effort before returning.
func (s *ExerciseService) GetExerciseByID(ctx context.Context, localID string) (*entities.LibraryExercise, error) {
	if cached, err := s.cache.GetByID(localID); err == nil {
		return cached, nil
	}

	wgerID, err := parseLibraryID(localID)
	if err != nil {
		return nil, err
	}

	detail, err := s.catalog.FetchExerciseDetail(ctx, wgerID)
	if err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", localID, err)
	}

	entry := toLibraryEntry(*detail)
	if err := s.cache.UpsertEntry(&entry); err != nil {
		log.Printf("exercise cache persist failed for %s: %v", entry.ID, err)
	}
	return &entry, nil
}

// GetMuscles returns the catalog's muscle taxonomy. The list is small
// and was never cached locally.
func (s *ExerciseService) GetMuscles(ctx context.Context) ([]wger.Muscle, error) {
	return s.catalog.FetchMuscles(ctx)
}

// RefreshLibraryEntry refetches one exercise from the catalog and
// overwrites the cached copy. Unlike the search path the write here
// is not best-effort: callers retry on failure.
func RefreshLibraryEntry(ctx context.Context, catalog CatalogClient, cache LibraryCache, wgerID int) (*entities.LibraryExercise, error) {
	detail, err := catalog.FetchExerciseDetail(ctx, wgerID)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise %d: %w", wgerID, err)
	}

	entry := toLibraryEntry(*detail)
	if err := cache.UpsertEntry(&entry); err != nil {
		return nil, fmt.Errorf("persist exercise %s: %w", entry.ID, err)
	}
	return &entry, nil
}

func toLibraryEntry(remote wger.Exercise) entities.LibraryExercise {
	name := strings.TrimSpace(remote.Name)
	if name == "" {
		name = fmt.Sprintf("Exercise %d", remote.WgerID)
	}
	entry := entities.LibraryExercise{
		ID:          entities.LibraryID(remote.WgerID),
		WgerID:      remote.WgerID,
		Name:        name,
		Description: remote.Description,
		Muscles:     remote.Muscles,
		Equipment:   remote.Equipment,
		Images:      remote.Images,
		Videos:      []string{},
		Source:      entities.SourceWger,
		LastFetched: time.Now(),
	}
	if entry.Muscles == nil {
		entry.Muscles = []int{}
	}
	if entry.Equipment == nil {
		entry.Equipment = []int{}
	}
	if entry.Images == nil {
		entry.Images = []string{}
	}
	return entry
}

func parseLibraryID(localID string) (int, error) {
	raw := strings.TrimPrefix(localID, "wger-")
	wgerID, err := strconv.Atoi(raw)
	if err != nil || wgerID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, localID)
	}
	return wgerID, nil
}
