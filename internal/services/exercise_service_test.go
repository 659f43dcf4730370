package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/wger"
)

type fakeCatalog struct {
	searchResult *wger.SearchResult
	searchErr    error
	detail       *wger.Exercise
	detailErr    error
	detailCalls  int
}

func (f *fakeCatalog) FetchExercises(ctx context.Context, opts wger.SearchOptions) (*wger.SearchResult, error) {
	return f.searchResult, f.searchErr
}

func (f *fakeCatalog) FetchExerciseDetail(ctx context.Context, wgerID int) (*wger.Exercise, error) {
	f.detailCalls++
	return f.detail, f.detailErr
}

func (f *fakeCatalog) FetchMuscles(ctx context.Context) ([]wger.Muscle, error) {
	return []wger.Muscle{{ID: 4, Name: "Chest"}}, nil
}

type fakeCache struct {
	entries   map[string]*entities.LibraryExercise
	upsertErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*entities.LibraryExercise{}}
}

func (f *fakeCache) UpsertEntry(entry *entities.LibraryExercise) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if entry.ID == "" {
		entry.ID = entities.LibraryID(entry.WgerID)
	}
	stored := *entry
	f.entries[entry.ID] = &stored
	return nil
}

func (f *fakeCache) GetByID(id string) (*entities.LibraryExercise, error) {
	if entry, ok := f.entries[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestSearchExercisesMirrorsIntoCache(t *testing.T) {
	catalog := &fakeCatalog{
		searchResult: &wger.SearchResult{
			Results: []wger.Exercise{
				{WgerID: 73, Name: "Bench Press", Muscles: []int{4}},
				{WgerID: 111, Name: "Incline Bench Press"},
			},
			Count: 2,
		},
	}
	cache := newFakeCache()
	svc := NewExerciseService(catalog, cache)

	results, err := svc.SearchExercises(context.Background(), wger.SearchOptions{Search: "bench"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "wger-73", results[0].ID)
	assert.Equal(t, "Bench Press", results[0].Name)
	assert.Equal(t, entities.SourceWger, results[0].Source)

	// Every hit landed in the cache
	assert.Len(t, cache.entries, 2)
	assert.Contains(t, cache.entries, "wger-73")
	assert.Contains(t, cache.entries, "wger-111")
}

func TestSearchExercisesEmptyResultWritesNothing(t *testing.T) {
	catalog := &fakeCatalog{searchResult: &wger.SearchResult{Results: []wger.Exercise{}}}
	cache := newFakeCache()
	svc := NewExerciseService(catalog, cache)

	results, err := svc.SearchExercises(context.Background(), wger.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, cache.entries)
}

func TestSearchExercisesCacheFailureIsNotFatal(t *testing.T) {
	catalog := &fakeCatalog{
		searchResult: &wger.SearchResult{
			Results: []wger.Exercise{{WgerID: 73, Name: "Bench Press"}},
		},
	}
	cache := newFakeCache()
	cache.upsertErr = errors.New("disk full")
	svc := NewExerciseService(catalog, cache)

	results, err := svc.SearchExercises(context.Background(), wger.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchExercisesRemoteFailure(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errors.New("network down")}
	svc := NewExerciseService(catalog, newFakeCache())

	_, err := svc.SearchExercises(context.Background(), wger.SearchOptions{})
	assert.Error(t, err)
}

func TestGetExerciseByIDPrefersCache(t *testing.T) {
	catalog := &fakeCatalog{detailErr: errors.New("should not be called")}
	cache := newFakeCache()
	require.NoError(t, cache.UpsertEntry(&entities.LibraryExercise{
		WgerID: 73,
		Name:   "Bench Press",
	}))
	svc := NewExerciseService(catalog, cache)

	ex, err := svc.GetExerciseByID(context.Background(), "wger-73")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", ex.Name)
	assert.Zero(t, catalog.detailCalls)
}

func TestGetExerciseByIDFetchesOnMiss(t *testing.T) {
	catalog := &fakeCatalog{
		detail: &wger.Exercise{WgerID: 73, Name: "Bench Press", Muscles: []int{4}},
	}
	cache := newFakeCache()
	svc := NewExerciseService(catalog, cache)

	ex, err := svc.GetExerciseByID(context.Background(), "wger-73")
	require.NoError(t, err)
	assert.Equal(t, "wger-73", ex.ID)
	assert.Equal(t, 1, catalog.detailCalls)

	// The fetched record was persisted for the next lookup
	assert.Contains(t, cache.entries, "wger-73")
}

func TestGetExerciseByIDInvalidID(t *testing.T) {
	svc := NewExerciseService(&fakeCatalog{}, newFakeCache())

	for _, id := range []string{"", "abc", "wger-0", "wger-abc", "-5"} {
		_, err := svc.GetExerciseByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestRefreshLibraryEntry(t *testing.T) {
	catalog := &fakeCatalog{
		detail: &wger.Exercise{WgerID: 73, Name: "Bench Press"},
	}
	cache := newFakeCache()

	entry, err := RefreshLibraryEntry(context.Background(), catalog, cache, 73)
	require.NoError(t, err)
	assert.Equal(t, "wger-73", entry.ID)
	assert.Contains(t, cache.entries, "wger-73")

	// Here a cache failure is an error, not a silent skip
	cache.upsertErr = errors.New("disk full")
	_, err = RefreshLibraryEntry(context.Background(), catalog, cache, 73)
	assert.Error(t, err)
}

func TestGetMuscles(t *testing.T) {
	svc := NewExerciseService(&fakeCatalog{}, newFakeCache())

	muscles, err := svc.GetMuscles(context.Background())
	require.NoError(t, err)
	require.Len(t, muscles, 1)
	assert.Equal(t, "Chest", muscles[0].Name)
}
