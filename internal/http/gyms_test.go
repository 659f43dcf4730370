package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/overpass"
)

type fakeGymSearcher struct {
	gyms []overpass.Gym
	err  error
}

func (f *fakeGymSearcher) SearchNearby(_ context.Context, _, _, _ float64) ([]overpass.Gym, error) {
	return f.gyms, f.err
}

func (f *fakeGymSearcher) SearchByName(_ context.Context, _ string, _, _, _ float64) ([]overpass.Gym, error) {
	return f.gyms, f.err
}

type fakeFavoriteStore struct {
	gyms map[string]entities.FavoriteGym
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{gyms: map[string]entities.FavoriteGym{}}
}

func (f *fakeFavoriteStore) SaveFavorite(gym *entities.FavoriteGym) error {
	f.gyms[gym.ID] = *gym
	return nil
}

func (f *fakeFavoriteStore) RemoveFavorite(gymID string) error {
	delete(f.gyms, gymID)
	return nil
}

func (f *fakeFavoriteStore) GetAllFavorites() []entities.FavoriteGym {
	out := make([]entities.FavoriteGym, 0, len(f.gyms))
	for _, g := range f.gyms {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeFavoriteStore) IsFavorited(gymID string) bool {
	_, ok := f.gyms[gymID]
	return ok
}

func setupGymsRouter(searcher GymSearcher, favorites FavoriteGymStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{
		Version:     "test",
		GymSearcher: searcher,
		Favorites:   favorites,
	})
}

func TestGymsController_Nearby(t *testing.T) {
	searcher := &fakeGymSearcher{gyms: []overpass.Gym{
		{ID: "osm-1", Name: "Kamppi Training Club", Distance: 0.3},
		{ID: "osm-2", Name: "Töölö Gym", Distance: 1.2},
	}}
	favorites := newFakeFavoriteStore()
	require.NoError(t, favorites.SaveFavorite(&entities.FavoriteGym{ID: "osm-2", Name: "Töölö Gym"}))
	router := setupGymsRouter(searcher, favorites)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/gyms/nearby?lat=60.17&lng=24.94", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Gyms []struct {
			ID         string `json:"id"`
			IsFavorite bool   `json:"is_favorite"`
		} `json:"gyms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Gyms, 2)
	assert.False(t, body.Gyms[0].IsFavorite)
	assert.True(t, body.Gyms[1].IsFavorite)
}

func TestGymsController_NearbyRequiresCoordinates(t *testing.T) {
	router := setupGymsRouter(&fakeGymSearcher{}, newFakeFavoriteStore())

	for _, uri := range []string{
		"/api/gyms/nearby",
		"/api/gyms/nearby?lat=60.17",
		"/api/gyms/nearby?lat=abc&lng=24.94",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", uri, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, uri)
	}
}

func TestGymsController_NearbySearchFailure(t *testing.T) {
	router := setupGymsRouter(&fakeGymSearcher{err: errors.New("overpass timeout")}, newFakeFavoriteStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/gyms/nearby?lat=60.17&lng=24.94", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGymsController_SearchRequiresQuery(t *testing.T) {
	router := setupGymsRouter(&fakeGymSearcher{}, newFakeFavoriteStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/gyms/search?lat=60.17&lng=24.94", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/gyms/search?q=elixia&lat=60.17&lng=24.94", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGymsController_FavoritesLifecycle(t *testing.T) {
	favorites := newFakeFavoriteStore()
	router := setupGymsRouter(&fakeGymSearcher{}, favorites)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/gyms/favorites",
		strings.NewReader(`{"id": "osm-1", "name": "Kamppi Training Club", "latitude": 60.17, "longitude": 24.94}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, favorites.IsFavorited("osm-1"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/gyms/favorites", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Gyms []entities.FavoriteGym `json:"gyms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Gyms, 1)
	assert.Equal(t, "Kamppi Training Club", body.Gyms[0].Name)
	assert.NotNil(t, body.Gyms[0].Facilities)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/gyms/favorites/osm-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, favorites.IsFavorited("osm-1"))
}

func TestGymsController_SaveFavoriteValidation(t *testing.T) {
	router := setupGymsRouter(&fakeGymSearcher{}, newFakeFavoriteStore())

	for _, payload := range []string{
		`{}`,
		`{"id": "osm-1"}`,
		`{"name": "Kamppi Training Club"}`,
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/gyms/favorites", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, payload)
	}
}
