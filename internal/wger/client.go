// Package wger fetches exercise catalog data from the wger REST API
// (https://wger.de/api/v2). The API is consumed read-only; callers cache
// results through the exercise library repository.
package wger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// englishLanguageID is wger's identifier for English translations.
const englishLanguageID = 2

// fetchLimit is how many exercises a single catalog request asks for.
// Search filtering and pagination happen client-side because the
// exerciseinfo endpoint has no name filter.
const fetchLimit = 200

// Exercise is a catalog record reduced to the fields the app uses.
type Exercise struct {
	WgerID      int      `json:"wger_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Muscles     []int    `json:"muscles"`
	Equipment   []int    `json:"equipment"`
	Images      []string `json:"images"`
}

// Muscle is an entry of the catalog's muscle taxonomy.
type Muscle struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchOptions narrows a catalog fetch.
type SearchOptions struct {
	Search string // case-insensitive substring match on name/description
	Muscle int    // wger muscle ID, 0 = any
	Page   int    // 1-based
	Limit  int    // page size
}

// SearchResult is one page of catalog records.
type SearchResult struct {
	Results []Exercise `json:"results"`
	Count   int        `json:"count"`
	HasMore bool       `json:"has_more"`
}

// Client fetches exercise data from the wger API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a new wger API client with rate limiting.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://wger.de/api/v2"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: newRateLimiter(time.Second),
	}
}

// FetchExercises retrieves one page of catalog records, keeping only
// exercises with an English translation. Search terms are matched
// against names and descriptions after fetching.
func (c *Client) FetchExercises(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprint(fetchLimit))
	if opts.Muscle > 0 {
		params.Set("muscles", fmt.Sprint(opts.Muscle))
	}

	var payload exerciseInfoList
	if err := c.getJSON(ctx, "/exerciseinfo/?"+params.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}

	exercises := make([]Exercise, 0, len(payload.Results))
	for _, raw := range payload.Results {
		ex, ok := convertExercise(raw)
		if !ok {
			continue
		}
		exercises = append(exercises, ex)
	}

	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		filtered := exercises[:0]
		for _, ex := range exercises {
			if strings.Contains(strings.ToLower(ex.Name), needle) ||
				strings.Contains(strings.ToLower(ex.Description), needle) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	start := (page - 1) * limit
	end := start + limit
	var pageItems []Exercise
	if start < len(exercises) {
		if end > len(exercises) {
			end = len(exercises)
		}
		pageItems = exercises[start:end]
	} else {
		pageItems = []Exercise{}
	}

	return &SearchResult{
		Results: pageItems,
		Count:   len(exercises),
		HasMore: len(exercises) > end,
	}, nil
}

// FetchExerciseDetail retrieves a single exercise plus its image URLs.
func (c *Client) FetchExerciseDetail(ctx context.Context, wgerID int) (*Exercise, error) {
	if wgerID <= 0 {
		return nil, fmt.Errorf("invalid wger exercise id %d", wgerID)
	}

	var raw exerciseInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/exerciseinfo/%d/", wgerID), &raw); err != nil {
		return nil, fmt.Errorf("fetch exercise %d: %w", wgerID, err)
	}

	ex, ok := convertExercise(raw)
	if !ok {
		return nil, fmt.Errorf("exercise %d has no English translation", wgerID)
	}

	// Image fetch is best-effort; a detail without images is still useful.
	var images exerciseImageList
	if err := c.getJSON(ctx, fmt.Sprintf("/exerciseimage/?exercise_base=%d", wgerID), &images); err == nil {
		for _, img := range images.Results {
			if img.Image == "" {
				continue
			}
			u := img.Image
			if !strings.HasPrefix(u, "http") {
				u = "https://wger.de" + u
			}
			ex.Images = append(ex.Images, u)
		}
	}

	return &ex, nil
}

// FetchMuscles retrieves the muscle taxonomy, sorted by name.
func (c *Client) FetchMuscles(ctx context.Context) ([]Muscle, error) {
	var payload muscleList
	if err := c.getJSON(ctx, "/muscle/?limit=200", &payload); err != nil {
		return nil, fmt.Errorf("fetch muscles: %w", err)
	}

	muscles := make([]Muscle, 0, len(payload.Results))
	for _, m := range payload.Results {
		muscles = append(muscles, Muscle{ID: m.ID, Name: m.Name})
	}
	sort.Slice(muscles, func(i, j int) bool { return muscles[i].Name < muscles[j].Name })
	return muscles, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	c.rateLimiter.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "FitComp/1.0 (https://github.com/mlahtinen/fitcomp)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	nbspPattern = regexp.MustCompile(`&nbsp;`)
)

// stripHTML removes markup from wger's rich-text descriptions.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = nbspPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// convertExercise reduces a raw API record to an Exercise, picking the
// English translation. Records without one are skipped.
func convertExercise(raw exerciseInfo) (Exercise, bool) {
	var name, description string
	found := false
	for _, tr := range raw.Translations {
		if tr.Language == englishLanguageID {
			name = strings.TrimSpace(tr.Name)
			description = stripHTML(tr.Description)
			found = true
			break
		}
	}
	if !found {
		return Exercise{}, false
	}
	if name == "" {
		name = fmt.Sprintf("Exercise %d", raw.ID)
	}

	return Exercise{
		WgerID:      raw.ID,
		Name:        name,
		Description: description,
		Muscles:     idsOf(raw.Muscles),
		Equipment:   idsOf(raw.Equipment),
		Images:      []string{},
	}, true
}

func idsOf(refs []idRef) []int {
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

// Wire types for the subset of the wger API responses the client reads.

type exerciseInfoList struct {
	Results []exerciseInfo `json:"results"`
}

type exerciseInfo struct {
	ID           int           `json:"id"`
	Muscles      []idRef       `json:"muscles"`
	Equipment    []idRef       `json:"equipment"`
	Translations []translation `json:"translations"`
}

type translation struct {
	Language    int    `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// idRef accepts both shapes the API uses for muscle/equipment lists:
// full objects ({"id": 4, ...}) and bare numeric IDs.
type idRef struct {
	ID int `json:"id"`
}

func (r *idRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && trimmed[0] != '{' {
		return json.Unmarshal(data, &r.ID)
	}
	type alias idRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	r.ID = a.ID
	return nil
}

type exerciseImageList struct {
	Results []exerciseImage `json:"results"`
}

type exerciseImage struct {
	Image string `json:"image"`
}

type muscleList struct {
	Results []Muscle `json:"results"`
}
