// Package overpass finds gyms near a position via the OpenStreetMap
// Overpass API. Results are plain records; only explicitly starred gyms
// are ever persisted, by the gyms repository.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	// maxDistanceKm drops results the bounding box over-fetched.
	maxDistanceKm = 25.0
	// maxResults caps a nearby search.
	maxResults = 20
	// earthRadiusKm for haversine.
	earthRadiusKm = 6371.0
	// kmPerLatDegree approximates one degree of latitude.
	kmPerLatDegree = 111.0
)

// Gym is a single search hit.
type Gym struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Address    string   `json:"address"`
	Distance   float64  `json:"distance"` // km from the search position
	Facilities []string `json:"facilities"`
}

// Client queries the Overpass interpreter endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Overpass client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://overpass-api.de/api/interpreter"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// SearchNearby returns gyms within radiusKm of the position, sorted by
// distance, at most 20.
func (c *Client) SearchNearby(ctx context.Context, lat, lng, radiusKm float64) ([]Gym, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	gyms, err := c.search(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	if len(gyms) > maxResults {
		gyms = gyms[:maxResults]
	}
	return gyms, nil
}

// SearchByName returns gyms around the position whose name or address
// contains the query, case-insensitively.
func (c *Client) SearchByName(ctx context.Context, query string, lat, lng, radiusKm float64) ([]Gym, error) {
	if radiusKm <= 0 {
		radiusKm = 10
	}
	gyms, err := c.search(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]Gym, 0, len(gyms))
	for _, gym := range gyms {
		if strings.Contains(strings.ToLower(gym.Name), needle) ||
			strings.Contains(strings.ToLower(gym.Address), needle) {
			matched = append(matched, gym)
		}
	}
	return matched, nil
}

func (c *Client) search(ctx context.Context, lat, lng, radiusKm float64) ([]Gym, error) {
	query := buildQuery(boundingBox(lat, lng, radiusKm))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read overpass response: %w", err)
	}

	// Overpass serves an HTML error page when rate limited.
	if strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		return nil, fmt.Errorf("overpass returned HTML instead of JSON (rate limited or malformed query)")
	}

	var payload osmResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	return parseElements(payload.Elements, lat, lng), nil
}

type bbox struct {
	south, west, north, east float64
}

func boundingBox(lat, lng, radiusKm float64) bbox {
	latDelta := radiusKm / kmPerLatDegree
	lngDelta := radiusKm / (kmPerLatDegree * math.Cos(lat*math.Pi/180))
	return bbox{
		south: lat - latDelta,
		west:  lng - lngDelta,
		north: lat + latDelta,
		east:  lng + lngDelta,
	}
}

func buildQuery(b bbox) string {
	box := fmt.Sprintf("%f,%f,%f,%f", b.south, b.west, b.north, b.east)
	return fmt.Sprintf(`[out:json][timeout:25][bbox:%s];
(
  node["leisure"="fitness_centre"];
  way["leisure"="fitness_centre"];
  node["leisure"="gym"];
  way["leisure"="gym"];
  node["amenity"="gym"];
  way["amenity"="gym"];
);
out body geom;`, box)
}

func parseElements(elements []osmElement, userLat, userLng float64) []Gym {
	gyms := make([]Gym, 0, len(elements))
	seen := make(map[int64]bool)

	for _, el := range elements {
		if seen[el.ID] {
			continue
		}

		lat, lng, ok := el.position()
		if !ok {
			continue
		}

		distance := haversineKm(userLat, userLng, lat, lng)
		if distance > maxDistanceKm {
			continue
		}

		gyms = append(gyms, Gym{
			ID:         fmt.Sprintf("osm-%d", el.ID),
			Name:       el.name(),
			Latitude:   lat,
			Longitude:  lng,
			Address:    el.address(),
			Distance:   math.Round(distance*10) / 10,
			Facilities: []string{"Gym"},
		})
		seen[el.ID] = true
	}

	sort.Slice(gyms, func(i, j int) bool { return gyms[i].Distance < gyms[j].Distance })
	return gyms
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Wire types for the Overpass JSON response.

type osmResponse struct {
	Elements []osmElement `json:"elements"`
}

type osmElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Geometry []osmPoint        `json:"geometry"`
	Tags     map[string]string `json:"tags"`
}

type osmPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// position resolves an element's coordinates: nodes carry them directly,
// ways use their first geometry point.
func (e osmElement) position() (lat, lng float64, ok bool) {
	switch {
	case e.Type == "node" && e.Lat != 0 && e.Lon != 0:
		return e.Lat, e.Lon, true
	case e.Type == "way" && len(e.Geometry) > 0:
		return e.Geometry[0].Lat, e.Geometry[0].Lon, true
	}
	return 0, 0, false
}

func (e osmElement) name() string {
	if name := e.Tags["name"]; name != "" {
		return name
	}
	if operator := e.Tags["operator"]; operator != "" {
		return operator
	}
	return "Unknown gym"
}

func (e osmElement) address() string {
	street := e.Tags["addr:street"]
	number := e.Tags["addr:housenumber"]
	city := e.Tags["addr:city"]

	if street != "" && number != "" {
		if city == "" {
			return fmt.Sprintf("%s %s", street, number)
		}
		return fmt.Sprintf("%s %s, %s", street, number, city)
	}
	if city != "" {
		return city
	}
	return "Address unknown"
}
