package lore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Lore is the narrative fragment returned for a scanned landmark.
type Lore struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Placeholder is returned whenever the lore service cannot be reached or
// answers with something unusable. Scanning always succeeds from the
// caller's perspective.
var Placeholder = Lore{
	Title:   "Static Interference",
	Content: "The data fragment is corrupted. The monolith remains silent.",
}

// Client calls the external lore-generation service. The zero value is not
// usable; construct with NewClient.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *log.Logger
}

// NewClient builds a lore client. An empty baseURL or apiKey is allowed; in
// that case every Generate call falls back to the placeholder immediately.
func NewClient(baseURL, apiKey string, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
		log:     logger,
	}
}

type generateRequest struct {
	Biome     string `json:"biome"`
	TimeOfDay string `json:"time_of_day"`
	Landmark  string `json:"landmark"`
}

// Generate asks the service for a lore fragment. It never returns an error:
// any failure is logged and substituted with Placeholder.
func (c *Client) Generate(ctx context.Context, biome, timeLabel, landmark string) Lore {
	if c.baseURL == "" || c.apiKey == "" {
		c.log.Warn("lore service not configured, using placeholder")
		return Placeholder
	}

	body, err := json.Marshal(generateRequest{Biome: biome, TimeOfDay: timeLabel, Landmark: landmark})
	if err != nil {
		c.log.Error("lore request encode failed", "error", err)
		return Placeholder
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		c.log.Error("lore request build failed", "error", err)
		return Placeholder
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("lore service unreachable", "error", err)
		return Placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("lore service returned non-200", "status", resp.StatusCode)
		return Placeholder
	}

	var out Lore
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Error("lore response decode failed", "error", err)
		return Placeholder
	}
	if out.Title == "" || out.Content == "" {
		c.log.Error("lore response incomplete", "title", out.Title != "", "content", out.Content != "")
		return Placeholder
	}
	return out
}

// TimeLabel maps a time-of-day scalar in [0, 1) to the label the lore
// service expects. Hour thresholds are fixed by the service contract.
func TimeLabel(t float64) string {
	hour := int(t * 24)
	switch {
	case hour < 5:
		return "Deep Night"
	case hour < 9:
		return "Dawn"
	case hour < 17:
		return "Day"
	case hour < 20:
		return "Dusk"
	default:
		return "Night"
	}
}
