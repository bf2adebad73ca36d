// Package discover proxies a public museum API into a light discovery feed.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hellowinnielee/Art-detective/src/webclient"
)

const (
	defaultTimeout = 10 * time.Second
	retryAttempts  = 2
	retryDelay     = time.Second
)

// Entry is one discovery-feed artwork, shaped like the snapshot's artwork
// overview so the client renders both the same way.
type Entry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Medium     string `json:"medium,omitempty"`
	Date       string `json:"date,omitempty"`
}

// Client talks to the Art Institute of Chicago public API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: webclient.NewDefault(defaultTimeout),
	}
}

type artworksResponse struct {
	Data []struct {
		ID            int    `json:"id"`
		Title         string `json:"title"`
		ArtistTitle   string `json:"artist_title"`
		ImageID       string `json:"image_id"`
		DateDisplay   string `json:"date_display"`
		MediumDisplay string `json:"medium_display"`
		Dimensions    string `json:"dimensions"`
	} `json:"data"`
	Config struct {
		IIIFURL string `json:"iiif_url"`
	} `json:"config"`
}

// Artworks returns a page of artworks for the feed. The museum API rate
// limits aggressively at peak hours, so transient failures get one retry.
func (c *Client) Artworks(ctx context.Context, limit int) ([]Entry, error) {
	q := url.Values{}
	q.Set("fields", "id,title,artist_title,image_id,date_display,medium_display,dimensions")
	q.Set("limit", fmt.Sprint(limit))
	feedURL := c.endpoint + "/artworks?" + q.Encode()

	status, raw, err := webclient.DoWithRetry(ctx, retryAttempts, retryDelay, func() (int, []byte, error) {
		return c.get(ctx, feedURL)
	})
	if err != nil {
		return nil, fmt.Errorf("discover fetch: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("discover fetch: status %d", status)
	}

	var parsed artworksResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	entries := make([]Entry, 0, len(parsed.Data))
	for _, a := range parsed.Data {
		e := Entry{
			ID:         a.ID,
			Title:      a.Title,
			Artist:     a.ArtistTitle,
			Dimensions: a.Dimensions,
			Medium:     a.MediumDisplay,
			Date:       a.DateDisplay,
		}
		if a.ImageID != "" && parsed.Config.IIIFURL != "" {
			e.ImageURL = fmt.Sprintf("%s/%s/full/843,/0/default.jpg", parsed.Config.IIIFURL, a.ImageID)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}
