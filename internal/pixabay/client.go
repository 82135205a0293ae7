// Package pixabay is a minimal client for the Pixabay image search API.
package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"lookout/internal/domain"
)

// ErrNotFound is returned when the API answers 404
var ErrNotFound = errors.New("404")

// StatusError is returned for any other non-200 answer
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image search returned status %d", e.Code)
}

// Options are the query parameters sent with every search
type Options struct {
	APIKey      string
	PerPage     int
	ImageType   string
	Orientation string
	SafeSearch  bool
}

// Client performs image searches
type Client struct {
	BaseURL string
	Client  *http.Client
	Options Options

	limiter *rate.Limiter
}

// NewClient creates a client throttled to requestsPerMinute outbound calls
func NewClient(baseURL string, opts Options, timeout time.Duration, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 100
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Options: opts,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

type searchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []hit `json:"hits"`
}

type hit struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	User          string `json:"user"`
}

// SearchURL builds the request URL for query and page
func (c *Client) SearchURL(query string, page int) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}

	q := u.Query()
	if c.Options.APIKey != "" {
		q.Set("key", c.Options.APIKey)
	}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	if c.Options.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(c.Options.PerPage))
	}
	if c.Options.ImageType != "" {
		q.Set("image_type", c.Options.ImageType)
	}
	if c.Options.Orientation != "" {
		q.Set("orientation", c.Options.Orientation)
	}
	q.Set("safesearch", strconv.FormatBool(c.Options.SafeSearch))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Search fetches one page of images for query
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.ImagePage, error) {
	reqURL, err := c.SearchURL(query, page)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	images := make([]domain.Image, len(sr.Hits))
	for i, h := range sr.Hits {
		images[i] = domain.Image{
			ID:            h.ID,
			Tags:          h.Tags,
			PreviewURL:    h.PreviewURL,
			WebformatURL:  h.WebformatURL,
			LargeImageURL: h.LargeImageURL,
			PageURL:       h.PageURL,
			Width:         h.ImageWidth,
			Height:        h.ImageHeight,
			Likes:         h.Likes,
			Views:         h.Views,
			Comments:      h.Comments,
			Downloads:     h.Downloads,
			User:          h.User,
		}
	}

	return &domain.ImagePage{
		Query:     query,
		Page:      page,
		Total:     sr.Total,
		TotalHits: sr.TotalHits,
		Hits:      images,
	}, nil
}
