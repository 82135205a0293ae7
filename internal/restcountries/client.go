// Package restcountries is a minimal client for the REST Countries API.
package restcountries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"lookout/internal/domain"
)

// ErrNotFound is returned when no country matches the name fragment
var ErrNotFound = errors.New("country not found")

// StatusError is returned for any non-200, non-404 answer
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("country lookup returned status %d", e.Code)
}

// Client looks countries up by name
type Client struct {
	BaseURL string
	Fields  []string
	Client  *http.Client

	limiter *rate.Limiter
}

// NewClient creates a client throttled to requestsPerMinute outbound calls
func NewClient(baseURL string, fields []string, timeout time.Duration, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 120
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Fields:  fields,
		Client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

type countryResponse struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Population int               `json:"population"`
	Flag       string            `json:"flag"`
	Flags      map[string]string `json:"flags"`
	Languages  map[string]string `json:"languages"`
}

// NameURL builds <BASE>/name/<fragment>?fields=...
func (c *Client) NameURL(name string) (string, error) {
	u, err := url.Parse(c.BaseURL + "/name/" + url.PathEscape(name))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if len(c.Fields) > 0 {
		q := u.Query()
		q.Set("fields", strings.Join(c.Fields, ","))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// ByName returns every country whose name contains the fragment
func (c *Client) ByName(ctx context.Context, name string) ([]domain.Country, error) {
	reqURL, err := c.NameURL(name)
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
		return nil, fmt.Errorf("country request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var raw []countryResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode country response: %w", err)
	}

	countries := make([]domain.Country, len(raw))
	for i, r := range raw {
		langs := make([]string, 0, len(r.Languages))
		for _, l := range r.Languages {
			langs = append(langs, l)
		}
		sort.Strings(langs)

		countries[i] = domain.Country{
			Name:       r.Name.Common,
			Official:   r.Name.Official,
			Capital:    r.Capital,
			Region:     r.Region,
			Population: r.Population,
			Flag:       r.Flag,
			FlagURL:    r.Flags["png"],
			Languages:  langs,
		}
	}
	return countries, nil
}
