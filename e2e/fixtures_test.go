//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// imageFixture serves a fake Pixabay endpoint with totalHits images per query
type imageFixture struct {
	srv       *httptest.Server
	totalHits int

	mu       sync.Mutex
	requests []string
}

func newImageFixture(t *testing.T, totalHits int) *imageFixture {
	t.Helper()
	f := &imageFixture{totalHits: totalHits}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", f.search)
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *imageFixture) BaseURL() string { return f.srv.URL + "/api/" }

func (f *imageFixture) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *imageFixture) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 12
	}

	f.mu.Lock()
	f.requests = append(f.requests, fmt.Sprintf("%s:%d", q, page))
	f.mu.Unlock()

	type hit struct {
		ID            int    `json:"id"`
		Tags          string `json:"tags"`
		WebformatURL  string `json:"webformatURL"`
		LargeImageURL string `json:"largeImageURL"`
		ImageWidth    int    `json:"imageWidth"`
		ImageHeight   int    `json:"imageHeight"`
		Likes         int    `json:"likes"`
		Views         int    `json:"views"`
		User          string `json:"user"`
	}
	hits := []hit{}
	if q != "nothing" {
		for i := (page - 1) * perPage; i < page*perPage && i < f.totalHits; i++ {
			hits = append(hits, hit{
				ID:            1000 + i,
				Tags:          fmt.Sprintf("%s, photo %d", q, i+1),
				WebformatURL:  fmt.Sprintf("%s/img/%d_640.jpg", f.srv.URL, i),
				LargeImageURL: fmt.Sprintf("%s/img/%d_1280.jpg", f.srv.URL, i),
				ImageWidth:    1280,
				ImageHeight:   853,
				Likes:         i,
				Views:         i * 10,
				User:          "tester",
			})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total":     f.totalHits,
		"totalHits": f.totalHits,
		"hits":      hits,
	})
}

// newCountryFixture serves a fake REST Countries /name/<query> endpoint
func newCountryFixture(t *testing.T) *httptest.Server {
	t.Helper()
	all := []map[string]any{
		countryJSON("France", "Paris", "Europe", 67391582, "French"),
		countryJSON("French Polynesia", "Papeetē", "Oceania", 280904, "French"),
		countryJSON("French Guiana", "Cayenne", "Americas", 254541, "French"),
		countryJSON("Germany", "Berlin", "Europe", 83240525, "German"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/name/"))
		var out []map[string]any
		for _, c := range all {
			common := strings.ToLower(c["name"].(map[string]any)["common"].(string))
			if strings.Contains(common, name) {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func countryJSON(name, capital, region string, population int, language string) map[string]any {
	return map[string]any{
		"name":       map[string]any{"common": name, "official": name},
		"capital":    []string{capital},
		"region":     region,
		"population": population,
		"languages":  map[string]string{"x": language},
		"flag":       "*",
		"flags":      map[string]string{"svg": "https://flags.example/" + name + ".svg"},
	}
}

// startWithFixtures wires the app to the fake APIs and waits for the first frame
func startWithFixtures(t *testing.T, images *imageFixture, countries *httptest.Server, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	if images != nil {
		tf.Setenv("LOOKOUT_GALLERY_BASE_URL", images.BaseURL())
	}
	if countries != nil {
		tf.Setenv("LOOKOUT_COUNTRIES_BASE_URL", countries.URL)
	}
	tf.Setenv("LOOKOUT_GALLERY_API_KEY", "test-key")
	if err := tf.StartApp(args...); err != nil {
		t.Fatalf("start app: %v", err)
	}
	if !tf.Ready() {
		tf.DumpTailOnFail(t, "ready", 4096)
		t.Fatal("app did not render")
	}
	return tf
}
