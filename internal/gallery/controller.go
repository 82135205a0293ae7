// Package gallery holds the state machine of the image search widget:
// query/page counter, rendered results, history chips and request tokens.
package gallery

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"lookout/internal/domain"
	"lookout/internal/pixabay"
)

// Searcher fetches one page of images
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*domain.ImagePage, error)
}

// OutcomeKind is the classification of a finished request
type OutcomeKind int

const (
	// OutcomeStale means the response belonged to a superseded request and was discarded
	OutcomeStale OutcomeKind = iota
	OutcomeAppended
	OutcomeEmpty
	OutcomeNotFound
	OutcomeFailed
)

// Outcome describes what a completed request did to the widget
type Outcome struct {
	Kind      OutcomeKind
	Query     string
	Page      int
	Added     int  // cards appended by this response
	Count     int  // cards rendered in total after this response
	FirstPage bool // nothing was rendered before this response
	ChipAdded bool // a new history chip was inserted
	Err       error
}

// Request is one outbound search issued by the controller
type Request struct {
	Token string
	Query string
	Page  int

	ctx context.Context
}

// Context is cancelled as soon as a newer request is issued or the widget is cleared
func (r *Request) Context() context.Context {
	return r.ctx
}

// Controller owns the gallery widget state
type Controller struct {
	searcher Searcher
	state    QueryState
	history  *History

	results   []domain.Image
	totalHits int
	loadMore  bool

	token  string
	cancel context.CancelFunc
}

// NewController creates a controller with a fresh query state
func NewController(searcher Searcher) *Controller {
	return &Controller{
		searcher: searcher,
		state:    NewQueryState(),
		history:  NewHistory(),
	}
}

// InputChanged reacts to a (debounced) edit of the search field and reports
// whether submitting is allowed. Input that trims to nothing clears the widget.
func (c *Controller) InputChanged(input string) bool {
	if strings.TrimSpace(input) == "" {
		c.Clear()
		return false
	}
	return true
}

// Submit starts a search for input. Re-submitting the current query fetches the
// next page; a different query clears the rendered results first. Empty input
// issues nothing, and neither does the current query while its page is loading.
func (c *Controller) Submit(input string) (*Request, bool) {
	query := strings.TrimSpace(input)
	if query == "" {
		return nil, false
	}

	switch {
	case query == c.state.Query && c.Pending():
		return nil, false
	case query == c.state.Query && len(c.results) > 0:
		c.state.NextPage()
	default:
		c.resetResults()
		c.state.Reset()
		c.state.Query = query
	}

	return c.begin(), true
}

// LoadMore behaves like Submit but only while the load-more control is shown
func (c *Controller) LoadMore(input string) (*Request, bool) {
	if !c.loadMore {
		return nil, false
	}
	return c.Submit(input)
}

// Clear drops results, cancels any in-flight request and resets the query state.
// History chips are kept.
func (c *Controller) Clear() {
	c.abort()
	c.resetResults()
	c.state.Reset()
}

// Complete applies the response of the request identified by token
func (c *Controller) Complete(token string, page *domain.ImagePage, err error) Outcome {
	if token == "" || token != c.token {
		log.Printf("gallery: discarding stale response for token %s", token)
		return Outcome{Kind: OutcomeStale}
	}
	c.abort()

	out := Outcome{
		Query:     c.state.Query,
		Page:      c.state.Page,
		FirstPage: len(c.results) == 0,
	}

	switch {
	case errors.Is(err, context.Canceled):
		out.Kind = OutcomeStale
		return out
	case errors.Is(err, pixabay.ErrNotFound):
		out.Kind = OutcomeNotFound
		out.Err = err
		c.pageFailed()
		out.Count = len(c.results)
		return out
	case err != nil:
		out.Kind = OutcomeFailed
		out.Err = err
		c.pageFailed()
		out.Count = len(c.results)
		return out
	}

	if page == nil || len(page.Hits) == 0 {
		out.Kind = OutcomeEmpty
		c.pageFailed()
		out.Count = len(c.results)
		return out
	}

	c.results = append(c.results, page.Hits...)
	c.totalHits = page.TotalHits
	c.loadMore = c.totalHits == 0 || len(c.results) < c.totalHits

	out.Kind = OutcomeAppended
	out.Added = len(page.Hits)
	out.Count = len(c.results)
	out.ChipAdded = c.history.Add(c.state.Query)
	return out
}

// Run performs the request synchronously against the searcher
func (c *Controller) Run(req *Request) (*domain.ImagePage, error) {
	return c.searcher.Search(req.ctx, req.Query, req.Page)
}

// Query returns the active query text
func (c *Controller) Query() string { return c.state.Query }

// Page returns the active page number
func (c *Controller) Page() int { return c.state.Page }

// State returns a copy of the query state
func (c *Controller) State() QueryState { return c.state }

// Results returns the rendered cards in display order
func (c *Controller) Results() []domain.Image { return c.results }

// Image returns the card at index i
func (c *Controller) Image(i int) (domain.Image, bool) {
	if i < 0 || i >= len(c.results) {
		return domain.Image{}, false
	}
	return c.results[i], true
}

// History returns the search-history chips
func (c *Controller) History() *History { return c.history }

// LoadMoreVisible reports whether the load-more control is revealed
func (c *Controller) LoadMoreVisible() bool { return c.loadMore }

// Pending reports whether a request is in flight
func (c *Controller) Pending() bool { return c.token != "" }

func (c *Controller) begin() *Request {
	c.abort()

	ctx, cancel := context.WithCancel(context.Background())
	c.token = uuid.NewString()
	c.cancel = cancel

	return &Request{
		Token: c.token,
		Query: c.state.Query,
		Page:  c.state.Page,
		ctx:   ctx,
	}
}

func (c *Controller) abort() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.token = ""
}

// pageFailed hides load more and steps back to the last rendered page, so
// submitting the query again asks for the same page.
func (c *Controller) pageFailed() {
	c.loadMore = false
	if len(c.results) > 0 && c.state.Page > 1 {
		c.state.Page--
	}
}

func (c *Controller) resetResults() {
	c.results = nil
	c.totalHits = 0
	c.loadMore = false
}
