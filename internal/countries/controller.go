// Package countries holds the state of the country autocomplete widget.
package countries

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"lookout/internal/domain"
	"lookout/internal/restcountries"
)

// Finder looks countries up by a name fragment
type Finder interface {
	ByName(ctx context.Context, name string) ([]domain.Country, error)
}

// Result is what the widget currently shows
type Result struct {
	Branch    Branch
	Query     string
	Countries []domain.Country // one record for a card, several for a list, nil otherwise
	Total     int              // number of matches the API returned
	Err       error
	Stale     bool
}

// Request is one outbound lookup
type Request struct {
	Token string
	Query string

	ctx context.Context
}

// Context is cancelled when a newer lookup is issued or the widget is cleared
func (r *Request) Context() context.Context {
	return r.ctx
}

// Controller owns the country widget state
type Controller struct {
	finder     Finder
	maxMatches int

	query  string
	result Result

	token  string
	cancel context.CancelFunc
}

// NewController creates a controller; maxMatches bounds the name list
func NewController(finder Finder, maxMatches int) *Controller {
	if maxMatches < 1 {
		maxMatches = DefaultMaxMatches
	}
	return &Controller{finder: finder, maxMatches: maxMatches}
}

// Lookup issues a request for input. Empty input clears the widget and
// issues nothing; a distinct query clears the previous render right away.
func (c *Controller) Lookup(input string) (*Request, bool) {
	query := strings.TrimSpace(input)
	if query == "" {
		c.Clear()
		return nil, false
	}

	if query != c.query {
		c.result = Result{}
	}
	c.query = query

	c.abort()
	ctx, cancel := context.WithCancel(context.Background())
	c.token = uuid.NewString()
	c.cancel = cancel

	return &Request{Token: c.token, Query: query, ctx: ctx}, true
}

// Run performs the request synchronously against the finder
func (c *Controller) Run(req *Request) ([]domain.Country, error) {
	return c.finder.ByName(req.ctx, req.Query)
}

// Complete classifies the response and replaces the current render
func (c *Controller) Complete(token string, countries []domain.Country, err error) Result {
	if token == "" || token != c.token {
		log.Printf("countries: discarding stale response for token %s", token)
		return Result{Stale: true}
	}
	c.abort()

	res := Result{Query: c.query, Total: len(countries)}

	switch {
	case errors.Is(err, context.Canceled):
		return Result{Stale: true}
	case errors.Is(err, restcountries.ErrNotFound):
		res.Branch = BranchNotFound
		res.Err = err
	case err != nil:
		res.Branch = BranchFailed
		res.Err = err
	default:
		res.Branch = Classify(len(countries), c.maxMatches)
		switch res.Branch {
		case BranchCard, BranchList:
			res.Countries = countries
		}
	}

	c.result = res
	return res
}

// Clear cancels any in-flight lookup and removes the render
func (c *Controller) Clear() {
	c.abort()
	c.query = ""
	c.result = Result{}
}

// Result returns what is currently rendered
func (c *Controller) Result() Result { return c.result }

// Query returns the last issued query
func (c *Controller) Query() string { return c.query }

// MaxMatches returns the name-list threshold
func (c *Controller) MaxMatches() int { return c.maxMatches }

// Pending reports whether a lookup is in flight
func (c *Controller) Pending() bool { return c.token != "" }

func (c *Controller) abort() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.token = ""
}
