package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookout/internal/countries"
	"lookout/internal/domain"
	"lookout/internal/eventbus"
	"lookout/internal/gallery"
	"lookout/internal/pixabay"
)

func TestForGallery(t *testing.T) {
	tests := []struct {
		name     string
		outcome  gallery.Outcome
		severity domain.Severity
		text     string
	}{
		{
			name:     "success",
			outcome:  gallery.Outcome{Kind: gallery.OutcomeAppended, Query: "cats", Page: 2, Count: 24},
			severity: domain.SeveritySuccess,
			text:     "Success! Request: 'cats'. Page: 2. Images: 24",
		},
		{
			name:     "no images on first page",
			outcome:  gallery.Outcome{Kind: gallery.OutcomeEmpty, Query: "cats", FirstPage: true},
			severity: domain.SeverityWarning,
			text:     "Sorry! No images found on your request - 'cats'. Images: 0",
		},
		{
			name:     "no more images",
			outcome:  gallery.Outcome{Kind: gallery.OutcomeEmpty, Query: "cats", Count: 12},
			severity: domain.SeverityWarning,
			text:     "Sorry! No more images found on request - 'cats'. Images: 12",
		},
		{
			name:     "not found",
			outcome:  gallery.Outcome{Kind: gallery.OutcomeNotFound, Err: pixabay.ErrNotFound},
			severity: domain.SeverityError,
			text:     "Error! 404",
		},
		{
			name:     "network failure",
			outcome:  gallery.Outcome{Kind: gallery.OutcomeFailed, Err: errors.New("dial tcp: refused")},
			severity: domain.SeverityError,
			text:     "Error! dial tcp: refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ForGallery(tt.outcome)
			require.True(t, ok)
			assert.Equal(t, tt.severity, n.Severity)
			assert.Equal(t, tt.text, n.Text)
		})
	}

	_, ok := ForGallery(gallery.Outcome{Kind: gallery.OutcomeStale})
	assert.False(t, ok)
}

func TestForCountries(t *testing.T) {
	n, ok := ForCountries(countries.Result{Branch: countries.BranchNoCountry, Query: "zz"})
	require.True(t, ok)
	assert.Equal(t, "No country found for 'zz'", n.Text)

	n, ok = ForCountries(countries.Result{Branch: countries.BranchTooMany})
	require.True(t, ok)
	assert.Contains(t, n.Text, "more specific")

	_, ok = ForCountries(countries.Result{Branch: countries.BranchList})
	assert.False(t, ok)
	_, ok = ForCountries(countries.Result{Stale: true, Branch: countries.BranchTooMany})
	assert.False(t, ok)
}

func TestRaisePublishesNotice(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.NoticeRaisedEvent, 1)
	bus.Subscribe(eventbus.EventNoticeRaised, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.NoticeRaisedEvent)
	})

	New(bus).Raise(domain.WidgetCountries, Info("hi"))

	select {
	case ev := <-got:
		assert.Equal(t, domain.WidgetCountries, ev.Widget)
		assert.Equal(t, "hi", ev.Notice.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("notice not published")
	}
}
