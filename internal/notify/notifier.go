// Package notify maps widget outcomes to toast notices.
package notify

import (
	"fmt"

	"lookout/internal/countries"
	"lookout/internal/domain"
	"lookout/internal/eventbus"
	"lookout/internal/gallery"
)

// Notifier publishes notices on the event bus. It keeps no state and never retries.
type Notifier struct {
	bus eventbus.EventBus
}

// New creates a notifier; a nil bus makes Raise a no-op apart from returning the notice
func New(bus eventbus.EventBus) *Notifier {
	return &Notifier{bus: bus}
}

// Raise publishes notice for widget and returns it
func (n *Notifier) Raise(widget domain.Widget, notice domain.Notice) domain.Notice {
	if n != nil && n.bus != nil {
		n.bus.Publish(eventbus.NoticeRaisedEvent{Widget: widget, Notice: notice})
	}
	return notice
}

func Success(text string) domain.Notice {
	return domain.Notice{Severity: domain.SeveritySuccess, Text: text}
}

func Warning(text string) domain.Notice {
	return domain.Notice{Severity: domain.SeverityWarning, Text: text}
}

func Error(err error) domain.Notice {
	return domain.Notice{Severity: domain.SeverityError, Text: fmt.Sprintf("Error! %v", err)}
}

func Info(text string) domain.Notice {
	return domain.Notice{Severity: domain.SeverityInfo, Text: text}
}

// ForGallery returns the toast for a gallery outcome; stale outcomes have none
func ForGallery(o gallery.Outcome) (domain.Notice, bool) {
	switch o.Kind {
	case gallery.OutcomeAppended:
		return Success(fmt.Sprintf("Success! Request: '%s'. Page: %d. Images: %d", o.Query, o.Page, o.Count)), true
	case gallery.OutcomeEmpty:
		if o.FirstPage {
			return Warning(fmt.Sprintf("Sorry! No images found on your request - '%s'. Images: %d", o.Query, o.Count)), true
		}
		return Warning(fmt.Sprintf("Sorry! No more images found on request - '%s'. Images: %d", o.Query, o.Count)), true
	case gallery.OutcomeNotFound, gallery.OutcomeFailed:
		return Error(o.Err), true
	default:
		return domain.Notice{}, false
	}
}

// ForCountries returns the notice for a country lookup; cards and lists have none
func ForCountries(r countries.Result) (domain.Notice, bool) {
	if r.Stale {
		return domain.Notice{}, false
	}
	switch r.Branch {
	case countries.BranchNoCountry, countries.BranchNotFound:
		return Info(fmt.Sprintf("No country found for '%s'", r.Query)), true
	case countries.BranchTooMany:
		return Info("Too many matches found. Please enter a more specific name."), true
	case countries.BranchFailed:
		return Error(r.Err), true
	default:
		return domain.Notice{}, false
	}
}

// ForDownload returns the toast for a download lifecycle event
func ForDownload(e eventbus.DomainEvent) (domain.Notice, bool) {
	switch ev := e.(type) {
	case eventbus.DownloadCompletedEvent:
		return Success(fmt.Sprintf("Saved %s", ev.Path)), true
	case eventbus.DownloadFailedEvent:
		return Error(ev.Err), true
	default:
		return domain.Notice{}, false
	}
}
