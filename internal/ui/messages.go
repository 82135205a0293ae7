package ui

import (
	"lookout/internal/domain"
	"lookout/internal/download"
	"lookout/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// debounceMsg fires after the input of widget settled; only the latest tag counts
type debounceMsg struct {
	widget domain.Widget
	tag    int
}

// searchResultMsg carries the response of one gallery request
type searchResultMsg struct {
	token string
	page  *domain.ImagePage
	err   error
}

// lookupResultMsg carries the response of one country lookup
type lookupResultMsg struct {
	token     string
	countries []domain.Country
	err       error
}

// downloadResultMsg is returned when a download attempt finished
type downloadResultMsg struct {
	task *download.Task
	err  error
}

// scrollMsg moves the results to the load-more footer once the cards settled
type scrollMsg struct{}

// toastExpiredMsg hides the toast with id
type toastExpiredMsg struct {
	id int
}

// openURLMsg contains the result of handing a URL to the system opener
type openURLMsg struct {
	url string
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals that an external pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the terminal was handed back
type resumeRenderingMsg struct{}
