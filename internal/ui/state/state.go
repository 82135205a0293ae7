package state

import (
	"lookout/internal/domain"
)

// Toast is the notice currently shown in the status line
type Toast struct {
	ID     int
	Widget domain.Widget
	Notice domain.Notice
}

// AppState contains all the application state that is not owned by a widget controller
type AppState struct {
	ActiveTab domain.Widget

	// Per-tab search field text
	Inputs map[domain.Widget]string

	// Gallery selection state
	SelectedIndex int // currently selected card
	ChipIndex     int // focused history chip, -1 when none

	// Lightbox
	ShowLightbox  bool
	LightboxIndex int

	// Downloads in flight, id -> url
	Downloads map[string]string

	// Status line
	Toast    *Toast
	toastSeq int

	// Debounce tags, only the latest tag per widget fires
	DebounceTags map[domain.Widget]int
}

// NewAppState creates a new application state
func NewAppState(start domain.Widget) *AppState {
	if start != domain.WidgetCountries {
		start = domain.WidgetGallery
	}
	return &AppState{
		ActiveTab:    start,
		Inputs:       make(map[domain.Widget]string),
		ChipIndex:    -1,
		Downloads:    make(map[string]string),
		DebounceTags: make(map[domain.Widget]int),
	}
}

// Tab operations

// OtherTab returns the tab that SwitchTab would activate
func (s *AppState) OtherTab() domain.Widget {
	if s.ActiveTab == domain.WidgetGallery {
		return domain.WidgetCountries
	}
	return domain.WidgetGallery
}

// SwitchTab activates the other tab and returns it
func (s *AppState) SwitchTab() domain.Widget {
	s.ActiveTab = s.OtherTab()
	s.ChipIndex = -1
	return s.ActiveTab
}

// Selection operations

// MoveSelection moves the selected card by delta within [0, total)
func (s *AppState) MoveSelection(delta, total int) {
	s.SelectIndex(s.SelectedIndex+delta, total)
}

// SelectIndex sets the selected card, clamped within [0, total)
func (s *AppState) SelectIndex(i, total int) {
	if total <= 0 {
		s.SelectedIndex = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= total {
		i = total - 1
	}
	s.SelectedIndex = i
}

// MoveChip moves the chip focus; it wraps around and starts at the
// first chip for "next" and the last for "prev"
func (s *AppState) MoveChip(direction string, count int) {
	if count <= 0 || direction == "none" {
		s.ChipIndex = -1
		return
	}
	switch direction {
	case "next":
		s.ChipIndex = (s.ChipIndex + 1) % count
	case "prev":
		if s.ChipIndex <= 0 {
			s.ChipIndex = count - 1
		} else {
			s.ChipIndex--
		}
	}
}

// ResetGallerySelection drops card, chip and lightbox state
func (s *AppState) ResetGallerySelection() {
	s.SelectedIndex = 0
	s.ChipIndex = -1
	s.ShowLightbox = false
	s.LightboxIndex = 0
}

// Debounce operations

// NextDebounceTag invalidates pending debounce ticks of widget and returns the new tag
func (s *AppState) NextDebounceTag(widget domain.Widget) int {
	s.DebounceTags[widget]++
	return s.DebounceTags[widget]
}

// IsLatestDebounce reports whether tag is still the latest for widget
func (s *AppState) IsLatestDebounce(widget domain.Widget, tag int) bool {
	return s.DebounceTags[widget] == tag
}

// Toast operations

// ShowToast replaces the current toast and returns its id
func (s *AppState) ShowToast(widget domain.Widget, notice domain.Notice) int {
	s.toastSeq++
	s.Toast = &Toast{
		ID:     s.toastSeq,
		Widget: widget,
		Notice: notice,
	}
	return s.toastSeq
}

// ExpireToast hides the toast with id; newer toasts are kept
func (s *AppState) ExpireToast(id int) bool {
	if s.Toast == nil || s.Toast.ID != id {
		return false
	}
	s.Toast = nil
	return true
}
