package input

import (
	"lookout/internal/domain"
	"lookout/internal/gallery"
	"lookout/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State   *state.AppState
	Gallery *gallery.Controller
}

// ActiveTab returns the widget that receives input
func (c *ModelContext) ActiveTab() domain.Widget {
	return c.State.ActiveTab
}

// CurrentIndex returns the selected gallery card
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of rendered gallery cards
func (c *ModelContext) TotalItems() int {
	if c.Gallery == nil || c.State.ActiveTab != domain.WidgetGallery {
		return 0
	}
	return len(c.Gallery.Results())
}

// ChipIndex returns the focused history chip or -1
func (c *ModelContext) ChipIndex() int {
	return c.State.ChipIndex
}

// ChipCount returns the number of history chips
func (c *ModelContext) ChipCount() int {
	if c.Gallery == nil {
		return 0
	}
	return c.Gallery.History().Len()
}

// LoadMoreVisible reports whether the load-more control is shown
func (c *ModelContext) LoadMoreVisible() bool {
	return c.Gallery != nil && c.Gallery.LoadMoreVisible()
}
