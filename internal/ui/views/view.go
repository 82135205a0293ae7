package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lookout/internal/domain"
)

// ChromeHeight is the number of lines the frame around the results takes:
// container padding, title, input box, chip row, status and help lines
const ChromeHeight = 9

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width        int
	Height       int
	ActiveTab    domain.Widget
	InputView    string
	InputFocused bool
	Chips        []string
	ChipIndex    int
	Body         string // rendered results, already clipped by the viewport
	BodyHeight   int
	EmptyHint    string
	Pending      bool
	Spinner      string
	Status       string
	Downloads    int // downloads in flight
	Toast        *domain.Notice
	HelpView     string
	ShowLightbox bool
	Lightbox     string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	galleryRender *GalleryRenderer
	countryRender *CountryRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		galleryRender: NewGalleryRenderer(styles),
		countryRender: NewCountryRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
	}
}

// Gallery returns the card renderer
func (r *Renderer) Gallery() *GalleryRenderer { return r.galleryRender }

// Countries returns the country renderer
func (r *Renderer) Countries() *CountryRenderer { return r.countryRender }

// Styles returns the shared styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	innerWidth := termWidth - 4 // Account for main container padding

	var lines []string

	// Title with tabs on the right
	logo := r.styles.Title.Render("lookout")
	tabs := r.renderTabs(state.ActiveTab)
	if state.Pending {
		tabs = r.styles.StatusLoading.Render(state.Spinner+" ") + tabs
	}
	padding := innerWidth - lipgloss.Width(logo) - lipgloss.Width(tabs)
	if padding < 2 {
		padding = 2
	}
	lines = append(lines, logo+strings.Repeat(" ", padding)+tabs)

	// Search field
	inputStyle := r.styles.Input
	if state.InputFocused {
		inputStyle = r.styles.InputFocused
	}
	lines = append(lines, inputStyle.Width(innerWidth-2).Render(state.InputView))

	// History chips (gallery only); the row is kept so the layout does not jump
	chips := ""
	if state.ActiveTab == domain.WidgetGallery {
		chips = r.galleryRender.RenderChips(state.Chips, state.ChipIndex, innerWidth)
	}
	lines = append(lines, chips)

	// Results
	body := state.Body
	if strings.TrimSpace(body) == "" && state.EmptyHint != "" {
		body = r.styles.Dim.Render(state.EmptyHint)
	}
	lines = append(lines, lipgloss.NewStyle().Height(state.BodyHeight).MaxHeight(state.BodyHeight).Render(body))

	// Toast or status line
	lines = append(lines, r.renderStatus(state, innerWidth))

	// Help
	help := state.HelpView
	if help == "" {
		help = "Press ? for help"
	}
	lines = append(lines, r.styles.Help.Render(help))

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(strings.Join(lines, "\n"))

	// Overlay popup on top of main content
	if state.ShowLightbox && state.Lightbox != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.Lightbox, state.Height, termWidth, r.styles.Lightbox)
	}

	return finalContent
}

func (r *Renderer) renderTabs(active domain.Widget) string {
	names := []struct {
		widget domain.Widget
		label  string
	}{
		{domain.WidgetGallery, "Gallery"},
		{domain.WidgetCountries, "Countries"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		style := r.styles.Tab
		if n.widget == active {
			style = r.styles.TabActive
		}
		parts = append(parts, style.Render(n.label))
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	if state.Toast != nil {
		return r.styles.ForSeverity(state.Toast.Severity).MaxWidth(width).Render(state.Toast.Text)
	}
	status := state.Status
	if state.Downloads > 0 {
		if status != "" {
			status += "  "
		}
		status += fmt.Sprintf("downloading %d", state.Downloads)
	}
	if status != "" {
		return r.styles.Dim.MaxWidth(width).Render(status)
	}
	return ""
}

// StatusLine summarises the gallery position for the status bar
func StatusLine(query string, page, count int, loadMore bool) string {
	if query == "" {
		return ""
	}
	status := fmt.Sprintf("'%s'  page %d  %d images", query, page, count)
	if loadMore {
		status += "  m: load more"
	}
	return status
}
