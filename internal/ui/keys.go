package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"lookout/internal/domain"
	inputtypes "lookout/internal/ui/input/types"
)

// KeyMap documents the bindings for the help bar and the help pager.
// Dispatch itself lives in the input modes.
type KeyMap struct {
	Submit     key.Binding
	LeaveInput key.Binding
	FocusInput key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	LoadMore   key.Binding
	Clear      key.Binding
	Chips      key.Binding
	Browser    key.Binding
	Download   key.Binding
	Close      key.Binding
	Browse     key.Binding
	SwitchTab  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the bindings of lookout
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		LeaveInput: key.NewBinding(key.WithKeys("esc", "down"), key.WithHelp("esc", "results")),
		FocusInput: key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "edit query")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view image")),
		LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Chips:      key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "history")),
		Browser:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Download:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Close:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
		Browse:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "prev/next")),
		SwitchTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortFor returns the bindings worth showing in the help bar for a mode and tab
func (k KeyMap) ShortFor(mode inputtypes.Mode, tab domain.Widget) []key.Binding {
	switch mode {
	case inputtypes.ModeSearch:
		return []key.Binding{k.Submit, k.LeaveInput, k.Clear, k.SwitchTab}
	case inputtypes.ModeLightbox:
		return []key.Binding{k.Browser, k.Download, k.Browse, k.Close}
	}
	if tab == domain.WidgetCountries {
		return []key.Binding{k.FocusInput, k.Up, k.Down, k.Clear, k.SwitchTab, k.Help, k.Quit}
	}
	return []key.Binding{k.FocusInput, k.Open, k.LoadMore, k.Chips, k.Download, k.SwitchTab, k.Help, k.Quit}
}

// FullHelp returns the binding groups shown in the help pager
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.LeaveInput, k.FocusInput, k.Clear},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.LoadMore, k.Chips, k.Browser, k.Download, k.Browse, k.Close},
		{k.SwitchTab, k.Help, k.Quit},
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return k.ShortFor(inputtypes.ModeNormal, domain.WidgetGallery)
}
