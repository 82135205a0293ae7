package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/config"
	"lookout/internal/countries"
	"lookout/internal/domain"
	"lookout/internal/download"
	"lookout/internal/eventbus"
	"lookout/internal/gallery"
	"lookout/internal/notify"
	"lookout/internal/ui/input"
	inputtypes "lookout/internal/ui/input/types"
	"lookout/internal/ui/state"
	"lookout/internal/ui/views"
)

// Downloader saves an image to disk
type Downloader interface {
	Download(ctx context.Context, rawURL, name string) (*download.Task, error)
}

// Dependencies are the services the UI drives
type Dependencies struct {
	Bus        eventbus.EventBus
	Searcher   gallery.Searcher
	Finder     countries.Finder
	Downloader Downloader
	Opener     Opener
}

var placeholders = map[domain.Widget]string{
	domain.WidgetGallery:   "Search images...",
	domain.WidgetCountries: "Search for any country",
}

var emptyHints = map[domain.Widget]string{
	domain.WidgetGallery:   "Type a query and press enter to search images.",
	domain.WidgetCountries: "Start typing a country name.",
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	// UI-specific state not in AppState
	width       int
	height      int
	keys        KeyMap
	help        help.Model
	spinner     spinner.Model
	viewport    viewport.Model
	inPagerMode bool

	// Widgets
	gallery   *gallery.Controller
	countries *countries.Controller
	notifier  *notify.Notifier

	downloader Downloader
	opener     Opener
	finished   map[string]bool // downloads whose toast was shown

	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, deps Dependencies) *Model {
	appState := state.NewAppState(domain.Widget(cfg.UI.StartTab))
	keys := DefaultKeyMap()

	renderer := views.NewRenderer()
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = renderer.Styles().StatusLoading

	opener := deps.Opener
	if opener == nil {
		opener = NewSystemOpener()
	}

	m := &Model{
		bus:          deps.Bus,
		config:       cfg,
		state:        appState,
		keys:         keys,
		help:         help.New(),
		spinner:      sp,
		viewport:     viewport.New(80, 20),
		gallery:      gallery.NewController(deps.Searcher),
		countries:    countries.NewController(deps.Finder, cfg.Countries.MaxMatches),
		notifier:     notify.New(deps.Bus),
		downloader:   deps.Downloader,
		opener:       opener,
		finished:     make(map[string]bool),
		renderer:     renderer,
		inputHandler: input.New(placeholders[appState.ActiveTab]),
		helpRenderer: NewHelpRenderer(keys),
		helpOps:      NewHelpOps(),
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.inputHandler.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportSize()
		m.refreshBody()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.refreshBody()
		return m, tea.Batch(cmds...)

	default:
		cmd := m.inputHandler.Update(msg)
		_, other := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(cmd, other)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	tab := m.state.ActiveTab
	vs := views.ViewState{
		Width:        m.width,
		Height:       m.height,
		ActiveTab:    tab,
		InputView:    m.inputHandler.TextInput().View(),
		InputFocused: m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
		ChipIndex:    m.state.ChipIndex,
		Body:         m.viewport.View(),
		BodyHeight:   m.viewport.Height,
		EmptyHint:    emptyHints[tab],
		Pending:      m.pending(),
		Spinner:      m.spinner.View(),
		HelpView:     m.help.ShortHelpView(m.keys.ShortFor(m.inputHandler.CurrentMode(), tab)),
	}
	if tab == domain.WidgetGallery {
		vs.Chips = m.gallery.History().Entries()
		vs.Status = views.StatusLine(m.gallery.Query(), m.gallery.Page(), len(m.gallery.Results()), m.gallery.LoadMoreVisible())
		vs.Downloads = len(m.state.Downloads)
	}
	if m.state.Toast != nil {
		notice := m.state.Toast.Notice
		vs.Toast = &notice
	}
	if m.state.ShowLightbox {
		if img, ok := m.gallery.Image(m.state.LightboxIndex); ok {
			vs.ShowLightbox = true
			vs.Lightbox = m.renderer.Gallery().RenderLightbox(img, m.gallery.Query())
		}
	}
	return m.renderer.Render(vs)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:   m.state,
		Gallery: m.gallery,
	}
}

func (m *Model) pending() bool {
	if m.state.ActiveTab == domain.WidgetGallery {
		return m.gallery.Pending()
	}
	return m.countries.Pending()
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		tab := m.state.ActiveTab
		m.state.Inputs[tab] = a.Text
		return m.debounce(tab)

	case inputtypes.SubmitTextAction:
		tab := m.state.ActiveTab
		m.state.Inputs[tab] = a.Text
		// a pending debounce must not fire a second request
		m.state.NextDebounceTag(tab)
		if tab == domain.WidgetGallery {
			return m.submitGallery(a.Text)
		}
		return m.lookupCountries(a.Text)

	case inputtypes.LoadMoreAction:
		req, ok := m.gallery.LoadMore(m.gallery.Query())
		if !ok {
			return nil
		}
		return m.searchCmd(req)

	case inputtypes.ClearAction:
		m.clear(m.state.ActiveTab)

	case inputtypes.ChipNavigateAction:
		m.state.MoveChip(a.Direction, m.gallery.History().Len())

	case inputtypes.RunChipAction:
		chip := m.gallery.History().At(a.Index)
		m.state.ChipIndex = -1
		if chip == "" {
			return nil
		}
		m.state.Inputs[domain.WidgetGallery] = chip
		m.inputHandler.SetText(chip)
		return m.submitGallery(chip)

	case inputtypes.OpenLightboxAction:
		if _, ok := m.gallery.Image(a.Index); ok {
			m.state.ShowLightbox = true
			m.state.LightboxIndex = a.Index
		}

	case inputtypes.CloseLightboxAction:
		m.state.ShowLightbox = false

	case inputtypes.OpenURLAction:
		img, ok := m.currentImage()
		if !ok {
			return nil
		}
		return m.openURLCmd(img.LargeImageURL)

	case inputtypes.DownloadAction:
		img, ok := m.currentImage()
		if !ok || m.downloader == nil {
			return nil
		}
		return m.downloadCmd(img)

	case inputtypes.SwitchTabAction:
		m.state.Inputs[m.state.ActiveTab] = m.inputHandler.Value()
		tab := m.state.SwitchTab()
		m.inputHandler.SetText(m.state.Inputs[tab])
		m.inputHandler.SetPlaceholder(placeholders[tab])
		m.refreshBody()
		m.viewport.GotoTop()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.gallery.Clear()
		m.countries.Clear()
		return tea.Quit
	}

	return nil
}

// debounce schedules a settle tick for widget; earlier ticks become stale
func (m *Model) debounce(widget domain.Widget) tea.Cmd {
	tag := m.state.NextDebounceTag(widget)
	delay := m.config.Gallery.Debounce()
	if widget == domain.WidgetCountries {
		delay = m.config.Countries.Debounce()
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{widget: widget, tag: tag}
	})
}

func (m *Model) submitGallery(text string) tea.Cmd {
	previous := m.gallery.Query()
	req, ok := m.gallery.Submit(text)
	if !ok {
		return nil
	}
	if req.Query != previous {
		m.state.ResetGallerySelection()
		m.viewport.GotoTop()
	}
	m.refreshBody()
	return m.searchCmd(req)
}

func (m *Model) lookupCountries(text string) tea.Cmd {
	req, ok := m.countries.Lookup(text)
	m.refreshBody()
	if !ok {
		return nil
	}
	return m.lookupCmd(req)
}

func (m *Model) clear(widget domain.Widget) {
	m.state.Inputs[widget] = ""
	m.state.NextDebounceTag(widget)
	if widget == m.state.ActiveTab {
		m.inputHandler.SetText("")
	}
	if widget == domain.WidgetGallery {
		m.gallery.Clear()
		m.state.ResetGallerySelection()
	} else {
		m.countries.Clear()
	}
	m.refreshBody()
	m.viewport.GotoTop()
}

func (m *Model) searchCmd(req *gallery.Request) tea.Cmd {
	log.Printf("gallery: searching '%s' page %d", req.Query, req.Page)
	run := func() tea.Msg {
		page, err := m.gallery.Run(req)
		return searchResultMsg{token: req.Token, page: page, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) lookupCmd(req *countries.Request) tea.Cmd {
	log.Printf("countries: looking up '%s'", req.Query)
	run := func() tea.Msg {
		list, err := m.countries.Run(req)
		return lookupResultMsg{token: req.Token, countries: list, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) downloadCmd(img domain.Image) tea.Cmd {
	name := fmt.Sprintf("%s-%d", m.gallery.Query(), img.ID)
	downloader := m.downloader
	return func() tea.Msg {
		task, err := downloader.Download(context.Background(), img.LargeImageURL, name)
		return downloadResultMsg{task: task, err: err}
	}
}

func (m *Model) openURLCmd(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		return openURLMsg{url: url, err: opener.Open(url)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// currentImage is the image the lightbox shows, or the selected card
func (m *Model) currentImage() (domain.Image, bool) {
	if m.state.ActiveTab != domain.WidgetGallery {
		return domain.Image{}, false
	}
	if m.state.ShowLightbox {
		return m.gallery.Image(m.state.LightboxIndex)
	}
	return m.gallery.Image(m.state.SelectedIndex)
}

// handleNonKeyboardMsg processes results, ticks and events
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if !m.state.IsLatestDebounce(msg.widget, msg.tag) {
			return m, nil
		}
		text := m.state.Inputs[msg.widget]
		if msg.widget == domain.WidgetCountries {
			return m, m.lookupCountries(text)
		}
		// the gallery only searches on submit; settling on empty input clears it
		if !m.gallery.InputChanged(text) {
			m.state.ResetGallerySelection()
			m.refreshBody()
		}
		return m, nil

	case searchResultMsg:
		outcome := m.gallery.Complete(msg.token, msg.page, msg.err)
		return m, m.applyOutcome(outcome)

	case lookupResultMsg:
		res := m.countries.Complete(msg.token, msg.countries, msg.err)
		if res.Stale {
			return m, nil
		}
		m.refreshBody()
		m.viewport.GotoTop()
		if notice, ok := notify.ForCountries(res); ok {
			return m, m.toast(domain.WidgetCountries, notice)
		}
		return m, nil

	case downloadResultMsg:
		if msg.task == nil {
			return m, nil
		}
		if msg.err != nil {
			return m, m.downloadFinished(eventbus.DownloadFailedEvent{ID: msg.task.ID, URL: msg.task.URL, Err: msg.err})
		}
		return m, m.downloadFinished(eventbus.DownloadCompletedEvent{
			ID: msg.task.ID, URL: msg.task.URL, Path: msg.task.Path, Bytes: msg.task.Bytes,
		})

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case scrollMsg:
		// the countries tab may be showing by the time the gallery settles
		if m.state.ActiveTab == domain.WidgetGallery {
			m.viewport.GotoBottom()
		}
		return m, nil

	case toastExpiredMsg:
		m.state.ExpireToast(msg.id)
		return m, nil

	case openURLMsg:
		if msg.err != nil {
			log.Printf("ui: open %s: %v", msg.url, msg.err)
			return m, m.toast(m.state.ActiveTab, notify.Error(msg.err))
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("ui: help pager: %v", msg.err)
			return m, m.toast(m.state.ActiveTab, notify.Error(msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen

	case spinner.TickMsg:
		if !m.gallery.Pending() && !m.countries.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyOutcome renders a gallery response and raises its toast
func (m *Model) applyOutcome(outcome gallery.Outcome) tea.Cmd {
	if outcome.Kind == gallery.OutcomeStale {
		return nil
	}

	var cmds []tea.Cmd
	if outcome.Kind == gallery.OutcomeAppended {
		// select the first card of the new page
		m.state.SelectIndex(outcome.Count-outcome.Added, outcome.Count)
		if outcome.ChipAdded && m.bus != nil {
			m.bus.Publish(eventbus.HistoryRecordedEvent{Query: outcome.Query})
		}
		m.refreshBody()
		cmds = append(cmds, tea.Tick(m.config.Gallery.ScrollDelay(), func(time.Time) tea.Msg {
			return scrollMsg{}
		}))
	} else {
		m.refreshBody()
	}

	if notice, ok := notify.ForGallery(outcome); ok {
		cmds = append(cmds, m.toast(domain.WidgetGallery, notice))
	}
	return tea.Batch(cmds...)
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DownloadStartedEvent:
		if m.finished[e.ID] {
			return nil
		}
		m.state.Downloads[e.ID] = e.URL
		return m.toast(domain.WidgetGallery, notify.Info("Downloading..."))
	case eventbus.DownloadCompletedEvent:
		return m.downloadFinished(e)
	case eventbus.DownloadFailedEvent:
		return m.downloadFinished(e)
	case eventbus.ConfigSavedEvent:
		return m.toast(m.state.ActiveTab, notify.Info(fmt.Sprintf("Configuration saved to %s", e.Path)))
	}
	return nil
}

// downloadFinished shows the toast of a finished download once, whether the
// command result or the bus event arrives first
func (m *Model) downloadFinished(e eventbus.DomainEvent) tea.Cmd {
	var id string
	switch ev := e.(type) {
	case eventbus.DownloadCompletedEvent:
		id = ev.ID
	case eventbus.DownloadFailedEvent:
		id = ev.ID
	}
	if id == "" || m.finished[id] {
		return nil
	}
	m.finished[id] = true
	delete(m.state.Downloads, id)

	notice, ok := notify.ForDownload(e)
	if !ok {
		return nil
	}
	return m.toast(domain.WidgetGallery, notice)
}

// toast shows notice and schedules its expiry
func (m *Model) toast(widget domain.Widget, notice domain.Notice) tea.Cmd {
	m.notifier.Raise(widget, notice)
	id := m.state.ShowToast(widget, notice)
	return tea.Tick(m.config.UI.ToastTTL(), func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// navigate moves the card selection or scrolls the country results
func (m *Model) navigate(direction string) {
	if m.state.ActiveTab != domain.WidgetGallery {
		switch direction {
		case "up":
			m.viewport.LineUp(1)
		case "down":
			m.viewport.LineDown(1)
		case "pageup":
			m.viewport.ViewUp()
		case "pagedown":
			m.viewport.ViewDown()
		case "home":
			m.viewport.GotoTop()
		case "end":
			m.viewport.GotoBottom()
		}
		return
	}

	total := len(m.gallery.Results())
	perPage := m.viewport.Height / views.CardHeight
	if perPage < 1 {
		perPage = 1
	}
	switch direction {
	case "up":
		m.state.MoveSelection(-1, total)
	case "down":
		m.state.MoveSelection(1, total)
	case "pageup":
		m.state.MoveSelection(-perPage, total)
	case "pagedown":
		m.state.MoveSelection(perPage, total)
	case "home":
		m.state.SelectIndex(0, total)
	case "end":
		m.state.SelectIndex(total-1, total)
	}
	m.state.ChipIndex = -1
	if m.state.ShowLightbox {
		m.state.LightboxIndex = m.state.SelectedIndex
	}
	m.refreshBody()
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	top := m.state.SelectedIndex * views.CardHeight
	bottom := top + views.CardHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m *Model) updateViewportSize() {
	m.viewport.Width = m.width - 4
	h := m.height - views.ChromeHeight
	if h < views.CardHeight {
		h = views.CardHeight
	}
	m.viewport.Height = h
}

// refreshBody re-renders the active widget into the viewport
func (m *Model) refreshBody() {
	width := m.viewport.Width
	var content string
	if m.state.ActiveTab == domain.WidgetGallery {
		content = m.renderer.Gallery().RenderGallery(
			m.gallery.Results(), m.state.SelectedIndex, m.gallery.LoadMoreVisible(), width)
	} else {
		content = m.renderer.Countries().RenderCountries(m.countries.Result(), width)
	}
	m.viewport.SetContent(content)
}
