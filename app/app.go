package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gridboard/card"
	"gridboard/config"
	"gridboard/grid"
	"gridboard/inspect"
	"gridboard/keys"
	"gridboard/log"
	"gridboard/ui"
	"gridboard/ui/overlay"
	"gridboard/watcher"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, deckPath string) error {
	p := tea.NewProgram(
		newHome(ctx, deckPath),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateFilter is the state when the user is typing a filter query.
	stateFilter
	// stateConfirm is the state when a confirmation modal is displayed.
	stateConfirm
	// stateBreakpoint is the state when the breakpoint preview selector is displayed.
	stateBreakpoint
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	deckPath string

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// appState stores persistent application state like seen help screens
	appState *config.State
	// storage persists per-card state (dismissed, pinned) across runs
	storage *card.Storage

	// -- Deck --

	deck *card.Deck
	// states maps card id to its persisted state
	states map[string]card.CardState

	// -- Layout --

	table    grid.BreakpointTable
	observer *grid.BreakpointObserver
	// forcedTier pins the layout to one tier for previewing. Empty means
	// follow the measured width.
	forcedTier string
	filter     string
	// filterBefore holds the filter to restore when the filter prompt is canceled
	filterBefore string

	width, height int
	// measured is false until the first WindowSizeMsg arrives
	measured bool
	// resizeSeq tags relayout timers so stale ones are dropped after a
	// newer resize supersedes them
	resizeSeq int

	// -- Background Services --

	deckWatcher *watcher.DeckWatcher
	reloadCh    chan struct{}

	// -- State --

	state state
	// pendingAction runs when the confirmation modal is confirmed
	pendingAction tea.Cmd

	// -- UI Components --

	// board displays the packed card grid
	board *ui.Board
	// menu displays the bottom menu
	menu *ui.Menu
	// errBox displays error messages
	errBox *ui.ErrBox
	// global spinner instance. we plumb this down to where it's needed
	spinner spinner.Model
	// textOverlay displays help screens
	textOverlay *overlay.TextOverlay
	// textInputOverlay handles the filter prompt
	textInputOverlay *overlay.TextInputOverlay
	// confirmationOverlay displays confirmation modals
	confirmationOverlay *overlay.ConfirmationOverlay
	// breakpointOverlay displays the breakpoint preview selector
	breakpointOverlay *overlay.BreakpointSelectorOverlay
	// loadingOverlay is shown until the first terminal measurement arrives
	loadingOverlay *overlay.LoadingOverlay
}

func newHome(ctx context.Context, deckPath string) *home {
	// Load application config
	appConfig := config.LoadConfig()

	// Load application state
	appState := config.LoadState()

	deck, err := card.LoadDeck(deckPath)
	if err != nil {
		fmt.Printf("Failed to load deck: %v\n", err)
		os.Exit(1)
	}

	storage := card.NewStorage(appState)
	table := appConfig.BreakpointTable()

	h := &home{
		ctx:       ctx,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		menu:      ui.NewMenu(),
		errBox:    ui.NewErrBox(),
		deckPath:  deckPath,
		appConfig: appConfig,
		appState:  appState,
		storage:   storage,
		deck:      deck,
		states:    storage.LoadStates(),
		table:     table,
		observer:  grid.NewBreakpointObserver(table),
		state:     stateDefault,
		reloadCh:  make(chan struct{}, 1),
	}
	h.board = ui.NewBoard(&h.spinner)
	loadingTitle := deck.Title
	if loadingTitle == "" {
		loadingTitle = "Gridboard"
	}
	h.loadingOverlay = overlay.NewLoadingOverlay(loadingTitle, &h.spinner)
	h.loadingOverlay.SetStatus("Measuring terminal...")
	h.loadingOverlay.SetWidth(36)
	h.board.SetCellHeight(appConfig.CellHeight)
	h.board.SetGap(deck.GapOrDefault(appConfig.Gap))
	h.board.SetDeckTitle(deck.Title)

	h.observer.Subscribe(func(breakpoint string) {
		log.InfoLog.Printf("breakpoint changed to %s", breakpoint)
	})

	// Watch the deck file for edits. Watching is best-effort: the board
	// still works without it, reload stays available on 'r'.
	dw, err := watcher.WatchDeck(deckPath, watcher.DefaultDebounce, func() {
		select {
		case h.reloadCh <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.WarningLog.Printf("could not watch deck file: %v", err)
	} else {
		h.deckWatcher = dw
	}

	return h
}

// updateHandleWindowSizeEvent sets the sizes of the components and schedules
// a debounced relayout. The first measurement relays out immediately so the
// board isn't blank while the debounce window runs.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	m.errBox.SetSize(msg.Width, 1)
	m.menu.SetSize(msg.Width, 1)
	// board gets everything above the menu and the error box
	m.board.SetSize(msg.Width, msg.Height-2)

	m.observer.SetWidth(msg.Width)

	if m.textInputOverlay != nil {
		m.textInputOverlay.SetWidth(min(60, msg.Width-4))
	}
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(min(70, msg.Width-4))
	}

	if !m.measured {
		m.measured = true
		m.relayout()
		// First launch gets a short onboarding screen.
		m.showHelpScreen(helpTypeOnboarding, nil)
		return nil
	}

	m.resizeSeq++
	seq := m.resizeSeq
	delay := m.appConfig.ResizeDebounce()
	return func() tea.Msg {
		time.Sleep(delay)
		return relayoutMsg{seq: seq}
	}
}

// activeTier is the breakpoint the board packs for: the forced preview tier
// when one is pinned, otherwise the tier resolved from the measured width.
func (m *home) activeTier() string {
	if m.forcedTier != "" {
		return m.forcedTier
	}
	return m.observer.Current()
}

func (m *home) gap() int {
	return m.deck.GapOrDefault(m.appConfig.Gap)
}

// relayout repacks the visible cards into a fresh layout and hands it to the
// board, keeping the selection on the same card when it survives.
func (m *home) relayout() {
	start := time.Now()
	defer func() {
		log.GetProfiler().RecordRelayout(time.Since(start))
	}()

	var selectedID string
	if p := m.board.Selected(); p != nil {
		selectedID = p.ID
	}

	active := m.activeTier()
	items := m.deck.Items(m.states, m.filter)
	cols := m.deck.ColumnTable(m.appConfig.ColumnTable())
	layout := grid.ComputeLayout(items, m.table, cols, active, m.width, m.gap())

	cards := make(map[string]*card.Card, len(m.deck.Cards))
	for i := range m.deck.Cards {
		cards[m.deck.Cards[i].ID] = &m.deck.Cards[i]
	}

	m.board.SetLayout(layout, cards, m.states)
	if selectedID != "" {
		m.board.SelectByID(selectedID)
	}

	if m.state == stateDefault {
		m.menu.SetState(m.menuState())
	}

	m.writeInspectSnapshot(layout)
}

// writeInspectSnapshot dumps the current layout and UI state for inspection
// tooling. Noop unless GRIDBOARD_INSPECT=1.
func (m *home) writeInspectSnapshot(layout grid.Layout) {
	if !inspect.IsEnabled() {
		return
	}

	var selectedID string
	if p := m.board.Selected(); p != nil {
		selectedID = p.ID
	}
	snap := inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithLayout(layout, m.gap(), m.forcedTier != "", m.table).
		WithAppState(inspect.AppStateInfo{
			State:      m.stateName(),
			HasOverlay: m.state != stateDefault,
			CardCount:  m.board.NumCards(),
			SelectedID: selectedID,
			Filter:     m.filter,
		}).
		WithComponents(m.board.InspectNode())
	if err := inspect.WriteSnapshot(snap); err != nil {
		log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
	}
}

func (m *home) stateName() string {
	switch m.state {
	case stateHelp:
		return "help"
	case stateFilter:
		return "filter"
	case stateConfirm:
		return "confirm"
	case stateBreakpoint:
		return "breakpoint"
	default:
		return "default"
	}
}

func (m *home) menuState() ui.MenuState {
	if m.board.NumCards() == 0 {
		return ui.StateEmpty
	}
	return ui.StateDefault
}

func (m *home) Init() tea.Cmd {
	// Upon starting, we want to start the spinner. Whenever we get a spinner.TickMsg, we
	// update the spinner, which sends a new spinner.TickMsg.
	return tea.Batch(
		m.spinner.Tick,
		m.waitForReload(),
		tickStateSyncCmd,
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case relayoutMsg:
		// A newer resize superseded this timer.
		if msg.seq != m.resizeSeq {
			return m, nil
		}
		m.relayout()
		return m, nil
	case deckChangedMsg:
		m.board.SetReloading(true)
		return m, tea.Batch(m.reloadDeckCmd(), m.waitForReload())
	case deckReloadedMsg:
		m.board.SetReloading(false)
		if msg.err != nil {
			// Keep showing the last good deck.
			return m, m.handleError(msg.err)
		}
		m.deck = msg.deck
		m.board.SetDeckTitle(msg.deck.Title)
		m.board.SetGap(m.gap())
		m.relayout()
		return m, nil
	case tickStateSyncMessage:
		// Another process may have dismissed or pinned cards; pick that up.
		if config.NeedsRefresh(m.appState.GetLastModTime()) {
			if refreshed, err := m.appState.RefreshFromDisk(); err != nil {
				log.WarningLog.Printf("failed to refresh state from disk: %v", err)
			} else if refreshed {
				m.states = m.storage.LoadStates()
				m.relayout()
			}
		}
		return m, tickStateSyncCmd
	case dismissCardMsg:
		st := m.states[msg.id]
		now := time.Now()
		st.Dismissed = true
		st.DismissedAt = &now
		m.states[msg.id] = st
		m.relayout()
		return m, m.saveStatesCmd()
	case restoreCardsMsg:
		for id, st := range m.states {
			st.Dismissed = false
			st.DismissedAt = nil
			m.states[id] = st
		}
		m.relayout()
		return m, m.saveStatesCmd()
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m, m.updateHandleWindowSizeEvent(msg)
	case error:
		// Handle errors from confirmation actions
		return m, m.handleError(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	if err := m.storage.SaveStates(m.states); err != nil {
		log.ErrorLog.Printf("failed to save card states: %v", err)
	}
	if m.deckWatcher != nil {
		if err := m.deckWatcher.Close(); err != nil {
			log.WarningLog.Printf("failed to close deck watcher: %v", err)
		}
	}
	return m, tea.Quit
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state != stateDefault {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	log.InputTrace("key %q in state %s", msg.String(), m.stateName())

	// Get the menu highlight command - this is batched with the action command later
	highlightCmd := m.handleMenuHighlighting(msg)

	if m.state == stateHelp {
		return m.handleHelpState(msg)
	}

	if m.state == stateFilter {
		shouldClose := m.textInputOverlay.HandleKeyPress(msg)
		// The board narrows live through OnChange; on close we either keep
		// or roll back what was typed.
		if shouldClose {
			if m.textInputOverlay.Submitted {
				m.filter = m.textInputOverlay.Value()
			} else {
				m.filter = m.filterBefore
			}
			m.board.SetFilter(m.filter)
			m.textInputOverlay = nil
			m.state = stateDefault
			m.relayout()
			m.menu.SetState(m.menuState())
		}
		return m, nil
	}

	if m.state == stateConfirm {
		shouldClose := m.confirmationOverlay.HandleKeyPress(msg)
		if shouldClose {
			confirmed := m.confirmationOverlay.Confirmed
			action := m.pendingAction
			m.confirmationOverlay = nil
			m.pendingAction = nil
			m.state = stateDefault
			m.menu.SetState(m.menuState())
			if confirmed && action != nil {
				return m, action
			}
		}
		return m, nil
	}

	if m.state == stateBreakpoint {
		shouldClose := m.breakpointOverlay.HandleKeyPress(msg)
		if shouldClose {
			if selected := m.breakpointOverlay.GetSelected(); selected != "" {
				if selected == overlay.AutoBreakpoint {
					m.forcedTier = ""
				} else {
					m.forcedTier = selected
				}
				m.relayout()
			}
			m.breakpointOverlay = nil
			m.state = stateDefault
			m.menu.SetState(m.menuState())
		}
		return m, nil
	}

	// Esc clears an active filter before anything else gets a say.
	if msg.Type == tea.KeyEsc && m.filter != "" {
		m.filter = ""
		m.board.SetFilter("")
		m.relayout()
		return m, nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyHelp:
		return m.showHelpScreen(helpTypeGeneral, nil)
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp:
		m.board.Up()
		return m, highlightCmd
	case keys.KeyDown:
		m.board.Down()
		return m, highlightCmd
	case keys.KeyLeft:
		m.board.Left()
		return m, highlightCmd
	case keys.KeyRight:
		m.board.Right()
		return m, highlightCmd
	case keys.KeyDismiss:
		selected := m.board.SelectedCard()
		if selected == nil {
			return m, nil
		}
		// The cmd runs on its own goroutine, so it must not touch
		// m.states. It only reports the decision; Update applies it.
		id := selected.ID
		dismissAction := func() tea.Msg {
			return dismissCardMsg{id: id}
		}
		message := fmt.Sprintf("[!] Dismiss card '%s'?", selected.DisplayTitle())
		return m, tea.Batch(highlightCmd, m.confirmAction(message, dismissAction))
	case keys.KeyRestore:
		dismissed := 0
		for _, st := range m.states {
			if st.Dismissed {
				dismissed++
			}
		}
		if dismissed == 0 {
			return m, m.handleError(fmt.Errorf("no dismissed cards to restore"))
		}
		restoreAction := func() tea.Msg {
			return restoreCardsMsg{}
		}
		message := fmt.Sprintf("[!] Restore %d dismissed card(s)?", dismissed)
		return m, tea.Batch(highlightCmd, m.confirmAction(message, restoreAction))
	case keys.KeyPin:
		selected := m.board.SelectedCard()
		if selected == nil {
			return m, nil
		}
		st := m.states[selected.ID]
		st.Pinned = !st.Pinned
		m.states[selected.ID] = st
		if err := m.storage.SaveStates(m.states); err != nil {
			return m, tea.Batch(highlightCmd, m.handleError(err))
		}
		m.relayout()
		m.board.SelectByID(selected.ID)
		return m, highlightCmd
	case keys.KeyFilter:
		m.state = stateFilter
		m.menu.SetState(ui.StateFilter)
		m.filterBefore = m.filter
		m.textInputOverlay = overlay.NewTextInputOverlay("Filter cards", m.filter)
		m.textInputOverlay.SetWidth(min(60, m.width-4))
		m.textInputOverlay.OnChange = func(value string) {
			m.filter = value
			m.board.SetFilter(value)
			m.relayout()
		}
		return m, nil
	case keys.KeyCopy:
		if m.board.NumCards() == 0 {
			return m, nil
		}
		if err := clipboard.WriteAll(m.board.GridAreaText()); err != nil {
			return m, tea.Batch(highlightCmd, m.handleError(err))
		}
		m.errBox.SetError(fmt.Errorf("layout copied to clipboard"))
		return m, tea.Batch(highlightCmd, m.hideErrAfter(3*time.Second))
	case keys.KeyBreakpoint:
		m.state = stateBreakpoint
		m.menu.SetState(ui.StateBreakpoint)
		current := m.forcedTier
		if current == "" {
			current = overlay.AutoBreakpoint
		}
		m.breakpointOverlay = overlay.NewBreakpointSelectorOverlay(m.table, current)
		m.breakpointOverlay.SetWidth(min(50, m.width-4))
		return m, nil
	case keys.KeyReload:
		m.board.SetReloading(true)
		return m, tea.Batch(highlightCmd, m.reloadDeckCmd())
	default:
		return m, nil
	}
}

// confirmAction shows a confirmation modal and stores the action to execute on confirm
func (m *home) confirmAction(message string, action tea.Cmd) tea.Cmd {
	m.state = stateConfirm
	m.menu.SetState(ui.StateConfirm)
	m.pendingAction = action

	m.confirmationOverlay = overlay.NewConfirmationOverlay(message)
	m.confirmationOverlay.SetWidth(min(50, m.width-4))
	return nil
}

// saveStatesCmd persists the card states off the UI loop. The snapshot is
// copied here, on the update goroutine, so the cmd never reads the live map
// while View renders from it.
func (m *home) saveStatesCmd() tea.Cmd {
	snapshot := make(map[string]card.CardState, len(m.states))
	for id, st := range m.states {
		snapshot[id] = st
	}
	return func() tea.Msg {
		if err := m.storage.SaveStates(snapshot); err != nil {
			return err
		}
		return nil
	}
}

// reloadDeckCmd re-reads the deck file off the UI loop.
func (m *home) reloadDeckCmd() tea.Cmd {
	path := m.deckPath
	return func() tea.Msg {
		deck, err := card.LoadDeck(path)
		return deckReloadedMsg{deck: deck, err: err}
	}
}

// waitForReload blocks on the watcher's change signal and turns it into a
// message for the update loop.
func (m *home) waitForReload() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case <-m.reloadCh:
			return deckChangedMsg{}
		}
	}
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// relayoutMsg fires when a resize debounce window expires. seq identifies
// the resize that scheduled it.
type relayoutMsg struct {
	seq int
}

// deckChangedMsg is sent when the watcher sees the deck file change on disk.
type deckChangedMsg struct{}

// deckReloadedMsg carries the result of re-reading the deck file.
type deckReloadedMsg struct {
	deck *card.Deck
	err  error
}

// dismissCardMsg is sent when dismissing a card is confirmed. The state
// change happens in Update; the confirmation cmd only reports the decision.
type dismissCardMsg struct {
	id string
}

// restoreCardsMsg is sent when restoring all dismissed cards is confirmed.
type restoreCardsMsg struct{}

type tickStateSyncMessage struct{}

// tickStateSyncCmd is the callback to pick up card state changes made by
// other processes every 2 seconds.
var tickStateSyncCmd = func() tea.Msg {
	time.Sleep(2 * time.Second)
	return tickStateSyncMessage{}
}

// handleError handles all errors which get bubbled up to the app. sets the error message. We return a callback tea.Cmd that returns a hideErrMsg message
// which clears the error message after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)
	return m.hideErrAfter(3 * time.Second)
}

func (m *home) hideErrAfter(d time.Duration) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(d):
		}

		return hideErrMsg{}
	}
}

func (m *home) View() string {
	// No WindowSizeMsg yet: nothing to pack, show the loading screen.
	if m.width == 0 {
		return m.loadingOverlay.Render()
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.board.String(),
		m.menu.String(),
		m.errBox.String(),
	)

	var ov string
	switch m.state {
	case stateFilter:
		if m.textInputOverlay == nil {
			log.ErrorLog.Printf("text input overlay is nil")
			return mainView
		}
		ov = m.textInputOverlay.Render()
	case stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			return mainView
		}
		ov = m.textOverlay.Render()
	case stateConfirm:
		if m.confirmationOverlay == nil {
			log.ErrorLog.Printf("confirmation overlay is nil")
			return mainView
		}
		ov = m.confirmationOverlay.Render()
	case stateBreakpoint:
		if m.breakpointOverlay == nil {
			log.ErrorLog.Printf("breakpoint overlay is nil")
			return mainView
		}
		ov = m.breakpointOverlay.Render()
	default:
		return mainView
	}

	x := (m.width - lipgloss.Width(ov)) / 2
	y := (m.height - lipgloss.Height(ov)) / 3
	return overlay.PlaceOverlay(x, y, ov, mainView, true)
}
