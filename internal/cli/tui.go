package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
	"github.com/matzehuels/octoscope/pkg/prefs"
	"github.com/matzehuels/octoscope/pkg/search"
)

// tuiCommand creates the tui command. The root command runs the same thing.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [username]",
		Short: "Search GitHub users interactively (default)",
		Long: `Search GitHub users interactively.

Type a username: suggestions appear after a short pause. Use ↑/↓ and enter
to pick one, or press enter to search what you typed.

Keys:
  enter    search / pick suggestion     tab      switch input and results
  ctrl+n   load more repositories       m        load more (results focused)
  ctrl+t   toggle light/dark theme      ctrl+r   clear the search
  esc      hide suggestions / quit      ctrl+c   quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runTUI,
	}
}

func (c *CLI) runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// The screen belongs to the UI; logs go to --log-file or nowhere.
	closeLog, err := c.openLogFile(c.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := c.newClient()
	r := newTeaRenderer()
	sess := c.newSession(client, c.newSuggester(client), r)
	c.Logger.Info("interactive search started", "session", sess.ID(), "api", client.BaseURL(), "authenticated", client.Authenticated())

	m := newSearchModel(ctx, sess, c.prefs)
	if len(args) == 1 {
		m.input.SetValue(args[0])
		m.initial = args[0]
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	fwdCtx, stop := context.WithCancel(ctx)
	defer stop()
	go r.forward(fwdCtx, p.Send)

	_, err = p.Run()
	return err
}

// =============================================================================
// Renderer bridge
// =============================================================================

type profileMsg struct{ profile github.UserProfile }

type reposMsg struct {
	repos      []github.RepositorySummary
	appendMode bool
}

type suggestionsMsg []github.Suggestion

type errorMsg struct {
	code    errors.Code
	message string
}

type stateMsg search.State

// teaRenderer queues session output as messages for a running program.
// emit never blocks, so the session is not held up while the event loop is
// busy; forward delivers the queue in order.
type teaRenderer struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
}

func newTeaRenderer() *teaRenderer {
	return &teaRenderer{wake: make(chan struct{}, 1)}
}

func (r *teaRenderer) emit(msg tea.Msg) {
	r.mu.Lock()
	r.queue = append(r.queue, msg)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// forward sends queued messages in order until ctx is done.
func (r *teaRenderer) forward(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
		}
		for msg, ok := r.next(); ok; msg, ok = r.next() {
			send(msg)
		}
	}
}

func (r *teaRenderer) next() (tea.Msg, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil, false
	}
	msg := r.queue[0]
	r.queue[0] = nil
	r.queue = r.queue[1:]
	return msg, true
}

func (r *teaRenderer) OnProfileLoaded(p github.UserProfile) { r.emit(profileMsg{p}) }

func (r *teaRenderer) OnReposLoaded(repos []github.RepositorySummary, appendMode bool) {
	r.emit(reposMsg{repos, appendMode})
}

func (r *teaRenderer) OnSuggestions(s []github.Suggestion) { r.emit(suggestionsMsg(s)) }

func (r *teaRenderer) OnError(code errors.Code, message string) { r.emit(errorMsg{code, message}) }

func (r *teaRenderer) OnStateChange(s search.State) { r.emit(stateMsg(s)) }

// =============================================================================
// searchModel - Interactive search screen
// =============================================================================

// searchModel is the bubbletea model for the interactive search. It mirrors
// what the session rendered; the session remains the source of truth.
type searchModel struct {
	ctx     context.Context
	session *search.Session
	prefs   *prefs.Store
	styles  styles
	input   textinput.Model
	spinner spinner.Model
	now     func() time.Time
	initial string

	state       search.State
	profile     *github.UserProfile
	repos       []github.RepositorySummary
	suggestions []github.Suggestion
	cursor      int // selected suggestion, -1 for none
	errMsg      string
	notice      string

	browsing bool // results focused instead of the input
	row      int
	offset   int
	height   int
	width    int
}

func newSearchModel(ctx context.Context, sess *search.Session, store *prefs.Store) searchModel {
	ti := textinput.New()
	ti.Placeholder = "GitHub username"
	ti.Prompt = "› "
	ti.CharLimit = 100
	ti.Focus()

	m := searchModel{
		ctx:     ctx,
		session: sess,
		prefs:   store,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinnerStyle)),
		now:     time.Now,
		cursor:  -1,
	}
	m.applyTheme(store.Theme())
	return m
}

func (m *searchModel) applyTheme(t prefs.Theme) {
	m.styles = newStyles(t)
	m.input.PromptStyle = m.styles.Highlight
	m.input.TextStyle = m.styles.Value
	m.input.PlaceholderStyle = m.styles.Dim
	m.spinner.Style = m.styles.Spinner
	setTheme(t)
}

func (m searchModel) Init() tea.Cmd {
	if m.initial != "" {
		return tea.Batch(textinput.Blink, m.submit(m.initial))
	}
	return textinput.Blink
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(20, msg.Width-8)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profileMsg:
		p := msg.profile
		m.profile = &p
		return m, nil

	case reposMsg:
		if msg.appendMode {
			m.repos = append(m.repos, msg.repos...)
		} else {
			m.repos = msg.repos
			m.row, m.offset = 0, 0
		}
		return m, nil

	case suggestionsMsg:
		m.suggestions = msg
		m.cursor = -1
		return m, nil

	case errorMsg:
		m.errMsg = msg.message
		return m, nil

	case stateMsg:
		return m.setState(search.State(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m searchModel) setState(s search.State) (tea.Model, tea.Cmd) {
	wasBusy := m.state.Busy()
	m.state = s

	switch s {
	case search.Searching:
		m.profile, m.repos, m.errMsg = nil, nil, ""
		m.browsing = false
	case search.LoadingMore:
		m.errMsg = ""
	case search.Idle:
		m.profile, m.repos, m.errMsg = nil, nil, ""
	case search.Error:
		m.profile, m.repos = nil, nil
	}

	if s.Busy() && !wasBusy {
		return m, m.spinner.Tick
	}
	return m, nil
}

func (m searchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		switch {
		case len(m.suggestions) > 0:
			m.session.ClearInput()
			m.suggestions, m.cursor = nil, -1
			return m, nil
		case m.browsing:
			return m.focusInput()
		}
		return m, tea.Quit
	case "ctrl+t":
		t, err := m.prefs.Toggle()
		if err != nil {
			m.notice = "Could not save theme: " + err.Error()
		} else {
			m.notice = ""
		}
		m.applyTheme(t)
		return m, nil
	case "ctrl+n":
		return m, m.loadMore()
	case "ctrl+r":
		m.session.Reset()
		m.session.ClearInput()
		m.input.SetValue("")
		m.suggestions, m.cursor = nil, -1
		return m.focusInput()
	case "tab":
		if m.browsing {
			return m.focusInput()
		}
		if len(m.repos) > 0 {
			m.browsing = true
			m.input.Blur()
			m.session.ClearInput()
			m.suggestions, m.cursor = nil, -1
		}
		return m, nil
	}

	if m.browsing {
		return m.handleBrowseKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m searchModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if len(m.suggestions) > 0 {
			m.cursor = max(m.cursor-1, -1)
		}
		return m, nil
	case "down":
		if len(m.suggestions) > 0 {
			m.cursor = min(m.cursor+1, len(m.suggestions)-1)
		}
		return m, nil
	case "enter":
		name := m.input.Value()
		if m.cursor >= 0 && m.cursor < len(m.suggestions) {
			name = m.suggestions[m.cursor].Login
			m.input.SetValue(name)
			m.input.CursorEnd()
		}
		m.suggestions, m.cursor = nil, -1
		return m, m.submit(name)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		if strings.TrimSpace(v) == "" {
			m.session.ClearInput()
		} else {
			m.session.Input(m.ctx, v)
		}
	}
	return m, cmd
}

func (m searchModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
			if m.row < m.offset {
				m.offset = m.row
			}
		}
	case "down", "j":
		if m.row < len(m.repos)-1 {
			m.row++
			if h := m.visibleRows(); m.row >= m.offset+h {
				m.offset = m.row - h + 1
			}
		}
	case "m":
		return m, m.loadMore()
	case "/":
		return m.focusInput()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m searchModel) focusInput() (tea.Model, tea.Cmd) {
	m.browsing = false
	return m, m.input.Focus()
}

func (m searchModel) submit(name string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		sess.Submit(ctx, name)
		return nil
	}
}

func (m searchModel) loadMore() tea.Cmd {
	if !m.session.Snapshot().CanLoadMore {
		return nil
	}
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		sess.LoadMore(ctx)
		return nil
	}
}

// visibleRows is how many table rows fit below the profile card.
func (m searchModel) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	return max(3, m.height-22)
}

// =============================================================================
// View
// =============================================================================

func (m searchModel) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(appName))
	b.WriteString(s.Dim.Render("  " + string(m.prefs.Theme())))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	if m.state.Busy() {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	for i, sg := range m.suggestions {
		if i == m.cursor {
			b.WriteString(s.Selected.Render("  ▸ " + sg.Login))
		} else {
			b.WriteString(s.Value.Render("    " + sg.Login))
		}
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + s.Error.Render(iconError+" "+m.errMsg) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + s.Warning.Render(iconWarning+" "+m.notice) + "\n")
	}

	switch {
	case m.state == search.Searching:
		b.WriteString("\n" + s.Dim.Render("Searching...") + "\n")
	case m.profile != nil:
		b.WriteString("\n" + renderProfile(s, *m.profile) + "\n\n")
		b.WriteString(m.repoView())
	}

	b.WriteString("\n" + s.Dim.Render(m.helpLine()))
	return b.String()
}

func (m searchModel) repoView() string {
	s := m.styles
	if len(m.repos) == 0 {
		return s.Dim.Render("No public repositories") + "\n"
	}

	end := min(m.offset+m.visibleRows(), len(m.repos))
	cursor := -1
	if m.browsing {
		cursor = m.row - m.offset
	}

	var b strings.Builder
	b.WriteString(renderRepoTable(s, m.repos[m.offset:end], cursor, m.now()))
	b.WriteString("\n")

	status := fmt.Sprintf("  %d–%d of %d loaded", m.offset+1, end, len(m.repos))
	switch m.state {
	case search.LoadingMore:
		status += " · loading more " + m.spinner.View()
	case search.Exhausted:
		status += " · end of list"
	case search.Loaded:
		status += " · ctrl+n load more"
	}
	b.WriteString(s.Dim.Render(status) + "\n")
	return b.String()
}

func (m searchModel) helpLine() string {
	if m.browsing {
		return "↑/↓ scroll  m more  / search  ctrl+t theme  q quit"
	}
	if len(m.suggestions) > 0 {
		return "↑/↓ choose  ⏎ search  esc hide  ctrl+c quit"
	}
	return "⏎ search  tab results  ctrl+n more  ctrl+t theme  ctrl+r clear  esc quit"
}
