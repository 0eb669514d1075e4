package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmartins/dbchat/internal/analytics"
	"github.com/dmartins/dbchat/internal/api"
	"github.com/dmartins/dbchat/internal/chat"
	"github.com/dmartins/dbchat/internal/models"
	"github.com/dmartins/dbchat/internal/schema"
)

// clientTimeout bounds the one-shot schema fetch at startup.
const clientTimeout = 30 * time.Second

// Message types for the TUI
type (
	// conversationUpdatedMsg is sent when the session broadcasts a
	// store change (user message appended or a submission settled).
	conversationUpdatedMsg struct{}

	schemaMsg struct {
		digest *schema.Digest
	}

	chartMsg struct {
		spec        *models.ChartSpec
		suggestions []string
		err         error
	}

	exportMsg struct {
		path string
		err  error
	}
)

// focusArea tracks which region receives key input.
type focusArea int

const (
	focusChat focusArea = iota
	focusPanel
	focusFilename
)

// Model represents the TUI state.
type Model struct {
	client   api.ClientInterface
	session  *chat.Session
	notifier *chat.Notifier
	updates  chan struct{}
	panel    *analytics.Panel
	digest   *schema.Digest
	theme    string

	// UI components
	viewport      viewport.Model
	textarea      textarea.Model
	filenameInput textinput.Model
	spinner       spinner.Model

	// State
	focus      focusArea
	loading    bool
	chartBusy  bool
	ready      bool
	statusNote string
	lastSource *models.ResultSet

	// Dimensions
	width  int
	height int
}

// New creates the chat TUI model. The notifier must be the one the
// session broadcasts on.
func New(client api.ClientInterface, session *chat.Session, notifier *chat.Notifier, panel *analytics.Panel, theme string) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your database..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	fi := textinput.New()
	fi.Placeholder = "filename"
	fi.CharLimit = 80

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:        client,
		session:       session,
		notifier:      notifier,
		updates:       notifier.Subscribe(),
		panel:         panel,
		theme:         theme,
		textarea:      ta,
		filenameInput: fi,
		spinner:       s,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForUpdate(),
		m.fetchSchema(),
	)
}

// waitForUpdate blocks on the notifier subscription and turns pings
// into conversationUpdatedMsg. Re-armed after every message.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.updates; !ok {
			return nil
		}
		return conversationUpdatedMsg{}
	}
}

func (m Model) fetchSchema() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		return schemaMsg{digest: schema.Fetch(ctx, m.client)}
	}
}

// generateChart snapshots the panel's chart inputs on the UI thread;
// only the snapshot crosses into the cmd goroutine, so the panel can be
// retargeted while the request is in flight.
func (m Model) generateChart() tea.Cmd {
	req := m.panel.ChartRequest()
	return func() tea.Msg {
		spec, suggestions, err := req.Do(context.Background())
		return chartMsg{spec: spec, suggestions: suggestions, err: err}
	}
}

func (m Model) runExport() tea.Cmd {
	req := m.panel.ExportRequest()
	return func() tea.Msg {
		path, err := req.Do(context.Background())
		return exportMsg{path: path, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		var handled bool
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case conversationUpdatedMsg:
		m.loading = m.session.Phase() == chat.InFlight
		m.refreshViewport()
		m.viewport.GotoBottom()
		cmds = append(cmds, m.waitForUpdate())

		// The panel always targets the most recent non-empty result
		// set. A fresh answer may also ask it to open itself.
		if candidate := m.session.AnalyticsCandidate(); candidate != nil {
			if candidate.Results != m.lastSource {
				m.panel.SetSource(candidate.Results, candidate.Question, candidate.ChartType)
				m.lastSource = candidate.Results
			}
			if candidate.AutoOpen {
				m.panel.Show()
				m.focus = focusPanel
				m.chartBusy = true
				cmds = append(cmds, m.generateChart())
			}
		}

	case schemaMsg:
		m.digest = msg.digest
		m.refreshViewport()

	case chartMsg:
		m.chartBusy = false
		if msg.err != nil {
			m.panel.Fail(msg.err)
		} else {
			m.panel.Install(msg.spec, msg.suggestions, m.panelWidth())
		}

	case exportMsg:
		if msg.err != nil {
			m.statusNote = "Export failed: " + msg.err.Error()
		} else {
			m.statusNote = "Saved " + msg.path
		}

	case spinner.TickMsg:
		if m.loading || m.chartBusy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			if m.loading {
				m.refreshViewport()
				m.viewport.GotoBottom()
			}
		}
	}

	if m.focus == focusChat && !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	if m.focus == focusFilename {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.filenameInput, cmd = m.filenameInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses by focus area. The bool result reports
// whether the key was consumed.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Cancel()
		m.notifier.Unsubscribe(m.updates)
		return m, tea.Quit, true
	}

	switch m.focus {
	case focusFilename:
		switch msg.String() {
		case "enter", "esc":
			m.panel.SetExportFilename(m.filenameInput.Value())
			m.filenameInput.Blur()
			m.focus = focusPanel
			return m, nil, true
		}
		return m, nil, false

	case focusPanel:
		return m.handlePanelKey(msg)

	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		if m.loading {
			// Cancellation settles through the session: a Stopped
			// message arrives with the next update ping.
			m.session.Cancel()
			return m, nil, true
		}
		m.notifier.Unsubscribe(m.updates)
		return m, tea.Quit, true

	case "enter":
		input := strings.TrimSpace(m.textarea.Value())
		if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
			m.notifier.Unsubscribe(m.updates)
			return m, tea.Quit, true
		}
		// Submit rejects blanks and overlapping submits on its own;
		// the disabled input is just the first line of defense.
		if m.session.Submit(input) {
			m.textarea.Reset()
			m.loading = true
			m.statusNote = ""
			return m, m.spinner.Tick, true
		}
		return m, nil, true

	case "ctrl+r":
		if q := m.lastHelpQuestion(); q != "" {
			m.textarea.SetValue(q)
		}
		return m, nil, true

	case "ctrl+y":
		if text := m.lastAnswerText(); text != "" {
			if err := clipboard.WriteAll(text); err == nil {
				m.statusNote = "Answer copied to clipboard"
			}
		}
		return m, nil, true

	case "ctrl+a":
		if m.panel.HasSource() {
			m.panel.Show()
			m.focus = focusPanel
			m.chartBusy = true
			return m, tea.Batch(m.generateChart(), m.spinner.Tick), true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		m.panel.Hide()
		m.focus = focusChat
		return m, nil, true

	case "t":
		// New chart type invalidates the rendered chart; the old one
		// is released on install.
		m.panel.CycleChartType()
		m.chartBusy = true
		return m, tea.Batch(m.generateChart(), m.spinner.Tick), true

	case "o":
		m.panel.CycleExportFormat()
		return m, nil, true

	case "f":
		m.filenameInput.SetValue(m.panel.ExportFilename())
		m.filenameInput.Focus()
		m.focus = focusFilename
		return m, textinput.Blink, true

	case "e":
		if m.panel.CanExport() {
			m.statusNote = "Exporting..."
			return m, m.runExport(), true
		}
		m.statusNote = "Enter a filename before exporting"
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	inputHeight := 4
	statusHeight := 1
	padding := 2

	vpHeight := height - headerHeight - inputHeight - statusHeight - padding
	if m.panel.Visible() {
		vpHeight -= m.panelHeight()
	}
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := width - 4
	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refreshViewport()
}

func (m Model) panelWidth() int {
	if m.width == 0 {
		return 76
	}
	return m.width - 8
}

func (m Model) panelHeight() int {
	return 12
}

// lastHelpQuestion finds the original question of the most recent
// query-help message.
func (m Model) lastHelpQuestion() string {
	messages := m.session.Store().Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == models.KindQueryHelp && messages[i].OriginalQuestion != "" {
			return messages[i].OriginalQuestion
		}
	}
	return ""
}

// lastAnswerText finds the text of the most recent normal answer.
func (m Model) lastAnswerText() string {
	messages := m.session.Store().Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant && messages[i].Kind == models.KindNormal {
			return messages[i].Text
		}
	}
	return ""
}

// Run starts the chat TUI.
func Run(client api.ClientInterface, session *chat.Session, notifier *chat.Notifier, panel *analytics.Panel, theme string) error {
	m := New(client, session, notifier, panel, theme)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
