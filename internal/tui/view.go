package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmartins/dbchat/internal/models"
	"github.com/dmartins/dbchat/internal/render"
)

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(messagesAreaStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	if m.panel.Visible() {
		b.WriteString(m.renderPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("dbchat")
	subtitle := subtitleStyle.Render("Ask your database anything")
	return headerStyle.Width(m.width - 2).Render(title + "  " + subtitle)
}

// refreshViewport rebuilds the conversation transcript. Called on every
// store change and on resize.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	messages := m.session.Store().Messages()
	if len(messages) == 0 {
		m.viewport.SetContent(m.renderWelcome())
		return
	}

	var parts []string
	for _, msg := range messages {
		parts = append(parts, m.renderMessage(msg))
	}
	if m.loading {
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" Thinking..."))
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
}

// renderWelcome is the empty-conversation state: a greeting plus
// suggestion chips derived from the schema digest.
func (m Model) renderWelcome() string {
	width := m.viewport.Width

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(welcomeIconStyle.Width(width).Render("◈"))
	b.WriteString("\n")
	b.WriteString(welcomeTitleStyle.Width(width).Render("Welcome to dbchat"))
	b.WriteString("\n")
	b.WriteString(welcomeStyle.Width(width).Render("Ask questions in plain language and get answers from your data."))
	b.WriteString("\n\n")

	if overview := m.digest.Overview(); overview != "" {
		b.WriteString(welcomeStyle.Width(width).Render(overview))
		b.WriteString("\n\n")
	}

	var chips []string
	for _, s := range m.digest.Suggestions() {
		chips = append(chips, suggestionStyle.Render(s))
	}
	row := lipgloss.JoinVertical(lipgloss.Center, chips...)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	return b.String()
}

func (m Model) renderMessage(msg models.Message) string {
	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}

	if msg.Role == models.RoleUser {
		bubble := userBubbleStyle.MaxWidth(width).Render(msg.Text)
		label := userLabelStyle.Render("You") + " " + timestampStyle.Render(msg.Timestamp.Format("15:04"))
		return label + "\n" + bubble
	}

	label := assistantLabelStyle.Render("Assistant") + " " + timestampStyle.Render(msg.Timestamp.Format("15:04"))

	switch msg.Kind {
	case models.KindError:
		return label + "\n" + errorBubbleStyle.MaxWidth(width).Render(errorTextStyle.Render(msg.Text))

	case models.KindStopped:
		return label + "\n" + stoppedBubbleStyle.MaxWidth(width).Render(stoppedTextStyle.Render(msg.Text))

	case models.KindQueryHelp:
		var b strings.Builder
		b.WriteString(msg.Text)
		if len(msg.Suggestions) > 0 {
			b.WriteString("\n\nTry one of these:")
			for _, s := range msg.Suggestions {
				b.WriteString("\n  • " + s)
			}
		}
		if msg.OriginalQuestion != "" {
			b.WriteString("\n\n" + hintStyle.Render("ctrl+r to edit your question"))
		}
		return label + "\n" + queryHelpBubbleStyle.MaxWidth(width).Render(b.String())

	default:
		return label + "\n" + m.renderAnswer(msg, width)
	}
}

// renderAnswer builds the Normal assistant bubble: markdown text,
// result table, summary, capabilities and follow-up suggestions.
func (m Model) renderAnswer(msg models.Message, width int) string {
	var b strings.Builder

	text := msg.Text
	opts := render.DefaultOptions().WithWidth(width - 4).WithStyle(m.theme)
	if rendered, err := render.Markdown(text, opts); err == nil {
		text = strings.TrimRight(rendered, "\n")
	}
	b.WriteString(text)

	if msg.Results != nil && !msg.Results.Empty() {
		b.WriteString("\n\n")
		b.WriteString(render.ResultTable(msg.Results, width-4))
		b.WriteString("\n" + hintStyle.Render("ctrl+a to chart or export these rows"))
	}

	if msg.Summary != "" {
		b.WriteString("\n\n" + summaryStyle.Render(msg.Summary))
	}

	if msg.Capabilities != nil {
		b.WriteString("\n\n" + capabilityStyle.Render(msg.Capabilities.Description))
		for _, f := range msg.Capabilities.Features {
			b.WriteString("\n" + capabilityStyle.Render("• "+f))
		}
	}

	if len(msg.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range msg.Suggestions {
			b.WriteString("\n" + suggestionStyle.Render(s))
		}
	}

	return assistantBubbleStyle.MaxWidth(width).Render(b.String())
}

// renderPanel draws the analytics panel: chart or panel-local error,
// plus the export controls.
func (m Model) renderPanel() string {
	width := m.panelWidth()

	title := panelTitleStyle.Render(fmt.Sprintf("Analytics · %s chart · %d rows",
		m.panel.ChartType(), m.panel.Rows().Len()))

	var body string
	switch {
	case m.chartBusy:
		body = loadingStyle.Render(m.spinner.View() + " Generating chart...")
	case m.panel.Err() != "":
		body = panelErrStyle.Render(m.panel.Err())
		if suggestions := m.panel.Suggestions(); len(suggestions) > 0 {
			body += "\n" + hintStyle.Render("Suggestions: "+strings.Join(suggestions, ", "))
		}
	case m.panel.Chart() != nil:
		body = m.panel.Chart().View()
	default:
		body = hintStyle.Render("No chart yet.")
	}

	filename := m.panel.ExportFilename()
	if m.focus == focusFilename {
		filename = m.filenameInput.View()
	}
	exportLine := fmt.Sprintf("Export: %s.%s (%s)",
		filename, m.panel.ExportFormat().Ext(), m.panel.ExportFormat())
	if !m.panel.CanExport() {
		exportLine += "  " + panelErrStyle.Render("(filename required)")
	}

	content := title + "\n\n" + body + "\n\n" + hintStyle.Render(exportLine)
	return panelStyle.Width(width).Render(content)
}

func (m Model) renderInput() string {
	label := inputLabelStyle.Render("> ")
	return inputPanelStyle.Width(m.width - 2).Render(label + m.textarea.View())
}

func (m Model) renderStatusBar() string {
	if m.statusNote != "" {
		return statusNoteStyle.Render(" " + m.statusNote)
	}

	type binding struct{ key, desc string }
	var bindings []binding
	switch {
	case m.focus == focusPanel:
		bindings = []binding{
			{"t", "chart type"}, {"o", "format"}, {"f", "filename"},
			{"e", "export"}, {"esc", "close"},
		}
	case m.loading:
		bindings = []binding{{"esc", "stop"}, {"ctrl+c", "quit"}}
	default:
		bindings = []binding{
			{"enter", "send"}, {"ctrl+a", "analytics"}, {"ctrl+y", "copy"},
			{"ctrl+r", "retry"}, {"esc", "quit"},
		}
	}

	var parts []string
	for _, b := range bindings {
		parts = append(parts, statusKeyStyle.Render(b.key)+statusDescStyle.Render(" "+b.desc))
	}
	return statusBarStyle.Render(" " + strings.Join(parts, "  "))
}
