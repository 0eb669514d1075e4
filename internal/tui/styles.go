// Package tui provides the terminal user interface for dbchat.
package tui

import "github.com/charmbracelet/lipgloss"

// Base colors
var (
	colorPrimary  = lipgloss.Color("39")  // blue
	colorAccent   = lipgloss.Color("212") // pink
	colorWarning  = lipgloss.Color("214") // amber
	colorError    = lipgloss.Color("203") // red
	colorText     = lipgloss.Color("252")
	colorTextDim  = lipgloss.Color("245")
	colorTextMute = lipgloss.Color("240")
	colorBorder   = lipgloss.Color("238")
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	hintStyle     = lipgloss.NewStyle().Foreground(colorTextMute)

	messagesAreaStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorPrimary).
			PaddingLeft(1)

	assistantBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(colorBorder).
				PaddingLeft(1)

	errorBubbleStyle = assistantBubbleStyle.
				BorderForeground(colorError)

	queryHelpBubbleStyle = assistantBubbleStyle.
				BorderForeground(colorWarning)

	stoppedBubbleStyle = assistantBubbleStyle.
				BorderForeground(colorTextMute)

	errorTextStyle   = lipgloss.NewStyle().Foreground(colorError)
	stoppedTextStyle = lipgloss.NewStyle().Foreground(colorTextMute).Italic(true)
	summaryStyle     = lipgloss.NewStyle().Foreground(colorTextDim).Italic(true)
	suggestionStyle  = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)
	capabilityStyle = lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)
	timestampStyle  = lipgloss.NewStyle().Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	loadingStyle    = lipgloss.NewStyle().Foreground(colorAccent)

	statusBarStyle  = lipgloss.NewStyle().Foreground(colorTextMute)
	statusKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	statusDescStyle = lipgloss.NewStyle().Foreground(colorTextMute)
	statusNoteStyle = lipgloss.NewStyle().Foreground(colorPrimary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	panelErrStyle   = lipgloss.NewStyle().Foreground(colorError)

	welcomeIconStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Align(lipgloss.Center)
	welcomeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	welcomeStyle      = lipgloss.NewStyle().Foreground(colorTextDim).Align(lipgloss.Center)
)
