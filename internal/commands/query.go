package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dmartins/dbchat/internal/api"
	"github.com/dmartins/dbchat/internal/chat"
	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/render"
)

var (
	colorText      = lipgloss.Color("#c0caf5")
	colorTextDim   = lipgloss.Color("#565f89")
	colorSuccess   = lipgloss.Color("#9ece6a")
	colorPrimary   = lipgloss.Color("#7aa2f7")
	colorDanger    = lipgloss.Color("#f7768e")
	colorAttention = lipgloss.Color("#e0af68")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	summaryLineStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Italic(true).
				PaddingLeft(1)

	errorLineStyle = lipgloss.NewStyle().Foreground(colorDanger)
	helpLineStyle  = lipgloss.NewStyle().Foreground(colorAttention)
	dimLineStyle   = lipgloss.NewStyle().Foreground(colorTextDim)
)

// spinner handles the animated loading indicator
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinnerChar := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(chars[spinIdx])
	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(os.Stderr, "\r\033[K%s %s", spinnerChar, msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(os.Stderr, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery asks a single question and prints the answer.
// If rawOutput is true, only the raw answer text is printed without
// decoration.
func runQuery(parent context.Context, question string, rawOutput bool) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg := loadConfig()

	client, err := api.NewClient(cfg.BaseURL,
		api.WithDBType(cfg.DBType),
		api.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Ctrl+C during the request cancels it instead of killing the
	// process mid-write.
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Thinking")
		spin.start()
	}

	startTime := time.Now()
	answer, err := client.Ask(ctx, question, engineFromConfig(cfg))
	requestDuration := time.Since(startTime)

	if err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		return printAskError(err, rawOutput)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
		if answer.HasResults() {
			fmt.Fprintf(os.Stderr, "[verbose] %d result rows\n", answer.Results.Len())
		}
	}

	text := answer.Text

	// Raw output mode: answer text only
	if rawOutput {
		if outputFlag != "" {
			return os.WriteFile(outputFlag, []byte(text), 0o644)
		}
		fmt.Print(text)
		if answer.HasResults() {
			fmt.Println()
			fmt.Println(render.ResultTable(answer.Results, 0))
		}
		return nil
	}

	fmt.Fprintln(os.Stderr)

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			fmt.Fprintln(os.Stderr, errorLineStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(os.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(os.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Answer saved to %s", outputFlag)))
		return nil
	}

	termWidth := getTerminalWidth()
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Println(assistantLabelStyle.Render("◈ dbchat"))

	rendered, err := render.MarkdownWithWidth(text, contentWidth)
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	var body strings.Builder
	body.WriteString(rendered)
	if answer.HasResults() {
		body.WriteString("\n\n")
		body.WriteString(render.ResultTable(answer.Results, contentWidth))
	}
	if answer.Summary != "" {
		body.WriteString("\n\n")
		body.WriteString(summaryLineStyle.Render(answer.Summary))
	}

	fmt.Println(assistantBubbleStyle.Width(bubbleWidth).Render(body.String()))

	if len(answer.Suggestions) > 0 {
		fmt.Println(dimLineStyle.Render("You could also ask:"))
		for _, s := range answer.Suggestions {
			fmt.Println(dimLineStyle.Render("  • " + s))
		}
	}

	return nil
}

// printAskError maps the error taxonomy onto terminal output. Query
// help and backend errors are messages the user can act on; everything
// else falls back to a generic line with details behind --verbose.
func printAskError(err error, rawOutput bool) error {
	if apierrors.IsCancellation(err) {
		if !rawOutput {
			fmt.Fprintln(os.Stderr, dimLineStyle.Render(chat.StoppedText))
		}
		return nil
	}

	var qh *apierrors.QueryHelpError
	if errors.As(err, &qh) {
		fmt.Fprintln(os.Stderr, helpLineStyle.Render(qh.Message))
		for _, s := range qh.Suggestions {
			fmt.Fprintln(os.Stderr, dimLineStyle.Render("  • "+s))
		}
		return fmt.Errorf("question needs rephrasing")
	}

	if apierrors.IsAppError(err) {
		fmt.Fprintln(os.Stderr, errorLineStyle.Render("Error: "+err.Error()))
		return fmt.Errorf("backend rejected the question")
	}

	fmt.Fprintln(os.Stderr, errorLineStyle.Render(chat.FallbackErrorText))
	if verboseFlag {
		fmt.Fprintf(os.Stderr, "[verbose] %v\n", err)
	}
	return fmt.Errorf("request failed")
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
