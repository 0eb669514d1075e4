package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestMarkdownRenders(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading text:\n%s", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	long := strings.Repeat("word ", 50)
	out, err := MarkdownWithWidth(long, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() error: %v", err)
	}
	// Measure printable width; the styled output carries ANSI escape
	// sequences that do not occupy columns.
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line width %d exceeds wrap width: %q", w, line)
		}
	}
}

func TestOptionsWithStyle(t *testing.T) {
	opts := DefaultOptions().WithStyle("")
	if opts.Style != "dark" {
		t.Errorf("empty style overrode the default: %q", opts.Style)
	}
	opts = opts.WithStyle("light")
	if opts.Style != "light" {
		t.Errorf("Style = %q, want light", opts.Style)
	}
}

func TestRendererPoolReuse(t *testing.T) {
	opts := DefaultOptions()
	for i := 0; i < 5; i++ {
		if _, err := Markdown("plain text", opts); err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
	}
	if len(globalPool.pools) == 0 {
		t.Error("no renderer pool was created")
	}
}
