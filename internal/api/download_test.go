package api

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:5001/api/download/report.csv", "report.csv"},
		{"/api/download/data.xlsx", "data.xlsx"},
		{"http://host/file.json?token=abc", "file.json"},
	}

	for _, tt := range tests {
		if got := filenameFromURL(tt.url); got != tt.want {
			t.Errorf("filenameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.csv", "report.csv"},
		{"a/b\\c.csv", "a_b_c.csv"},
		{`bad<>:"|?*.txt`, "bad_______.txt"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveBodyStreamsBeyondJSONBodyCap(t *testing.T) {
	// Downloads are not JSON responses; the maxBodySize cap must not
	// apply to them.
	size := maxBodySize + 1024
	dest := filepath.Join(t.TempDir(), "big.csv")

	if err := saveBody(dest, bytes.NewReader(make([]byte, size))); err != nil {
		t.Fatalf("saveBody() error: %v", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != int64(size) {
		t.Errorf("saved %d bytes, want %d", info.Size(), size)
	}
}

func TestSaveBodyRemovesPartialFileOnError(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "partial.csv")
	src := io.MultiReader(
		bytes.NewReader(make([]byte, 4096)),
		&failingReader{err: errors.New("connection reset")},
	)

	if err := saveBody(dest, src); err == nil {
		t.Fatal("saveBody() did not propagate the read error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("partial file left behind after failed download")
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient(\"\") did not error")
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c, err := NewClient("http://localhost:5001/")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.BaseURL() != "http://localhost:5001" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}
