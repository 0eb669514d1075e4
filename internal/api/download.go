package api

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmartins/dbchat/internal/errors"
)

// DownloadFile fetches an exported file from the backend's download URL
// and writes it into destDir. Returns the absolute path of the saved
// file.
func (c *Client) DownloadFile(ctx context.Context, downloadURL, destDir, filename string) (string, error) {
	url := downloadURL
	if strings.HasPrefix(downloadURL, "/") {
		url = c.baseURL + downloadURL
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", apierrors.NewDownloadError("failed to create directory: "+err.Error(), url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apierrors.NewDownloadError("failed to create request: "+err.Error(), url)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", apierrors.NewDownloadError("request failed: "+err.Error(), url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return "", apierrors.NewDownloadError("unexpected status "+resp.Status, url)
	}

	if filename == "" {
		filename = filenameFromURL(url)
	}
	destPath := filepath.Join(destDir, sanitizeFilename(filename))

	if err := saveBody(destPath, resp.Body); err != nil {
		return "", apierrors.NewDownloadError("failed to save file: "+err.Error(), url)
	}

	absPath, err := filepath.Abs(destPath)
	if err != nil {
		return destPath, nil
	}
	return absPath, nil
}

// saveBody streams r into destPath. Exports can be arbitrarily large,
// so the body is copied rather than buffered; a partial file is removed
// on failure.
func saveBody(destPath string, r io.Reader) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	return nil
}

// filenameFromURL extracts the last path segment of a download URL.
func filenameFromURL(url string) string {
	trimmed := strings.Split(url, "?")[0]
	parts := strings.Split(trimmed, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "export"
	}
	return last
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// sanitizeFilename removes characters not allowed in filenames.
func sanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, "_"))
}
