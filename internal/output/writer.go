// Package output manages the run's output directory. Failures here are the
// only fatal errors in the pipeline.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes run artifacts into a fresh output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Reset clears any previous run's contents and recreates the directory.
func (w *Writer) Reset() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("clearing output directory %q: %w", w.dir, err)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", w.dir, err)
	}
	return nil
}

// WriteNewsletter writes the HTML document named for the run date and
// returns its path.
func (w *Writer) WriteNewsletter(date, html string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("newsletter-%s.html", date))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing newsletter: %w", err)
	}
	return path, nil
}

// WriteRecipients writes the comma-joined recipient list and returns its
// path.
func (w *Writer) WriteRecipients(line string) (string, error) {
	path := filepath.Join(w.dir, "recipients.txt")
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("writing recipients: %w", err)
	}
	return path, nil
}
