package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/browser"

	"JSMChanges/internal/ports"
)

// OpenFunc hands a file path to the platform's default viewer.
type OpenFunc func(path string) error

// FileViewer writes the rendered document to disk and optionally opens it.
// With neither an output path nor opening enabled the document goes to stdout.
type FileViewer struct {
	outputPath string
	open       bool
	stdout     io.Writer
	opener     OpenFunc
	logger     *slog.Logger
}

var _ ports.Viewer = (*FileViewer)(nil)

// Option configures a FileViewer.
type Option func(*FileViewer)

// WithStdout redirects documents that are not written to a file.
func WithStdout(w io.Writer) Option {
	return func(v *FileViewer) { v.stdout = w }
}

// WithOpener replaces the platform viewer launcher.
func WithOpener(fn OpenFunc) Option {
	return func(v *FileViewer) { v.opener = fn }
}

// WithLogger attaches a logger.
func WithLogger(log *slog.Logger) Option {
	return func(v *FileViewer) { v.logger = log }
}

// New builds a viewer. An empty outputPath means a temporary file.
func New(outputPath string, open bool, opts ...Option) *FileViewer {
	v := &FileViewer{
		outputPath: outputPath,
		open:       open,
		stdout:     os.Stdout,
		opener:     OpenInDefaultViewer,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Show persists the document and launches the viewer when enabled.
func (v *FileViewer) Show(_ context.Context, document []byte, extension string) error {
	if !v.open && v.outputPath == "" {
		_, err := v.stdout.Write(document)
		return err
	}

	path, err := v.write(document, extension)
	if err != nil {
		return err
	}
	if v.logger != nil {
		v.logger.Info("report written", "path", path)
	}

	if !v.open {
		return nil
	}
	if err := v.opener(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func (v *FileViewer) write(document []byte, extension string) (string, error) {
	if v.outputPath != "" {
		if err := os.WriteFile(v.outputPath, document, 0o644); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
		return v.outputPath, nil
	}

	f, err := os.CreateTemp("", "jsm-changes-*"+extension)
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}
	if _, err := f.Write(document); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp report: %w", err)
	}
	return f.Name(), nil
}

// OpenInDefaultViewer hands path to the OS handler for its file type.
func OpenInDefaultViewer(path string) error {
	return browser.OpenFile(path)
}
