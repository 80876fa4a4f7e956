package pack

import (
	"bytes"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/repopack/repopack/internal/output"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
)

// Writer delivers a rendered document somewhere.
type Writer interface {
	Write(renderer output.Renderer, doc *output.Document) error
}

// FileWriter writes the document to a path on disk.
type FileWriter struct {
	Path string
}

func (w *FileWriter) Write(renderer output.Renderer, doc *output.Document) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(w.Path, buf.Bytes(), 0644); err != nil {
		return apperrors.IOError("writing output file", err).
			WithDetail("path", w.Path)
	}
	return nil
}

// StreamWriter renders straight to an io.Writer, typically stdout.
type StreamWriter struct {
	Out io.Writer
}

func (w *StreamWriter) Write(renderer output.Renderer, doc *output.Document) error {
	return renderer.Render(w.Out, doc)
}

// ClipboardWriter puts the rendered document on the system clipboard.
type ClipboardWriter struct{}

func (w *ClipboardWriter) Write(renderer output.Renderer, doc *output.Document) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return err
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		return apperrors.IOError("copying to clipboard", err)
	}
	return nil
}

// MultiWriter fans one render out to several destinations. Rendering
// happens once per destination; documents are small enough that this
// beats sharing a buffer across writer types.
type MultiWriter struct {
	Writers []Writer
}

func (w *MultiWriter) Write(renderer output.Renderer, doc *output.Document) error {
	for _, inner := range w.Writers {
		if err := inner.Write(renderer, doc); err != nil {
			return err
		}
	}
	return nil
}
