package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/moca/internal/engine/buffer"
)

// Document is the file behind a session's buffer.
type Document struct {
	// Path is the file path (empty for an unnamed buffer).
	Path string

	// LineEnding is the style detected on load and used on save.
	LineEnding buffer.LineEnding

	// Exists reports whether the file was present when opened.
	Exists bool
}

// Name returns the display name: the base file name, or "[No Name]".
func (d *Document) Name() string {
	if d == nil || d.Path == "" {
		return "[No Name]"
	}
	return filepath.Base(d.Path)
}

// OpenDocument reads path. A missing file is not an error: it opens as a
// single empty line and is created on the first save.
func OpenDocument(path string) (*Document, []string, error) {
	doc := &Document{Path: path, LineEnding: buffer.LineEndingLF}
	if path == "" {
		return doc, []string{""}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, []string{""}, nil
		}
		return nil, nil, NewOperationError("open", path, err)
	}

	text := string(data)
	doc.Exists = true
	doc.LineEnding = buffer.DetectLineEnding(text)
	return doc, buffer.SplitLines(text), nil
}

// Save writes lines to the document's path using its line ending, followed
// by a final line ending. It returns the number of bytes written.
func (d *Document) Save(lines []string) (int, error) {
	if d.Path == "" {
		return 0, NewOperationError("save", "", ErrNoFilePath)
	}

	data := encodeLines(lines, d.LineEnding)
	if err := os.WriteFile(d.Path, data, 0o644); err != nil {
		return 0, NewOperationError("save", d.Path, err)
	}
	d.Exists = true
	return len(data), nil
}

// LoadFile reads newline-delimited text from path. "\r\n" and "\r" line
// breaks are accepted. A missing file yields one empty line.
func LoadFile(path string) ([]string, error) {
	_, lines, err := OpenDocument(path)
	return lines, err
}

// SaveFile writes lines to path, each terminated by "\n".
func SaveFile(path string, lines []string) error {
	doc := &Document{Path: path, LineEnding: buffer.LineEndingLF}
	_, err := doc.Save(lines)
	return err
}

func encodeLines(lines []string, le buffer.LineEnding) []byte {
	sep := le.Sequence()
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString(sep)
	}
	return []byte(sb.String())
}
