package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/respcli/internal/telemetry/logger"
)

// DefaultHistorySize is the number of entries kept when none is configured.
const DefaultHistorySize = 1000

// History manages command history for the REPL.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a History backed by file. A maxSize of zero disables
// recording.
func NewHistory(file string, maxSize int) *History {
	return &History{
		entries: make([]string, 0),
		maxSize: maxSize,
		file:    file,
	}
}

// Add records a command line. Lines carrying credentials and repeats of
// the previous entry are not recorded. It reports whether line was added.
func (h *History) Add(line string) bool {
	line = strings.TrimSpace(line)
	if h.maxSize <= 0 || line == "" {
		return false
	}
	if logger.IsSensitiveCommand(strings.Fields(line)) {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}

	h.entries = append(h.entries, line)
	h.trim()
	return true
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Entries returns the recorded lines, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.entries)
}

// Load loads history from file. A missing file is not an error.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}
	file, err := os.Open(h.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	return scanner.Err()
}

// Save saves history to file with mode 0600.
func (h *History) Save() error {
	if h.file == "" || h.maxSize <= 0 {
		return nil
	}

	dir := filepath.Dir(h.file)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(h.file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		w.WriteString(entry)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (h *History) trim() {
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}
