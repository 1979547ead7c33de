package repl

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by LineReader.ReadLine when the user pressed
// Ctrl-C. The current line is discarded and the session continues.
var ErrInterrupt = errors.New("repl: interrupted")

// LineReader supplies input lines to the REPL. ReadLine returns io.EOF
// once input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
	AddHistory(line string)
	Close() error
}

// TerminalReader reads lines from a terminal with line editing, command
// completion and in-memory history.
type TerminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader creates a TerminalReader. history seeds the
// in-memory history, oldest first.
func NewTerminalReader(prompt string, completer readline.AutoCompleter, history []string) (*TerminalReader, error) {
	limit := len(history)
	if limit < DefaultHistorySize {
		limit = DefaultHistorySize
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		AutoComplete:           completer,
		InterruptPrompt:        "^C",
		EOFPrompt:              "",
		HistoryLimit:           limit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range history {
		rl.SaveHistory(line)
	}
	return &TerminalReader{rl: rl}, nil
}

// ReadLine reads one edited line.
func (t *TerminalReader) ReadLine() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

// SetPrompt sets the prompt shown before the next line.
func (t *TerminalReader) SetPrompt(prompt string) {
	t.rl.SetPrompt(prompt)
}

// AddHistory makes line reachable with the up arrow.
func (t *TerminalReader) AddHistory(line string) {
	t.rl.SaveHistory(line)
}

// Close restores the terminal.
func (t *TerminalReader) Close() error {
	return t.rl.Close()
}

// PipeReader reads newline-terminated lines from a non-interactive
// source. It never prints a prompt.
type PipeReader struct {
	r   *bufio.Reader
	eof bool
}

// NewPipeReader creates a PipeReader over r.
func NewPipeReader(r io.Reader) *PipeReader {
	return &PipeReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func (p *PipeReader) ReadLine() (string, error) {
	if p.eof {
		return "", io.EOF
	}
	line, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		p.eof = true
		if line == "" {
			return "", io.EOF
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *PipeReader) SetPrompt(string) {}

func (p *PipeReader) AddHistory(string) {}

func (p *PipeReader) Close() error { return nil }
