package repl

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPipeReader(t *testing.T) {
	r := NewPipeReader(strings.NewReader("ping\r\nget k\n\nlast"))

	want := []string{"ping", "get k", "", "last"}
	for _, w := range want {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != w {
			t.Errorf("ReadLine() = %q, want %q", got, w)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
			t.Errorf("ReadLine() error = %v, want io.EOF", err)
		}
	}
}

func TestPipeReader_Empty(t *testing.T) {
	r := NewPipeReader(strings.NewReader(""))
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine() error = %v, want io.EOF", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
