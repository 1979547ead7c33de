package output

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/yndnr/respcli/internal/cli/shellword"
	"github.com/yndnr/respcli/pkg/resp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		reply resp.Reply
		want  string
	}{
		{"nil", resp.Nil{}, "(nil)\n"},
		{"integer", resp.Integer(42), "(integer) 42\n"},
		{"negative integer", resp.Integer(-1), "(integer) -1\n"},
		{"ok", resp.OK{}, "OK\n"},
		{"status", resp.Status("PONG"), "PONG\n"},
		{"error status", resp.ErrorStatus("ERR unknown command"), "(error) ERR unknown command\n"},
		{"bulk", resp.Bulk("c"), "\"c\"\n"},
		{"empty bulk", resp.Bulk(""), "\"\"\n"},
		{"utf-8 bulk", resp.Bulk("中文key"), "\"中文key\"\n"},
		{"binary bulk", resp.Bulk{0xff, 'a', 0x00}, "\"\\xffa\\x00\"\n"},
		{"empty array", resp.Array{}, "(empty list or set)"},
		{"single element", resp.Array{resp.Bulk("c")}, "1) \"c\"\n"},
		{
			name:  "mixed array",
			reply: resp.Array{resp.Bulk("c"), resp.Nil{}, resp.Integer(3)},
			want:  "1) \"c\"\n2) (nil)\n3) (integer) 3\n",
		},
		{
			name:  "nested arrays indent",
			reply: resp.Array{resp.Array{resp.Bulk("a"), resp.Bulk("b")}, resp.Bulk("c")},
			want:  "1) 1) \"a\"\n   2) \"b\"\n2) \"c\"\n",
		},
		{
			name:  "nested empty array",
			reply: resp.Array{resp.Array{}, resp.OK{}},
			want:  "1) (empty list or set)\n2) OK\n",
		},
		{
			name:  "nested binary bulk",
			reply: resp.Array{resp.Bulk{0xe4, 0xb8}},
			want:  "1) \"\\xe4\\xb8\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.reply); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_IndexWidth(t *testing.T) {
	for _, n := range []int{1, 9, 10, 12, 99, 100, 1000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			arr := make(resp.Array, n)
			for i := range arr {
				arr[i] = resp.Integer(i)
			}

			lines := strings.Split(strings.TrimSuffix(Render(arr), "\n"), "\n")
			if len(lines) != n {
				t.Fatalf("got %d lines, want %d", len(lines), n)
			}

			width := len(fmt.Sprint(n))
			for i, line := range lines {
				idx := strings.Index(line, ") ")
				if idx != width {
					t.Fatalf("line %d: index column width = %d, want %d (%q)", i, idx, width, line)
				}
			}
			if !strings.HasPrefix(lines[0], strings.Repeat(" ", width-1)+"1) ") {
				t.Errorf("first line = %q, want right-justified index", lines[0])
			}
		})
	}
}

func TestRender_NestedWidthIsPerLevel(t *testing.T) {
	inner := make(resp.Array, 10)
	for i := range inner {
		inner[i] = resp.Integer(i)
	}
	got := Render(resp.Array{inner, resp.Nil{}})

	lines := strings.Split(got, "\n")
	if lines[0] != "1)  1) (integer) 0" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[9] != "   10) (integer) 9" {
		t.Errorf("tenth line = %q", lines[9])
	}
	if lines[10] != "2) (nil)" {
		t.Errorf("last line = %q", lines[10])
	}
}

func TestRender_UnknownVariantPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Render should panic on a nil reply")
		}
	}()
	Render(nil)
}

func TestEscapeBinary(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("abc"), "abc"},
		{[]byte{0x00}, `\x00`},
		{[]byte{0x7f}, `\x7f`},
		{[]byte{'\n', '\r', '\t'}, `\x0a\x0d\x09`},
		{[]byte{0xe4, 0xb8, 0xad}, `\xe4\xb8\xad`},
		{[]byte(" ~"), " ~"},
	}
	for _, tt := range tests {
		if got := EscapeBinary(tt.in); got != tt.want {
			t.Errorf("EscapeBinary(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeBinary_RoundTrip(t *testing.T) {
	// Byte sequences with no backslash decode unambiguously and are valid
	// UTF-8 once unescaped.
	inputs := [][]byte{
		[]byte("中文key"),
		{0xe6, 0x96, 0x87},
		[]byte("plain text"),
		{0xc3, 0xa9, 'x', 0xe2, 0x82, 0xac},
		{0x01, 0x02, 0x7f},
	}

	for _, in := range inputs {
		escaped := EscapeBinary(in)
		got, err := shellword.UnescapeHex(escaped)
		if err != nil {
			t.Fatalf("UnescapeHex(%q) error = %v", escaped, err)
		}
		if !bytes.Equal([]byte(got), in) {
			t.Errorf("round trip of %v = %v", in, []byte(got))
		}
	}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, resp.Array{resp.Bulk("c")}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "1) \"c\"\n" {
		t.Errorf("Format() = %q", buf.String())
	}
}
