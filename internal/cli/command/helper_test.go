package command

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	tresp "github.com/tidwall/resp"
	"github.com/urfave/cli/v2"
)

// fakeServer is a minimal RESP server backed by a string map.
type fakeServer struct {
	listener net.Listener

	mu       sync.Mutex
	data     map[string]string
	commands [][]string
	// raw, when set for a command name, is written instead of a reply.
	raw map[string]string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	s := &fakeServer{
		listener: l,
		data:     make(map[string]string),
		raw:      make(map[string]string),
	}
	t.Cleanup(func() { l.Close() })

	go s.serve()
	return s
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()

	rd := tresp.NewReader(conn)
	for {
		v, _, err := rd.ReadValue()
		if err != nil {
			return
		}
		var args []string
		for _, a := range v.Array() {
			args = append(args, a.String())
		}

		s.mu.Lock()
		s.commands = append(s.commands, args)
		raw, isRaw := s.raw[strings.ToUpper(args[0])]
		var reply tresp.Value
		if !isRaw {
			reply = s.execute(args)
		}
		s.mu.Unlock()

		var b []byte
		if isRaw {
			b = []byte(raw)
		} else {
			b, _ = reply.MarshalRESP()
		}
		if _, err := conn.Write(b); err != nil {
			return
		}
	}
}

// execute runs a command; s.mu is held.
func (s *fakeServer) execute(args []string) tresp.Value {
	switch strings.ToUpper(args[0]) {
	case "PING":
		return tresp.SimpleStringValue("PONG")
	case "SET":
		s.data[args[1]] = args[2]
		return tresp.SimpleStringValue("OK")
	case "GET":
		v, ok := s.data[args[1]]
		if !ok {
			return tresp.NullValue()
		}
		return tresp.StringValue(v)
	case "INCR":
		n, _ := strconv.Atoi(s.data[args[1]])
		n++
		s.data[args[1]] = strconv.Itoa(n)
		return tresp.IntegerValue(n)
	case "KEYS":
		return tresp.ArrayValue([]tresp.Value{})
	default:
		return tresp.ErrorValue(errUnknown(args[0]))
	}
}

type errUnknown string

func (e errUnknown) Error() string { return "ERR unknown command '" + string(e) + "'" }

func (s *fakeServer) port() string {
	_, port, _ := net.SplitHostPort(s.listener.Addr().String())
	return port
}

func (s *fakeServer) received() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.commands...)
}

func (s *fakeServer) setRaw(name, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[name] = payload
}

// runApp runs the application with stdin input and returns stdout,
// stderr and the error Run returned. HOME points at a temp dir so no real
// config or history is touched.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"resp-cli"}, args...))
	return stdout.String(), stderr.String(), err
}

// exitCode returns the exit code carried by err, 0 for nil.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(cli.ExitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
