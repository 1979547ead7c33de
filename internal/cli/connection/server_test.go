package connection

import (
	"net"
	"sync"
	"testing"

	tresp "github.com/tidwall/resp"
)

// fakeServer answers each decoded command with the raw bytes returned by
// handler.
type fakeServer struct {
	listener net.Listener
	handler  func(args []string) string

	mu       sync.Mutex
	commands [][]string
	accepts  int
}

func newFakeServer(t *testing.T, network, address string, handler func(args []string) string) *fakeServer {
	t.Helper()

	l, err := net.Listen(network, address)
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	s := &fakeServer{listener: l, handler: handler}
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
		s.mu.Lock()
		s.accepts++
		s.mu.Unlock()
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
		s.mu.Unlock()

		reply := s.handler(args)
		if reply == "" {
			return
		}
		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

func (s *fakeServer) addr() string {
	return s.listener.Addr().String()
}

func (s *fakeServer) received() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.commands...)
}

func (s *fakeServer) acceptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepts
}
