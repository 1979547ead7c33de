// Package connection provides connection management for resp-cli.
package connection

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/yndnr/respcli/pkg/resp"
)

// Connection describes a server endpoint. Socket, when set, wins over
// Host and Port.
type Connection struct {
	Name   string
	Host   string
	Port   int
	Socket string
}

// Network returns the dial network for the endpoint.
func (c *Connection) Network() string {
	if c.Socket != "" {
		return "unix"
	}
	return "tcp"
}

// Address returns the dial address for the endpoint.
func (c *Connection) Address() string {
	if c.Socket != "" {
		return c.Socket
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Manager owns the single server connection of a CLI session.
type Manager struct {
	current *Connection
	client  *Client
	opts    []ClientOption
}

// NewManager creates a new connection manager. opts apply to every client
// it creates.
func NewManager(opts ...ClientOption) *Manager {
	return &Manager{opts: opts}
}

// Connect switches the session to conn. The previous connection is closed
// whether or not the dial succeeds. conn becomes the current target even
// on failure, so the next Do redials it.
func (m *Manager) Connect(ctx context.Context, conn *Connection) error {
	client := NewClient(conn.Network(), conn.Address(), m.opts...)
	err := client.Connect(ctx)

	m.Disconnect()
	m.current = conn
	m.client = client
	return err
}

// Disconnect closes the current connection.
func (m *Manager) Disconnect() {
	if m.client != nil {
		m.client.Close()
	}
	m.client = nil
}

// Current returns the current connection.
func (m *Manager) Current() *Connection {
	return m.current
}

// IsConnected returns true if a connection is open.
func (m *Manager) IsConnected() bool {
	return m.client != nil && m.client.Connected()
}

// Do sends a command on the current connection, dialing it if needed.
func (m *Manager) Do(ctx context.Context, args []string) (resp.Reply, error) {
	if m.client == nil {
		if m.current == nil {
			return nil, fmt.Errorf("%w: no server selected", ErrTransport)
		}
		m.client = NewClient(m.current.Network(), m.current.Address(), m.opts...)
	}
	return m.client.Do(ctx, args)
}

// Prompt returns the REPL prompt for the current connection.
func (m *Manager) Prompt() string {
	if m.current == nil {
		return "not connected> "
	}
	return m.current.Address() + "> "
}
