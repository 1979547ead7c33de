// Package connection provides connection management for resp-cli.
package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/respcli/internal/telemetry/logger"
	"github.com/yndnr/respcli/pkg/resp"
)

var (
	// ErrTransport reports a connection-level failure. The connection has
	// been dropped and the next command dials again.
	ErrTransport = errors.New("connection: transport error")

	// ErrDesync reports a reply that could not be framed. The byte stream
	// position is lost and the client refuses further commands.
	ErrDesync = errors.New("connection: protocol desynchronized")
)

// DefaultDialTimeout bounds connection establishment.
const DefaultDialTimeout = 5 * time.Second

// Client sends commands over one RESP connection, tcp or unix.
type Client struct {
	network string
	address string

	dialTimeout time.Duration
	timeout     time.Duration
	logger      logger.Logger

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	broken error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDialTimeout sets the dial timeout.
func WithDialTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// WithTimeout bounds each command round trip. Zero means no bound beyond
// the context deadline.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for network ("tcp" or "unix") and address.
// It does not dial until Connect or Do is called.
func NewClient(network, address string, opts ...ClientOption) *Client {
	c := &Client{
		network:     network,
		address:     address,
		dialTimeout: DefaultDialTimeout,
		logger:      logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Network returns the dial network.
func (c *Client) Network() string {
	return c.network
}

// Address returns the dial address.
func (c *Client) Address() string {
	return c.address
}

// Connected reports whether a connection is currently open.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Connect dials the server if not already connected.
func (c *Client) Connect(ctx context.Context) error {
	if c.broken != nil {
		return c.broken
	}
	if c.conn != nil {
		return nil
	}

	dialer := &net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, c.network, c.address)
	if err != nil {
		return fmt.Errorf("%w: could not connect to %s: %w", ErrTransport, c.address, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.writer = bufio.NewWriter(conn)
	c.logger.Debug("connected", "network", c.network, "address", c.address)
	return nil
}

// Do sends one command and decodes exactly one reply.
func (c *Client) Do(ctx context.Context, args []string) (resp.Reply, error) {
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, c.fail(err)
	}
	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := resp.WriteCommand(c.writer, args); err != nil {
		return nil, c.fail(err)
	}
	if err := c.writer.Flush(); err != nil {
		return nil, c.fail(err)
	}

	reply, err := resp.ReadReply(c.reader)
	if err != nil {
		if errors.Is(err, resp.ErrProtocol) && !isNetError(err) {
			return nil, c.poison(err)
		}
		return nil, c.fail(err)
	}
	return reply, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.reader, c.writer = nil, nil, nil
	return err
}

// fail drops the connection after an I/O error.
func (c *Client) fail(err error) error {
	c.logger.Debug("dropping connection", "address", c.address, "error", err)
	c.Close()
	return fmt.Errorf("%w: %s: %w", ErrTransport, c.address, err)
}

// poison marks the client unusable after a framing error.
func (c *Client) poison(err error) error {
	c.logger.Error("reply stream desynchronized", "address", c.address, "error", err)
	c.Close()
	c.broken = fmt.Errorf("%w: %w", ErrDesync, err)
	return c.broken
}

// isNetError reports whether a decode failure was caused by the network
// (timeout, reset) rather than by malformed bytes.
func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
