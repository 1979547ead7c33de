package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/respcli/internal/cli/connection"
	"github.com/yndnr/respcli/internal/cli/output"
	"github.com/yndnr/respcli/internal/cli/shellword"
	"github.com/yndnr/respcli/internal/telemetry/logger"
	"github.com/yndnr/respcli/internal/telemetry/metric"
	"github.com/yndnr/respcli/pkg/resp"
)

// Conn is the server side of a session. connection.Manager implements it.
type Conn interface {
	Do(ctx context.Context, args []string) (resp.Reply, error)
	Connect(ctx context.Context, target *connection.Connection) error
	Prompt() string
}

// Config holds the REPL dependencies. Reader, Output and Conn are
// required; the rest have defaults.
type Config struct {
	Reader    LineReader
	Output    io.Writer
	Conn      Conn
	Formatter output.Formatter
	History   *History
	Metrics   *metric.Registry
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	reader    LineReader
	output    io.Writer
	conn      Conn
	formatter output.Formatter
	history   *History
	metrics   *metric.Registry
}

// New creates a new REPL instance.
func New(cfg Config) *REPL {
	r := &REPL{
		reader:    cfg.Reader,
		output:    cfg.Output,
		conn:      cfg.Conn,
		formatter: cfg.Formatter,
		history:   cfg.History,
		metrics:   cfg.Metrics,
	}
	if r.formatter == nil {
		r.formatter = &output.TextFormatter{}
	}
	if r.history == nil {
		r.history = NewHistory("", 0)
	}
	if r.metrics == nil {
		r.metrics = metric.NewRegistry()
	}
	return r
}

// Run reads and executes lines until quit, exit, end of input or a
// desynchronized reply stream. Only the last case returns an error.
func (r *REPL) Run(ctx context.Context) error {
	log := logger.L(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		r.reader.SetPrompt(r.conn.Prompt())

		line, err := r.reader.ReadLine()
		if errors.Is(err, ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		args, err := shellword.Split(line)
		if err != nil {
			log.Debug("discarding line", "error", err)
			r.metrics.ObserveError(metric.ErrorTokenize)
			continue
		}
		if len(args) == 0 {
			continue
		}

		if r.history.Add(line) {
			r.reader.AddHistory(strings.TrimSpace(line))
		}

		name := strings.ToLower(args[0])
		if name == "quit" || name == "exit" {
			return nil
		}
		if name == "connect" {
			r.connect(ctx, args[1:])
			continue
		}

		if err := r.execute(ctx, args); err != nil {
			return err
		}
	}
}

// execute sends one command and prints its reply. Transport failures are
// printed as error replies; only ErrDesync is returned.
func (r *REPL) execute(ctx context.Context, args []string) error {
	log := logger.L(ctx)
	log.Debug("sending command", "args", logger.RedactCommand(args))

	start := time.Now()
	reply, err := r.conn.Do(ctx, args)
	r.metrics.ObserveCommand(args[0], time.Since(start))

	if err != nil {
		if errors.Is(err, connection.ErrDesync) {
			r.metrics.ObserveError(metric.ErrorDesync)
			return err
		}
		r.metrics.ObserveError(metric.ErrorTransport)
		log.Debug("command failed", "error", err)
		return r.print(resp.ErrorStatus(TransportMessage(err)))
	}

	r.metrics.ObserveReply(resp.TypeName(reply))
	return r.print(reply)
}

// connect handles the local "connect <host> <port>" command.
func (r *REPL) connect(ctx context.Context, args []string) {
	if len(args) != 2 {
		r.print(resp.ErrorStatus("usage: connect <host> <port>"))
		return
	}
	port, err := strconv.Atoi(args[1])
	if err != nil || port <= 0 || port > 65535 {
		r.print(resp.ErrorStatus(fmt.Sprintf("invalid port %q", args[1])))
		return
	}

	target := &connection.Connection{Host: args[0], Port: port}
	if err := r.conn.Connect(ctx, target); err != nil {
		r.metrics.ObserveError(metric.ErrorTransport)
		r.print(resp.ErrorStatus(TransportMessage(err)))
		return
	}
	logger.L(ctx).Info("switched server", "address", target.Address())
}

// print writes reply to the output.
func (r *REPL) print(reply resp.Reply) error {
	return output.WriteReply(r.output, r.formatter, reply)
}

// TransportMessage strips the sentinel prefix from a transport error for
// display.
func TransportMessage(err error) string {
	return strings.TrimPrefix(err.Error(), connection.ErrTransport.Error()+": ")
}
