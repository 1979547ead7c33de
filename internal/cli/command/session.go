package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/respcli/internal/cli/config"
	"github.com/yndnr/respcli/internal/cli/connection"
	"github.com/yndnr/respcli/internal/cli/output"
	"github.com/yndnr/respcli/internal/cli/repl"
	"github.com/yndnr/respcli/internal/infra/confloader"
	"github.com/yndnr/respcli/internal/infra/shutdown"
	"github.com/yndnr/respcli/internal/telemetry/logger"
	"github.com/yndnr/respcli/internal/telemetry/metric"
	"github.com/yndnr/respcli/pkg/resp"
)

// shutdownTimeout bounds the cleanup hooks run at exit.
const shutdownTimeout = 5 * time.Second

// session holds the resources of one CLI invocation.
type session struct {
	cfg       *config.CLIConfig
	cfgPath   string
	overrides map[string]any
	target    *connection.Connection

	log      logger.Logger
	metrics  *metric.Registry
	conn     *connection.Manager
	shutdown *shutdown.Handler

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newSession(c *cli.Context) (*session, error) {
	overrides := configOverrides(c)
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	target, err := resolveTarget(c, cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:       cfg,
		cfgPath:   config.ResolvePath(c.String("config")),
		overrides: overrides,
		target:    target,
		log:       log,
		metrics:   metric.NewRegistry(),
		conn: connection.NewManager(
			connection.WithTimeout(cfg.Timeout),
			connection.WithLogger(log),
		),
		shutdown: shutdown.NewHandler(shutdownTimeout),
		stdin:    c.App.Reader,
		stdout:   c.App.Writer,
		stderr:   c.App.ErrWriter,
	}

	s.shutdown.OnShutdown("connection", func(context.Context) error {
		s.conn.Disconnect()
		return nil
	})
	if path := cfg.Metrics.Textfile; path != "" {
		s.shutdown.OnShutdown("metrics", func(context.Context) error {
			return s.metrics.WriteTextfile(path)
		})
	}
	return s, nil
}

// context tags ctx with the session logger and a fresh session ID.
func (s *session) context(ctx context.Context) context.Context {
	ctx = logger.WithLogger(ctx, s.log)
	return logger.WithSessionID(ctx, logger.NewSessionID())
}

// close runs the cleanup hooks. Failures are logged, not returned.
func (s *session) close() {
	if err := s.shutdown.Shutdown(); err != nil {
		s.log.Warn("cleanup failed", "error", err)
	}
}

// formatter returns the reply formatter. Without a configured format,
// one-shot output to a non-terminal is raw.
func (s *session) formatter(oneShot bool) output.Formatter {
	name := s.cfg.Output
	if name == "" && oneShot && !isTerminal(s.stdout) {
		name = string(output.FormatRaw)
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		format = output.FormatText
	}
	return output.NewFormatter(format)
}

// runInteractive starts the REPL. Line editing and history are used only
// when stdin is a terminal.
func (s *session) runInteractive(ctx context.Context) error {
	ctx = s.context(ctx)
	log := logger.L(ctx)

	var (
		reader  repl.LineReader
		history *repl.History
	)
	if isTerminal(s.stdin) {
		history = repl.NewHistory(s.cfg.History.File, s.cfg.History.MaxSize)
		if err := history.Load(); err != nil {
			log.Warn("failed to load history", "path", s.cfg.History.File, "error", err)
		}
		tr, err := repl.NewTerminalReader(s.conn.Prompt(), repl.NewCompleter(), history.Entries())
		if err != nil {
			return cli.Exit(fmt.Sprintf("terminal: %v", err), 1)
		}
		reader = tr
		s.shutdown.OnShutdown("history", func(context.Context) error {
			return history.Save()
		})
	} else {
		reader = repl.NewPipeReader(s.stdin)
	}
	s.shutdown.OnShutdown("reader", func(context.Context) error {
		return reader.Close()
	})

	s.watchConfig()

	formatter := s.formatter(false)
	if err := s.conn.Connect(ctx, s.target); err != nil {
		s.metrics.ObserveError(metric.ErrorTransport)
		output.WriteReply(s.stdout, formatter, resp.ErrorStatus(repl.TransportMessage(err)))
	}

	r := repl.New(repl.Config{
		Reader:    reader,
		Output:    s.stdout,
		Conn:      s.conn,
		Formatter: formatter,
		History:   history,
		Metrics:   s.metrics,
	})
	if err := r.Run(ctx); err != nil {
		if errors.Is(err, connection.ErrDesync) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}
	return nil
}

// watchConfig applies log.level changes in the config file while the
// REPL runs. A missing file is not watched.
func (s *session) watchConfig() {
	if _, err := os.Stat(s.cfgPath); errors.Is(err, fs.ErrNotExist) {
		return
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(s.log))
	if err != nil {
		s.log.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(s.cfgPath); err != nil {
		w.Stop()
		return
	}
	w.OnChange(s.reloadLogLevel)
	w.StartAsync()

	s.shutdown.OnShutdown("watcher", func(context.Context) error {
		return w.Stop()
	})
}

// reloadLogLevel re-reads the config file and applies its log level.
func (s *session) reloadLogLevel(path string) {
	cfg, err := config.Load(path, s.overrides)
	if err != nil {
		s.log.Warn("ignoring invalid config change", "path", path, "error", err)
		return
	}
	if cfg.Log.Level != logger.GetLevel() {
		logger.SetLevel(cfg.Log.Level)
		s.log.Info("log level changed", "level", logger.GetLevel())
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
