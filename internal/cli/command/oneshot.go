package command

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/respcli/internal/cli/connection"
	"github.com/yndnr/respcli/internal/cli/output"
	"github.com/yndnr/respcli/internal/cli/repl"
	"github.com/yndnr/respcli/internal/infra/shutdown"
	"github.com/yndnr/respcli/internal/telemetry/logger"
	"github.com/yndnr/respcli/internal/telemetry/metric"
	"github.com/yndnr/respcli/pkg/resp"
)

// runOneShot sends args as one command, repeat times (forever when
// negative), waiting interval seconds between sends. The words are used
// as given; they are not tokenized again.
func (s *session) runOneShot(ctx context.Context, args []string, repeat int, interval float64) error {
	ctx, stop := shutdown.SignalContext(s.context(ctx))
	defer stop()
	log := logger.L(ctx)

	formatter := s.formatter(true)
	if err := s.conn.Connect(ctx, s.target); err != nil {
		s.metrics.ObserveError(metric.ErrorTransport)
		return cli.Exit(repl.TransportMessage(err), 1)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(interval*float64(time.Second))), 1)
	}

	for i := 0; repeat < 0 || i < repeat; i++ {
		if err := limiter.Wait(ctx); err != nil {
			log.Debug("repeat stopped", "sent", i, "error", err)
			return nil
		}

		start := time.Now()
		reply, err := s.conn.Do(ctx, args)
		s.metrics.ObserveCommand(args[0], time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, connection.ErrDesync) {
				s.metrics.ObserveError(metric.ErrorDesync)
				return cli.Exit(err.Error(), 1)
			}
			s.metrics.ObserveError(metric.ErrorTransport)
			output.WriteReply(s.stdout, formatter, resp.ErrorStatus(repl.TransportMessage(err)))
			return cli.Exit("", 1)
		}

		s.metrics.ObserveReply(resp.TypeName(reply))
		if err := output.WriteReply(s.stdout, formatter, reply); err != nil {
			return err
		}
	}
	return nil
}
