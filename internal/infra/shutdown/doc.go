// Package shutdown provides ordered cleanup for resp-cli.
//
// Components register hooks as they start; Shutdown runs them once, in
// reverse order of registration, when the session ends:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown("connection", func(ctx context.Context) error { return mgr.Close() })
//	defer h.Shutdown()
//
// SignalContext cancels a context on SIGINT or SIGTERM.
package shutdown
