// Package main provides the entry point for resp-cli.
//
// resp-cli is an interactive client for servers that speak the RESP wire
// protocol:
//
//	resp-cli                      # REPL against 127.0.0.1:6379
//	resp-cli -h cache.local -p 6380
//	resp-cli set greeting "hello world"
//	resp-cli -r 5 -i 1 incr counter
//	echo 'get greeting' | resp-cli
//
// Configuration is read from ~/.respcli/cli.yaml and RESPCLI_* environment
// variables; flags take priority.
package main
