// Package buildinfo provides build information for resp-cli.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respcli/internal/infra/buildinfo.Version=v1.0.0"
//
// When Commit is not injected it falls back to the VCS revision recorded
// by the Go toolchain.
package buildinfo
