package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respcli/internal/cli/config"
)

func TestApp(t *testing.T) {
	app := App()

	if app.Name != "resp-cli" {
		t.Errorf("Name = %q, want %q", app.Name, "resp-cli")
	}
	if app.Version == "" {
		t.Error("Version should not be empty")
	}
	if app.Action == nil {
		t.Error("App should have a root action")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	if !commandNames["settings"] {
		t.Error("missing settings command")
	}
	if commandNames["config"] {
		t.Error("config must stay free for the server command")
	}
}

func TestApp_HelpFlagHasNoShortAlias(t *testing.T) {
	App()

	for _, name := range cli.HelpFlag.Names() {
		if name == "h" {
			t.Fatal("help flag must not claim -h")
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	aliases := make(map[string]string)
	for _, f := range globalFlags() {
		names := f.Names()
		for _, alias := range names[1:] {
			aliases[alias] = names[0]
		}
	}

	want := map[string]string{
		"h": "host",
		"p": "port",
		"s": "socket",
		"C": "connection",
		"c": "config",
		"o": "output",
		"r": "repeat",
		"i": "interval",
	}
	for alias, name := range want {
		if aliases[alias] != name {
			t.Errorf("-%s maps to %q, want %q", alias, aliases[alias], name)
		}
	}
}

// flagContext runs the app with args and returns the context its root
// action received, so aliases resolve the way they do in production.
func flagContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	var got *cli.Context
	app := App()
	app.Commands = nil
	app.Action = func(c *cli.Context) error {
		got = c
		return nil
	}
	if err := app.Run(append([]string{"resp-cli"}, args...)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got == nil {
		t.Fatal("root action was not called")
	}
	return got
}

func TestConfigOverrides(t *testing.T) {
	c := flagContext(t, "-h", "10.0.0.1", "--timeout", "2s", "--raw", "--log-level", "debug", "--no-history")
	m := configOverrides(c)

	if m["host"] != "10.0.0.1" {
		t.Errorf("host = %v", m["host"])
	}
	if _, ok := m["port"]; ok {
		t.Error("port was not set and must not override the config")
	}
	if m["timeout"] != 2*time.Second {
		t.Errorf("timeout = %v", m["timeout"])
	}
	if m["output"] != "raw" {
		t.Errorf("output = %v, want raw", m["output"])
	}
	if m["log.level"] != "debug" {
		t.Errorf("log.level = %v", m["log.level"])
	}
	if m["history.max_size"] != 0 {
		t.Errorf("history.max_size = %v, want 0", m["history.max_size"])
	}
}

func TestConfigOverrides_None(t *testing.T) {
	if m := configOverrides(flagContext(t)); len(m) != 0 {
		t.Errorf("configOverrides() = %v, want empty", m)
	}
}

func TestResolveTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Connections["cache"] = config.ConnectionConfig{Host: "cache.local", Port: 6380}
	cfg.Connections["sock"] = config.ConnectionConfig{Socket: "/tmp/redis.sock"}
	cfg.CurrentConnection = "cache"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"current connection", nil, "cache.local:6380"},
		{"explicit flag wins over current", []string{"-p", "7000"}, "127.0.0.1:6379"},
		{"named connection", []string{"-C", "sock"}, "/tmp/redis.sock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := resolveTarget(flagContext(t, tt.args...), cfg)
			if err != nil {
				t.Fatalf("resolveTarget() error = %v", err)
			}
			if conn.Address() != tt.want {
				t.Errorf("Address() = %q, want %q", conn.Address(), tt.want)
			}
		})
	}

	if _, err := resolveTarget(flagContext(t, "-C", "missing"), cfg); err == nil {
		t.Error("resolveTarget() should fail for an unknown connection")
	}
}

func TestRun_OneShot(t *testing.T) {
	srv := newFakeServer(t)

	stdout, _, err := runApp(t, "", "-p", srv.port(), "set", "k", "hello world")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout != "OK\n" {
		t.Errorf("stdout = %q, want OK", stdout)
	}

	got := srv.received()
	if len(got) != 1 || len(got[0]) != 3 || got[0][2] != "hello world" {
		t.Errorf("received = %q, want args passed through untouched", got)
	}
}

func TestRun_OneShot_RawWhenNotTerminal(t *testing.T) {
	srv := newFakeServer(t)
	srv.data["k"] = "v\xff"

	stdout, _, err := runApp(t, "", "-p", srv.port(), "get", "k")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout != "v\xff\n" {
		t.Errorf("stdout = %q, want raw bytes", stdout)
	}
}

func TestRun_OneShot_TextOutput(t *testing.T) {
	srv := newFakeServer(t)
	srv.data["k"] = "v\xff"

	stdout, _, err := runApp(t, "", "-p", srv.port(), "-o", "text", "get", "k")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout != "\"v\\xff\"\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_OneShot_Repeat(t *testing.T) {
	srv := newFakeServer(t)

	start := time.Now()
	stdout, _, err := runApp(t, "", "-p", srv.port(), "-r", "3", "-i", "0.02", "incr", "n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout != "1\n2\n3\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("elapsed = %v, want at least two intervals", elapsed)
	}
}

func TestRun_OneShot_ConnectionRefused(t *testing.T) {
	srv := newFakeServer(t)
	port := srv.port()
	srv.listener.Close()

	_, _, err := runApp(t, "", "-p", port, "ping")
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d (%v), want 1", exitCode(err), err)
	}
	if err == nil || !strings.Contains(err.Error(), "could not connect") {
		t.Errorf("error = %v, want connect failure", err)
	}
}

func TestRun_OneShot_Desync(t *testing.T) {
	srv := newFakeServer(t)
	srv.setRaw("GET", "$x\r\n")

	_, _, err := runApp(t, "", "-p", srv.port(), "get", "k")
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d (%v), want 1", exitCode(err), err)
	}
}

func TestRun_REPL(t *testing.T) {
	srv := newFakeServer(t)

	input := "set \"c d\" '1 2 3'\nget \"c d\"\nkeys *\nset \"bad\nfoo\nquit\nping\n"
	stdout, _, err := runApp(t, input, "-p", srv.port())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "OK\n" +
		"\"1 2 3\"\n" +
		"(empty list or set)\n" +
		"(error) ERR unknown command 'foo'\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if n := len(srv.received()); n != 4 {
		t.Errorf("server received %d commands, want 4", n)
	}
}

func TestRun_REPL_DesyncExits(t *testing.T) {
	srv := newFakeServer(t)
	srv.setRaw("GET", "*1\r\n:abc\r\n")

	_, _, err := runApp(t, "get k\nping\n", "-p", srv.port())
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d (%v), want 1", exitCode(err), err)
	}
	if n := len(srv.received()); n != 1 {
		t.Errorf("server received %d commands, want 1", n)
	}
}

func TestRun_REPL_ConnectionRefusedContinues(t *testing.T) {
	srv := newFakeServer(t)
	port := srv.port()
	srv.listener.Close()

	stdout, _, err := runApp(t, "ping\n", "-p", port)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Count(stdout, "(error) ") != 2 {
		t.Errorf("stdout = %q, want a connect error and a command error", stdout)
	}
}

func TestRun_MetricsTextfile(t *testing.T) {
	srv := newFakeServer(t)
	path := filepath.Join(t.TempDir(), "respcli.prom")

	_, _, err := runApp(t, "", "-p", srv.port(), "--metrics-textfile", path, "ping")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `respcli_commands_total{command="PING"} 1`) {
		t.Errorf("textfile = %s", data)
	}
}

func TestRun_InvalidOutput(t *testing.T) {
	_, _, err := runApp(t, "", "-o", "table", "ping")
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d (%v), want 1", exitCode(err), err)
	}
}
