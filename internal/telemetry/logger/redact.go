// Package logger provides structured logging for resp-cli.
package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys whose string values are never written.
var sensitiveKeyPatterns = []string{
	"password",
	"pass",
	"secret",
	"token",
	"credential",
	"auth",
}

// Commands whose arguments after the name carry credentials.
var sensitiveCommands = map[string]bool{
	"AUTH":    true,
	"HELLO":   true,
	"MIGRATE": true,
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive masks string attributes whose key suggests a secret.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveCommand reports whether a command line carries credentials
// and must not be logged or stored verbatim.
func IsSensitiveCommand(args []string) bool {
	if len(args) == 0 {
		return false
	}
	name := strings.ToUpper(args[0])
	if sensitiveCommands[name] {
		return true
	}
	if name == "ACL" && len(args) > 1 && strings.EqualFold(args[1], "SETUSER") {
		return true
	}
	if name == "CONFIG" && len(args) > 2 && strings.EqualFold(args[1], "SET") &&
		strings.Contains(strings.ToLower(args[2]), "pass") {
		return true
	}
	return false
}

// RedactCommand returns args safe for logging: the command name is kept
// and, for sensitive commands, every argument is replaced.
func RedactCommand(args []string) []string {
	if !IsSensitiveCommand(args) {
		return args
	}
	out := make([]string, len(args))
	out[0] = args[0]
	for i := 1; i < len(args); i++ {
		out[i] = redactedValue
	}
	return out
}
