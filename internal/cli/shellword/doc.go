// Package shellword splits one line of REPL input into command words.
//
// Splitting happens in two passes:
//
//   - hex.go: \xHH escapes are decoded into raw bytes
//   - split.go: the result is split with POSIX shell quoting rules
//
// A \xHH sequence directly preceded by a backslash is left as text, so a
// user can type "\\xe4" to send the four characters \xe4.
package shellword
