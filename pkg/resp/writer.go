package resp

import (
	"bufio"
	"strconv"
)

// WriteCommand encodes args as an array of bulk strings. The caller
// flushes w.
func WriteCommand(w *bufio.Writer, args []string) error {
	if err := writeArrayHeader(w, len(args)); err != nil {
		return err
	}
	for _, arg := range args {
		if err := writeBulkString(w, arg); err != nil {
			return err
		}
	}
	return nil
}

func writeArrayHeader(w *bufio.Writer, n int) error {
	_, err := w.WriteString("*" + strconv.Itoa(n) + "\r\n")
	return err
}

func writeBulkString(w *bufio.Writer, s string) error {
	if _, err := w.WriteString("$" + strconv.Itoa(len(s)) + "\r\n"); err != nil {
		return err
	}
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	_, err := w.WriteString("\r\n")
	return err
}
