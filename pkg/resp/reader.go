package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Protocol limits applied while decoding replies.
const (
	// MaxLineLen limits a single header or status line (64KB).
	MaxLineLen = 64 * 1024

	// MaxBulkLen matches the server-side proto-max-bulk-len default (512MB).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxArrayLen limits the element count of one array.
	MaxArrayLen = 1 << 24

	// MaxDepth limits array nesting.
	MaxDepth = 128
)

var (
	ErrProtocol      = errors.New("resp: protocol error")
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Type tags of the reply frames understood by the decoder.
const (
	TagStatus  = '+'
	TagError   = '-'
	TagInteger = ':'
	TagBulk    = '$'
	TagArray   = '*'
)

// ReadReply decodes exactly one reply from r.
//
// An io.EOF before the first byte of the reply is returned unchanged: the
// peer closed the stream between replies. Every failure after that point
// wraps ErrProtocol, because the stream position can no longer be trusted.
func ReadReply(r *bufio.Reader) (Reply, error) {
	if _, err := r.Peek(1); err != nil {
		return nil, err
	}
	return readReply(r, 0)
}

func readReply(r *bufio.Reader, depth int) (Reply, error) {
	line, err := readLine(r, MaxLineLen)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrProtocol)
	}

	switch line[0] {
	case TagBulk:
		return readBulk(r, line)
	case TagArray:
		return readArray(r, line, depth)
	case TagInteger:
		n, err := strconv.ParseInt(string(line[1:]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrProtocol, line[1:])
		}
		return Integer(n), nil
	case TagStatus:
		if string(line[1:]) == "OK" {
			return OK{}, nil
		}
		return Status(line[1:]), nil
	case TagError:
		return ErrorStatus(string(line[1:])), nil
	default:
		if depth > 0 {
			return nil, fmt.Errorf("%w: unknown type tag %q", ErrProtocol, line[0])
		}
		return Status(line[1:]), nil
	}
}

func readBulk(r *bufio.Reader, line []byte) (Reply, error) {
	n, err := parseLength(line)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return Nil{}, nil
	}
	if n > MaxBulkLen {
		return nil, fmt.Errorf("%w: %w: bulk length %d exceeds limit %d", ErrProtocol, ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: short bulk read: %w", ErrProtocol, unexpected(err))
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
	}
	return Bulk(buf[:n]), nil
}

func readArray(r *bufio.Reader, line []byte, depth int) (Reply, error) {
	n, err := parseLength(line)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return Nil{}, nil
	}
	if n > MaxArrayLen {
		return nil, fmt.Errorf("%w: %w: array length %d exceeds limit %d", ErrProtocol, ErrLimitExceeded, n, MaxArrayLen)
	}
	if depth+1 > MaxDepth {
		return nil, fmt.Errorf("%w: %w: nesting deeper than %d", ErrProtocol, ErrLimitExceeded, MaxDepth)
	}

	out := make(Array, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		elem, err := readReply(r, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

// parseLength parses the decimal count that follows a $ or * tag.
func parseLength(line []byte) (int, error) {
	n, err := strconv.Atoi(string(line[1:]))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid length %q", ErrProtocol, line[1:])
	}
	return n, nil
}

// readLine reads one CRLF-terminated line and returns it without the
// terminator.
func readLine(r *bufio.Reader, maxLen int) ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return nil, fmt.Errorf("%w: %w: line length exceeds limit %d", ErrProtocol, ErrLimitExceeded, maxLen)
			}
			continue
		}
		return nil, fmt.Errorf("%w: %w", ErrProtocol, unexpected(err))
	}

	if len(buf) > maxLen {
		return nil, fmt.Errorf("%w: %w: line length exceeds limit %d", ErrProtocol, ErrLimitExceeded, maxLen)
	}
	if len(buf) < 2 || buf[len(buf)-2] != '\r' {
		return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return buf[:len(buf)-2], nil
}

// unexpected maps a clean EOF inside a frame to io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
