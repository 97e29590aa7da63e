package tsplib

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// maxLineSize bounds a single line; explicit matrix rows of large instances
// exceed bufio's default token size.
const maxLineSize = 4 << 20

// lines walks an instance stream one trimmed line at a time.
type lines struct {
	ctx     context.Context
	scanner *bufio.Scanner
	number  int
}

func newLines(ctx context.Context, r io.Reader) *lines {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lines{ctx: ctx, scanner: scanner}
}

// next returns the next line with surrounding whitespace removed. ok is false at
// the end of the stream; err reports read failures and cancellation.
func (l *lines) next() (line string, ok bool, err error) {
	if err := l.ctx.Err(); err != nil {
		return "", false, err
	}
	if !l.scanner.Scan() {
		return "", false, l.scanner.Err()
	}
	l.number++
	return strings.TrimSpace(l.scanner.Text()), true, nil
}
