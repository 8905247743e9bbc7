package format

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
)

// ParsePoint parses "x,y". Each coordinate may be an integer, a decimal or a
// "num/den" rational.
func ParsePoint[N fold.Number[N]](s string) (fold.Point[N], error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != 2 {
		return fold.Point[N]{}, errors.Wrapf(ErrBadPoint, "%q", s)
	}
	x, err := fold.ParseNumber[N](fields[0])
	if err != nil {
		return fold.Point[N]{}, errors.Wrapf(ErrBadPoint, "%q: %v", s, err)
	}
	y, err := fold.ParseNumber[N](fields[1])
	if err != nil {
		return fold.Point[N]{}, errors.Wrapf(ErrBadPoint, "%q: %v", s, err)
	}
	return fold.Pt(x, y), nil
}

// ParseLine parses two points separated by whitespace.
func ParseLine[N fold.Number[N]](s string) (fold.Line[N], error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return fold.Line[N]{}, errors.Wrapf(ErrBadLine, "%q", s)
	}
	p1, err := ParsePoint[N](fields[0])
	if err != nil {
		return fold.Line[N]{}, errors.Wrapf(ErrBadLine, "%q: %v", s, err)
	}
	p2, err := ParsePoint[N](fields[1])
	if err != nil {
		return fold.Line[N]{}, errors.Wrapf(ErrBadLine, "%q: %v", s, err)
	}
	return fold.Ln(p1, p2), nil
}

// lineReader hands out trimmed lines and tracks the line number for errors.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{scanner: scanner}
}

func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", lr.fail(err)
		}
		lr.line++
		return "", lr.fail(ErrTruncated)
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), nil
}

func (lr *lineReader) fail(err error) error {
	return &ParseError{Line: lr.line, Err: err}
}

func (lr *lineReader) count() (int, error) {
	s, err := lr.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, lr.fail(errors.Wrapf(ErrBadCount, "%q", s))
	}
	return n, nil
}
