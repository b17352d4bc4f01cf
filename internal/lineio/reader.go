package lineio

import (
	"bufio"
	"io"
	"strings"
)

const maxLineBytes = 1 << 20

// Line is one logical line, numbered by the physical line it started on.
type Line struct {
	Num  int
	Text string
}

// Reader yields logical lines, skipping blanks and comments.
type Reader struct {
	sc  *bufio.Scanner
	num int
}

// NewReader wraps r. Physical lines longer than 1 MiB are an error.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return &Reader{sc: sc}
}

// Next returns the next non-empty, non-comment logical line. ok is false at
// end of input.
func (r *Reader) Next() (line Line, ok bool, err error) {
	for {
		if !r.sc.Scan() {
			return Line{}, false, r.sc.Err()
		}
		r.num++
		start := r.num
		text := strings.TrimRight(r.sc.Text(), "\r")

		for strings.HasSuffix(text, `\`) {
			text = strings.TrimSuffix(text, `\`)
			if !r.sc.Scan() {
				if err := r.sc.Err(); err != nil {
					return Line{}, false, err
				}
				break
			}
			r.num++
			text += strings.TrimRight(r.sc.Text(), "\r")
		}

		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return Line{Num: start, Text: text}, true, nil
	}
}
