package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Trace is the post-order record of a parse: one line per matched terminal
// ("KIND lexeme") and one "<Tag>" line per completed production.
type Trace []string

func (t Trace) String() string {
	if len(t) == 0 {
		return ""
	}
	return strings.Join(t, "\n") + "\n"
}

// WriteTo writes the trace one entry per line.
func (t Trace) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range t {
		m, err := fmt.Fprintln(bw, line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
