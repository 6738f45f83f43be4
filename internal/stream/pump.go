// Package stream drives the read-transform-write loop over the status-bar
// protocol stream: one input line, one output line, order preserved.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/oakwood-commons/barpad/internal/spacer"
	"github.com/oakwood-commons/barpad/pkg/logger"
)

// maxLineBytes bounds a single protocol line. i3bar lines carry a handful
// of blocks; 1 MiB is far beyond anything a bar emits.
const maxLineBytes = 1 << 20

// Pump copies lines from in to out, transforming each through the spacer.
type Pump struct {
	spacer *spacer.Spacer
	in     io.Reader
	out    io.Writer
}

// New returns a Pump over the given reader and writer.
func New(sp *spacer.Spacer, in io.Reader, out io.Writer) *Pump {
	return &Pump{spacer: sp, in: in, out: out}
}

// Run processes the stream until EOF. The first transform or write error
// stops the run; a malformed line is wrapped with its line number so the
// operator can find the offending bar update. The writer is flushed after
// every line because the consumer is a live bar, not a batch reader.
func (p *Pump) Run(ctx context.Context) error {
	lgr := logger.FromContext(ctx)

	sc := bufio.NewScanner(p.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	w := bufio.NewWriter(p.out)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		out, err := p.spacer.Process(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := w.WriteString(out); err != nil {
			return fmt.Errorf("write line %d: %w", lineNo, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write line %d: %w", lineNo, err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	lgr.V(1).Info("stream drained", "lines", lineNo)
	return nil
}
