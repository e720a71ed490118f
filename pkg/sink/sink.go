/*
Package sink writes ranked puzzle results.

Three formats are supported:

  - text: one file per puzzle, results_<image_id>.txt, holding a single line
  - line: the same line for every puzzle on one shared writer
  - msgpack: one binary record per puzzle, readable with ReadMsgpack

Every sink is safe for concurrent Write calls, since the solver hands results
over from several workers at once.
*/
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/wordjumble/pkg/config"
	"github.com/bastiangx/wordjumble/pkg/search"
	"github.com/bastiangx/wordjumble/pkg/solver"
)

// Sink receives one result per puzzle.
type Sink interface {
	solver.Sink
	Close() error
}

// New creates the sink named by cfg.Format. Text output goes to cfg.Dir;
// line and msgpack output go to w.
func New(cfg config.OutputConfig, w io.Writer) (Sink, error) {
	switch cfg.Format {
	case config.FormatText, "":
		return NewTextSink(cfg.Dir)
	case config.FormatLine:
		return NewLineSink(w), nil
	case config.FormatMsgpack:
		return NewMsgpackSink(w), nil
	default:
		return nil, config.Errorf("output.format", "unknown format %q", cfg.Format)
	}
}

// FormatLine renders the result line for one puzzle.
func FormatLine(r solver.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("No solution for image:%d, error: %v", r.ImageID, r.Err)
	}
	sols := r.Solutions
	if sols == nil {
		sols = []search.Solution{}
	}
	return fmt.Sprintf("Solution for image:%d, is: %v", r.ImageID, sols)
}

// Stdout is the writer used by line and msgpack sinks when none is given.
func Stdout() io.Writer { return os.Stdout }
