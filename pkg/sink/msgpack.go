package sink

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bastiangx/wordjumble/pkg/search"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/vmihailenco/msgpack/v5"
)

// Record is the msgpack form of one puzzle result.
type Record struct {
	ImageID   int64            `msgpack:"image_id"`
	Pool      string           `msgpack:"pool"`
	Solutions []SolutionRecord `msgpack:"solutions"`
	Error     string           `msgpack:"error,omitempty"`
}

// SolutionRecord is one ranked answer.
type SolutionRecord struct {
	Words []string `msgpack:"words"`
	Score int      `msgpack:"score"`
}

// NewRecord converts a solver result.
func NewRecord(r solver.Result) Record {
	rec := Record{
		ImageID:   r.ImageID,
		Pool:      r.Pool,
		Solutions: make([]SolutionRecord, 0, len(r.Solutions)),
	}
	for _, s := range r.Solutions {
		rec.Solutions = append(rec.Solutions, SolutionRecord{Words: s.Words, Score: s.Score})
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// SearchSolutions converts the record back to search solutions.
func (r Record) SearchSolutions() []search.Solution {
	out := make([]search.Solution, 0, len(r.Solutions))
	for _, s := range r.Solutions {
		words := s.Words
		if words == nil {
			words = []string{}
		}
		out = append(out, search.Solution{Words: words, Score: s.Score})
	}
	return out
}

// MsgpackSink streams one Record per puzzle.
type MsgpackSink struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
}

// NewMsgpackSink encodes onto w.
func NewMsgpackSink(w io.Writer) *MsgpackSink {
	if w == nil {
		w = Stdout()
	}
	return &MsgpackSink{enc: msgpack.NewEncoder(w)}
}

func (s *MsgpackSink) Write(r solver.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(NewRecord(r)); err != nil {
		return fmt.Errorf("encoding result for image %d: %w", r.ImageID, err)
	}
	return nil
}

// Close does not close the underlying writer.
func (s *MsgpackSink) Close() error { return nil }

// ReadMsgpack decodes every record in r until EOF.
func ReadMsgpack(r io.Reader) ([]Record, error) {
	dec := msgpack.NewDecoder(r)
	var out []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decoding record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}
