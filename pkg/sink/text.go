package sink

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/bastiangx/wordjumble/internal/logger"
	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/charmbracelet/log"
)

// TextSink writes every puzzle to its own file in a directory.
type TextSink struct {
	dir string
	log *log.Logger

	mu      sync.Mutex
	written []string
}

// NewTextSink creates dir when needed.
func NewTextSink(dir string) (*TextSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", dir, err)
	}
	return &TextSink{dir: dir, log: logger.New("sink")}, nil
}

// FileName is the result file name for an image.
func FileName(imageID int64) string {
	return fmt.Sprintf("results_%d.txt", imageID)
}

// Write replaces the result file for r.ImageID.
func (s *TextSink) Write(r solver.Result) error {
	path := filepath.Join(s.dir, FileName(r.ImageID))
	if err := utils.WriteFileAtomic(path, []byte(FormatLine(r)+"\n")); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	s.log.Debug("wrote result", "path", path)

	s.mu.Lock()
	s.written = append(s.written, path)
	s.mu.Unlock()
	return nil
}

// Written lists the files written so far, in write order.
func (s *TextSink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

// Close is a no-op; every file is complete once Write returns.
func (s *TextSink) Close() error { return nil }

// LineSink writes one line per puzzle to a shared writer.
type LineSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineSink wraps w.
func NewLineSink(w io.Writer) *LineSink {
	if w == nil {
		w = Stdout()
	}
	return &LineSink{w: w}
}

func (s *LineSink) Write(r solver.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, FormatLine(r))
	return err
}

// Close does not close the underlying writer.
func (s *LineSink) Close() error { return nil }
