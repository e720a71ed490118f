package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/bastiangx/wordjumble/pkg/anagram"
	"github.com/bastiangx/wordjumble/pkg/config"
	"github.com/bastiangx/wordjumble/pkg/search"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func sampleResults() []solver.Result {
	return []solver.Result{
		{
			ImageID: 7,
			Pool:    "actcattac",
			Solutions: []search.Solution{
				{Words: []string{"cat"}, Score: 5},
				{Words: []string{"act"}, Score: 12},
			},
		},
		{ImageID: 8, Pool: "", Solutions: nil},
		{ImageID: 9, Err: &anagram.PositionError{Word: "dog", Position: 5}},
	}
}

func TestFormatLine(t *testing.T) {
	rs := sampleResults()
	tests := []struct {
		name string
		r    solver.Result
		want string
	}{
		{"solved", rs[0], "Solution for image:7, is: [{words:[cat] score:5} {words:[act] score:12}]"},
		{"unsolved", rs[1], "Solution for image:8, is: []"},
		{"failed", rs[2], "No solution for image:9, error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLine(tt.r)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("FormatLine() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestTextSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, err := NewTextSink(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range sampleResults() {
		if err := s.Write(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "results_7.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Solution for image:7, is: [{words:[cat] score:5} {words:[act] score:12}]\n"
	if string(b) != want {
		t.Errorf("file content = %q, want %q", b, want)
	}
	if n := len(s.Written()); n != 3 {
		t.Errorf("written %d files, want 3", n)
	}

	// rewriting an image replaces its file
	if err := s.Write(sampleResults()[1]); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("expected 3 files without temp leftovers, got %d", len(entries))
	}
}

func TestLineSinkConcurrent(t *testing.T) {
	var buf bytes.Buffer
	s := NewLineSink(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Write(sampleResults()[0]); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, l := range lines {
		if l != FormatLine(sampleResults()[0]) {
			t.Errorf("interleaved line %q", l)
		}
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := NewMsgpackSink(&buf)
	in := sampleResults()
	for _, r := range in {
		if err := s.Write(r); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := ReadMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(in) {
		t.Fatalf("decoded %d records, want %d", len(recs), len(in))
	}
	for i, rec := range recs {
		if rec.ImageID != in[i].ImageID {
			t.Errorf("record %d image = %d, want %d", i, rec.ImageID, in[i].ImageID)
		}
	}
	if got := recs[0].SearchSolutions(); !reflect.DeepEqual(got, in[0].Solutions) {
		t.Errorf("solutions = %v, want %v", got, in[0].Solutions)
	}
	if len(recs[1].Solutions) != 0 || recs[1].Error != "" {
		t.Errorf("unsolved record = %+v", recs[1])
	}
	if recs[2].Error == "" {
		t.Errorf("failed record lost its error")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		format string
		want   any
	}{
		{config.FormatText, &TextSink{}},
		{config.FormatLine, &LineSink{}},
		{config.FormatMsgpack, &MsgpackSink{}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s, err := New(config.OutputConfig{Dir: t.TempDir(), Format: tt.format}, &buf)
			if err != nil {
				t.Fatal(err)
			}
			if reflect.TypeOf(s) != reflect.TypeOf(tt.want) {
				t.Errorf("New(%q) = %T", tt.format, s)
			}
		})
	}

	_, err := New(config.OutputConfig{Format: "yaml"}, &buf)
	if !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
