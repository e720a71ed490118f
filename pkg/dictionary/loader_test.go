package dictionary

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordjumble/pkg/config"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func entries(t *testing.T, idx *Index) map[string]int {
	t.Helper()
	out := map[string]int{}
	idx.Each(func(w string, f int) error {
		out[w] = f
		return nil
	})
	return out
}

func TestLoadJSON(t *testing.T) {
	path := write(t, t.TempDir(), "freq_dict.json", `{"cat": 5, "ACT": 12, "tac": 0}`)
	idx, err := Load(path, DefaultMaxScore)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[string]int{"cat": 5, "act": 12, "tac": 0}
	if got := entries(t, idx); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	// file order is kept
	if got := idx.WordsWithSignature("act"); !reflect.DeepEqual(got, []string{"cat", "act", "tac"}) {
		t.Errorf("signature order = %v", got)
	}
}

func TestLoadText(t *testing.T) {
	path := write(t, t.TempDir(), "words.txt", "# comment\ncat 5\n\nact 12\ntac\n")
	idx, err := Load(path, DefaultMaxScore)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if score, _ := idx.Lookup("tac"); score != DefaultMaxScore {
		t.Errorf("word without frequency should be unknown, got %d", score)
	}
	if idx.Len() != 3 {
		t.Errorf("expected 3 words, got %d", idx.Len())
	}
}

func TestLoadErrorsAreConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		description string
		path        string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"invalid json", write(t, dir, "bad.json", `{"cat": 5,`)},
		{"json array", write(t, dir, "array.json", `["cat"]`)},
		{"string frequency", write(t, dir, "str.json", `{"cat": "5"}`)},
		{"fractional frequency", write(t, dir, "frac.json", `{"cat": 1.5}`)},
		{"negative frequency", write(t, dir, "neg.json", `{"cat": -1}`)},
		{"empty table", write(t, dir, "empty.json", `{}`)},
		{"bad text line", write(t, dir, "bad.txt", "cat five\n")},
		{"unknown extension", write(t, dir, "dict.csv", "cat,5\n")},
		{"empty chunk dir", t.TempDir()},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := Load(tc.path, DefaultMaxScore)
			if !errors.Is(err, config.ErrConfiguration) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestChunksRoundTrip(t *testing.T) {
	src := mustIndex(t, map[string]int{"cat": 5, "act": 12, "tac": 0, "dog": 7, "god": 3})
	dir := filepath.Join(t.TempDir(), "chunks")

	files, err := SaveChunks(src, dir, 2)
	if err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 chunk files, got %d", len(files))
	}

	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for i, c := range chunks {
		if c.ID != i+1 {
			t.Errorf("chunk %d has id %d", i, c.ID)
		}
		total += c.WordCount
	}
	if total != 5 {
		t.Errorf("chunk headers count %d words, want 5", total)
	}

	loaded, err := Load(dir, DefaultMaxScore)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(entries(t, loaded), entries(t, src)) {
		t.Errorf("round trip mismatch: %v vs %v", entries(t, loaded), entries(t, src))
	}
	if !reflect.DeepEqual(loaded.WordsWithSignature("dgo"), src.WordsWithSignature("dgo")) {
		t.Errorf("insertion order lost across chunks")
	}

	single, err := Load(files[0], DefaultMaxScore)
	if err != nil {
		t.Fatalf("Load single chunk: %v", err)
	}
	if single.Len() != 2 {
		t.Errorf("single chunk should hold 2 words, got %d", single.Len())
	}
}

func TestSaveChunksRejectsOutOfRangeFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq int
	}{
		{"above int32", math.MaxInt32 + 1},
		{"uint32 range", 3000000000},
		{"above uint32", 4294967301},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := mustIndex(t, map[string]int{"cat": 5, "big": tt.freq})
			dir := filepath.Join(t.TempDir(), "chunks")

			files, err := SaveChunks(src, dir, 1)
			if err == nil {
				t.Fatalf("SaveChunks accepted frequency %d", tt.freq)
			}
			if len(files) != 0 {
				t.Errorf("no chunk should be written on failure, got %v", files)
			}
			if chunks, _ := GetAvailableChunks(dir); len(chunks) != 0 {
				t.Errorf("found %d chunk files after a failed export", len(chunks))
			}
		})
	}

	// the largest value the reader accepts survives the round trip
	src := mustIndex(t, map[string]int{"max": math.MaxInt32})
	dir := filepath.Join(t.TempDir(), "chunks")
	if _, err := SaveChunks(src, dir, 10); err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}
	loaded, err := Load(dir, DefaultMaxScore)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if score, _ := loaded.Lookup("max"); score != math.MaxInt32 {
		t.Errorf("frequency = %d, want %d", score, math.MaxInt32)
	}
}

func TestReadTextRejectsTooManyFields(t *testing.T) {
	err := ReadText(NewBuilder(DefaultMaxScore), strings.NewReader("cat 5 extra\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line-numbered error, got %v", err)
	}
}
