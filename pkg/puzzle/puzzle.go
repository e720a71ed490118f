// Package puzzle reads jumble puzzle definitions and groups their words.
package puzzle

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/config"
	"github.com/tidwall/gjson"
)

// Record is one scrambled word of a puzzle as it appears in the source file.
type Record struct {
	ImageID      int64
	Word         string
	CircledSpots []int
	Segments     []int
}

// Word is a scrambled word with its circled spots (positions in the solved word).
type Word struct {
	Scrambled    string
	CircledSpots []int
}

// Puzzle is every word sharing one image id plus the answer's segment lengths.
type Puzzle struct {
	ImageID  int64
	Segments []int
	Words    []Word
	// Err is set when the records of this puzzle disagree with each other.
	Err error
}

// ErrShape is matched by every *ShapeError.
var ErrShape = errors.New("puzzle shape mismatch")

// ShapeError reports records of one image that cannot form a single puzzle.
type ShapeError struct {
	ImageID int64
	Reason  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("puzzle %d: %s", e.ImageID, e.Reason)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// Load reads puzzle records from a JSON file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, config.Wrap(path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, config.Wrap(path, err)
	}
	return records, nil
}

// Parse decodes {"inputs": [...]} or a bare array of records.
// Field names follow the source data: image_id, word, circled_spots, solution_segments.
func Parse(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("inputs")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf(`expected an "inputs" array of puzzle records`)
	}

	var (
		records []Record
		perr    error
	)
	list.ForEach(func(_, v gjson.Result) bool {
		rec, err := parseRecord(v)
		if err != nil {
			perr = fmt.Errorf("record %d: %w", len(records), err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no puzzle records")
	}
	return records, nil
}

func parseRecord(v gjson.Result) (Record, error) {
	if !v.IsObject() {
		return Record{}, fmt.Errorf("expected an object")
	}
	id := v.Get("image_id")
	if id.Type != gjson.Number {
		return Record{}, fmt.Errorf("image_id missing or not a number")
	}
	word := v.Get("word")
	if word.Type != gjson.String || utils.NormalizeWord(word.String()) == "" {
		return Record{}, fmt.Errorf("word missing or empty")
	}
	spots, err := intArray(v.Get("circled_spots"), "circled_spots", 0)
	if err != nil {
		return Record{}, err
	}
	segments, err := intArray(v.Get("solution_segments"), "solution_segments", 1)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ImageID:      id.Int(),
		Word:         word.String(),
		CircledSpots: spots,
		Segments:     segments,
	}, nil
}

// intArray reads a JSON array of integers, each at least lowest.
func intArray(v gjson.Result, field string, lowest int) ([]int, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return []int{}, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%s must be an array", field)
	}
	out := []int{}
	var err error
	v.ForEach(func(_, n gjson.Result) bool {
		if n.Type != gjson.Number || n.Float() != float64(n.Int()) {
			err = fmt.Errorf("%s: %s is not an integer", field, n.Raw)
			return false
		}
		if int(n.Int()) < lowest {
			err = fmt.Errorf("%s: %d is below %d", field, n.Int(), lowest)
			return false
		}
		out = append(out, int(n.Int()))
		return true
	})
	return out, err
}

// Group collects records into puzzles by image id, in first-appearance
// order. A record whose segments differ from the first record of its image
// marks that puzzle with a ShapeError; the other puzzles are unaffected.
func Group(records []Record) []Puzzle {
	var puzzles []Puzzle
	pos := make(map[int64]int)
	for _, rec := range records {
		i, ok := pos[rec.ImageID]
		if !ok {
			i = len(puzzles)
			pos[rec.ImageID] = i
			puzzles = append(puzzles, Puzzle{
				ImageID:  rec.ImageID,
				Segments: slices.Clone(rec.Segments),
			})
		}
		p := &puzzles[i]
		if p.Err == nil && !slices.Equal(p.Segments, rec.Segments) {
			p.Err = &ShapeError{
				ImageID: rec.ImageID,
				Reason: fmt.Sprintf("word %q has segments %v, puzzle has %v",
					rec.Word, rec.Segments, p.Segments),
			}
		}
		p.Words = append(p.Words, Word{
			Scrambled:    rec.Word,
			CircledSpots: slices.Clone(rec.CircledSpots),
		})
	}
	return puzzles
}
