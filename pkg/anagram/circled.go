package anagram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPositionOutOfRange is matched by every *PositionError.
var ErrPositionOutOfRange = errors.New("circled position out of range")

// PositionError means a circled spot does not fit the solved word, which
// points at a puzzle whose word and circled spots disagree.
type PositionError struct {
	Word     string
	Position int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("circled position %d out of range for %q (length %d)",
		e.Position, e.Word, len([]rune(e.Word)))
}

func (e *PositionError) Is(target error) bool { return target == ErrPositionOutOfRange }

// Circled pairs an anagram candidate with the letters at its circled spots.
type Circled struct {
	Word    string
	Letters string
}

// ExtractLetters returns the letters of word at positions, in the order the
// positions are listed.
func ExtractLetters(word string, positions []int) (string, error) {
	runes := []rune(word)
	var sb strings.Builder
	sb.Grow(len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(runes) {
			return "", &PositionError{Word: word, Position: p}
		}
		sb.WriteRune(runes[p])
	}
	return sb.String(), nil
}

// CircleAll extracts the circled letters of every candidate, in candidate order.
func CircleAll(cands Candidates, positions []int) ([]Circled, error) {
	out := make([]Circled, 0, len(cands))
	for _, c := range cands {
		letters, err := ExtractLetters(c.Word, positions)
		if err != nil {
			return nil, err
		}
		out = append(out, Circled{Word: c.Word, Letters: letters})
	}
	return out, nil
}

// Aggregate builds a puzzle's letter pool: the circled letters of every
// candidate of every word, concatenated in encounter order. All anagram
// alternatives contribute, so the pool is a superset of the letters of the
// true answer and the search decides which of them are usable.
func Aggregate(perWord [][]Circled) string {
	var sb strings.Builder
	for _, circled := range perWord {
		for _, c := range circled {
			sb.WriteString(c.Letters)
		}
	}
	return sb.String()
}
