// Package anagram unscrambles single words against a dictionary.Index and
// pulls out the circled letters a puzzle asks for.
package anagram

import (
	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/dictionary"
)

// Candidate is one dictionary word that uses exactly the letters of the query.
type Candidate struct {
	Word  string
	Score int
}

// Candidates keeps dictionary order; none is preferred over another.
type Candidates []Candidate

// Map returns the candidate -> score view.
func (c Candidates) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, cand := range c {
		m[cand.Word] = cand.Score
	}
	return m
}

// Words returns just the candidate words.
func (c Candidates) Words() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Word
	}
	return out
}

// Resolver finds anagrams through the signature index built with the dictionary.
type Resolver struct {
	idx *dictionary.Index
}

// NewResolver creates a resolver over idx.
func NewResolver(idx *dictionary.Index) *Resolver {
	return &Resolver{idx: idx}
}

// FindAnagrams returns every dictionary word with the same length and the
// same multiset of letters as word, the word itself included when it is an
// entry. Scores are zero-substituted by the index.
func (r *Resolver) FindAnagrams(word string) Candidates {
	word = utils.NormalizeWord(word)
	if word == "" {
		return nil
	}
	words := r.idx.WordsWithSignature(dictionary.Signature(word))
	if len(words) == 0 {
		return nil
	}

	out := make(Candidates, 0, len(words))
	for _, w := range words {
		score, ok := r.idx.Lookup(w)
		if !ok {
			continue
		}
		out = append(out, Candidate{Word: w, Score: score})
	}
	return out
}
