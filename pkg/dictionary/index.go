// Package dictionary holds the word frequency table the solver scores against.
//
// An Index is built once, through a Builder or one of the loaders, and is
// read-only afterwards, so it can be shared by any number of goroutines.
package dictionary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultMaxScore is the score given to words whose stored frequency is 0.
const DefaultMaxScore = 9999

// Index answers dictionary membership, score and anagram queries.
type Index struct {
	words    *patricia.Trie // word -> raw frequency (int)
	anagrams *patricia.Trie // sorted letters -> []string in insertion order
	order    []string
	maxScore int
	maxFreq  int
	unknown  int
}

// Lookup returns the score of word. A stored frequency of 0 means the
// frequency is unknown and is reported as MaxScore instead.
// word must already be in normalized form (utils.NormalizeWord).
func (idx *Index) Lookup(word string) (int, bool) {
	item := idx.words.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	freq := item.(int)
	if freq == 0 {
		return idx.maxScore, true
	}
	return freq, true
}

// Contains reports whether word is a dictionary entry. Unlike Lookup it
// normalizes word first.
func (idx *Index) Contains(word string) bool {
	return idx.words.Get(patricia.Prefix(utils.NormalizeWord(word))) != nil
}

// HasPrefix reports whether at least one dictionary word starts with prefix.
// Like Lookup it expects the normalized form.
func (idx *Index) HasPrefix(prefix string) bool {
	return idx.words.MatchSubtree(patricia.Prefix(prefix))
}

// WordsWithSignature returns the words whose sorted letters equal sig,
// in the order they were added.
func (idx *Index) WordsWithSignature(sig string) []string {
	item := idx.anagrams.Get(patricia.Prefix(sig))
	if item == nil {
		return nil
	}
	words := item.([]string)
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// Each calls fn for every word and its raw stored frequency, in insertion order.
func (idx *Index) Each(fn func(word string, freq int) error) error {
	for _, w := range idx.order {
		if err := fn(w, idx.words.Get(patricia.Prefix(w)).(int)); err != nil {
			return err
		}
	}
	return nil
}

// Len is the number of distinct words.
func (idx *Index) Len() int { return len(idx.order) }

// MaxScore is the zero-substitution constant this index was built with.
func (idx *Index) MaxScore() int { return idx.maxScore }

// Stats returns statistics about the loaded dictionary
func (idx *Index) Stats() map[string]int {
	signatures := 0
	idx.anagrams.Visit(func(patricia.Prefix, patricia.Item) error {
		signatures++
		return nil
	})
	return map[string]int{
		"totalWords":   len(idx.order),
		"maxFrequency": idx.maxFreq,
		"unknownFreq":  idx.unknown,
		"signatures":   signatures,
		"maxScore":     idx.maxScore,
	}
}

// Signature is the anagram normal form of a word: its letters sorted.
func Signature(word string) string {
	return utils.SortRunes(word)
}

// Builder accumulates entries for an Index. It is not safe for concurrent use.
type Builder struct {
	idx *Index
}

// NewBuilder starts an empty index that substitutes maxScore for zero frequencies.
func NewBuilder(maxScore int) *Builder {
	return &Builder{idx: &Index{
		words:    patricia.NewTrie(),
		anagrams: patricia.NewTrie(),
		maxScore: maxScore,
	}}
}

// Add inserts word with its frequency. The word is normalized first;
// adding a word twice keeps the last frequency. Words may not contain
// whitespace, since a solution renders its words space separated.
func (b *Builder) Add(word string, freq int) error {
	word = utils.NormalizeWord(word)
	if word == "" {
		return fmt.Errorf("empty word")
	}
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return fmt.Errorf("word %q contains whitespace", word)
	}
	if freq < 0 {
		return fmt.Errorf("negative frequency %d for word %q", freq, word)
	}

	idx := b.idx
	key := patricia.Prefix(word)
	if idx.words.Get(key) != nil {
		idx.words.Set(key, freq)
	} else {
		idx.words.Insert(key, freq)
		idx.order = append(idx.order, word)

		sig := patricia.Prefix(Signature(word))
		if item := idx.anagrams.Get(sig); item != nil {
			idx.anagrams.Set(sig, append(item.([]string), word))
		} else {
			idx.anagrams.Insert(sig, []string{word})
		}
	}
	return nil
}

// Len is the number of distinct words added so far.
func (b *Builder) Len() int { return len(b.idx.order) }

// Build finalizes the index. The builder must not be used afterwards.
func (b *Builder) Build() *Index {
	idx := b.idx
	b.idx = nil
	idx.maxFreq, idx.unknown = 0, 0
	for _, w := range idx.order {
		freq := idx.words.Get(patricia.Prefix(w)).(int)
		if freq == 0 {
			idx.unknown++
		}
		if freq > idx.maxFreq {
			idx.maxFreq = freq
		}
	}
	return idx
}

// FromMap builds an index from an in-memory table. Map iteration order is
// random, so words are added in sorted order to keep results reproducible.
func FromMap(table map[string]int, maxScore int) (*Index, error) {
	words := make([]string, 0, len(table))
	for w := range table {
		words = append(words, w)
	}
	sort.Strings(words)

	b := NewBuilder(maxScore)
	for _, w := range words {
		if err := b.Add(w, table[w]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
