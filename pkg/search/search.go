// Package search finds multi-word answers in a letter pool.
//
// The search is exhaustive backtracking with a score bound: every branch
// commits one dictionary word per segment, in segment order, and is dropped
// as soon as its accumulated score reaches the threshold. Lower scores mean
// more common words, so a branch can only get worse as it goes deeper.
//
// Branches never share state. Each recursive call gets its own pool string
// and its own copy of the committed words, which is what lets SearchParallel
// hand top-level branches to separate goroutines.
package search

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultSeparator joins the words of a solution for display.
const DefaultSeparator = "-"

// Lexicon is what the search needs from a dictionary.
type Lexicon interface {
	// Lookup returns the score of word, with unknown frequencies already substituted.
	Lookup(word string) (int, bool)
	// HasPrefix reports whether any word starts with prefix.
	HasPrefix(prefix string) bool
}

// Options tunes a Searcher.
type Options struct {
	// Threshold abandons a branch once its accumulated score is >= Threshold.
	Threshold int
	Separator string
	// MaxSteps bounds the number of recursion steps per search; 0 is unlimited.
	// Steps past the budget are abandoned the same way as pruned ones.
	MaxSteps int
	// Workers bounds SearchParallel fan-out; 0 uses GOMAXPROCS.
	Workers int
	// CacheSize bounds the candidate cache shared by all searches; 0 disables it.
	CacheSize int
}

// Solution is one complete answer: a word per segment and their summed score.
type Solution struct {
	Words []string
	Score int
}

// Joined renders the words with sep between them.
func (s Solution) Joined(sep string) string {
	return strings.Join(s.Words, sep)
}

func (s Solution) String() string {
	return fmt.Sprintf("{words:[%s] score:%d}", strings.Join(s.Words, " "), s.Score)
}

// Stats counts what happened during one search.
type Stats struct {
	Steps     int // recursion steps entered
	Pruned    int // branches cut by the score threshold
	DeadEnds  int // branches that ran out of letters
	Abandoned int // branches cut by the step budget
	Emitted   int // complete solutions
}

func (s *Stats) add(o Stats) {
	s.Steps += o.Steps
	s.Pruned += o.Pruned
	s.DeadEnds += o.DeadEnds
	s.Abandoned += o.Abandoned
	s.Emitted += o.Emitted
}

// Searcher runs segment searches against one lexicon. It holds no per-search
// state and may be used from several goroutines.
type Searcher struct {
	lex   Lexicon
	opts  Options
	cache *candidateCache
}

// New creates a Searcher.
func New(lex Lexicon, opts Options) *Searcher {
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	return &Searcher{lex: lex, opts: opts, cache: newCandidateCache(opts.CacheSize)}
}

// CacheStats reports how the candidate cache has been used.
func (s *Searcher) CacheStats() CacheStats { return s.cache.stats() }

// Options returns the options in effect.
func (s *Searcher) Options() Options { return s.opts }

// Search returns every complete solution for pool and plan in discovery order.
func (s *Searcher) Search(pool string, plan []int) []Solution {
	sols, _ := s.SearchWithStats(pool, plan)
	return sols
}

// SearchWithStats is Search plus counters.
func (s *Searcher) SearchWithStats(pool string, plan []int) ([]Solution, Stats) {
	r := s.newRun(plan, new(atomic.Int64))
	r.recurse(pool, nil, 0, 0)
	return r.out, r.stats
}

// SearchParallel explores each first-segment word in its own goroutine and
// merges the results in first-segment order, so the output matches Search
// when no step budget is set. With a budget, branches draw from one shared
// counter and which branch runs out first depends on scheduling.
func (s *Searcher) SearchParallel(ctx context.Context, pool string, plan []int) ([]Solution, Stats, error) {
	steps := new(atomic.Int64)
	root := s.newRun(plan, steps)
	if !root.enter(pool, nil, 0, 0) {
		return root.out, root.stats, nil
	}

	first := s.candidates(pool, plan[0])
	branches := make([]*run, len(first))

	g, ctx := errgroup.WithContext(ctx)
	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, c := range first {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			br := s.newRun(plan, steps)
			rest, _ := RemoveLetters(pool, c.word)
			br.recurse(rest, []string{c.word}, 1, c.score)
			branches[i] = br
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, root.stats, err
	}

	out, stats := root.out, root.stats
	for _, br := range branches {
		out = append(out, br.out...)
		stats.add(br.stats)
	}
	return out, stats, nil
}

type scored struct {
	word  string
	score int
}

// candidates lists the dictionary words of length n that can be drawn from
// pool, in permutation order, with their scores. Prefixes no dictionary word
// starts with are not expanded; that only skips strings the lookup would
// reject anyway.
func (s *Searcher) candidates(pool string, n int) []scored {
	if out, ok := s.cache.get(pool, n); ok {
		return out
	}
	out := s.permuteCandidates(pool, n)
	s.cache.put(pool, n, out)
	return out
}

func (s *Searcher) permuteCandidates(pool string, n int) []scored {
	var out []scored
	permute(newMultiset(pool), n,
		func(prefix []rune) bool {
			return s.lex.HasPrefix(string(prefix))
		},
		func(word []rune) {
			w := string(word)
			if score, ok := s.lex.Lookup(w); ok {
				out = append(out, scored{w, score})
			}
		})
	return out
}

// run is the state of one search, or of one branch of a parallel search.
type run struct {
	s     *Searcher
	plan  []int
	steps *atomic.Int64
	limit int64
	stats Stats
	out   []Solution
}

func (s *Searcher) newRun(plan []int, steps *atomic.Int64) *run {
	return &run{s: s, plan: plan, steps: steps, limit: int64(s.opts.MaxSteps)}
}

// enter applies the termination rules in order and reports whether the
// node at depth i still has to be expanded.
func (r *run) enter(pool string, words []string, i, score int) bool {
	r.stats.Steps++
	if n := r.steps.Add(1); r.limit > 0 && n > r.limit {
		r.stats.Abandoned++
		return false
	}
	if score >= r.s.opts.Threshold {
		r.stats.Pruned++
		return false
	}
	if i >= len(r.plan) {
		if words == nil {
			words = []string{}
		}
		r.out = append(r.out, Solution{Words: words, Score: score})
		r.stats.Emitted++
		return false
	}
	if pool == "" {
		r.stats.DeadEnds++
		return false
	}
	return true
}

func (r *run) recurse(pool string, words []string, i, score int) {
	if !r.enter(pool, words, i, score) {
		return
	}
	for _, c := range r.s.candidates(pool, r.plan[i]) {
		rest, _ := RemoveLetters(pool, c.word)
		next := make([]string, len(words)+1)
		copy(next, words)
		next[len(words)] = c.word
		r.recurse(rest, next, i+1, score+c.score)
	}
}
