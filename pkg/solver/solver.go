// Package solver wires the dictionary, anagram and search packages into the
// per-puzzle pipeline and fans puzzles out over a bounded worker group.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bastiangx/wordjumble/internal/logger"
	"github.com/bastiangx/wordjumble/pkg/anagram"
	"github.com/bastiangx/wordjumble/pkg/dictionary"
	"github.com/bastiangx/wordjumble/pkg/puzzle"
	"github.com/bastiangx/wordjumble/pkg/search"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Options are the tunables exposed to the surrounding system.
type Options struct {
	Threshold   int
	ResultLimit int
	Separator   string
	MaxSteps    int
	// Workers bounds how many puzzles are solved at once; 0 uses GOMAXPROCS.
	Workers int
	// ParallelSegments also fans out the first segment inside each puzzle.
	ParallelSegments bool
	CacheSize        int
}

// WordResult records how one scrambled word was read.
type WordResult struct {
	Scrambled    string
	CircledSpots []int
	Candidates   anagram.Candidates
	Circled      []anagram.Circled
}

// Result is the outcome for one puzzle. Solutions is empty, not an error,
// when nothing fits; Err is set only when the puzzle itself is malformed.
type Result struct {
	ImageID   int64
	Segments  []int
	Pool      string
	Words     []WordResult
	Solutions []search.Solution
	Stats     search.Stats
	Elapsed   time.Duration
	Err       error
}

// Solved reports whether at least one answer was found.
func (r Result) Solved() bool { return r.Err == nil && len(r.Solutions) > 0 }

// IsDataShape reports whether err means the puzzle data itself is inconsistent.
func IsDataShape(err error) bool {
	return errors.Is(err, anagram.ErrPositionOutOfRange) || errors.Is(err, puzzle.ErrShape)
}

// Summary counts puzzle outcomes for a batch.
type Summary struct {
	Solved   int
	Unsolved int
	Failed   int
}

// Total is the number of puzzles processed.
func (s Summary) Total() int { return s.Solved + s.Unsolved + s.Failed }

// Sink receives ranked results. Write may be called from several goroutines.
type Sink interface {
	Write(r Result) error
}

// Solver runs the full pipeline against one shared, read-only index.
type Solver struct {
	idx      *dictionary.Index
	resolver *anagram.Resolver
	searcher *search.Searcher
	opts     Options
	log      *log.Logger
}

// New creates a Solver.
func New(idx *dictionary.Index, opts Options) *Solver {
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = search.DefaultLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Solver{
		idx:      idx,
		resolver: anagram.NewResolver(idx),
		searcher: search.New(idx, search.Options{
			Threshold: opts.Threshold,
			Separator: opts.Separator,
			MaxSteps:  opts.MaxSteps,
			Workers:   opts.Workers,
			CacheSize: opts.CacheSize,
		}),
		opts: opts,
		log:  logger.New("solver"),
	}
}

// Resolver exposes the anagram resolver backing this solver.
func (s *Solver) Resolver() *anagram.Resolver { return s.resolver }

// Searcher exposes the segment searcher backing this solver.
func (s *Solver) Searcher() *search.Searcher { return s.searcher }

// Index exposes the dictionary.
func (s *Solver) Index() *dictionary.Index { return s.idx }

// Solve runs one puzzle: anagrams per word, circled letters, pooled letters,
// segment search, ranking.
func (s *Solver) Solve(ctx context.Context, p puzzle.Puzzle) Result {
	return s.SolveN(ctx, p, s.opts.ResultLimit)
}

// SolveN is Solve keeping at most limit answers; limit <= 0 uses the
// configured result limit.
func (s *Solver) SolveN(ctx context.Context, p puzzle.Puzzle, limit int) (res Result) {
	if limit <= 0 {
		limit = s.opts.ResultLimit
	}
	start := time.Now()
	res = Result{ImageID: p.ImageID, Segments: p.Segments}
	defer func() { res.Elapsed = time.Since(start) }()

	if p.Err != nil {
		res.Err = p.Err
		return res
	}

	perWord := make([][]anagram.Circled, 0, len(p.Words))
	for _, w := range p.Words {
		cands := s.resolver.FindAnagrams(w.Scrambled)
		circled, err := anagram.CircleAll(cands, w.CircledSpots)
		if err != nil {
			res.Err = fmt.Errorf("puzzle %d, word %q: %w", p.ImageID, w.Scrambled, err)
			return res
		}
		if len(cands) == 0 {
			s.log.Debug("no anagrams", "image", p.ImageID, "word", w.Scrambled)
		}
		res.Words = append(res.Words, WordResult{
			Scrambled:    w.Scrambled,
			CircledSpots: w.CircledSpots,
			Candidates:   cands,
			Circled:      circled,
		})
		perWord = append(perWord, circled)
	}
	res.Pool = anagram.Aggregate(perWord)

	var sols []search.Solution
	if s.opts.ParallelSegments {
		var err error
		sols, res.Stats, err = s.searcher.SearchParallel(ctx, res.Pool, p.Segments)
		if err != nil {
			res.Err = err
			return res
		}
	} else {
		sols, res.Stats = s.searcher.SearchWithStats(res.Pool, p.Segments)
	}
	res.Solutions = search.Rank(sols, limit)

	s.log.Debug("solved", "image", p.ImageID, "pool", res.Pool,
		"found", len(sols), "steps", res.Stats.Steps, "pruned", res.Stats.Pruned)
	return res
}

// SolveAll solves every puzzle, at most Workers at a time, handing each
// result to sink as soon as it is ready. Malformed puzzles are reported to
// the sink and counted as failed; they never stop the batch. A sink error or
// a cancelled ctx does.
func (s *Solver) SolveAll(ctx context.Context, puzzles []puzzle.Puzzle, sink Sink) (Summary, error) {
	var (
		mu      sync.Mutex
		summary Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, p := range puzzles {
		p := p
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.Solve(gctx, p)
			if res.Err != nil && !IsDataShape(res.Err) {
				return res.Err
			}

			mu.Lock()
			switch {
			case res.Err != nil:
				summary.Failed++
				s.log.Warn("puzzle abandoned", "image", res.ImageID, "err", res.Err)
			case len(res.Solutions) == 0:
				summary.Unsolved++
				s.log.Info("no solution", "image", res.ImageID, "pool", res.Pool)
			default:
				summary.Solved++
			}
			mu.Unlock()

			if err := sink.Write(res); err != nil {
				return fmt.Errorf("writing result for image %d: %w", res.ImageID, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return summary, err
}
