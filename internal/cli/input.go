// Package cli handles cmd line input for trying the solver interactively.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/search"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const maxInputLength = 60

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads lines from the user and answers each one.
//
// A bare word prints its dictionary anagrams with their scores.
// "solve <letters> <n,n,...>" searches a letter pool for answers with the
// given segment lengths. "stats" prints dictionary statistics.
type InputHandler struct {
	solver       *solver.Solver
	in           io.Reader
	out          *log.Logger
	limit        int
	requestCount int
}

// NewInputHandler creates a handler reading from in and printing to out.
// A nil out prints through the default charm logger.
func NewInputHandler(s *solver.Solver, in io.Reader, out *log.Logger, limit int) *InputHandler {
	if out == nil {
		out = log.Default()
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	return &InputHandler{solver: s, in: in, out: out, limit: limit}
}

// Start runs the loop until the input ends, the user types "quit", or ctx
// is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	h.out.Print("WordJumble CLI")
	h.out.Print("type a scrambled word, or 'solve <letters> <lengths>' (Ctrl+C to exit):")
	reader := bufio.NewReader(h.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if line == "quit" || line == "exit" {
				return nil
			}
			h.handleInput(ctx, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++
	if len(line) > maxInputLength {
		h.out.Errorf("Input too long: %d characters, max %d", len(line), maxInputLength)
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "solve":
		if len(fields) < 3 {
			h.out.Error("usage: solve <letters> <n,n,...>")
			return
		}
		h.handleSolve(ctx, fields[1], strings.Join(fields[2:], " "))
	case "stats":
		h.handleStats()
	default:
		if len(fields) > 1 {
			h.out.Errorf("Expected a single word, got %d", len(fields))
			return
		}
		h.handleAnagram(fields[0])
	}
}

func (h *InputHandler) handleAnagram(word string) {
	if !utils.IsOnlyLetters(word) {
		h.out.Warnf("Not a word: '%s'", word)
		return
	}

	start := time.Now()
	cands := h.solver.Resolver().FindAnagrams(word)
	h.out.Debugf("Took [ %v ] for '%s'", time.Since(start), word)

	if len(cands) == 0 {
		h.out.Warnf("No anagrams found for '%s'", word)
		return
	}
	h.out.Printf("Found %d anagrams for '%s':", len(cands), word)
	for i, c := range cands {
		h.out.Printf("%2d. %-30s (score: %8s)", i+1, wordStyle.Render(c.Word), utils.FormatCount(c.Score))
	}
}

func (h *InputHandler) handleSolve(ctx context.Context, letters, lengths string) {
	if !utils.IsOnlyLetters(letters) {
		h.out.Errorf("Letters must be letters only: '%s'", letters)
		return
	}
	plan, err := utils.ParseInts(lengths)
	if err != nil {
		h.out.Errorf("Bad segment lengths '%s': %v", lengths, err)
		return
	}
	for _, n := range plan {
		if n < 1 {
			h.out.Errorf("Segment lengths must be positive: '%s'", lengths)
			return
		}
	}

	pool := utils.NormalizeWord(letters)
	start := time.Now()
	sols, stats, err := h.solver.Searcher().SearchParallel(ctx, pool, plan)
	if err != nil {
		h.out.Errorf("Search stopped: %v", err)
		return
	}
	ranked := search.Rank(sols, h.limit)
	h.out.Debugf("Took [ %v ], %s steps, %s pruned", time.Since(start),
		utils.FormatCount(stats.Steps), utils.FormatCount(stats.Pruned))

	if len(ranked) == 0 {
		h.out.Warnf("No answer fits '%s' with lengths %s", pool, utils.FormatInts(plan))
		return
	}
	sep := h.solver.Searcher().Options().Separator
	h.out.Printf("Found %s answers for '%s' [%s], best %d:",
		utils.FormatCount(len(sols)), pool, utils.FormatInts(plan), len(ranked))
	for i, s := range ranked {
		h.out.Printf("%2d. %-30s (score: %8s)", i+1, wordStyle.Render(s.Joined(sep)), utils.FormatCount(s.Score))
	}
}

func (h *InputHandler) handleStats() {
	stats := h.solver.Index().Stats()
	h.out.Printf("%s words, %s signatures, max frequency %s, %s unknown",
		utils.FormatCount(stats["totalWords"]), utils.FormatCount(stats["signatures"]),
		utils.FormatCount(stats["maxFrequency"]), utils.FormatCount(stats["unknownFreq"]))
	h.out.Printf("requests this session: %d", h.requestCount)
}
