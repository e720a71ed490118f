package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordjumble/internal/logger"
	"github.com/bastiangx/wordjumble/pkg/puzzle"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// maxWordLen bounds scrambled words in requests.
const maxWordLen = 60

// Server handles IPC for puzzle solving.
type Server struct {
	solver   *solver.Solver
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	out      *bufio.Writer
	log      *log.Logger
	requests int
}

// NewServer creates a server on stdin/stdout.
func NewServer(s *solver.Solver) *Server {
	return NewServerWithIO(s, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on the given streams.
func NewServerWithIO(s *solver.Solver, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		solver: s,
		dec:    msgpack.NewDecoder(bufio.NewReader(r)),
		enc:    msgpack.NewEncoder(out),
		out:    out,
		log:    logger.New("server"),
	}
}

// Start serves requests until the input ends or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}
		if err := s.handle(ctx, raw); err != nil {
			return err
		}
	}
}

// handle answers one message; only write failures are returned.
func (s *Server) handle(ctx context.Context, raw msgpack.RawMessage) error {
	s.requests++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Debugf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid msgpack request", CodeBadRequest)
	}

	switch req.Action {
	case "solve":
		return s.handleSolve(ctx, req)
	case "anagram":
		return s.handleAnagram(req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "info":
		return s.send(InfoResponse{
			ID:       req.ID,
			Status:   "ok",
			Stats:    s.solver.Index().Stats(),
			Requests: s.requests,
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleSolve(ctx context.Context, req Request) error {
	if len(req.Words) == 0 {
		return s.sendError(req.ID, "missing 'words'", CodeBadRequest)
	}
	for _, n := range req.Segments {
		if n < 1 {
			return s.sendError(req.ID, fmt.Sprintf("segment length must be positive, got %d", n), CodeBadRequest)
		}
	}

	records := make([]puzzle.Record, 0, len(req.Words))
	for _, w := range req.Words {
		if w.Word == "" || len(w.Word) > maxWordLen {
			return s.sendError(req.ID, fmt.Sprintf("word must be 1 to %d characters", maxWordLen), CodeBadRequest)
		}
		records = append(records, puzzle.Record{
			Word:         w.Word,
			CircledSpots: w.Circled,
			Segments:     req.Segments,
		})
	}
	p := puzzle.Group(records)[0]

	start := time.Now()
	res := s.solver.SolveN(ctx, p, req.Limit)
	elapsed := time.Since(start)

	if res.Err != nil {
		code := CodeInternal
		if solver.IsDataShape(res.Err) {
			code = CodeDataShape
		}
		return s.sendError(req.ID, res.Err.Error(), code)
	}

	entries := make([]SolutionEntry, 0, len(res.Solutions))
	for _, sol := range res.Solutions {
		entries = append(entries, SolutionEntry{Words: sol.Words, Score: sol.Score})
	}
	return s.send(SolveResponse{
		ID:        req.ID,
		Solutions: entries,
		Count:     len(entries),
		Pool:      res.Pool,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleAnagram(req Request) error {
	if req.Word == "" {
		return s.sendError(req.ID, "missing 'word'", CodeBadRequest)
	}
	if len(req.Word) > maxWordLen {
		return s.sendError(req.ID, fmt.Sprintf("word exceeds maximum length of %d characters", maxWordLen), CodeBadRequest)
	}
	cands := s.solver.Resolver().FindAnagrams(req.Word)
	entries := make([]AnagramEntry, 0, len(cands))
	for _, c := range cands {
		entries = append(entries, AnagramEntry{Word: c.Word, Score: c.Score})
	}
	return s.send(AnagramResponse{ID: req.ID, Anagrams: entries})
}

// send encodes one response and flushes it so the client sees it at once.
func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	s.log.Debug("request failed", "id", id, "code", code, "err", message)
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
