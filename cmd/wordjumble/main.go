// Copyright 2025 The WordJumble Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the jumble puzzle solver: a batch runner, a
MessagePack IPC server and a CLI [DBG] application.

A jumble puzzle is a set of scrambled words with some letter positions
circled, plus the word lengths of a final answer. WordJumble unscrambles
every word through a frequency dictionary, pools the circled letters of all
candidate readings and searches the pool for the most common phrase that
fits the answer's word lengths. Lower scores mean more common words.

# Usage

Solve every puzzle in a file and write one result file per image:

	wordjumble -dict data/freq_dict.json -puzzles data/jumbled_images.json -out results

Print results on stdout instead, tightening the search bound:

	wordjumble -format line -threshold 800

Run in CLI mode for interactive testing:

	wordjumble -c -limit 10

Serve requests over stdin/stdout:

	wordjumble -s

Convert a JSON dictionary into chunked binary files:

	wordjumble -dict data/freq_dict.json -export data/chunks

# Inputs

The puzzle file holds one record per scrambled word; records sharing an
image_id form one puzzle:

	{"inputs": [
	  {"image_id": 1, "word": "tca", "circled_spots": [0, 1, 2], "solution_segments": [3]}
	]}

The dictionary is a JSON object of word frequencies, a text file with one
"word freq" pair per line, or a directory of dict_NNNN.bin chunk files.
A frequency of 0 means unknown and is scored as max_score.

# Configuration

Runtime configuration is read from a TOML file, created with defaults under
~/.config/wordjumble/config.toml when missing:

	[solver]
	max_score = 9999
	score_threshold = 1100
	result_limit = 5
	separator = "-"
	max_steps = 0
	workers = 0
	parallel_segments = false
	cache_size = 4096

	[dict]
	path = "data/freq_dict.json"
	chunk_size = 10000

	[output]
	dir = "results"
	format = "text"

	[cli]
	default_limit = 5

Flags override the file. A missing or malformed dictionary or puzzle file
stops the program before any puzzle is solved.

# Output

The text format writes results_<image_id>.txt per puzzle:

	Solution for image:1, is: [{words:[cat] score:5} {words:[act] score:12}]

"line" prints the same lines on stdout, "msgpack" streams one binary record
per puzzle on stdout.

# IPC Protocol

See package server for the request and response shapes:

	{"id": "req1", "action": "solve", "words": [{"w": "tca", "c": [0, 1, 2]}], "segs": [3]}
	{"id": "req1", "s": [{"w": ["cat"], "sc": 5}], "c": 1, "pool": "actcattac", "t": 145}
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/bastiangx/wordjumble/internal/cli"
	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/config"
	"github.com/bastiangx/wordjumble/pkg/dictionary"
	"github.com/bastiangx/wordjumble/pkg/puzzle"
	"github.com/bastiangx/wordjumble/pkg/server"
	"github.com/bastiangx/wordjumble/pkg/sink"
	"github.com/bastiangx/wordjumble/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordjumble"
	gh      = "https://github.com/bastiangx/wordjumble"
)

// sigHandler cancels the returned context on the first interrupt and exits
// on the second.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nStopping...\n")
		cancel()
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
	return ctx
}

// main only manages the flow; loading, solving and output live in packages.
func main() {
	ctx := sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	serverMode := flag.Bool("s", false, "Serve msgpack requests on stdin/stdout")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	dictPath := flag.String("dict", "", "Dictionary file or chunk directory (default from config)")
	puzzlesPath := flag.String("puzzles", "data/jumbled_images.json", "Puzzle input file")
	outDir := flag.String("out", "", "Directory for text results (default from config)")
	format := flag.String("format", "", "Output format: text, line or msgpack (default from config)")
	threshold := flag.Int("threshold", -1, "Abandon branches whose score reaches this value (default from config)")
	maxScore := flag.Int("maxscore", -1, "Score given to words of unknown frequency (default from config)")
	limit := flag.Int("limit", 0, "Number of answers kept per puzzle (default from config)")
	steps := flag.Int("steps", -1, "Recursion steps allowed per puzzle, 0 for unlimited (default from config)")
	workers := flag.Int("workers", -1, "Puzzles solved at once, 0 for GOMAXPROCS (default from config)")
	exportDir := flag.String("export", "", "Write the dictionary as chunk files into this directory and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if configPath != "" {
		log.Debugf("Using config file: (%s)", configPath)
	}

	// flags win over the file
	if *dictPath != "" {
		appConfig.Dict.Path = *dictPath
	}
	if *outDir != "" {
		appConfig.Output.Dir = *outDir
	}
	if *format != "" {
		appConfig.Output.Format = *format
	}
	if *threshold >= 0 {
		appConfig.Solver.ScoreThreshold = *threshold
	}
	if *maxScore >= 0 {
		appConfig.Solver.MaxScore = *maxScore
	}
	if *limit > 0 {
		appConfig.Solver.ResultLimit = *limit
		appConfig.CLI.DefaultLimit = *limit
	}
	if *steps >= 0 {
		appConfig.Solver.MaxSteps = *steps
	}
	if *workers >= 0 {
		appConfig.Solver.Workers = *workers
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	resolvedDict := pathResolver.ResolveDataPath(appConfig.Dict.Path)
	log.Debugf("Using dictionary at: %s", utils.GetAbsolutePath(resolvedDict))

	start := time.Now()
	idx, err := dictionary.Load(resolvedDict, appConfig.Solver.MaxScore)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %s words in %v", utils.FormatCount(idx.Len()), time.Since(start))

	if *exportDir != "" {
		files, err := dictionary.SaveChunks(idx, *exportDir, appConfig.Dict.ChunkSize)
		if err != nil {
			log.Fatalf("Failed to export chunks: %v", err)
		}
		log.Printf("Wrote %s words into %d chunk files under %s",
			utils.FormatCount(idx.Len()), len(files), *exportDir)
		return
	}

	s := solver.New(idx, solver.Options{
		Threshold:        appConfig.Solver.ScoreThreshold,
		ResultLimit:      appConfig.Solver.ResultLimit,
		Separator:        appConfig.Solver.Separator,
		MaxSteps:         appConfig.Solver.MaxSteps,
		Workers:          appConfig.Solver.Workers,
		ParallelSegments: appConfig.Solver.ParallelSegments,
		CacheSize:        appConfig.Solver.CacheSize,
	})

	// CLI is mainly for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", appConfig.CLI.DefaultLimit,
			"threshold", appConfig.Solver.ScoreThreshold)

		inputHandler := cli.NewInputHandler(s, os.Stdin, nil, appConfig.CLI.DefaultLimit)
		if err := inputHandler.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *serverMode {
		log.Debug("spawning IPC")
		showStartupInfo(utils.GetAbsolutePath(resolvedDict), idx.Len())
		srv := server.NewServer(s)
		if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := runBatch(ctx, s, pathResolver.ResolveDataPath(*puzzlesPath), appConfig.Output); err != nil {
		log.Fatalf("%v", err)
	}
}

// runBatch solves every puzzle in path and reports a summary on stderr.
func runBatch(ctx context.Context, s *solver.Solver, path string, out config.OutputConfig) error {
	records, err := puzzle.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load puzzles: %w", err)
	}
	puzzles := puzzle.Group(records)
	log.Debugf("Loaded %s puzzles from %s", utils.FormatCount(len(puzzles)), path)

	dst, err := sink.New(out, os.Stdout)
	if err != nil {
		return err
	}
	defer dst.Close()

	start := time.Now()
	summary, err := s.SolveAll(ctx, puzzles, dst)
	if err != nil {
		return fmt.Errorf("solving stopped after %d puzzles: %w", summary.Total(), err)
	}

	log.Print("done",
		"puzzles", utils.FormatCount(summary.Total()),
		"solved", utils.FormatCount(summary.Solved),
		"unsolved", utils.FormatCount(summary.Unsolved),
		"failed", utils.FormatCount(summary.Failed),
		"took", time.Since(start).Round(time.Millisecond))
	if summary.Failed > 0 {
		log.Warnf("%d puzzles had inconsistent data and were skipped", summary.Failed)
	}
	return nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordJumble ] Unscrambles circled-letter word puzzles")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " WordJumble ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("Workers: %d", runtime.GOMAXPROCS(0))
	log.Infof("dictionary: ( %s ), %s words", dictPath, utils.FormatCount(words))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")

	log.SetLevel(currentLevel)
}
