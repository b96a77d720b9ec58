// Command judge runs one three-agent match end to end: it loads a map
// file, drives Phase 0 and the turn loop against the three agent
// binaries, writes the ledger, and exits 0 on normal completion
// (spec.md section 6). Grounded on the teacher's cmd/botmatch/main.go
// flag layout and JSON/text summary split.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/htamlive/cliquey-dtai-judge/internal/agentio"
	"github.com/htamlive/cliquey-dtai-judge/internal/config"
	"github.com/htamlive/cliquey-dtai-judge/internal/hexgame"
	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
	"github.com/htamlive/cliquey-dtai-judge/internal/ledger/jsonfile"
	ledgerpg "github.com/htamlive/cliquey-dtai-judge/internal/ledger/postgres"
	ledgerredis "github.com/htamlive/cliquey-dtai-judge/internal/ledger/redis"
	"github.com/htamlive/cliquey-dtai-judge/internal/logger"
	"github.com/htamlive/cliquey-dtai-judge/internal/runner"
)

// agentsFlag implements flag.Value for "--agents", which the CLI
// contract (spec.md section 6) describes as three positional paths;
// since the stdlib flag package has no multi-value flag, it is passed
// as one whitespace-separated argument: --agents "p1 p2 p3".
type agentsFlag [3]string

func (a *agentsFlag) String() string {
	return strings.Join(a[:], " ")
}

func (a *agentsFlag) Set(value string) error {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return fmt.Errorf("--agents requires exactly 3 paths, got %d", len(fields))
	}
	*a = agentsFlag{fields[0], fields[1], fields[2]}
	return nil
}

func main() {
	cfg := config.Load()

	var (
		mapPath     string
		agents      agentsFlag
		outputPath  string
		timeoutSecs int
		seed        int64
		postgresDSN string
		redisURL    string
		logLevel    string
		jsonOut     bool
	)

	flag.StringVar(&mapPath, "map", "", "path to the map file (required)")
	flag.Var(&agents, "agents", `three agent binary paths, space-separated: "p1 p2 p3" (required)`)
	flag.StringVar(&outputPath, "output", "", "ledger JSON output path (required)")
	flag.IntVar(&timeoutSecs, "timeout", 2, "per-ask agent timeout, in seconds")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 selects seed 1)")
	flag.StringVar(&postgresDSN, "postgres-dsn", cfg.PostgresDSN, "optional Postgres ledger sink DSN")
	flag.StringVar(&redisURL, "redis-url", cfg.RedisURL, "optional Redis ledger sink URL")
	flag.StringVar(&logLevel, "log-level", cfg.LogLevel, "zerolog level (debug, info, warn, error)")
	flag.BoolVar(&jsonOut, "json", false, "print the run summary as JSON")
	flag.Parse()

	logger.Init(logLevel, jsonOut)

	if mapPath == "" || outputPath == "" || agents[0] == "" || agents[1] == "" || agents[2] == "" {
		fmt.Fprintln(os.Stderr, `usage: judge --map <path> --agents "<p1> <p2> <p3>" --output <path> [flags]`)
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down")
		cancel()
	}()

	data, err := os.ReadFile(mapPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", mapPath).Msg("could not read map file")
	}
	maxMoves, radius, items, err := hexgame.ParseMapFile(data)
	if err != nil {
		log.Fatal().Err(err).Msg("malformed map file")
	}

	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = 1
	}
	rng := rand.New(rand.NewSource(rngSeed))

	m := hexgame.LoadMap(radius, items)
	state := hexgame.NewState(m, maxMoves, hexgame.DefaultStartingMissiles, rng)

	sink, err := buildSink(outputPath, postgresDSN, redisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up ledger sinks")
	}

	procAgents := [3]agentio.Agent{}
	for i, path := range agents {
		dir, mkErr := os.MkdirTemp("", fmt.Sprintf("judge-team%d-", i+1))
		if mkErr != nil {
			log.Fatal().Err(mkErr).Msg("could not create agent working directory")
		}
		defer os.RemoveAll(dir)

		a := agentio.NewProcessAgent(fmt.Sprintf("team%d", i+1), path, dir)
		a.Timeout = time.Duration(timeoutSecs) * time.Second
		procAgents[i] = a
	}

	res, err := runner.Run(ctx, state, runner.Config{Agents: procAgents, Sink: sink})
	if err != nil {
		log.Fatal().Err(err).Msg("match did not complete")
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
	} else {
		printSummary(res)
	}
}

func buildSink(outputPath, postgresDSN, redisURL string) (ledger.Sink, error) {
	multi := &ledger.MultiSink{}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil && filepath.Dir(outputPath) != "." {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	multi.Sinks = append(multi.Sinks, jsonfile.New(outputPath))

	if postgresDSN != "" {
		db, err := ledgerpg.Connect(postgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres ledger sink: %w", err)
		}
		multi.Sinks = append(multi.Sinks, ledgerpg.New(db, filepath.Base(outputPath)))
	}

	if redisURL != "" {
		client, err := ledgerredis.NewClient(redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis ledger sink: %w", err)
		}
		multi.Sinks = append(multi.Sinks, ledgerredis.New(client, filepath.Base(outputPath)))
	}

	return multi, nil
}

func printSummary(res *runner.Result) {
	fmt.Printf("\nMatch complete: %d turns played\n", res.Turns)
	for i := 0; i < 3; i++ {
		status := "alive"
		if !res.Survivors[i] {
			status = "dead"
		}
		fmt.Printf("  team%d: %d gold (%s)\n", i+1, res.Gold[i], status)
	}
}
