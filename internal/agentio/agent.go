// Package agentio drives external agent processes: it writes the
// judge's input file into the agent's working directory, invokes the
// agent binary, waits up to a timeout, and reads back its reply file.
// Grounded on the teacher's ExternalStrategy subprocess lifecycle
// (internal/bot/strategy_external.go), adapted from a stdin/stdout DUI
// handshake to the spec's file-based MAP.INP / ACT.OUT contract.
package agentio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the per-ask deadline used when none is configured
// (spec.md section 4.8).
const DefaultTimeout = 2 * time.Second

const (
	inputFileName  = "MAP.INP"
	outputFileName = "ACT.OUT"
)

// Agent asks one external process for its reply to an input string.
// Implementations must never return an error for a timed-out or
// misbehaving agent: per spec.md section 7, a missed deadline or
// unreadable output degrades to an empty reply rather than aborting the
// match.
type Agent interface {
	Ask(ctx context.Context, input string) (reply string)
}

// ProcessAgent spawns BinaryPath as a subprocess inside Dir for every
// ask, per the invocation contract in spec.md section 6: the judge
// writes MAP.INP into the agent's directory, invokes the agent binary
// with MAP.INP as its sole argument and the agent's directory as cwd,
// waits up to Timeout, then reads ACT.OUT from the same directory.
type ProcessAgent struct {
	Label      string // for logging only, e.g. "team1"
	BinaryPath string
	Dir        string
	Timeout    time.Duration
}

// NewProcessAgent constructs a ProcessAgent with DefaultTimeout.
func NewProcessAgent(label, binaryPath, dir string) *ProcessAgent {
	return &ProcessAgent{Label: label, BinaryPath: binaryPath, Dir: dir, Timeout: DefaultTimeout}
}

// Ask writes input to MAP.INP, runs the agent binary with a bounded
// deadline, and returns the contents of ACT.OUT. Any failure along the
// way (spawn failure, timeout, missing/unreadable output) yields an
// empty reply; the working directory's input/output files are cleaned
// up in all cases.
func (a *ProcessAgent) Ask(ctx context.Context, input string) string {
	inPath := filepath.Join(a.Dir, inputFileName)
	outPath := filepath.Join(a.Dir, outputFileName)

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		log.Warn().Str("agent", a.Label).Err(err).Msg("could not create agent working directory")
		return ""
	}
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	if err := os.WriteFile(inPath, []byte(input), 0o644); err != nil {
		log.Warn().Str("agent", a.Label).Err(err).Msg("could not write agent input file")
		return ""
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, a.BinaryPath, inputFileName)
	cmd.Dir = a.Dir

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			log.Warn().Str("agent", a.Label).Msg("agent timed out; degrading to empty reply")
		} else {
			log.Warn().Str("agent", a.Label).Err(err).Msg("agent exited with an error; degrading to empty reply")
		}
		return ""
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		log.Warn().Str("agent", a.Label).Err(err).Msg("agent produced no readable output; degrading to empty reply")
		return ""
	}
	return string(out)
}
