package agentio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProcessAgent_MissingBinaryDegradesToEmptyReply(t *testing.T) {
	dir := t.TempDir()
	a := NewProcessAgent("team1", filepath.Join(dir, "no-such-binary"), dir)

	reply := a.Ask(context.Background(), "3 100 0\n1\n0\n")
	if reply != "" {
		t.Errorf("expected empty reply for a missing binary, got %q", reply)
	}
}

func TestProcessAgent_CleansUpWorkingFiles(t *testing.T) {
	dir := t.TempDir()
	a := NewProcessAgent("team1", filepath.Join(dir, "no-such-binary"), dir)

	a.Ask(context.Background(), "input")

	if _, err := os.Stat(filepath.Join(dir, inputFileName)); !os.IsNotExist(err) {
		t.Errorf("expected %s to be cleaned up", inputFileName)
	}
	if _, err := os.Stat(filepath.Join(dir, outputFileName)); !os.IsNotExist(err) {
		t.Errorf("expected %s to be cleaned up", outputFileName)
	}
}

func TestProcessAgent_HappyPath(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "echo-agent.sh")
	body := "#!/bin/sh\necho 'E' > ACT.OUT\necho '0' >> ACT.OUT\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("writing test script: %v", err)
	}

	a := NewProcessAgent("team1", script, dir)
	reply := a.Ask(context.Background(), "3 100 0\n1\n0\n")
	want := "E\n0\n"
	if reply != want {
		t.Errorf("Ask() = %q, want %q", reply, want)
	}
}

func TestProcessAgent_TimeoutDegradesToEmptyReply(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "slow-agent.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatalf("writing test script: %v", err)
	}

	a := &ProcessAgent{Label: "team1", BinaryPath: script, Dir: dir, Timeout: 20 * time.Millisecond}

	reply := a.Ask(context.Background(), "input")
	if reply != "" {
		t.Errorf("expected empty reply when the agent times out, got %q", reply)
	}
}
