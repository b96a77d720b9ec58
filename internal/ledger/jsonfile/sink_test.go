package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
)

func TestSink_WritesJSONArrayOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := New(path)

	e1 := ledger.Entry{Map: ledger.MapRow{MoveLeft: 99, Radius: 3}}
	e2 := ledger.Entry{Map: ledger.MapRow{MoveLeft: 98, Radius: 3}}

	if err := s.Append(e1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(e2); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading ledger file: %v", err)
	}

	var got []ledger.Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("ledger file is not a JSON array: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Map.MoveLeft != 99 || got[1].Map.MoveLeft != 98 {
		t.Errorf("entries out of order or corrupted: %+v", got)
	}
}
