//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
	"github.com/htamlive/cliquey-dtai-judge/internal/testutil"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    id SERIAL PRIMARY KEY,
    match_id TEXT NOT NULL,
    turn INTEGER NOT NULL,
    snapshot JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func TestSink_AppendWritesRows(t *testing.T) {
	db := testutil.SetupDB(t)

	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.Exec("TRUNCATE ledger_entries") })

	s := New(db, "match-1")
	if err := s.Append(ledger.Entry{Map: ledger.MapRow{MoveLeft: 99, Radius: 3}}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ledger.Entry{Map: ledger.MapRow{MoveLeft: 98, Radius: 3}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var count int
	if err := db.QueryRowContext(context.Background(),
		"SELECT count(*) FROM ledger_entries WHERE match_id = $1", "match-1").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}
