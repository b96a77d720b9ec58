package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
)

// schema is the table this sink writes to. Operators are expected to
// have applied it before pointing --postgres-dsn at a database; the
// judge itself never runs migrations.
//
//	CREATE TABLE IF NOT EXISTS ledger_entries (
//	    id SERIAL PRIMARY KEY,
//	    match_id TEXT NOT NULL,
//	    turn INTEGER NOT NULL,
//	    snapshot JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
const insertEntrySQL = `
INSERT INTO ledger_entries (match_id, turn, snapshot)
VALUES ($1, $2, $3)`

// Sink appends each ledger entry as a row, storing the snapshot as
// jsonb, mirroring the teacher's PhaseRepo.CreatePhase/ResolvePhase
// pattern of persisting phase state as json.RawMessage.
type Sink struct {
	db      *sql.DB
	matchID string
	turn    int
}

// New returns a Sink that appends rows tagged with matchID. turn is
// incremented on each Append, starting at 0 for the post-Phase-0
// snapshot.
func New(db *sql.DB, matchID string) *Sink {
	return &Sink{db: db, matchID: matchID}
}

func (s *Sink) Append(entry ledger.Entry) error {
	data, err := entry.Marshal()
	if err != nil {
		return fmt.Errorf("postgres: marshal entry: %w", err)
	}
	if _, err := s.db.ExecContext(context.Background(), insertEntrySQL, s.matchID, s.turn, data); err != nil {
		return fmt.Errorf("postgres: insert ledger entry: %w", err)
	}
	s.turn++
	return nil
}

// Close closes the underlying connection pool. cmd/judge owns one pool
// per invocation, so closing it here is safe.
func (s *Sink) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("postgres: close: %w", err)
	}
	return nil
}
