package redis

import (
	"context"
	"fmt"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
)

func stateKey(matchID string) string  { return "match:" + matchID + ":state" }
func ledgerKey(matchID string) string { return "match:" + matchID + ":ledger" }

// Sink publishes every ledger entry to a per-match pub/sub channel, for
// a spectate server to relay to connected clients, and mirrors the
// latest entry into a state key so a spectator who connects mid-match
// can fetch the current state instead of waiting for the next publish.
// Mirrors the teacher's SetGameState key convention
// (internal/repository/redis/game_state.go).
type Sink struct {
	client  *Client
	matchID string
}

// New returns a Sink that publishes under matchID.
func New(client *Client, matchID string) *Sink {
	return &Sink{client: client, matchID: matchID}
}

func (s *Sink) Append(entry ledger.Entry) error {
	data, err := entry.Marshal()
	if err != nil {
		return fmt.Errorf("redis: marshal entry: %w", err)
	}
	ctx := context.Background()
	if err := s.client.rdb.Set(ctx, stateKey(s.matchID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set state: %w", err)
	}
	if err := s.client.rdb.Publish(ctx, ledgerKey(s.matchID), data).Err(); err != nil {
		return fmt.Errorf("redis: publish ledger entry: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection. cmd/judge owns one
// client per invocation, so closing it here is safe.
func (s *Sink) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis: close: %w", err)
	}
	return nil
}
