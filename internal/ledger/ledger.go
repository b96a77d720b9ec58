// Package ledger defines the judge's "persist ledger" abstraction
// (spec.md section 1) and the JSON wire shapes for the ledger's
// per-snapshot rows (spec.md section 6).
package ledger

import (
	"encoding/json"

	"github.com/htamlive/cliquey-dtai-judge/internal/hexgame"
)

// CoordRow is the JSON shape of a Coord in the ledger.
type CoordRow struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

func coordRow(c hexgame.Coord) CoordRow {
	return CoordRow{Q: c.Q, R: c.R, S: c.S}
}

// PlayerRow is one player's ledger entry.
type PlayerRow struct {
	Q             int        `json:"q"`
	R             int        `json:"r"`
	S             int        `json:"s"`
	Points        int        `json:"points"`
	Shield        bool       `json:"shield"`
	Alive         bool       `json:"alive"`
	Missiles      int        `json:"missiles"`
	MissilesFired []CoordRow `json:"missiles_fired"`
}

// CellRow is one occupied cell's ledger entry.
type CellRow struct {
	Q     int    `json:"q"`
	R     int    `json:"r"`
	S     int    `json:"s"`
	Value string `json:"value"`
}

// MapRow is the map's ledger entry.
type MapRow struct {
	MoveLeft          int       `json:"moveleft"`
	Radius            int       `json:"radius"`
	TreasureRemaining bool      `json:"treasure_remaining"`
	Cells             []CellRow `json:"cells"`
}

// Entry is one full ledger row (spec.md section 6): one per snapshot,
// post-Phase-0 plus one per turn.
type Entry struct {
	Players []PlayerRow `json:"players"`
	Map     MapRow      `json:"map"`
}

// FromSnapshot converts a hexgame.Snapshot into its wire JSON shape.
func FromSnapshot(snap hexgame.Snapshot) Entry {
	e := Entry{Map: MapRow{
		MoveLeft:          snap.Map.MovesLeft,
		Radius:            snap.Map.Radius,
		TreasureRemaining: snap.Map.TreasureRemaining,
	}}

	for _, p := range snap.Players {
		row := PlayerRow{
			Q: p.Position.Q, R: p.Position.R, S: p.Position.S,
			Points: p.Points, Shield: p.Shield, Alive: p.Alive, Missiles: p.Missiles,
		}
		for _, t := range p.MissilesFired {
			row.MissilesFired = append(row.MissilesFired, coordRow(t))
		}
		e.Players = append(e.Players, row)
	}

	for _, cc := range snap.Map.Cells {
		value := ""
		if cc.Cell.Item != nil {
			value = cc.Cell.Item.WireValue()
		}
		e.Map.Cells = append(e.Map.Cells, CellRow{Q: cc.Coord.Q, R: cc.Coord.R, S: cc.Coord.S, Value: value})
	}

	return e
}

// Marshal renders an Entry's compact JSON bytes — the payload the
// Postgres and Redis sinks store verbatim. The jsonfile sink does not
// use it; it writes the whole entry array with indentation.
func (e Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Sink is the abstract "persist ledger" destination spec.md section 1
// leaves to the host. Append is called once after Phase 0 and once
// after every subsequent turn; Close is called exactly once, after the
// match ends, however it ended.
type Sink interface {
	Append(entry Entry) error
	Close() error
}

// MultiSink fans a single ledger out to several sinks, in order. It is
// used by cmd/judge to combine the required JSON-file sink with any
// optional Postgres/Redis sinks the operator configured.
type MultiSink struct {
	Sinks []Sink
}

func (m *MultiSink) Append(entry Entry) error {
	var firstErr error
	for _, s := range m.Sinks {
		if err := s.Append(entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
