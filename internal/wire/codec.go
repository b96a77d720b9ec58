// Package wire implements the plain-text agent protocol: formatting the
// judge's per-phase input strings and defensively parsing the untrusted
// text an agent replies with (spec.md section 6).
package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/htamlive/cliquey-dtai-judge/internal/hexgame"
)

// FormatPhase0Input renders the Phase-0 input block for one agent:
//
//	N K P
//	T
//	C
//	q r s value
//	...
func FormatPhase0Input(radius, movesLeft int, team hexgame.TeamID, cells []hexgame.CellCoord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %d\n", radius, movesLeft, 0)
	fmt.Fprintf(&b, "%d\n", team)
	fmt.Fprintf(&b, "%d\n", len(cells))
	for _, cc := range cells {
		writeCellLine(&b, cc)
	}
	return b.String()
}

// ParsePhase0Reply parses a single "q r s" line into a coordinate. On any
// parse failure it returns ok=false; the judge treats that identically
// to an out-of-bounds submission (replaced by a random legal cell).
func ParsePhase0Reply(reply string) (c hexgame.Coord, ok bool) {
	fields := strings.Fields(reply)
	if len(fields) < 3 {
		return hexgame.Coord{}, false
	}
	q, err1 := strconv.Atoi(fields[0])
	r, err2 := strconv.Atoi(fields[1])
	s, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return hexgame.Coord{}, false
	}
	return hexgame.NewCoord(q, r, s)
}

// OwnShip describes the receiving agent's own line of a Phase->=1 input;
// OtherShip describes each of the two lines for the other ships.
type OwnShip struct {
	Position hexgame.Coord
	Gold     int
	Shield   bool
	Missiles int
}

type OtherShip struct {
	Position hexgame.Coord
	Alive    bool
	Gold     int
	Shield   bool
}

// FormatPhaseNInput renders the Phase->=1 input block for the agent whose
// own ship is own; others must already be in rotated order
// ((team+1)%3, (team+2)%3) per spec.md section 6.
func FormatPhaseNInput(radius, movesLeft int, own OwnShip, others [2]OtherShip, cells []hexgame.CellCoord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %d\n", radius, movesLeft, 1)
	fmt.Fprintf(&b, "%d %d %d %d %d %d\n",
		own.Position.Q, own.Position.R, own.Position.S, own.Gold, boolInt(own.Shield), own.Missiles)
	for _, o := range others {
		fmt.Fprintf(&b, "%d %d %d %d %d %d\n",
			o.Position.Q, o.Position.R, o.Position.S, boolInt(o.Alive), o.Gold, boolInt(o.Shield))
	}
	fmt.Fprintf(&b, "%d\n", len(cells))
	for _, cc := range cells {
		writeCellLine(&b, cc)
	}
	return b.String()
}

func writeCellLine(b *strings.Builder, cc hexgame.CellCoord) {
	value := ""
	if cc.Cell.Item != nil {
		value = cc.Cell.Item.WireValue()
	}
	fmt.Fprintf(b, "%d %d %d %s\n", cc.Coord.Q, cc.Coord.R, cc.Coord.S, value)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParsePhaseNReply defensively parses an agent's Phase->=1 reply into a
// Move. Per spec.md sections 6-7: an unrecognized direction token
// degrades to DirNone rather than failing, and any malformed missile
// block (bad count, unparseable target line) discards the entire
// missile set rather than partially accepting it. This function never
// returns an error — a blank or garbage reply always yields a legal
// (if inert) Move.
func ParsePhaseNReply(reply string) hexgame.Move {
	lines := splitLines(reply)
	if len(lines) == 0 {
		return hexgame.Move{}
	}

	move := hexgame.Move{Direction: hexgame.ParseDirection(strings.TrimSpace(lines[0]))}
	if len(lines) < 2 {
		return move
	}

	count, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || count < 0 {
		return move
	}
	if len(lines) < 2+count {
		return move // fewer target lines than promised: discard the whole block
	}

	targets := make([]hexgame.Coord, 0, count)
	for i := 0; i < count; i++ {
		fields := strings.Fields(lines[2+i])
		if len(fields) < 3 {
			return move // malformed target line: discard the whole block
		}
		q, err1 := strconv.Atoi(fields[0])
		r, err2 := strconv.Atoi(fields[1])
		s, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return move
		}
		c, sumOK := hexgame.NewCoord(q, r, s)
		if !sumOK {
			return move
		}
		targets = append(targets, c)
	}

	move.MissileTargets = targets
	return move
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, line)
	}
	// Trim trailing blank lines produced by a final newline.
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}
