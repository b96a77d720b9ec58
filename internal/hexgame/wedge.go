package hexgame

// InWedge reports whether c lies in the team's Phase-0 legal placement
// wedge, per spec.md section 6.
func InWedge(team TeamID, c Coord) bool {
	switch team {
	case Team1:
		return c.Q > 0 && c.R < 0
	case Team2:
		return c.R > 0 && c.S < 0
	case Team3:
		return c.S > 0 && c.Q < 0
	default:
		return false
	}
}

// WedgeCells returns every coordinate in the map's radius that lies in
// the team's wedge and is currently an empty cell — the candidate pool
// for both agent-submitted and judge-overridden Phase-0 placement.
func (m *Map) WedgeCells(team TeamID) []Coord {
	var out []Coord
	for _, c := range m.AllCoords() {
		if InWedge(team, c) && m.Get(c).Empty() {
			out = append(out, c)
		}
	}
	return out
}
