package hexgame

import "sort"

// Map is a sparse keyed grid bounded by Radius. Absent coordinates are
// treated as empty cells on read; they are never materialized into the
// backing store by a read, so serialization never surfaces a
// lazily-touched empty cell (spec.md section 4.2).
type Map struct {
	Radius int
	cells  map[Coord]Cell
}

// NewMap constructs an empty map of the given radius.
func NewMap(radius int) *Map {
	return &Map{Radius: radius, cells: make(map[Coord]Cell)}
}

// IsValid reports whether c satisfies the sum-zero invariant and sits
// within the map's radius.
func (m *Map) IsValid(c Coord) bool {
	return c.InRadius(m.Radius)
}

// Get returns the cell at c. Unknown coordinates read back as empty
// cells without being written to the backing store.
func (m *Map) Get(c Coord) Cell {
	if cell, ok := m.cells[c]; ok {
		return cell
	}
	return Cell{}
}

// AddItem places item at c, overwriting (and discarding) whatever item
// previously occupied the cell.
func (m *Map) AddItem(c Coord, item Item) {
	it := item
	m.cells[c] = Cell{Item: &it}
}

// RemoveItem clears any item at c. The cell becomes (and, if it was
// already absent, remains) empty.
func (m *Map) RemoveItem(c Coord) {
	delete(m.cells, c)
}

// CellCoord pairs a coordinate with the cell found there, for iteration.
type CellCoord struct {
	Coord Coord
	Cell  Cell
}

// NonEmptyCells enumerates every (coord, cell) pair holding an item, in
// a deterministic order (row-major by q then r) suitable for
// serialization and reproducible ledgers.
func (m *Map) NonEmptyCells() []CellCoord {
	out := make([]CellCoord, 0, len(m.cells))
	for c, cell := range m.cells {
		if cell.Empty() {
			continue
		}
		out = append(out, CellCoord{Coord: c, Cell: cell})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord, out[j].Coord
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		if a.R != b.R {
			return a.R < b.R
		}
		return a.S < b.S
	})
	return out
}

// AllCoords enumerates every valid coordinate within the map's radius,
// in the same deterministic order as NonEmptyCells. Used by gold
// scattering to build its candidate set and by property tests to sweep
// the whole board.
func (m *Map) AllCoords() []Coord {
	var out []Coord
	for q := -m.Radius; q <= m.Radius; q++ {
		for r := -m.Radius; r <= m.Radius; r++ {
			s := -q - r
			c := Coord{Q: q, R: r, S: s}
			if c.InRadius(m.Radius) {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		if a.R != b.R {
			return a.R < b.R
		}
		return a.S < b.S
	})
	return out
}
