package hexgame

import (
	"encoding/json"
	"fmt"
)

// MapFile is the on-disk JSON map description (spec.md section 6). Both
// MaxMoves and MapRadius are mandatory; a missing value is a fatal
// malformed-map-file error, matching spec.md section 7's policy.
type MapFile struct {
	MaxMoves  *int          `json:"max_moves"`
	MapRadius *int          `json:"map_radius"`
	Cells     []MapFileCell `json:"cells"`
}

// MapFileCell is one initial-item record. Value is either a positive
// integer (Gold), or the literal string "S" (Shield) / "D" (Danger).
type MapFileCell struct {
	Q     int             `json:"q"`
	R     int             `json:"r"`
	S     int             `json:"s"`
	Value json.RawMessage `json:"value"`
}

// ParseMapFile decodes and validates a map file, returning a fatal error
// on any malformed record (spec.md section 7).
func ParseMapFile(data []byte) (maxMoves, radius int, items []CellCoord, err error) {
	var mf MapFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return 0, 0, nil, fmt.Errorf("hexgame: malformed map file: %w", err)
	}
	if mf.MaxMoves == nil {
		return 0, 0, nil, fmt.Errorf("hexgame: malformed map file: missing max_moves")
	}
	if mf.MapRadius == nil {
		return 0, 0, nil, fmt.Errorf("hexgame: malformed map file: missing map_radius")
	}

	radius = *mf.MapRadius
	maxMoves = *mf.MaxMoves

	for _, rec := range mf.Cells {
		c, ok := NewCoord(rec.Q, rec.R, rec.S)
		if !ok || !c.InRadius(radius) {
			return 0, 0, nil, fmt.Errorf("hexgame: malformed map file: cell %v out of bounds", rec)
		}

		item, err := parseCellValue(rec.Value)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("hexgame: malformed map file: cell %v: %w", rec, err)
		}
		items = append(items, CellCoord{Coord: c, Cell: Cell{Item: &item}})
	}

	return maxMoves, radius, items, nil
}

func parseCellValue(raw json.RawMessage) (Item, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "S":
			return Shield(), nil
		case "D":
			return Danger(), nil
		default:
			return Item{}, fmt.Errorf("unrecognized string value %q", s)
		}
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n <= 0 {
			return Item{}, fmt.Errorf("gold value must be positive, got %d", n)
		}
		return Gold(n), nil
	}

	return Item{}, fmt.Errorf("value must be a positive integer, \"S\", or \"D\"")
}

// LoadMap builds a Map and applies the map file's initial items.
func LoadMap(radius int, items []CellCoord) *Map {
	m := NewMap(radius)
	for _, ic := range items {
		if ic.Cell.Item != nil {
			m.AddItem(ic.Coord, *ic.Cell.Item)
		}
	}
	return m
}
