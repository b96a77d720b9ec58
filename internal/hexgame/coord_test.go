package hexgame

import "testing"

func TestCoord_InRadius(t *testing.T) {
	tests := []struct {
		name   string
		c      Coord
		radius int
		want   bool
	}{
		{"origin always in radius", Coord{0, 0, 0}, 0, true},
		{"sum not zero", Coord{1, 0, 0}, 3, false},
		{"within radius", Coord{2, -1, -1}, 3, true},
		{"exactly at radius", Coord{3, 0, -3}, 3, true},
		{"outside radius", Coord{4, -1, -3}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.InRadius(tt.radius); got != tt.want {
				t.Errorf("InRadius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirection_MoveAndRoundTrip(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Coord
	}{
		{DirNone, Coord{0, 0, 0}},
		{DirE, Coord{1, 0, -1}},
		{DirNE, Coord{1, -1, 0}},
		{DirNW, Coord{0, -1, 1}},
		{DirW, Coord{-1, 0, 1}},
		{DirSW, Coord{-1, 1, 0}},
		{DirSE, Coord{0, 1, -1}},
	}
	origin := Coord{0, 0, 0}
	for _, tt := range tests {
		got := origin.Move(tt.dir)
		if got != tt.want {
			t.Errorf("Move(%v) = %v, want %v", tt.dir, got, tt.want)
		}

		tok := tt.dir.String()
		if parsed := ParseDirection(tok); parsed != tt.dir {
			t.Errorf("ParseDirection(%q) = %v, want %v", tok, parsed, tt.dir)
		}
	}
}

func TestParseDirection_CaseInsensitiveAndUnknown(t *testing.T) {
	if ParseDirection("ne") != DirNE {
		t.Errorf("expected lowercase ne to parse as DirNE")
	}
	if ParseDirection("garbage") != DirNone {
		t.Errorf("unrecognized token should fall back to DirNone")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{Coord{0, 0, 0}, Coord{0, 0, 0}, 0},
		{Coord{0, 0, 0}, Coord{1, 0, -1}, 1},
		{Coord{0, 0, 0}, Coord{2, -1, -1}, 2},
		{Coord{2, -1, -1}, Coord{-2, 1, 1}, 4},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNeighbors_AllWithinDistanceOne(t *testing.T) {
	origin := Coord{0, 0, 0}
	ns := origin.Neighbors()
	if len(ns) != 6 {
		t.Fatalf("expected 6 neighbors, got %d", len(ns))
	}
	for _, n := range ns {
		if Distance(origin, n) != 1 {
			t.Errorf("neighbor %v is not at distance 1", n)
		}
		if !n.sumZero() {
			t.Errorf("neighbor %v violates sum-zero invariant", n)
		}
	}
}
