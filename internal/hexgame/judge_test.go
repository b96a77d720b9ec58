package hexgame

import (
	"math/rand"
	"testing"
)

func newTestState(radius, maxMoves int) *State {
	m := NewMap(radius)
	return NewState(m, maxMoves, 5, rand.New(rand.NewSource(1)))
}

// Scenario A — Phase-0 override: an out-of-wedge submission is replaced
// by a uniformly random legal cell in the team's wedge.
func TestScenarioA_Phase0Override(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	pos := j.PlaceStart(Team2, Coord{0, 0, 0}) // not in team 2's wedge
	if !InWedge(Team2, pos) {
		t.Fatalf("expected override to land in team 2's wedge, got %v", pos)
	}
	if !s.Map.IsValid(pos) {
		t.Fatalf("override position %v is out of bounds", pos)
	}
}

func TestPlaceStart_LegalSubmissionIsKept(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	var legal Coord
	for _, c := range s.Map.WedgeCells(Team1) {
		legal = c
		break
	}
	got := j.PlaceStart(Team1, legal)
	if got != legal {
		t.Errorf("expected legal submission %v to be kept, got %v", legal, got)
	}
}

// Scenario B — swap death: P1 and P2 cross paths and both die, retaining
// their new positions.
func TestScenarioB_SwapDeath(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	p1 := s.Player(Team1)
	p1.Position = Coord{1, 0, -1}
	p2 := s.Player(Team2)
	p2.Position = Coord{0, 0, 0}
	p3 := s.Player(Team3)
	p3.Position = Coord{-2, 1, 1} // out of the way

	moves := [3]Move{
		{Direction: DirW},
		{Direction: DirE},
		{Direction: DirNone},
	}
	j.ResolveTurn(moves)

	if p1.Alive || p2.Alive {
		t.Fatalf("expected both swapped players dead, p1.Alive=%v p2.Alive=%v", p1.Alive, p2.Alive)
	}
	if p1.Position != (Coord{0, 0, 0}) {
		t.Errorf("p1 should retain its new position, got %v", p1.Position)
	}
	if p2.Position != (Coord{1, 0, -1}) {
		t.Errorf("p2 should retain its new position, got %v", p2.Position)
	}
	if p3.Alive == false {
		t.Errorf("bystander p3 should survive")
	}
}

// Scenario C — double missile: two firers hitting the same cell
// aggregate to a single >=2 hit, not two separate single hits.
func TestScenarioC_DoubleMissileAggregation(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	target := Coord{2, -1, -1}
	p1 := s.Player(Team1)
	p1.Position = target
	p1.Gold = 50

	p2 := s.Player(Team2)
	p2.Position = Coord{-2, 1, 1}
	p2.Missiles = 5
	p3 := s.Player(Team3)
	p3.Position = Coord{-3, 3, 0} // far enough that scattered gold can't land under it
	p3.Missiles = 5

	moves := [3]Move{
		{Direction: DirNone},
		{Direction: DirNone, MissileTargets: []Coord{target}},
		{Direction: DirNone, MissileTargets: []Coord{target}},
	}
	j.ResolveTurn(moves)

	if p1.Gold != 35 { // 50 - ceil(50*0.30) = 50 - 15
		t.Fatalf("expected p1 to lose 15 gold (aggregated double hit), left with %d", p1.Gold)
	}

	total := 0
	for _, c := range s.Map.AllCoords() {
		if Distance(target, c) <= 2 && c != target {
			if cell := s.Map.Get(c); cell.Item != nil && cell.Item.Kind == ItemGold {
				total += cell.Item.Value
			}
		}
	}
	if total != 15 {
		t.Errorf("expected 15 scattered gold units around %v, found %d", target, total)
	}
}

// Scenario D — Danger without shield: the player dies, the cell persists.
func TestScenarioD_DangerWithoutShield(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	pos := Coord{1, 0, -1}
	s.Map.AddItem(pos, Danger())

	p1 := s.Player(Team1)
	p1.Position = Coord{0, 0, 0}
	p2 := s.Player(Team2)
	p2.Position = Coord{-2, 1, 1}
	p3 := s.Player(Team3)
	p3.Position = Coord{0, -2, 2}

	moves := [3]Move{{Direction: DirE}, {Direction: DirNone}, {Direction: DirNone}}
	j.ResolveTurn(moves)

	if p1.Alive {
		t.Fatalf("expected player to die stepping onto Danger without a shield")
	}
	cell := s.Map.Get(pos)
	if cell.Item == nil || cell.Item.Kind != ItemDanger {
		t.Errorf("Danger cell must persist after killing a player")
	}
}

// Scenario E — treasure spawns onto existing gold at the origin.
func TestScenarioE_TreasureSpawnOntoGold(t *testing.T) {
	s := newTestState(3, 100)
	s.TreasureSpawnTurn = 65
	s.Turn = 65
	s.Map.AddItem(Origin, Gold(4))

	j := NewJudge(s)
	s.Player(Team1).Gold = 40
	s.Player(Team2).Gold = 40
	s.Player(Team3).Gold = 40 // total 120

	s.Players[0].Position = Coord{-2, 1, 1}
	s.Players[1].Position = Coord{2, -1, -1}
	s.Players[2].Position = Coord{0, 2, -2}

	j.maybeSpawnTreasure()

	cell := s.Map.Get(Origin)
	if cell.Item == nil || cell.Item.Kind != ItemTreasure {
		t.Fatalf("expected a Treasure at the origin, got %+v", cell)
	}
	if cell.Item.Value != 14 { // max(120/12, 10) + 4 = 10 + 4
		t.Errorf("expected Treasure(14), got Treasure(%d)", cell.Item.Value)
	}
	if !s.TreasureAppeared || !s.TreasureRemaining {
		t.Errorf("expected treasure_appeared and treasure_remaining to both be true")
	}
}

func TestTreasureSpawn_OnlyOnceAndExactTurn(t *testing.T) {
	s := newTestState(3, 100)
	s.TreasureSpawnTurn = 65
	j := NewJudge(s)

	s.Turn = 64
	j.maybeSpawnTreasure()
	if s.TreasureAppeared {
		t.Fatalf("treasure must not spawn before its drawn turn")
	}

	s.Turn = 65
	j.maybeSpawnTreasure()
	if !s.TreasureAppeared {
		t.Fatalf("treasure must spawn exactly on its drawn turn")
	}

	s.Map.RemoveItem(Origin) // simulate pickup
	s.Turn = 66
	j.maybeSpawnTreasure()
	if !s.Map.Get(Origin).Empty() {
		t.Fatalf("treasure must never spawn a second time")
	}
}

func TestInvalidMissileSet_DiscardedWholesale(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	p1 := s.Player(Team1)
	p1.Position = Coord{1, 0, -1}
	p1.Missiles = 1
	p2 := s.Player(Team2)
	p2.Position = Coord{-2, 1, 1}
	p3 := s.Player(Team3)
	p3.Position = Coord{0, 2, -2}

	// Two targets requested but only one missile available: whole set discarded.
	moves := [3]Move{
		{Direction: DirNone, MissileTargets: []Coord{{0, 0, 0}, {0, -1, 1}}},
		{Direction: DirNone},
		{Direction: DirNone},
	}
	j.ResolveTurn(moves)

	if len(p1.MissilesFired) != 0 {
		t.Errorf("expected invalid missile set to be discarded, got %v", p1.MissilesFired)
	}
	if p1.Missiles != 1 {
		t.Errorf("discarded missile set must not decrement ammo, got %d", p1.Missiles)
	}
}

func TestMissileSet_CannotTargetOwnPosition(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)

	p1 := s.Player(Team1)
	p1.Position = Coord{1, 0, -1}
	p1.Missiles = 2
	s.Player(Team2).Position = Coord{-2, 1, 1}
	s.Player(Team3).Position = Coord{0, 2, -2}

	moves := [3]Move{
		{Direction: DirNone, MissileTargets: []Coord{p1.Position}},
		{Direction: DirNone},
		{Direction: DirNone},
	}
	j.ResolveTurn(moves)

	if len(p1.MissilesFired) != 0 {
		t.Errorf("self-targeting missile set must be discarded")
	}
}

// Universal invariant: after every turn, every player's missile count is
// monotonically non-increasing and gold never goes negative.
func TestInvariant_MissilesNonIncreasingAndGoldNonNegative(t *testing.T) {
	s := newTestState(3, 100)
	j := NewJudge(s)
	for i := range s.Players {
		s.Players[i].Position = Coord{0, 0, 0}
	}
	s.Players[0].Position = Coord{1, 0, -1}
	s.Players[1].Position = Coord{-1, 0, 1}
	s.Players[2].Position = Coord{0, 1, -1}
	s.Players[0].Gold = 10

	prevMissiles := [3]int{s.Players[0].Missiles, s.Players[1].Missiles, s.Players[2].Missiles}

	for turn := 0; turn < 10 && !s.Over(); turn++ {
		s.Turn++
		moves := [3]Move{
			{Direction: DirE},
			{Direction: DirW},
			{Direction: DirNone, MissileTargets: []Coord{s.Players[0].Position}},
		}
		j.ResolveTurn(moves)

		for i := range s.Players {
			if s.Players[i].Missiles > prevMissiles[i] {
				t.Fatalf("turn %d: player %d missiles increased from %d to %d", turn, i, prevMissiles[i], s.Players[i].Missiles)
			}
			prevMissiles[i] = s.Players[i].Missiles
			if s.Players[i].Gold < 0 {
				t.Fatalf("turn %d: player %d has negative gold %d", turn, i, s.Players[i].Gold)
			}
		}
	}
}

// Universal invariant: no cell holds more than one item, for all
// coordinates on the board, after a run of scattering turns.
func TestInvariant_AtMostOneItemPerCell(t *testing.T) {
	s := newTestState(2, 50)
	j := NewJudge(s)
	s.Players[0].Position = Coord{1, 0, -1}
	s.Players[0].Gold = 100
	s.Players[1].Position = Coord{-1, 0, 1}
	s.Players[1].Missiles = 10
	s.Players[2].Position = Coord{0, 1, -1}
	s.Players[2].Missiles = 10

	for turn := 0; turn < 20; turn++ {
		s.Turn++
		moves := [3]Move{
			{Direction: DirNone},
			{Direction: DirNone, MissileTargets: []Coord{s.Players[0].Position}},
			{Direction: DirNone},
		}
		j.ResolveTurn(moves)
	}

	seen := map[Coord]bool{}
	for _, cc := range s.Map.NonEmptyCells() {
		if seen[cc.Coord] {
			t.Fatalf("duplicate cell entry for %v", cc.Coord)
		}
		seen[cc.Coord] = true
	}
}

// Round-trip: given a fixed seed and the same sequence of moves, two
// independent judges produce identical gold and position outcomes.
func TestDeterminism_SameSeedSameReplaysSameOutcome(t *testing.T) {
	run := func() (gold [3]int, pos [3]Coord) {
		s := newTestState(3, 50)
		j := NewJudge(s)
		s.Players[0].Position = Coord{1, 0, -1}
		s.Players[0].Gold = 80
		s.Players[1].Position = Coord{-1, 0, 1}
		s.Players[1].Missiles = 10
		s.Players[2].Position = Coord{0, 1, -1}
		s.Players[2].Missiles = 10

		for turn := 0; turn < 15; turn++ {
			s.Turn++
			moves := [3]Move{
				{Direction: DirNone},
				{Direction: DirNone, MissileTargets: []Coord{s.Players[0].Position}},
				{Direction: DirNone},
			}
			j.ResolveTurn(moves)
		}
		for i, p := range s.Players {
			gold[i] = p.Gold
			pos[i] = p.Position
		}
		return
	}

	g1, p1 := run()
	g2, p2 := run()
	if g1 != g2 || p1 != p2 {
		t.Fatalf("same seed must reproduce identical outcomes: (%v,%v) vs (%v,%v)", g1, p1, g2, p2)
	}
}
