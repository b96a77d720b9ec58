package hexgame

import "math/rand"

// State aggregates the map, the three players, turn counters, treasure
// flags, and a seedable RNG — the full mutable world (spec.md section 3).
type State struct {
	Started           bool
	Turn              int
	MovesLeft         int
	Map               *Map
	Players           [3]Player
	TreasureAppeared  bool
	TreasureRemaining bool
	TreasureSpawnTurn int
	rng               *rand.Rand
}

// NewState constructs the initial (pre-Phase-0) match state. maxMoves is
// the match's total move budget; startingMissiles seeds every player's
// missile counter. The treasure spawn turn is drawn immediately from the
// given RNG so that it is reproducible from the seed (spec.md section 4.7).
func NewState(m *Map, maxMoves, startingMissiles int, rng *rand.Rand) *State {
	s := &State{
		MovesLeft: maxMoves,
		Map:       m,
		rng:       rng,
	}
	for i := range s.Players {
		s.Players[i] = NewPlayer(TeamID(i+1), startingMissiles)
	}
	s.TreasureSpawnTurn = drawTreasureTurn(maxMoves, rng)
	return s
}

// drawTreasureTurn picks T* uniformly from [ceil(0.6*K), floor(0.7*K)]
// inclusive (spec.md section 4.7).
func drawTreasureTurn(maxMoves int, rng *rand.Rand) int {
	lo := ceilDiv(maxMoves*6, 10)
	hi := (maxMoves * 7) / 10
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// RNG returns the match's single seeded source of randomness, threaded
// through treasure-turn selection, Phase-0 override, and gold scattering
// so that a fixed seed reproduces a byte-identical ledger.
func (s *State) RNG() *rand.Rand {
	return s.rng
}

// Player returns a pointer to the player for the given team.
func (s *State) Player(team TeamID) *Player {
	return &s.Players[team-1]
}

// TotalGold sums gold held by all three players (used by the treasure
// spawn rule).
func (s *State) TotalGold() int {
	total := 0
	for _, p := range s.Players {
		total += p.Gold
	}
	return total
}

// AllDead reports whether every player is dead.
func (s *State) AllDead() bool {
	for _, p := range s.Players {
		if p.Alive {
			return false
		}
	}
	return true
}

// Over reports whether the match has reached its end condition:
// moves_left <= 0 OR every player is dead.
func (s *State) Over() bool {
	return s.MovesLeft <= 0 || s.AllDead()
}
