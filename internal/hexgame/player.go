package hexgame

import "math"

// TeamID identifies one of the three competing ships.
type TeamID int

const (
	Team1 TeamID = 1
	Team2 TeamID = 2
	Team3 TeamID = 3
)

// DefaultStartingMissiles is the missile allowance every player starts
// a match with. spec.md leaves the exact starting count unspecified;
// this value is a judge-side default, not something a map file or
// agent can override.
const DefaultStartingMissiles = 3

// Player is one team's ship state.
type Player struct {
	TeamID           TeamID
	Position         Coord
	PreviousPosition Coord
	Gold             int
	Shield           bool
	Alive            bool
	Missiles         int
	MissilesFired    []Coord
}

// NewPlayer constructs a living player with the given starting missile
// allowance, parked at the origin until Phase 0 places it.
func NewPlayer(team TeamID, missiles int) Player {
	return Player{
		TeamID:   team,
		Alive:    true,
		Missiles: missiles,
	}
}

// Move does nothing for a dead player. For a living player it copies
// Position into PreviousPosition and then steps in direction d provided
// the destination is in bounds on m. If the destination is out of
// bounds the player stays put, but PreviousPosition is still updated
// (spec.md section 4.3).
func (p *Player) Move(d Direction, m *Map) {
	if !p.Alive {
		return
	}
	p.PreviousPosition = p.Position
	target := p.Position.Move(d)
	if m.IsValid(target) {
		p.Position = target
	}
}

// CollectGold adds n gold if the player is alive.
func (p *Player) CollectGold(n int) {
	if p.Alive {
		p.Gold += n
	}
}

// EquipShield sets Shield true if the player is alive. Idempotent: it
// never stacks and, per spec.md section 9 (Open Question 2), is never
// cleared by a later Danger hit.
func (p *Player) EquipShield() {
	if p.Alive {
		p.Shield = true
	}
}

// HitByMissile deducts and returns the gold lost to a missile strike of
// the given hit count, per spec.md section 4.3:
//
//	count == 0 -> 0
//	count == 1 -> ceil(gold * 0.20)
//	count >= 2 -> ceil(gold * 0.30)
//
// Being hit never kills the player by itself; shield does not mitigate
// missile damage.
func (p *Player) HitByMissile(count int) int {
	if count == 0 {
		return 0
	}
	rate := 0.20
	if count >= 2 {
		rate = 0.30
	}
	lost := int(math.Ceil(float64(p.Gold) * rate))
	p.Gold -= lost
	return lost
}

// Kill marks the player dead. A dead player's Alive flag never flips
// back to true (spec.md invariant 2).
func (p *Player) Kill() {
	p.Alive = false
}
