package hexgame

// Move is one agent's parsed Phase->=1 reply: a direction plus the
// missile targets it asked to fire this turn (spec.md section 4.5
// step 1). A blank reply from a dead agent decodes to the zero value,
// which is a legal no-op move.
type Move struct {
	Direction      Direction
	MissileTargets []Coord
}

// Judge drives Phase 0 placement and the per-turn resolution pipeline
// over a single State.
type Judge struct {
	State *State
}

// NewJudge wraps a State for pipeline resolution.
func NewJudge(s *State) *Judge {
	return &Judge{State: s}
}

// PlaceStart applies one team's Phase-0 submission, overriding it with a
// uniformly random legal empty wedge cell if it is out of bounds, not in
// the team's wedge, or not empty (spec.md section 4.5 Phase 0).
func (j *Judge) PlaceStart(team TeamID, submitted Coord) Coord {
	s := j.State
	m := s.Map

	legal := m.IsValid(submitted) && InWedge(team, submitted) && m.Get(submitted).Empty()
	pos := submitted
	if !legal {
		candidates := m.WedgeCells(team)
		if len(candidates) > 0 {
			pos = candidates[s.rng.Intn(len(candidates))]
		} else {
			pos = submitted // no legal cell exists; nothing better to do
		}
	}

	p := s.Player(team)
	p.Position = pos
	p.PreviousPosition = pos
	return pos
}

// StartMatch marks the match as started. Call once, after all three
// Phase-0 placements have been applied.
func (j *Judge) StartMatch() {
	j.State.Started = true
}

// ResolveTurn runs one full Phase->=1 turn given the three parsed moves,
// indexed by team (moves[0] is Team1, moves[1] Team2, moves[2] Team3),
// following the fixed order in spec.md section 4.5.
func (j *Judge) ResolveTurn(moves [3]Move) {
	s := j.State

	s.MovesLeft--

	j.moveAll(moves)
	j.resolveCollisions()
	j.maybeSpawnTreasure()
	j.applyItemsFirstPass()
	hits := j.resolveMissiles(moves)
	j.applyMissileDamage(hits)
	j.applyItemsSecondPass()
}

// moveAll updates every alive player's position. Updates are applied in
// player-index order but are observationally simultaneous: each
// player's destination is computed from the pre-turn board, never from
// another player's just-computed move (spec.md section 4.5 step 3).
func (j *Judge) moveAll(moves [3]Move) {
	for i := range j.State.Players {
		p := &j.State.Players[i]
		p.Move(moves[i].Direction, j.State.Map)
	}
}

// resolveCollisions kills players per the co-location and swap rules in
// spec.md section 4.5 step 4. Both checks are evaluated against the
// post-move board before any deaths are applied, so a three-way
// co-location kills all three (Open Question 5) and a swap kills both
// sides symmetrically.
func (j *Judge) resolveCollisions() {
	players := &j.State.Players
	dead := make([]bool, len(players))

	for i := range players {
		p := &players[i]
		if !p.Alive {
			continue
		}
		for k := range players {
			if k == i {
				continue
			}
			q := &players[k]
			if !q.Alive {
				continue // a corpse from an earlier turn never triggers a new collision
			}
			if q.Position == p.Position {
				dead[i] = true
			}
			if q.Position == p.PreviousPosition && q.PreviousPosition == p.Position {
				dead[i] = true
			}
		}
	}

	for i := range players {
		if dead[i] {
			players[i].Kill()
		}
	}
}

// maybeSpawnTreasure implements spec.md section 4.5 step 5 / section
// 4.7: on the match's drawn spawn turn, and only the first time, place a
// Treasure at the origin whose value is max(totalGold/12, 10) plus
// whatever Gold already sat there.
func (j *Judge) maybeSpawnTreasure() {
	s := j.State
	if s.TreasureAppeared || s.Turn != s.TreasureSpawnTurn {
		return
	}

	v := s.TotalGold() / 12
	if v < 10 {
		v = 10
	}
	if existing := s.Map.Get(Origin); existing.Item != nil && existing.Item.Kind == ItemGold {
		v += existing.Item.Value
	}

	s.Map.AddItem(Origin, Treasure(v))
	s.TreasureAppeared = true
	s.TreasureRemaining = true
}

// applyItemsFirstPass runs the first item-effects pass of spec.md
// section 4.5 step 6.
func (j *Judge) applyItemsFirstPass() {
	j.applyItems()
}

// applyItemsSecondPass re-runs item effects after missile resolution
// (spec.md section 4.5 step 8), since gold scattering may have deposited
// a fresh item under a living player.
func (j *Judge) applyItemsSecondPass() {
	j.applyItems()
}

func (j *Judge) applyItems() {
	s := j.State
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive {
			continue
		}
		cell := s.Map.Get(p.Position)
		if cell.Item == nil {
			continue
		}

		outcome := cell.Item.Apply(p.Shield)
		if outcome.GoldGained > 0 {
			p.CollectGold(outcome.GoldGained)
		}
		if outcome.ShieldEquipped {
			p.EquipShield()
		}
		if outcome.Died {
			p.Kill()
		}
		if outcome.TreasureCleared {
			s.TreasureRemaining = false
		}
		if outcome.ClearCell {
			s.Map.RemoveItem(p.Position)
		}
	}
}

// missileHit is one resolved firing: the firer's team and its accepted
// targets, used to build the turn's aggregate hit-count map.
type missileHit struct {
	firer   TeamID
	targets []Coord
}

// resolveMissiles validates and aggregates the turn's missile sets
// (spec.md section 4.5 step 7). Invalid sets are discarded wholesale;
// accepted targets are appended to the firer's MissilesFired and
// decremented from its missile counter before aggregation. Returns the
// per-coordinate hit count.
func (j *Judge) resolveMissiles(moves [3]Move) map[Coord]int {
	s := j.State
	for i := range s.Players {
		s.Players[i].MissilesFired = nil
	}

	var accepted []missileHit
	for i := range s.Players {
		p := &s.Players[i]
		team := TeamID(i + 1)
		targets := moves[i].MissileTargets

		if !validMissileSet(p, targets, s.Map) {
			continue
		}

		p.MissilesFired = append(p.MissilesFired, targets...)
		p.Missiles -= len(targets)
		accepted = append(accepted, missileHit{firer: team, targets: targets})
	}

	hits := make(map[Coord]int)
	for _, h := range accepted {
		for _, t := range h.targets {
			hits[t]++
		}
	}
	return hits
}

// validMissileSet checks the cardinality, ammo, bounds, and
// self-targeting constraints of spec.md section 4.5 step 7 / section 7.
func validMissileSet(p *Player, targets []Coord, m *Map) bool {
	if !p.Alive {
		return false
	}
	n := len(targets)
	if n < 1 || n > 2 {
		return false
	}
	if n > p.Missiles {
		return false
	}
	for _, t := range targets {
		if !m.IsValid(t) {
			return false
		}
		if t == p.Position {
			return false
		}
	}
	return true
}

// applyMissileDamage applies hit_by_missile to every living player
// sitting on a hit coordinate and scatters the gold it lost (spec.md
// section 4.5 step 7, section 4.6).
func (j *Judge) applyMissileDamage(hits map[Coord]int) {
	s := j.State
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive {
			continue
		}
		k, ok := hits[p.Position]
		if !ok || k == 0 {
			continue
		}
		lost := p.HitByMissile(k)
		if lost > 0 {
			j.scatterGold(p.Position, lost)
		}
	}
}

// scatterGold redistributes L lost gold units to cells within hex
// distance <= 2 of the hit position (excluding the hit cell itself),
// per spec.md section 4.6: L independent uniform picks with replacement
// over the set of in-bounds cells that are empty, Gold, or Treasure
// (Danger and Shield cells never qualify). If no candidate qualifies,
// the gold is destroyed.
func (j *Judge) scatterGold(hitPos Coord, lost int) {
	s := j.State
	m := s.Map

	var candidates []Coord
	for _, c := range m.AllCoords() {
		if c == hitPos || Distance(hitPos, c) > 2 {
			continue
		}
		cell := m.Get(c)
		if cell.Item == nil {
			candidates = append(candidates, c)
			continue
		}
		switch cell.Item.Kind {
		case ItemGold, ItemTreasure:
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		return // lost gold is destroyed; gold is not conserved (Open Question 3)
	}

	for i := 0; i < lost; i++ {
		c := candidates[s.rng.Intn(len(candidates))]
		cell := m.Get(c)
		if cell.Item == nil {
			m.AddItem(c, Gold(1))
			continue
		}
		switch cell.Item.Kind {
		case ItemGold:
			m.AddItem(c, Gold(cell.Item.Value+1))
		case ItemTreasure:
			m.AddItem(c, Treasure(cell.Item.Value+1))
		}
	}
}
