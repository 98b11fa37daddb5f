// Package entity provides the actor whose (x, y, floor, world) tuple
// the traversal engine moves through the dungeon.
package entity

import "github.com/samdwyer/prismrogue/internal/world"

const (
	// DefaultSightRadius is the line-of-sight range used for fog of war.
	DefaultSightRadius = 8

	// MaxEnergy caps the actor's portal energy pool. Energy regenerates
	// one point per turn.
	MaxEnergy = 20
)

// portalKey identifies one portal pair: its floor and coordinate. Both
// member tiles of a pair share a cooldown.
type portalKey struct {
	Floor world.FloorID
	P     world.Point
}

// Actor is a player (or any traversing agent) in the dungeon. Its
// active floor and world live here, on the session's actor, never in
// package-level state.
type Actor struct {
	X, Y        int
	Floor       world.FloorID
	World       world.World
	Glyph       rune
	SightRadius int
	KeyMask     uint8 // attunement bits satisfied by this actor
	Energy      int

	cooldowns map[portalKey]int
}

// NewActor creates an actor at the given position on the given layer.
func NewActor(x, y int, floor world.FloorID, w world.World) *Actor {
	return &Actor{
		X:           x,
		Y:           y,
		Floor:       floor,
		World:       w,
		Glyph:       '@',
		SightRadius: DefaultSightRadius,
		Energy:      MaxEnergy,
		cooldowns:   make(map[portalKey]int),
	}
}

// Position returns the actor's coordinate on its current layer.
func (a *Actor) Position() world.Point {
	return world.Point{X: a.X, Y: a.Y}
}

// HasKeys reports whether the actor's attunement satisfies mask.
func (a *Actor) HasKeys(mask uint8) bool {
	return a.KeyMask&mask == mask
}

// CooldownRemaining returns the turns left before the portal at the
// given floor coordinate can be used again. Zero means ready.
func (a *Actor) CooldownRemaining(floor world.FloorID, p world.Point) int {
	return a.cooldowns[portalKey{Floor: floor, P: p}]
}

// StartCooldown puts the portal at the given floor coordinate on
// cooldown for the given number of turns.
func (a *Actor) StartCooldown(floor world.FloorID, p world.Point, turns int) {
	if turns > 0 {
		a.cooldowns[portalKey{Floor: floor, P: p}] = turns
	}
}

// EndTurn advances per-turn actor state: cooldowns tick down and one
// point of portal energy returns.
func (a *Actor) EndTurn() {
	for k, remaining := range a.cooldowns {
		if remaining <= 1 {
			delete(a.cooldowns, k)
		} else {
			a.cooldowns[k] = remaining - 1
		}
	}
	if a.Energy < MaxEnergy {
		a.Energy++
	}
}
