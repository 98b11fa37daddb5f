package entity

import (
	"testing"

	"github.com/samdwyer/prismrogue/internal/world"
)

func TestHasKeys(t *testing.T) {
	a := NewActor(1, 1, 0, world.Red)

	if !a.HasKeys(0) {
		t.Error("Empty mask should always pass")
	}
	if a.HasKeys(0b001) {
		t.Error("Fresh actor holds no attunement bits")
	}

	a.KeyMask = 0b101
	if !a.HasKeys(0b001) || !a.HasKeys(0b100) || !a.HasKeys(0b101) {
		t.Error("Actor should satisfy every subset of its mask")
	}
	if a.HasKeys(0b010) {
		t.Error("Actor should not satisfy bits it lacks")
	}
}

func TestCooldownTicksDown(t *testing.T) {
	a := NewActor(1, 1, 0, world.Red)
	p := world.Point{X: 4, Y: 7}

	a.StartCooldown(0, p, 3)
	if got := a.CooldownRemaining(0, p); got != 3 {
		t.Fatalf("Cooldown = %d, want 3", got)
	}
	if got := a.CooldownRemaining(1, p); got != 0 {
		t.Errorf("Cooldown leaked to another floor: %d", got)
	}

	a.EndTurn()
	a.EndTurn()
	if got := a.CooldownRemaining(0, p); got != 1 {
		t.Errorf("After two turns cooldown = %d, want 1", got)
	}
	a.EndTurn()
	if got := a.CooldownRemaining(0, p); got != 0 {
		t.Errorf("Expired cooldown = %d, want 0", got)
	}
}

func TestEnergyRegeneratesToCap(t *testing.T) {
	a := NewActor(1, 1, 0, world.Red)
	a.Energy = MaxEnergy - 2

	a.EndTurn()
	if a.Energy != MaxEnergy-1 {
		t.Errorf("Energy = %d, want %d", a.Energy, MaxEnergy-1)
	}
	a.EndTurn()
	a.EndTurn()
	if a.Energy != MaxEnergy {
		t.Errorf("Energy = %d, should cap at %d", a.Energy, MaxEnergy)
	}
}
