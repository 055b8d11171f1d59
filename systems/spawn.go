package systems

import (
	"math/rand"

	"github.com/pthm-cable/dodge/components"
)

// SpawnParams controls enemy placement relative to the player.
type SpawnParams struct {
	HalfExtent      float32 // Half the arena edge length
	Margin          float32 // Fraction of HalfExtent usable for spawning
	ClearanceFactor float32 // Clearance = player radius * this
}

// Bound returns the largest coordinate magnitude a spawn may take.
func (p SpawnParams) Bound() float32 {
	return p.HalfExtent * p.Margin
}

// Clearance returns the per-axis keep-out distance around a player of the given radius.
func (p SpawnParams) Clearance(radius float32) float32 {
	return radius * p.ClearanceFactor
}

// ClearanceFits reports whether both sampling intervals on both axes are
// non-empty for the given player, i.e. every spawn is guaranteed clear.
func ClearanceFits(player components.Position, radius float32, p SpawnParams) bool {
	bound := p.Bound()
	c := p.Clearance(radius)
	for _, v := range [2]float32{player.X, player.Y} {
		if v-c < -bound || v+c > bound {
			return false
		}
	}
	return true
}

// SpawnPosition picks an enemy position clear of the player on each axis
// independently. Per axis a fair coin selects the interval below the player
// [-bound, v-clearance] or above it [v+clearance, bound].
//
// If the selected interval is empty the other side is used. If both are
// empty the coordinate collapses to the edge of the selected side and the
// clearance guarantee no longer holds (see ClearanceFits).
func SpawnPosition(rng *rand.Rand, player components.Position, radius float32, p SpawnParams) components.Position {
	bound := p.Bound()
	c := p.Clearance(radius)
	return components.Position{
		X: spawnAxis(rng, player.X, c, bound),
		Y: spawnAxis(rng, player.Y, c, bound),
	}
}

func spawnAxis(rng *rand.Rand, v, clearance, bound float32) float32 {
	lowLo, lowHi := -bound, v-clearance
	highLo, highHi := v+clearance, bound
	lowOK := lowLo <= lowHi
	highOK := highLo <= highHi

	if rng.Float32() > 0.5 {
		switch {
		case lowOK:
			return randRange(rng, lowLo, lowHi)
		case highOK:
			return randRange(rng, highLo, highHi)
		}
		return -bound
	}
	switch {
	case highOK:
		return randRange(rng, highLo, highHi)
	case lowOK:
		return randRange(rng, lowLo, lowHi)
	}
	return bound
}
