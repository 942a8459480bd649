package state

import (
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/conditionals"
)

// View exposes session values to trigger predicates.
type View struct {
	Player *actor.Player
	Tribe  *Tribe
	World  *World
	Day    int
}

var _ conditionals.StateView = View{}

// Value implements conditionals.StateView.
func (v View) Value(f conditionals.Field) (float64, bool) {
	if v.Tribe != nil {
		a, r := v.Tribe.Attributes, v.Tribe.Resources
		switch f {
		case conditionals.TribeProsperity:
			return float64(a.Prosperity), true
		case conditionals.TribeDefense:
			return float64(a.Defense), true
		case conditionals.TribeKnowledge:
			return float64(a.Knowledge), true
		case conditionals.TribeSpirit:
			return float64(a.Spirit), true
		case conditionals.TribeMorale:
			return float64(a.Morale), true
		case conditionals.TribeFood:
			return float64(r.Food), true
		case conditionals.TribeMaterials:
			return float64(r.Materials), true
		case conditionals.TribeWealth:
			return float64(r.Wealth), true
		case conditionals.TribeSpiritEnergy:
			return float64(r.SpiritEnergy), true
		}
	}
	if v.Player != nil {
		switch f {
		case conditionals.PlayerLevel:
			return float64(v.Player.Level), true
		case conditionals.PlayerHealth:
			return float64(v.Player.Health), true
		case conditionals.PlayerStamina:
			return float64(v.Player.Stamina), true
		}
	}
	if v.World != nil {
		switch f {
		case conditionals.WorldStability:
			return float64(v.World.Resources.Stability), true
		case conditionals.WorldProsperity:
			return float64(v.World.Resources.Prosperity), true
		case conditionals.WorldTension:
			return float64(v.World.Resources.Tension), true
		case conditionals.WorldSeason:
			return float64(v.World.Season.Index()), true
		}
	}
	if f == conditionals.Day {
		return float64(v.Day), true
	}
	return 0, false
}
