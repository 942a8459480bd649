package state

import "github.com/jwebster45206/tribe-engine/pkg/actor"

const (
	MinAttribute     = 0
	MaxAttribute     = 100
	DefaultAttribute = 50
)

// TribeAttributes are the tribe-wide scores, each in [0, 100].
type TribeAttributes struct {
	Prosperity int `json:"prosperity" yaml:"prosperity"`
	Defense    int `json:"defense" yaml:"defense"`
	Knowledge  int `json:"knowledge" yaml:"knowledge"`
	Spirit     int `json:"spirit" yaml:"spirit"`
	Morale     int `json:"morale" yaml:"morale"`
}

func (a TribeAttributes) plus(d TribeAttributes) TribeAttributes {
	return TribeAttributes{
		Prosperity: clamp(a.Prosperity+d.Prosperity, MinAttribute, MaxAttribute),
		Defense:    clamp(a.Defense+d.Defense, MinAttribute, MaxAttribute),
		Knowledge:  clamp(a.Knowledge+d.Knowledge, MinAttribute, MaxAttribute),
		Spirit:     clamp(a.Spirit+d.Spirit, MinAttribute, MaxAttribute),
		Morale:     clamp(a.Morale+d.Morale, MinAttribute, MaxAttribute),
	}
}

// TribeDelta is a change to the tribe applied by events and encounters.
type TribeDelta struct {
	Attributes TribeAttributes `json:"attributes,omitzero" yaml:"attributes"`
	Resources  actor.Resources `json:"resources,omitzero" yaml:"resources"`
}

// IsZero reports whether the delta changes nothing.
func (d TribeDelta) IsZero() bool {
	return d.Attributes == TribeAttributes{} && d.Resources.IsZero()
}

// Tribe is the shared stockpile and standing of the player's tribe.
type Tribe struct {
	Name       string          `json:"name"`
	Attributes TribeAttributes `json:"attributes"`
	Resources  actor.Resources `json:"resources"`
}

// NewTribe returns a tribe with the starting stockpile.
func NewTribe(name string) *Tribe {
	return &Tribe{
		Name: name,
		Attributes: TribeAttributes{
			Prosperity: DefaultAttribute,
			Defense:    DefaultAttribute,
			Knowledge:  DefaultAttribute,
			Spirit:     DefaultAttribute,
			Morale:     DefaultAttribute,
		},
		Resources: actor.Resources{Food: 50, Materials: 30, Wealth: 20, SpiritEnergy: 10},
	}
}

// Apply adds a delta, clamping attributes and flooring resources at zero.
func (t *Tribe) Apply(d TribeDelta) {
	t.Attributes = t.Attributes.plus(d.Attributes)
	t.Resources = t.Resources.Plus(d.Resources)
}

// Contribute credits resources to the stockpile.
func (t *Tribe) Contribute(r actor.Resources) {
	t.Resources = t.Resources.Plus(r)
}

// StaminaRegenBonus is the extra daily stamina granted by high morale.
func (t *Tribe) StaminaRegenBonus() int {
	if t.Attributes.Morale <= DefaultAttribute {
		return 0
	}
	return (t.Attributes.Morale - DefaultAttribute) / 25
}

func (t *Tribe) normalize() {
	t.Attributes = t.Attributes.plus(TribeAttributes{})
	t.Resources = t.Resources.Plus(actor.Resources{})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
