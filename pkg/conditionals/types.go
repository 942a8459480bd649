// Package conditionals implements typed trigger predicates. A predicate is a
// field selector, a comparison operator and a threshold; it is built once when
// event data is loaded and evaluated against a StateView at runtime.
package conditionals

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field selects a numeric value from the session state.
type Field string

const (
	TribeProsperity   Field = "tribe.prosperity"
	TribeDefense      Field = "tribe.defense"
	TribeKnowledge    Field = "tribe.knowledge"
	TribeSpirit       Field = "tribe.spirit"
	TribeMorale       Field = "tribe.morale"
	TribeFood         Field = "tribe.food"
	TribeMaterials    Field = "tribe.materials"
	TribeWealth       Field = "tribe.wealth"
	TribeSpiritEnergy Field = "tribe.spirit_energy"
	PlayerLevel       Field = "player.level"
	PlayerHealth      Field = "player.health"
	PlayerStamina     Field = "player.stamina"
	WorldStability    Field = "world.stability"
	WorldProsperity   Field = "world.prosperity"
	WorldTension      Field = "world.tension"
	WorldSeason       Field = "world.season" // 0 spring .. 3 winter
	Day               Field = "day"
)

var knownFields = map[Field]bool{
	TribeProsperity: true, TribeDefense: true, TribeKnowledge: true, TribeSpirit: true,
	TribeMorale: true, TribeFood: true, TribeMaterials: true, TribeWealth: true,
	TribeSpiritEnergy: true, PlayerLevel: true, PlayerHealth: true, PlayerStamina: true,
	WorldStability: true, WorldProsperity: true, WorldTension: true, WorldSeason: true,
	Day: true,
}

// Op is a comparison operator.
type Op string

const (
	OpGT  Op = ">"
	OpGTE Op = ">="
	OpLT  Op = "<"
	OpLTE Op = "<="
	OpEQ  Op = "=="
	OpNE  Op = "!="
)

var knownOps = map[Op]bool{OpGT: true, OpGTE: true, OpLT: true, OpLTE: true, OpEQ: true, OpNE: true}

// Predicate compares one state field against a threshold.
type Predicate struct {
	Field Field   `json:"field" yaml:"field"`
	Op    Op      `json:"op" yaml:"op"`
	Value float64 `json:"value" yaml:"value"`
}

// StateView provides the values predicates are evaluated against. It keeps
// this package free of imports from the state packages.
type StateView interface {
	Value(f Field) (float64, bool)
}

// Parse builds a predicate from the compact "field op value" form, e.g.
// "tribe.food >= 100".
func Parse(s string) (Predicate, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return Predicate{}, fmt.Errorf("predicate %q: want \"field op value\"", s)
	}
	v, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Predicate{}, fmt.Errorf("predicate %q: bad threshold: %w", s, err)
	}
	p := Predicate{Field: Field(parts[0]), Op: Op(parts[1]), Value: v}
	return p, p.Validate()
}

// MustParse is Parse for built-in catalog data.
func MustParse(s string) Predicate {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate rejects unknown fields and operators.
func (p Predicate) Validate() error {
	if !knownFields[p.Field] {
		return fmt.Errorf("unknown predicate field %q", p.Field)
	}
	if !knownOps[p.Op] {
		return fmt.Errorf("unknown predicate operator %q", p.Op)
	}
	return nil
}

// Eval reports whether the predicate holds. A field the view cannot supply
// never matches.
func (p Predicate) Eval(view StateView) bool {
	actual, ok := view.Value(p.Field)
	if !ok {
		return false
	}
	switch p.Op {
	case OpGT:
		return actual > p.Value
	case OpGTE:
		return actual >= p.Value
	case OpLT:
		return actual < p.Value
	case OpLTE:
		return actual <= p.Value
	case OpEQ:
		return actual == p.Value
	case OpNE:
		return actual != p.Value
	}
	return false
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Field, p.Op, strconv.FormatFloat(p.Value, 'f', -1, 64))
}

// UnmarshalJSON accepts either the compact string form or the object form.
func (p *Predicate) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := Parse(str)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	type Alias Predicate
	aux := (*Alias)(p)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	return p.Validate()
}

// All reports whether every predicate holds. An empty list always holds.
func All(preds []Predicate, view StateView) bool {
	for _, p := range preds {
		if !p.Eval(view) {
			return false
		}
	}
	return true
}
