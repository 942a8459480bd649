package events

import (
	"fmt"
	"os"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/conditionals"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"gopkg.in/yaml.v3"
)

// Catalog holds every event definition, in load order.
type Catalog struct {
	events []Event
	byID   map[string]int
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, e := range defaultEvents {
		c.put(e)
	}
	return c
}

func (c *Catalog) put(e Event) {
	if i, ok := c.byID[e.ID]; ok {
		c.events[i] = e
		return
	}
	c.byID[e.ID] = len(c.events)
	c.events = append(c.events, e)
}

// Get returns the event with id.
func (c *Catalog) Get(id string) (*Event, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.events[i], true
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

func (c *Catalog) matching(view conditionals.StateView, keep func(*Event) bool) []*Event {
	var out []*Event
	for i := range c.events {
		e := &c.events[i]
		if keep(e) && conditionals.All(e.Trigger.When, view) {
			out = append(out, e)
		}
	}
	return out
}

// RollDaily rolls once at chance (0..1) and on success picks one eligible
// daily event uniformly.
func (c *Catalog) RollDaily(view conditionals.StateView, chance float64, rng dice.Roller) *Event {
	if !dice.Chance(rng, chance) {
		return nil
	}
	eligible := c.matching(view, func(e *Event) bool { return e.Trigger.Type == Daily })
	if len(eligible) == 0 {
		return nil
	}
	return eligible[dice.Pick(rng, len(eligible))]
}

// NextMilestone returns the first milestone whose conditions hold and which
// has not fired yet. It consumes no randomness.
func (c *Catalog) NextMilestone(view conditionals.StateView, fired []string) *Event {
	done := make(map[string]bool, len(fired))
	for _, id := range fired {
		done[id] = true
	}
	eligible := c.matching(view, func(e *Event) bool {
		return e.Trigger.Type == Milestone && !done[e.ID]
	})
	if len(eligible) == 0 {
		return nil
	}
	return eligible[0]
}

// RollAction checks the events tied to an action in catalog order and
// returns the first whose chance roll succeeds.
func (c *Catalog) RollAction(action string, view conditionals.StateView, rng dice.Roller) *Event {
	eligible := c.matching(view, func(e *Event) bool {
		return e.Trigger.Type == Action && e.Trigger.Action == action
	})
	return firstHit(eligible, rng)
}

// RollNPC checks the visit events for an NPC's role in catalog order and
// returns the first whose chance roll succeeds.
func (c *Catalog) RollNPC(npc *actor.NPC, view conditionals.StateView, rng dice.Roller) *Event {
	eligible := c.matching(view, func(e *Event) bool {
		if e.Trigger.Type != NPC {
			return false
		}
		r := e.Trigger.Role
		return r == "" || r == AnyRole || r == npc.Role
	})
	return firstHit(eligible, rng)
}

func firstHit(eligible []*Event, rng dice.Roller) *Event {
	for _, e := range eligible {
		if e.Trigger.Chance <= 0 || dice.Chance(rng, e.Trigger.Chance) {
			return e
		}
	}
	return nil
}

type catalogFile struct {
	Events []Event `yaml:"events"`
}

// LoadFile merges events from a YAML file. Events with an existing id
// replace the built-in definition.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read event file: %w", err)
	}
	return c.Parse(data)
}

// Parse merges events from YAML data. Nothing is merged if any event is
// invalid.
func (c *Catalog) Parse(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse event file: %w", err)
	}
	for i := range f.Events {
		if err := f.Events[i].Validate(); err != nil {
			return err
		}
	}
	for _, e := range f.Events {
		c.put(e)
	}
	return nil
}
