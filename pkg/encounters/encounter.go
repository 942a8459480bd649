// Package encounters is the library of role-scoped social encounters that
// can occur when the player visits an NPC.
package encounters

import (
	"fmt"
	"os"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Type string

const (
	Quest     Type = "quest"
	Trade     Type = "trade"
	Training  Type = "training"
	Story     Type = "story"
	Challenge Type = "challenge"
)

// AnyRole makes an encounter available for every NPC.
const AnyRole actor.Role = "any"

const (
	recentDays         = 5
	baseRevisitChance  = 0.3
	dynamicMinLevel    = 3
	dynamicMinRelation = 60
)

// Requirements are hard gates. Zero values impose no gate.
type Requirements struct {
	MinRelationship int         `json:"min_relationship,omitempty" yaml:"min_relationship"`
	MinNPCLevel     int         `json:"min_npc_level,omitempty" yaml:"min_npc_level"`
	MinPlayerLevel  int         `json:"min_player_level,omitempty" yaml:"min_player_level"`
	MinNPCStats     actor.Stats `json:"min_npc_stats,omitzero" yaml:"min_npc_stats"`
}

// Met reports whether the npc and player pass every gate.
func (r Requirements) Met(npc *actor.NPC, p *actor.Player) bool {
	if npc.Relationship < r.MinRelationship || npc.Level < r.MinNPCLevel || p.Level < r.MinPlayerLevel {
		return false
	}
	for _, s := range actor.AllStats {
		if npc.Stats.Get(s) < r.MinNPCStats.Get(s) {
			return false
		}
	}
	return true
}

// Reward is what the player receives from an encounter.
type Reward struct {
	XP           int             `json:"xp,omitempty" yaml:"xp"`
	Resources    actor.Resources `json:"resources,omitzero" yaml:"resources"`
	Relationship int             `json:"relationship,omitempty" yaml:"relationship"`
	Items        []string        `json:"items,omitempty" yaml:"items"`
}

// Encounter is a scripted or generated interaction with an NPC.
type Encounter struct {
	ID           string       `json:"id" yaml:"id"`
	Role         actor.Role   `json:"role" yaml:"role"`
	Type         Type         `json:"type" yaml:"type"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	Requirements Requirements `json:"requirements,omitzero" yaml:"requirements"`
	Reward       Reward       `json:"reward" yaml:"reward"`
	NPCXP        int          `json:"npc_xp,omitempty" yaml:"npc_xp"`
	Dynamic      bool         `json:"dynamic,omitempty" yaml:"-"`
}

// Validate checks an encounter definition.
func (e *Encounter) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("encounter %q has no id", e.Title)
	}
	if e.Role != AnyRole && !e.Role.Valid() {
		return fmt.Errorf("encounter %s has unknown role %q", e.ID, e.Role)
	}
	switch e.Type {
	case Quest, Trade, Training, Story, Challenge:
	default:
		return fmt.Errorf("encounter %s has unknown type %q", e.ID, e.Type)
	}
	return nil
}

// Catalog holds the scripted encounters.
type Catalog struct {
	encounters []Encounter
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.encounters = append(c.encounters, defaultEncounters...)
	return c
}

// Len returns the number of scripted encounters.
func (c *Catalog) Len() int {
	return len(c.encounters)
}

// Available returns the encounters the npc can offer today. Scripted ones
// need a role match and every gate to pass, and the npc must either not have
// been seen for five days or pass a single relationship-scaled roll. A
// generated encounter is appended for experienced, friendly NPCs.
func (c *Catalog) Available(npc *actor.NPC, p *actor.Player, daysSince int, rng dice.Roller) []Encounter {
	var out []Encounter
	fresh := daysSince >= recentDays
	if !fresh {
		fresh = dice.Chance(rng, baseRevisitChance+float64(npc.Relationship)/200)
	}
	if fresh {
		for _, e := range c.encounters {
			if e.Role != AnyRole && e.Role != npc.Role {
				continue
			}
			if e.Requirements.Met(npc, p) {
				out = append(out, e)
			}
		}
	}
	if npc.Level >= dynamicMinLevel && npc.Relationship >= dynamicMinRelation {
		out = append(out, Dynamic(npc))
	}
	return out
}

// Dynamic builds an encounter from the npc's role and growth path, with
// rewards scaled by level and relationship.
func Dynamic(npc *actor.NPC) Encounter {
	kind, verb := dynamicFlavor(npc.GrowthPath)
	return Encounter{
		ID:    fmt.Sprintf("dynamic_%s_%d", npc.ID, npc.Level),
		Role:  npc.Role,
		Type:  kind,
		Title: fmt.Sprintf("%s's %s", npc.Name, cases.Title(language.English).String(string(kind))),
		Description: fmt.Sprintf("%s, a %s on the %s path, %s.",
			npc.Name, npc.Role, npc.GrowthPath, verb),
		Reward: Reward{
			XP:           npc.Level*2 + npc.Relationship/20,
			Resources:    actor.Resources{Wealth: npc.Level},
			Relationship: 2,
		},
		NPCXP:   npc.Level,
		Dynamic: true,
	}
}

func dynamicFlavor(g actor.GrowthPath) (Type, string) {
	switch g {
	case actor.GrowthWarrior:
		return Challenge, "challenges you to a test of strength"
	case actor.GrowthHunter:
		return Challenge, "invites you along on a difficult hunt"
	case actor.GrowthSage:
		return Story, "shares wisdom gathered over many seasons"
	case actor.GrowthDiplomat:
		return Trade, "offers a bargain only a friend would get"
	case actor.GrowthMystic:
		return Story, "guides you through a vision of what may come"
	default:
		return Training, "teaches you a craft they have mastered"
	}
}

// Result is the projection of an encounter onto a particular npc and player.
type Result struct {
	EncounterID string `json:"encounter_id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Reward      Reward `json:"reward"`
	NPCID       string `json:"npc_id"`
	NPCXP       int    `json:"npc_xp,omitempty"`
}

// Execute projects an encounter into the rewards the caller should apply.
// It does not modify its arguments.
func Execute(e Encounter, npc *actor.NPC, p *actor.Player) Result {
	msg := fmt.Sprintf("%s: %s", e.Title, e.Description)
	if p != nil && p.Name != "" {
		msg = fmt.Sprintf("%s and %s. %s", npc.Name, p.Name, msg)
	}
	reward := e.Reward
	reward.Items = append([]string(nil), e.Reward.Items...)
	return Result{
		EncounterID: e.ID,
		Type:        e.Type,
		Title:       e.Title,
		Message:     msg,
		Reward:      reward,
		NPCID:       npc.ID,
		NPCXP:       e.NPCXP,
	}
}

type catalogFile struct {
	Encounters []Encounter `yaml:"encounters"`
}

// LoadFile appends encounters from a YAML file. Existing ids are replaced.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read encounter file: %w", err)
	}
	return c.Parse(data)
}

// Parse merges encounters from YAML data.
func (c *Catalog) Parse(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse encounter file: %w", err)
	}
	for i := range f.Encounters {
		if err := f.Encounters[i].Validate(); err != nil {
			return err
		}
	}
	for _, e := range f.Encounters {
		replaced := false
		for i := range c.encounters {
			if c.encounters[i].ID == e.ID {
				c.encounters[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			c.encounters = append(c.encounters, e)
		}
	}
	return nil
}
