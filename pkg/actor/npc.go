package actor

import (
	"fmt"
	"strings"
)

// Role is an NPC's job within a tribe.
type Role string

const (
	RoleHunter  Role = "hunter"
	RoleElder   Role = "elder"
	RoleShaman  Role = "shaman"
	RoleWarrior Role = "warrior"
	RoleTrader  Role = "trader"
	RoleFarmer  Role = "farmer"
	RoleHealer  Role = "healer"
	RoleCrafter Role = "crafter"
)

// Roles lists every known role.
var Roles = []Role{RoleHunter, RoleElder, RoleShaman, RoleWarrior, RoleTrader, RoleFarmer, RoleHealer, RoleCrafter}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, k := range Roles {
		if r == k {
			return true
		}
	}
	return false
}

type Disposition string

const (
	Friendly Disposition = "friendly"
	Neutral  Disposition = "neutral"
	Hostile  Disposition = "hostile"
)

const (
	FriendlyThreshold   = 70
	HostileThreshold    = 20
	MinNPCRelationship  = 1
	DefaultRelationship = 50
)

// DispositionFor derives a disposition from a relationship score.
func DispositionFor(relationship int) Disposition {
	switch {
	case relationship >= FriendlyThreshold:
		return Friendly
	case relationship <= HostileThreshold:
		return Hostile
	default:
		return Neutral
	}
}

// GrowthPath biases which stats an NPC gains on level-up.
type GrowthPath uint8

const (
	GrowthUnset GrowthPath = iota
	GrowthWarrior
	GrowthHunter
	GrowthSage
	GrowthDiplomat
	GrowthMystic
	GrowthBalanced
)

var growthNames = map[GrowthPath]string{
	GrowthWarrior:  "warrior",
	GrowthHunter:   "hunter",
	GrowthSage:     "sage",
	GrowthDiplomat: "diplomat",
	GrowthMystic:   "mystic",
	GrowthBalanced: "balanced",
}

func (g GrowthPath) String() string {
	if s, ok := growthNames[g]; ok {
		return s
	}
	return ""
}

// ParseGrowthPath matches a growth path name exactly, ignoring case.
func ParseGrowthPath(s string) (GrowthPath, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range growthNames {
		if name == s {
			return g, true
		}
	}
	return GrowthUnset, false
}

// MarshalText implements encoding.TextMarshaler.
func (g GrowthPath) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText accepts any string. Unknown names leave the path unset so
// Normalize can fall back to the role default.
func (g *GrowthPath) UnmarshalText(b []byte) error {
	*g, _ = ParseGrowthPath(string(b))
	return nil
}

// FavoredStats returns the stats a growth path prefers.
func (g GrowthPath) FavoredStats() []StatName {
	switch g {
	case GrowthWarrior:
		return []StatName{Strength, Dexterity}
	case GrowthHunter:
		return []StatName{Dexterity, Strength, Luck}
	case GrowthSage:
		return []StatName{Wisdom, Charisma}
	case GrowthDiplomat:
		return []StatName{Charisma, Wisdom}
	case GrowthMystic:
		return []StatName{Wisdom, Luck}
	default:
		return AllStats
	}
}

var roleGrowth = map[Role]GrowthPath{
	RoleHunter:  GrowthHunter,
	RoleElder:   GrowthSage,
	RoleShaman:  GrowthMystic,
	RoleWarrior: GrowthWarrior,
	RoleTrader:  GrowthDiplomat,
	RoleFarmer:  GrowthBalanced,
	RoleHealer:  GrowthSage,
	RoleCrafter: GrowthBalanced,
}

// DefaultGrowthPath is the path a role takes when the data names none.
func DefaultGrowthPath(r Role) GrowthPath {
	if g, ok := roleGrowth[r]; ok {
		return g
	}
	return GrowthBalanced
}

var roleStats = map[Role]Stats{
	RoleHunter:  {Strength: 6, Dexterity: 8, Wisdom: 4, Charisma: 3, Luck: 5},
	RoleElder:   {Strength: 3, Dexterity: 3, Wisdom: 9, Charisma: 7, Luck: 4},
	RoleShaman:  {Strength: 3, Dexterity: 4, Wisdom: 8, Charisma: 5, Luck: 7},
	RoleWarrior: {Strength: 9, Dexterity: 6, Wisdom: 3, Charisma: 4, Luck: 4},
	RoleTrader:  {Strength: 3, Dexterity: 5, Wisdom: 5, Charisma: 8, Luck: 6},
	RoleFarmer:  {Strength: 7, Dexterity: 5, Wisdom: 5, Charisma: 4, Luck: 4},
	RoleHealer:  {Strength: 3, Dexterity: 5, Wisdom: 8, Charisma: 6, Luck: 4},
	RoleCrafter: {Strength: 6, Dexterity: 7, Wisdom: 5, Charisma: 4, Luck: 3},
}

// DefaultStats returns the seed stats for a role.
func DefaultStats(r Role) Stats {
	if s, ok := roleStats[r]; ok {
		return s
	}
	return Stats{Strength: DefaultStat, Dexterity: DefaultStat, Wisdom: DefaultStat, Charisma: DefaultStat, Luck: DefaultStat}
}

// NPC represents a member of the player's tribe or a neighbouring one.
type NPC struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Role         Role            `json:"role" yaml:"role"`
	Tribe        string          `json:"tribe,omitempty" yaml:"tribe"`
	Description  string          `json:"description,omitempty" yaml:"description"` // short backstory
	Disposition  Disposition     `json:"disposition" yaml:"disposition"`
	Relationship int             `json:"relationship" yaml:"relationship"`
	GrowthPath   GrowthPath      `json:"growth_path" yaml:"growth_path"`
	Level        int             `json:"level" yaml:"level"`
	XP           int             `json:"xp" yaml:"xp"`
	Stats        Stats           `json:"stats" yaml:"stats"`
	Location     string          `json:"location,omitempty" yaml:"location"`
	Encountered  bool            `json:"encountered,omitempty" yaml:"encountered"`
	Flags        map[string]bool `json:"flags,omitempty" yaml:"flags"`
}

// Normalize seeds defaults for anything the roster left out: role stats,
// growth path, level and relationship.
func (n *NPC) Normalize() {
	if n.Stats.IsZero() {
		n.Stats = DefaultStats(n.Role)
	}
	n.Stats.Floor()
	if n.GrowthPath == GrowthUnset {
		n.GrowthPath = DefaultGrowthPath(n.Role)
	}
	n.Level = max(n.Level, 1)
	n.XP = max(n.XP, 0)
	if n.Relationship == 0 {
		n.Relationship = DefaultRelationship
	}
	n.Relationship = clamp(n.Relationship, MinNPCRelationship, MaxRelationship)
	if n.Disposition == "" {
		n.Disposition = DispositionFor(n.Relationship)
	}
	if n.Flags == nil {
		n.Flags = make(map[string]bool)
	}
}

// SetRelationship clamps the score and re-derives disposition. A seeded
// disposition only lasts until the first change.
func (n *NPC) SetRelationship(v int) {
	n.Relationship = clamp(v, MinNPCRelationship, MaxRelationship)
	n.Disposition = DispositionFor(n.Relationship)
}

// Validate checks the fields a roster entry must carry.
func (n *NPC) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("npc %q has no id", n.Name)
	}
	if n.Name == "" {
		return fmt.Errorf("npc %s has no name", n.ID)
	}
	if !n.Role.Valid() {
		return fmt.Errorf("npc %s has unknown role %q", n.ID, n.Role)
	}
	return nil
}
