package items

import (
	"fmt"
	"math"
	"os"

	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"gopkg.in/yaml.v3"
)

// LootEntry is one weighted possibility in a loot table.
type LootEntry struct {
	Item     string `yaml:"item"`
	Weight   int    `yaml:"weight"`
	Quantity [2]int `yaml:"quantity"` // inclusive range; zero value means exactly 1
}

// LootTable is rolled once per qualifying action. Chance is the base
// probability (0..1) that the table drops anything at all.
type LootTable struct {
	Chance  float64     `yaml:"chance"`
	Entries []LootEntry `yaml:"entries"`
}

// Catalog holds item templates and per-action loot tables.
type Catalog struct {
	templates map[string]Item
	tables    map[string]LootTable
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		templates: make(map[string]Item, len(defaultItems)),
		tables:    make(map[string]LootTable, len(defaultLoot)),
	}
	for _, it := range defaultItems {
		c.templates[it.ID] = it
	}
	for k, v := range defaultLoot {
		c.tables[k] = v
	}
	return c
}

// Template returns the item template for id.
func (c *Catalog) Template(id string) (Item, bool) {
	it, ok := c.templates[id]
	return it, ok
}

// New instantiates qty units of the item id.
func (c *Catalog) New(id string, qty int) (Item, error) {
	t, ok := c.templates[id]
	if !ok {
		return Item{}, fmt.Errorf("unknown item %q", id)
	}
	if qty < 1 {
		qty = 1
	}
	t.Quantity = qty
	return t, nil
}

// RollLoot rolls the table for an action. luck raises the drop chance by 2%
// per point; mult is the configured loot multiplier. Returns nil when nothing
// drops.
func (c *Catalog) RollLoot(action string, luck int, mult float64, rng dice.Roller) []Item {
	table, ok := c.tables[action]
	if !ok || len(table.Entries) == 0 {
		return nil
	}

	chance := table.Chance * mult * (1 + float64(luck)/50)
	chance = math.Min(chance, 0.95)
	if !dice.Chance(rng, chance) {
		return nil
	}

	entry := selectWeightedEntry(table.Entries, rng)
	if entry == nil {
		return nil
	}
	qty := 1
	if entry.Quantity[1] > 0 {
		qty = dice.Range(rng, entry.Quantity[0], entry.Quantity[1])
	}
	it, err := c.New(entry.Item, qty)
	if err != nil {
		return nil
	}
	return []Item{it}
}

// selectWeightedEntry picks a LootEntry using weighted random selection.
func selectWeightedEntry(entries []LootEntry, rng dice.Roller) *LootEntry {
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return nil
	}

	roll := rng.IntN(total) + 1
	cumulative := 0
	for i := range entries {
		cumulative += entries[i].Weight
		if roll <= cumulative {
			return &entries[i]
		}
	}
	return &entries[len(entries)-1]
}

// catalogFile is the YAML layout accepted by LoadFile.
type catalogFile struct {
	Items []Item               `yaml:"items"`
	Loot  map[string]LootTable `yaml:"loot"`
}

// LoadFile merges item templates and loot tables from a YAML file into the
// catalog. Entries with an existing id or action replace the built-in ones.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read item file: %w", err)
	}
	return c.Parse(data)
}

// Parse merges item templates and loot tables from YAML data.
func (c *Catalog) Parse(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse item file: %w", err)
	}
	for _, it := range f.Items {
		if it.ID == "" {
			return fmt.Errorf("item without id %q", it.Name)
		}
		c.templates[it.ID] = it
	}
	for action, table := range f.Loot {
		for _, e := range table.Entries {
			if _, ok := c.templates[e.Item]; !ok {
				return fmt.Errorf("loot table %q references unknown item %q", action, e.Item)
			}
		}
		c.tables[action] = table
	}
	return nil
}
