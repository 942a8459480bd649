package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
)

const helpText = `Actions:
• farm, gather, hunt, trade, explore
• visit <npc id>
• fight, flee (when a wild animal blocks your way)
• end - end the day

Bag:
• bag - list your bag and equipment
• use <n>, equip <n> - bag slot numbers start at 1
• unequip <slot>

Game:
• npcs - the people of your tribe
• difficulty <easy|normal|hard>
• save, saves, load <handle>
• /copy - copy the last narration
• /help, Ctrl+C to quit`

var errEmpty = errors.New("empty command")

// game drives one in-process session from typed commands.
type game struct {
	session *engine.Session
	store   storage.Storage
	options engine.Options
}

func newGame(store storage.Storage, options engine.Options) (*game, error) {
	s, err := engine.New(options)
	if err != nil {
		return nil, err
	}
	return &game{session: s, store: store, options: options}, nil
}

// run executes one command line and returns the narration for it.
func (g *game) run(ctx context.Context, input string) (string, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return "", errEmpty
	}
	verb := strings.TrimPrefix(fields[0], "/")
	args := fields[1:]

	switch verb {
	case "farm", "gather", "hunt", "trade", "explore":
		return formatAction(g.session.ExecuteAction(engine.ActionRequest{Action: verb})), nil
	case "visit":
		if len(args) == 0 {
			return "", errors.New("visit whom? Type npcs to see who is around")
		}
		return formatAction(g.session.ExecuteAction(engine.ActionRequest{Action: verb, NPCID: args[0]})), nil
	case engine.Fight, engine.Flee:
		return formatAction(g.session.ExecuteAction(engine.ActionRequest{CombatDecision: verb})), nil
	case "end", "sleep":
		return formatDayEnd(g.session.EndDay()), nil
	case "use", "equip":
		index, err := bagIndex(args)
		if err != nil {
			return "", err
		}
		if verb == "use" {
			return g.session.UseItem(index).Message, nil
		}
		return g.session.Equip(index).Message, nil
	case "unequip":
		if len(args) == 0 {
			return "", errors.New("unequip which slot?")
		}
		return g.session.Unequip(args[0]).Message, nil
	case "bag", "inventory":
		return g.bag(), nil
	case "npcs":
		return g.npcs(), nil
	case "difficulty":
		if len(args) == 0 {
			return fmt.Sprintf("Difficulty: %s", g.session.Config().Difficulty), nil
		}
		cfg, err := g.session.ApplyDifficulty(args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Difficulty set to %s.", cfg.Difficulty), nil
	case "save":
		handle, err := g.session.Save(ctx, g.store)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved on day %d. Handle: %s", g.session.Day(), handle), nil
	case "saves":
		return g.saves(ctx)
	case "load":
		if len(args) == 0 {
			return "", errors.New("load which save? Type saves to list them")
		}
		handle, err := uuid.Parse(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid handle %q", args[0])
		}
		s, err := engine.Load(ctx, g.store, handle, g.options)
		if err != nil {
			return "", err
		}
		g.session = s
		return fmt.Sprintf("Loaded %s on day %d.", s.Player().Name, s.Day()), nil
	case "help":
		return helpText, nil
	}
	return "", fmt.Errorf("unknown command %q, type help", verb)
}

func bagIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("which bag slot?")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a bag slot", args[0])
	}
	return n - 1, nil
}

func formatAction(resp engine.ActionResponse) string {
	var b strings.Builder
	b.WriteString(resp.Message)
	if resp.Rewards != nil {
		if line := formatRewards(resp.Rewards); line != "" {
			b.WriteString("\n" + line)
		}
	}
	if resp.ExploreEncounter != nil && resp.ExploreEncounter.RequiresDecision {
		b.WriteString("\nType fight or flee.")
	}
	return b.String()
}

func formatRewards(r *action.Rewards) string {
	var parts []string
	add := func(n int, name string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", n, name))
		}
	}
	add(r.XP, "xp")
	add(r.Food, "food")
	add(r.Materials, "materials")
	add(r.Wealth, "wealth")
	add(r.SpiritEnergy, "spirit")
	return strings.Join(parts, ", ")
}

func formatDayEnd(resp engine.DayEndResponse) string {
	if !resp.Success {
		return resp.Message
	}
	var b strings.Builder
	b.WriteString(resp.Message)
	for _, m := range resp.GrowthMessages {
		b.WriteString("\n• " + m)
	}
	if ds := resp.DayStart; ds != nil {
		fmt.Fprintf(&b, "\n%s, %s. Stamina %d/%d.", ds.Season, ds.Weather.Kind, ds.Stamina, ds.MaxStamina)
		if ds.Resting {
			b.WriteString(" You are resting today.")
		}
	}
	return b.String()
}

func (g *game) bag() string {
	p := g.session.Player()
	var b strings.Builder
	if len(p.Bag) == 0 {
		b.WriteString("Your bag is empty.")
	}
	for i, it := range p.Bag {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, it)
	}
	for slot, it := range p.Equipment {
		fmt.Fprintf(&b, "\n[%s] %s", slot, it.Name)
	}
	return b.String()
}

func (g *game) npcs() string {
	var lines []string
	for _, n := range g.session.NPCs() {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s, level %d, relationship %d", n.Name, n.ID, n.Role, n.Level, n.Relationship))
	}
	return strings.Join(lines, "\n")
}

func (g *game) saves(ctx context.Context) (string, error) {
	lister, ok := g.store.(storage.Lister)
	if !ok {
		return "", errors.New("this save store cannot list saves")
	}
	saves, err := lister.List(ctx)
	if err != nil {
		return "", err
	}
	if len(saves) == 0 {
		return "No saves yet.", nil
	}
	var lines []string
	for _, s := range saves {
		lines = append(lines, fmt.Sprintf("%s  %s, day %d (%s)", s.Handle, s.Player, s.Day, s.SavedAt.Format("2006-01-02 15:04")))
	}
	return strings.Join(lines, "\n"), nil
}
