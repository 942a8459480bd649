// Package engine runs one game: the day cycle, actions and their follow-up
// events, the fight-or-flee decision after an explore encounter, and
// save/load through a storage gateway.
package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/combat"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/encounters"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/npcs"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

// Decision tracks the fight-or-flee choice owed after an explore encounter.
type Decision uint8

const (
	// Idle means actions may be taken.
	Idle Decision = iota
	// AwaitingDecision means a wild animal blocks the player until they
	// fight or flee.
	AwaitingDecision
	// Resolved means the last call settled a decision. The next action
	// returns the session to Idle.
	Resolved
)

func (d Decision) String() string {
	switch d {
	case AwaitingDecision:
		return "awaiting_decision"
	case Resolved:
		return "resolved"
	default:
		return "idle"
	}
}

func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decision) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*d = Idle
	case "awaiting_decision":
		*d = AwaitingDecision
	case "resolved":
		*d = Resolved
	default:
		return fmt.Errorf("unknown decision %q", string(b))
	}
	return nil
}

// Options configures a new or restored session. Zero values get defaults:
// the Normal preset, the built-in roster and catalogs, and a time-seeded
// roller.
type Options struct {
	PlayerName string
	TribeName  string
	Job        string

	Config     *config.GameConfig
	Roster     []actor.NPC
	Items      *items.Catalog
	Events     *events.Catalog
	Encounters *encounters.Catalog

	Roller dice.Roller
	// Seed feeds the roller when Roller is nil, and the weather field of
	// new worlds. A zero seed draws the weather seed from the roller.
	Seed   int64
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.PlayerName == "" {
		o.PlayerName = "Wanderer"
	}
	if o.TribeName == "" {
		o.TribeName = "River Clan"
	}
	if o.Job == "" {
		o.Job = "forager"
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Roster == nil {
		o.Roster = npcs.DefaultRoster()
	}
	if o.Items == nil {
		o.Items = items.NewCatalog()
	}
	if o.Events == nil {
		o.Events = events.NewCatalog()
	}
	if o.Encounters == nil {
		o.Encounters = encounters.NewCatalog()
	}
	if o.Roller == nil {
		o.Roller = dice.New(o.Seed)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Session is one running game. It is not safe for concurrent use; callers
// serialize access (see internal/sessions).
type Session struct {
	id     uuid.UUID
	cfg    *config.GameConfig
	player *actor.Player
	tribe  *state.Tribe
	world  *state.World
	npcs   *npcs.Registry
	day    int

	fired    []string
	visited  map[string]bool
	daily    *events.Event
	dayStart DayStartReport

	decision Decision
	pending  *actor.Animal

	itemCatalog      *items.Catalog
	eventCatalog     *events.Catalog
	encounterCatalog *encounters.Catalog
	actions          *action.Resolver
	combat           *combat.Resolver

	rng    dice.Roller
	logger *slog.Logger
}

// New starts a fresh game on day 1 and runs the first day start.
func New(opts Options) (*Session, error) {
	o := opts.withDefaults()
	seed := o.Seed
	if seed == 0 {
		seed = dice.Seed(o.Roller)
	}
	st := &state.Session{
		ID:     uuid.New(),
		Player: actor.NewPlayer(o.PlayerName, o.TribeName, o.Job),
		Tribe:  state.NewTribe(o.TribeName),
		NPCs:   slices.Clone(o.Roster),
		Day:    1,
		World:  state.NewWorld(seed),
		Config: *o.Config.Clone(),
	}
	st.Normalize()
	s, err := build(st, o)
	if err != nil {
		return nil, err
	}
	s.StartDay()
	s.logger.Info("session started", "player", st.Player.Name, "difficulty", s.cfg.Difficulty)
	return s, nil
}

// FromState resumes a saved game. The saved config wins over opts.Config,
// and the day start is not re-rolled.
func FromState(st *state.Session, opts Options) (*Session, error) {
	if st == nil || st.Player == nil || st.Tribe == nil {
		return nil, fmt.Errorf("%w: incomplete session", state.ErrInvalidPayload)
	}
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.Normalize()
	o := opts.withDefaults()
	s, err := build(st, o)
	if err != nil {
		return nil, err
	}
	s.dayStart = s.report()
	if s.daily != nil {
		s.dayStart.Event = s.daily.Summarize()
	}
	return s, nil
}

func build(st *state.Session, o Options) (*Session, error) {
	cfg := st.Config
	logger := o.Logger.With("session_id", st.ID.String())
	reg, err := npcs.New(st.NPCs, o.Roller, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build npc registry: %w", err)
	}
	s := &Session{
		id:               st.ID,
		cfg:              &cfg,
		player:           st.Player,
		tribe:            st.Tribe,
		world:            st.World,
		npcs:             reg,
		day:              st.Day,
		fired:            st.FiredMilestones,
		visited:          make(map[string]bool),
		itemCatalog:      o.Items,
		eventCatalog:     o.Events,
		encounterCatalog: o.Encounters,
		rng:              o.Roller,
		logger:           logger,
	}
	s.combat = combat.New(s.cfg, s.rng)
	s.actions = action.New(s.cfg, s.itemCatalog, s.combat, s.rng, logger)

	if st.Pending != nil {
		a := *st.Pending
		s.pending = &a
		s.decision = AwaitingDecision
	}
	if st.DailyEvent != "" {
		if e, ok := s.eventCatalog.Get(st.DailyEvent); ok {
			s.daily = e
		}
	}
	for _, id := range st.VisitedToday {
		s.visited[id] = true
	}
	return s, nil
}

// SetRoller replaces the random source for the session and every
// component it owns.
func (s *Session) SetRoller(rng dice.Roller) {
	s.rng = rng
	s.actions.SetRoller(rng)
	s.combat.SetRoller(rng)
	s.npcs.SetRoller(rng)
}

func (s *Session) ID() uuid.UUID            { return s.id }
func (s *Session) Day() int                 { return s.day }
func (s *Session) Player() *actor.Player    { return s.player }
func (s *Session) Tribe() *state.Tribe      { return s.tribe }
func (s *Session) World() *state.World      { return s.world }
func (s *Session) Decision() Decision       { return s.decision }
func (s *Session) DayStart() DayStartReport { return s.dayStart }

// Config returns a copy of the current tuning.
func (s *Session) Config() config.GameConfig {
	return *s.cfg
}

// NPCs returns a copy of the roster in id order.
func (s *Session) NPCs() []actor.NPC {
	return s.npcs.List()
}

// NPC returns a copy of one NPC.
func (s *Session) NPC(id string) (actor.NPC, bool) {
	n, ok := s.npcs.Get(id)
	if !ok {
		return actor.NPC{}, false
	}
	return *n, true
}

// Pending returns a copy of the animal awaiting a decision, or nil.
func (s *Session) Pending() *actor.Animal {
	if s.pending == nil {
		return nil
	}
	a := *s.pending
	return &a
}

// Chance is the player's current success chance for an action, including
// today's event, season and weather bonuses.
func (s *Session) Chance(t action.Type) float64 {
	return s.actions.Chance(t, s.player, s.bonus(t))
}

func (s *Session) view() state.View {
	return state.View{Player: s.player, Tribe: s.tribe, World: s.world, Day: s.day}
}

// View is the read model of a session returned to clients.
type View struct {
	ID       uuid.UUID         `json:"id"`
	Day      int               `json:"day"`
	Decision Decision          `json:"decision"`
	Player   *actor.Player     `json:"player"`
	Tribe    *state.Tribe      `json:"tribe"`
	World    *state.World      `json:"world"`
	NPCs     []actor.NPC       `json:"npcs"`
	Config   config.GameConfig `json:"config"`
	DayStart DayStartReport    `json:"day_start"`
	Pending  *actor.Animal     `json:"pending,omitempty"`
}

// View returns the current read model. Player, tribe and world are shared
// with the session; encode the view before the next mutating call.
func (s *Session) View() View {
	return View{
		ID:       s.id,
		Day:      s.day,
		Decision: s.decision,
		Player:   s.player,
		Tribe:    s.tribe,
		World:    s.world,
		NPCs:     s.npcs.List(),
		Config:   *s.cfg,
		DayStart: s.dayStart,
		Pending:  s.Pending(),
	}
}
