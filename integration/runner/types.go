package runner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
)

// StepKind is what a step asks the API to do.
type StepKind string

const (
	KindAction     StepKind = "action"
	KindEndDay     StepKind = "end_day"
	KindDifficulty StepKind = "difficulty"
	KindSave       StepKind = "save"
	KindLoad       StepKind = "load"
)

// TestSuite is one scripted playthrough: a new session and the steps run
// against it in order.
type TestSuite struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Session     NewSession `json:"session" yaml:"session"`
	Steps       []TestStep `json:"steps" yaml:"steps"`
}

// NewSession is the create request sent before the first step.
type NewSession struct {
	PlayerName string `json:"player_name,omitempty" yaml:"player_name"`
	TribeName  string `json:"tribe_name,omitempty" yaml:"tribe_name"`
	Job        string `json:"job,omitempty" yaml:"job"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty"`
	Seed       *int64 `json:"seed,omitempty" yaml:"seed"`
}

// TestStep is a single request and the state expected after it. Exactly
// one of Action, EndDay, Difficulty, Save or Load is set; CombatDecision
// alone counts as an action.
type TestStep struct {
	Name           string       `json:"name,omitempty" yaml:"name"`
	Action         string       `json:"action,omitempty" yaml:"action"`
	NPCID          string       `json:"npc_id,omitempty" yaml:"npc_id"`
	CombatDecision string       `json:"combat_decision,omitempty" yaml:"combat_decision"`
	EndDay         bool         `json:"end_day,omitempty" yaml:"end_day"`
	Difficulty     string       `json:"difficulty,omitempty" yaml:"difficulty"`
	Save           bool         `json:"save,omitempty" yaml:"save"`
	Load           bool         `json:"load,omitempty" yaml:"load"`
	Expectations   Expectations `json:"expect" yaml:"expect"`
}

// Kind works out what the step does, or fails if it names no request or
// more than one.
func (s TestStep) Kind() (StepKind, error) {
	var kinds []StepKind
	if s.Action != "" || s.CombatDecision != "" {
		kinds = append(kinds, KindAction)
	}
	if s.EndDay {
		kinds = append(kinds, KindEndDay)
	}
	if s.Difficulty != "" {
		kinds = append(kinds, KindDifficulty)
	}
	if s.Save {
		kinds = append(kinds, KindSave)
	}
	if s.Load {
		kinds = append(kinds, KindLoad)
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("step %q must name exactly one request, got %v", s.Name, kinds)
	}
	return kinds[0], nil
}

// Expectations are checked against the step's response and the session
// fetched after it. Unset fields are not checked.
type Expectations struct {
	// Response
	Status              *int     `json:"status,omitempty" yaml:"status"`
	Success             *bool    `json:"success,omitempty" yaml:"success"`
	Reason              *string  `json:"reason,omitempty" yaml:"reason"`
	ResponseContains    []string `json:"response_contains,omitempty" yaml:"response_contains"`
	ResponseNotContains []string `json:"response_not_contains,omitempty" yaml:"response_not_contains"`

	// Session
	Day          *int             `json:"day,omitempty" yaml:"day"`
	Stamina      *int             `json:"stamina,omitempty" yaml:"stamina"`
	Health       *int             `json:"health,omitempty" yaml:"health"`
	Decision     *string          `json:"decision,omitempty" yaml:"decision"`
	Difficulty   *string          `json:"difficulty,omitempty" yaml:"difficulty"`
	Resting      *bool            `json:"resting,omitempty" yaml:"resting"`
	Relationship map[string]int   `json:"relationship,omitempty" yaml:"relationship"`
	Inventory    *actor.Resources `json:"inventory,omitempty" yaml:"inventory"`
}

// TestResult is the outcome of one step.
type TestResult struct {
	StepName     string
	Kind         StepKind
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
}

// TestJob is a suite loaded from a case file.
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult collects the results of a whole suite.
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID
}
