package runner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTestStep_Kind(t *testing.T) {
	tests := []struct {
		name    string
		step    TestStep
		want    StepKind
		wantErr bool
	}{
		{name: "action", step: TestStep{Action: "farm"}, want: KindAction},
		{name: "combat decision alone", step: TestStep{CombatDecision: "flee"}, want: KindAction},
		{name: "end day", step: TestStep{EndDay: true}, want: KindEndDay},
		{name: "difficulty", step: TestStep{Difficulty: "hard"}, want: KindDifficulty},
		{name: "save", step: TestStep{Save: true}, want: KindSave},
		{name: "load", step: TestStep{Load: true}, want: KindLoad},
		{name: "nothing", step: TestStep{}, wantErr: true},
		{name: "two requests", step: TestStep{Action: "farm", EndDay: true}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.step.Kind()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckExpectations(t *testing.T) {
	var after sessionView
	after.Day = 2
	after.Decision = "idle"
	after.Player.Stamina = 4
	after.Player.Relationships = map[string]int{"zara": 3}
	after.Config.Difficulty = "Hard"
	resp := stepResponse{Success: ptr(false), Reason: "state", Message: "You are too tired to hunt."}

	tests := []struct {
		name    string
		exp     Expectations
		status  int
		wantErr string
	}{
		{name: "nothing expected", exp: Expectations{}, status: 200},
		{name: "all match", exp: Expectations{
			Success:          ptr(false),
			Reason:           ptr("state"),
			ResponseContains: []string{"TOO TIRED"},
			Day:              ptr(2),
			Stamina:          ptr(4),
			Decision:         ptr("idle"),
			Difficulty:       ptr("hard"),
			Resting:          ptr(false),
			Relationship:     map[string]int{"zara": 3},
		}, status: 200},
		{name: "unexpected error status", exp: Expectations{}, status: 404, wantErr: "unexpected status 404"},
		{name: "expected error status", exp: Expectations{Status: ptr(404)}, status: 404},
		{name: "wrong reason", exp: Expectations{Reason: ptr("validation")}, status: 200, wantErr: `expected reason "validation"`},
		{name: "wrong stamina", exp: Expectations{Stamina: ptr(5)}, status: 200, wantErr: "expected stamina 5, got 4"},
		{name: "unwanted text", exp: Expectations{ResponseNotContains: []string{"tired"}}, status: 200, wantErr: "NOT contain"},
		{name: "missing relationship", exp: Expectations{Relationship: map[string]int{"grok": 1}}, status: 200, wantErr: "relationship with grok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkExpectations(tt.exp, tt.status, resp, after)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTestSuite(t *testing.T) {
	files, err := DiscoverCases(filepath.Join("..", "cases"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		suite, err := LoadTestSuite(f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, suite.Name, f)
		assert.NotEmpty(t, suite.Steps, f)
	}
}
