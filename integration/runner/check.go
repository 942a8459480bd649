package runner

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
)

// stepResponse holds the fields shared by action, day end and error bodies.
type stepResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
	Error   string `json:"error"`
}

func (r stepResponse) text() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// sessionView is the part of GET /v1/sessions/{id} the runner checks.
type sessionView struct {
	ID       uuid.UUID `json:"id"`
	Day      int       `json:"day"`
	Decision string    `json:"decision"`
	Player   struct {
		Stamina           int             `json:"stamina"`
		Health            int             `json:"health"`
		RestDaysRemaining int             `json:"rest_days_remaining"`
		Relationships     map[string]int  `json:"relationships"`
		Inventory         actor.Resources `json:"inventory"`
	} `json:"player"`
	Config struct {
		Difficulty string `json:"difficulty"`
	} `json:"config"`
}

func checkExpectations(exp Expectations, status int, resp stepResponse, after sessionView) error {
	if exp.Status != nil && status != *exp.Status {
		return fmt.Errorf("expected status %d, got %d", *exp.Status, status)
	}
	if exp.Status == nil && status >= 300 {
		return fmt.Errorf("unexpected status %d: %s", status, resp.text())
	}

	if exp.Success != nil {
		if resp.Success == nil {
			return fmt.Errorf("expected success=%t, but the response has no success field", *exp.Success)
		}
		if *resp.Success != *exp.Success {
			return fmt.Errorf("expected success=%t, got %t: %s", *exp.Success, *resp.Success, resp.Message)
		}
	}
	if exp.Reason != nil && resp.Reason != *exp.Reason {
		return fmt.Errorf("expected reason %q, got %q: %s", *exp.Reason, resp.Reason, resp.Message)
	}

	text := strings.ToLower(resp.text())
	for _, want := range exp.ResponseContains {
		if !strings.Contains(text, strings.ToLower(want)) {
			return fmt.Errorf("expected response to contain '%s', got: %s", want, resp.text())
		}
	}
	for _, unwanted := range exp.ResponseNotContains {
		if strings.Contains(text, strings.ToLower(unwanted)) {
			return fmt.Errorf("expected response to NOT contain '%s', got: %s", unwanted, resp.text())
		}
	}

	p := after.Player
	if exp.Day != nil && after.Day != *exp.Day {
		return fmt.Errorf("expected day %d, got %d", *exp.Day, after.Day)
	}
	if exp.Stamina != nil && p.Stamina != *exp.Stamina {
		return fmt.Errorf("expected stamina %d, got %d", *exp.Stamina, p.Stamina)
	}
	if exp.Health != nil && p.Health != *exp.Health {
		return fmt.Errorf("expected health %d, got %d", *exp.Health, p.Health)
	}
	if exp.Decision != nil && after.Decision != *exp.Decision {
		return fmt.Errorf("expected decision %s, got %s", *exp.Decision, after.Decision)
	}
	if exp.Difficulty != nil && !strings.EqualFold(after.Config.Difficulty, *exp.Difficulty) {
		return fmt.Errorf("expected difficulty %s, got %s", *exp.Difficulty, after.Config.Difficulty)
	}
	if exp.Resting != nil && (p.RestDaysRemaining > 0) != *exp.Resting {
		return fmt.Errorf("expected resting=%t, got %d rest day(s) left", *exp.Resting, p.RestDaysRemaining)
	}
	for _, id := range slices.Sorted(maps.Keys(exp.Relationship)) {
		if got := p.Relationships[id]; got != exp.Relationship[id] {
			return fmt.Errorf("expected relationship with %s to be %d, got %d", id, exp.Relationship[id], got)
		}
	}
	if exp.Inventory != nil && p.Inventory != *exp.Inventory {
		return fmt.Errorf("expected inventory %+v, got %+v", *exp.Inventory, p.Inventory)
	}
	return nil
}
