package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/encounters"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/npcs"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <data.yaml>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &DataValidator{}
		kind, err := validator.validateFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s file %s is valid!\n", kind, filename)
	}
	if failed {
		os.Exit(1)
	}
}

// Data file kinds, detected from the top-level key.
const (
	kindTuning     = "tuning"
	kindRoster     = "roster"
	kindEvents     = "events"
	kindEncounters = "encounters"
	kindItems      = "items"
)

type DataValidator struct {
	errors []string
}

func (v *DataValidator) validateFile(filename string) (string, error) {
	fmt.Printf("Validating %s...\n", filename)

	ext := filepath.Ext(filename)
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("data file must have .yaml extension: %s", filepath.Base(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	kind, err := detectKind(data)
	if err != nil {
		return "", fmt.Errorf("file %s contains invalid YAML: %w", filename, err)
	}

	switch kind {
	case kindRoster:
		err = v.validateRoster(data)
	case kindEvents:
		err = v.validateEvents(data)
	case kindEncounters:
		err = v.validateEncounters(data)
	case kindItems:
		err = v.validateItems(data)
	default:
		err = v.validateTuning(data)
	}
	if err != nil {
		return kind, fmt.Errorf("file %s: %w", filename, err)
	}

	if len(v.errors) > 0 {
		return kind, fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return kind, nil
}

func detectKind(data []byte) (string, error) {
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return "", err
	}
	for _, k := range []string{"npcs", "events", "encounters", "items", "loot"} {
		if _, ok := top[k]; !ok {
			continue
		}
		switch k {
		case "npcs":
			return kindRoster, nil
		case "loot":
			return kindItems, nil
		}
		return k, nil
	}
	return kindTuning, nil
}

// decodeStrict rejects keys the target does not know about.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed strict YAML unmarshaling: %w", err)
	}
	return nil
}

func (v *DataValidator) validateTuning(data []byte) error {
	var f struct {
		Difficulty   string `yaml:"difficulty"`
		config.Patch `yaml:",inline"`
	}
	if err := decodeStrict(data, &f); err != nil {
		return err
	}
	_, err := config.Parse(data)
	return err
}

func (v *DataValidator) validateRoster(data []byte) error {
	var f struct {
		NPCs []actor.NPC `yaml:"npcs"`
	}
	if err := decodeStrict(data, &f); err != nil {
		return err
	}
	if _, err := npcs.ParseRoster(data); err != nil {
		return err
	}
	for _, n := range f.NPCs {
		v.validateIDFormat("NPC ID", n.ID)
	}
	return nil
}

func (v *DataValidator) validateEvents(data []byte) error {
	var f struct {
		Events []events.Event `yaml:"events"`
	}
	if err := decodeStrict(data, &f); err != nil {
		return err
	}
	if err := events.NewCatalog().Parse(data); err != nil {
		return err
	}
	for _, e := range f.Events {
		v.validateIDFormat("event ID", e.ID)
		if e.Trigger.Type == events.Action {
			v.validateAction(fmt.Sprintf("event %s trigger", e.ID), e.Trigger.Action)
		}
		for a := range e.ActionBonus {
			v.validateAction(fmt.Sprintf("event %s action_bonus", e.ID), a)
		}
	}
	return nil
}

func (v *DataValidator) validateEncounters(data []byte) error {
	var f struct {
		Encounters []encounters.Encounter `yaml:"encounters"`
	}
	if err := decodeStrict(data, &f); err != nil {
		return err
	}
	if err := encounters.NewCatalog().Parse(data); err != nil {
		return err
	}
	for _, e := range f.Encounters {
		v.validateIDFormat("encounter ID", e.ID)
	}
	return nil
}

func (v *DataValidator) validateItems(data []byte) error {
	var f struct {
		Items []items.Item               `yaml:"items"`
		Loot  map[string]items.LootTable `yaml:"loot"`
	}
	if err := decodeStrict(data, &f); err != nil {
		return err
	}
	if err := items.NewCatalog().Parse(data); err != nil {
		return err
	}
	for _, it := range f.Items {
		v.validateIDFormat("item ID", it.ID)
		if it.Type == items.Consumable && it.Slot != "" {
			v.addError(fmt.Sprintf("item %s is consumable but has slot '%s'", it.ID, it.Slot))
		}
	}
	for a := range f.Loot {
		v.validateAction("loot table", a)
	}
	return nil
}

func (v *DataValidator) validateAction(fieldName, name string) {
	if _, ok := action.Parse(name); !ok {
		v.addError(fmt.Sprintf("%s '%s' is not an action", fieldName, name))
	}
}

func (v *DataValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *DataValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
