package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/emergent/system"
)

// Scenario defines a conformance test scenario: a system to build, an
// optional evolution to run, and assertions on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden
	// file when the scenario is golden-tested.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// System declares the configuration under test.
	System SystemDoc `yaml:"system"`

	// Evolve, when present, runs an evolution over the system. Absent,
	// the harness scores the initial state only.
	Evolve *EvolveDoc `yaml:"evolve,omitempty"`

	// Assertions validate the result. Supported types: classify,
	// stability_gte, stability_lte, snapshot_count, converged.
	Assertions []Assertion `yaml:"assertions"`
}

// SystemDoc declares a configuration in scenario YAML.
type SystemDoc struct {
	Scale    string      `yaml:"scale"`
	Entities []EntityDoc `yaml:"entities"`
	Rules    []RuleDoc   `yaml:"rules,omitempty"`
}

// EntityDoc declares one entity. Property values may be numbers, strings,
// or lists of numbers.
type EntityDoc struct {
	ID         string         `yaml:"id"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// RuleDoc declares one interaction rule between the two listed entities.
type RuleDoc struct {
	Between  []string `yaml:"between"`
	Strength float64  `yaml:"strength"`
	Type     string   `yaml:"type,omitempty"`
}

// EvolveDoc carries the evolution parameters for a scenario.
type EvolveDoc struct {
	MaxIterations        int     `yaml:"max_iterations"`
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	DissolutionThreshold float64 `yaml:"dissolution_threshold"`
	Jitter               float64 `yaml:"jitter,omitempty"`
	Seed                 uint64  `yaml:"seed,omitempty"`
}

// Assertion validates one aspect of a scenario result.
type Assertion struct {
	// Type selects the assertion:
	//   - "classify": the pair classifies as Expect
	//   - "stability_gte"/"stability_lte": final stability bound (Value)
	//   - "snapshot_count": trajectory yields exactly Count snapshots
	//   - "converged": convergence outcome matches Expect (true/false)
	Type string `yaml:"type"`

	// Pair names the two entities for classify assertions.
	Pair []string `yaml:"pair,omitempty"`

	// Expect is the expected classification or convergence outcome.
	Expect string `yaml:"expect,omitempty"`

	// Value is the bound for stability assertions.
	Value float64 `yaml:"value,omitempty"`

	// Count is the exact snapshot count for snapshot_count assertions.
	Count int `yaml:"count,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &s, nil
}

// BuildState converts the scenario's system document into a validated
// model state.
func (s *Scenario) BuildState() (*system.State, error) {
	scale, err := system.ParseScale(s.System.Scale)
	if err != nil {
		return nil, err
	}

	entities := make([]system.Entity, 0, len(s.System.Entities))
	for _, ed := range s.System.Entities {
		props, err := buildProperties(ed.ID, ed.Properties)
		if err != nil {
			return nil, err
		}
		entities = append(entities, system.NewEntity(ed.ID, props))
	}

	rules := make([]system.Rule, 0, len(s.System.Rules))
	for i, rd := range s.System.Rules {
		if len(rd.Between) != 2 {
			return nil, fmt.Errorf("rule %d: between must list exactly two entities", i)
		}
		rule := system.Rule{A: rd.Between[0], B: rd.Between[1], Strength: rd.Strength}
		if rd.Type != "" {
			override := system.InteractionType(rd.Type)
			if !override.Valid() {
				return nil, fmt.Errorf("rule %d: unknown interaction type %q", i, rd.Type)
			}
			rule.Override = override
		}
		rules = append(rules, rule)
	}

	st := system.NewState(scale, entities, rules)
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

// buildProperties maps YAML property values onto model property values:
// numbers to Number, strings to Label, number lists to Vector.
func buildProperties(entityID string, raw map[string]any) (system.Properties, error) {
	if raw == nil {
		return nil, nil
	}
	props := system.Properties{}
	for key, val := range raw {
		switch v := val.(type) {
		case int:
			props[key] = system.Number(v)
		case float64:
			props[key] = system.Number(v)
		case string:
			props[key] = system.Label(v)
		case []any:
			vec := make(system.Vector, 0, len(v))
			for _, elem := range v {
				switch n := elem.(type) {
				case int:
					vec = append(vec, float64(n))
				case float64:
					vec = append(vec, n)
				default:
					return nil, fmt.Errorf("entity %s: property %s: vector element must be a number, got %T", entityID, key, elem)
				}
			}
			props[key] = vec
		default:
			return nil, fmt.Errorf("entity %s: property %s: unsupported value type %T", entityID, key, val)
		}
	}
	return props, nil
}
