package model

import "fmt"

// Stage is one named step of a project's journey. Icon is an opaque
// presentational tag carried through unchanged.
type Stage struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Icon   string `json:"icon,omitempty"`
}

func (s *Stage) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	return ValidateStatus(s.Status)
}

// CloneStages returns a copy of stages that shares no backing array with the input.
func CloneStages(stages []Stage) []Stage {
	if stages == nil {
		return nil
	}
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// ValidateJourney checks every stage and rejects repeated names.
func ValidateJourney(stages []Stage) error {
	seen := make(map[string]bool, len(stages))
	for i := range stages {
		if err := stages[i].Validate(); err != nil {
			return err
		}
		if seen[stages[i].Name] {
			return fmt.Errorf("duplicate stage %q", stages[i].Name)
		}
		seen[stages[i].Name] = true
	}
	return nil
}
