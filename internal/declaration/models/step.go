package models

import "fmt"

// Step is the wizard position. Transitions are linear; see wizard.Machine.
type Step int

const (
	StepLanding Step = iota
	StepPassengerInfo
	StepTravelInfo
	StepDeclarations
	StepTaxComputation
)

var stepNames = map[Step]string{
	StepLanding:        "landing",
	StepPassengerInfo:  "passenger_info",
	StepTravelInfo:     "travel_info",
	StepDeclarations:   "declarations",
	StepTaxComputation: "tax_computation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Step) IsValid() bool {
	return s >= StepLanding && s <= StepTaxComputation
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a step name.
func (s *Step) UnmarshalText(b []byte) error {
	for step, name := range stepNames {
		if name == string(b) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", string(b))
}
