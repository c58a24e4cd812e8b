package chain

import (
	"fmt"

	"image-processor/internal/opencv/safe"
)

// Params carries the numeric inputs shared by every step of a chain.
type Params map[string]float64

type ProcessingStep interface {
	Apply(input *safe.Mat, params Params) (*safe.Mat, error)
	Name() string
	ShouldExecute(params Params) bool
}

// ProcessingChain runs its steps in a fixed order, each consuming the output of
// the previous one. Intermediate Mats are closed as soon as they are consumed.
type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps ...ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// Execute never modifies input. When no step executes, input itself is
// returned; callers that need an independent Mat must compare and clone.
func (pc *ProcessingChain) Execute(input *safe.Mat, params Params) (*safe.Mat, error) {
	current := input

	for _, step := range pc.steps {
		if !step.ShouldExecute(params) {
			continue
		}

		result, err := step.Apply(current, params)
		if current != input {
			current.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		current = result
	}

	return current, nil
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
