package toolbox

import (
	"fmt"
	"log"
	"time"
)

// Trainer drives repeated forward, backward, and update steps against a
// single input/expected pair.  A Trainer is not safe for concurrent use.
type Trainer struct {
	Network            *Network
	LearningParameters LearningParameters

	// LogEvery controls how often Train logs the cost.  Zero disables cost
	// logging.
	LogEvery int

	// Logger receives progress lines.  Nil means silent.
	Logger *log.Logger

	Timings StepTimings
}

type StepTimings struct {
	Overall         time.Duration
	Forward         time.Duration
	Backpropagation time.Duration
	WeightUpdate    time.Duration
}

func (t *StepTimings) Reset() {
	t.Overall = 0 * time.Second
	t.Forward = 0 * time.Second
	t.Backpropagation = 0 * time.Second
	t.WeightUpdate = 0 * time.Second
}

// Step runs one training iteration and returns the network output observed
// before the update was applied.
func (tr *Trainer) Step(input, expected *AF32) (*AF32, error) {
	start := time.Now()

	forwardStart := time.Now()
	activations, err := tr.Network.Forward(input)
	if err != nil {
		return nil, fmt.Errorf("while running forward pass: %w", err)
	}
	tr.Timings.Forward += time.Since(forwardStart)

	backpropStart := time.Now()
	gradients, err := tr.Network.Backpropagate(activations, expected)
	if err != nil {
		return nil, fmt.Errorf("while backpropagating: %w", err)
	}
	tr.Timings.Backpropagation += time.Since(backpropStart)

	weightUpdateStart := time.Now()
	tr.Network.GradientDescent(gradients, tr.LearningParameters)
	tr.Timings.WeightUpdate += time.Since(weightUpdateStart)

	tr.Timings.Overall += time.Since(start)

	return activations[len(activations)-1], nil
}

// Train runs steps iterations on the same input/expected pair and reports the
// outputs of the first and the last iteration.
func (tr *Trainer) Train(input, expected *AF32, steps int) (*TrainingReport, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps %d must be positive", ErrInvalidConfig, steps)
	}

	report := &TrainingReport{
		Expected: AF32Clone(expected),
		Steps:    steps,
	}

	for s := 0; s < steps; s++ {
		output, err := tr.Step(input, expected)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", s, err)
		}

		if s == 0 {
			report.First = output
		}
		report.Last = output

		if tr.Logger != nil && tr.LogEvery > 0 && s%tr.LogEvery == 0 {
			tr.Logger.Printf("step=%d cost=%v", s, SquaredErrorCost(expected, output))
		}
	}

	return report, nil
}
