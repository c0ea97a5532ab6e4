package toolbox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// GradientCheck compares backpropagated gradients against a finite-difference
// estimate of the cost gradient.  Parameters are flattened layer by layer,
// weights before biases.
type GradientCheck struct {
	Numeric  []float64 // dC/dθ estimated by central differences
	Analytic []float64 // dC/dθ from Backpropagate

	MaxAbsDiff float64
	Parameter  int // index of the parameter with the largest disagreement
}

// CheckGradients estimates the gradient of SquaredErrorCost with respect to
// every parameter of net using central differences of width 2*step, and
// compares it with Backpropagate.  net is not modified.
func CheckGradients(net *Network, input, expected *AF32, step float64) (*GradientCheck, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: finite difference step %v must be positive", ErrInvalidConfig, step)
	}

	activations, err := net.Forward(input)
	if err != nil {
		return nil, fmt.Errorf("while running forward pass: %w", err)
	}
	gradients, err := net.Backpropagate(activations, expected)
	if err != nil {
		return nil, fmt.Errorf("while backpropagating: %w", err)
	}

	// Backpropagate returns the downhill direction; negate to get dC/dθ.
	analytic := make([]float64, 0, net.NumParameters())
	for _, g := range gradients {
		for _, v := range g.W.V {
			analytic = append(analytic, -float64(v))
		}
		for _, v := range g.B.V {
			analytic = append(analytic, -float64(v))
		}
	}

	scratch := net.Clone()
	cost := func(theta []float64) float64 {
		scratch.setParameters(theta)
		acts, err := Forward(input, scratch.Weights, scratch.Biases)
		if err != nil {
			// Shapes were validated above and never change.
			panic(err)
		}
		return float64(SquaredErrorCost(expected, acts[len(acts)-1]))
	}

	numeric := fd.Gradient(nil, cost, net.parameters(), &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})

	check := &GradientCheck{
		Numeric:  numeric,
		Analytic: analytic,
	}
	for i := range numeric {
		if d := math.Abs(numeric[i] - analytic[i]); d > check.MaxAbsDiff {
			check.MaxAbsDiff = d
			check.Parameter = i
		}
	}

	return check, nil
}

// parameters flattens the network parameters into a float64 slice.
func (net *Network) parameters() []float64 {
	theta := make([]float64, 0, net.NumParameters())
	for l := range net.Weights {
		for _, v := range net.Weights[l].V {
			theta = append(theta, float64(v))
		}
		for _, v := range net.Biases[l].V {
			theta = append(theta, float64(v))
		}
	}
	return theta
}

// setParameters is the inverse of parameters.
func (net *Network) setParameters(theta []float64) {
	i := 0
	for l := range net.Weights {
		for j := range net.Weights[l].V {
			net.Weights[l].V[j] = float32(theta[i])
			i++
		}
		for j := range net.Biases[l].V {
			net.Biases[l].V[j] = float32(theta[i])
			i++
		}
	}
}
