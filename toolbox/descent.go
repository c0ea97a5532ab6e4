package toolbox

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

type LearningParameters struct {
	LearningRate float32
}

func NewLearningParameters(learningRate float32) (LearningParameters, error) {
	if !(learningRate > 0) || math32.IsInf(learningRate, 0) {
		return LearningParameters{}, fmt.Errorf("%w: learning rate %v must be positive and finite", ErrInvalidConfig, learningRate)
	}
	return LearningParameters{LearningRate: learningRate}, nil
}

// GradientDescent applies gradients to weights and biases in place:
//
//	weights[l] += rate * gradients[l].W
//	biases[l]  += rate * gradients[l].B
//
// Gradients from Backpropagate already point downhill, hence the addition.
// Mismatched shapes are a caller bug and panic.
func GradientDescent(weights, biases []*AF32, gradients []Gradients, lp LearningParameters) {
	if len(weights) != len(gradients) || len(biases) != len(gradients) {
		panic(fmt.Sprintf("gradient descent: %d weights, %d biases, %d gradients", len(weights), len(biases), len(gradients)))
	}

	for l := 0; l < len(gradients); l++ {
		if !slices.Equal(weights[l].Shape, gradients[l].W.Shape) {
			panic(fmt.Sprintf("gradient descent: layer %d weights %v != gradient %v", l, weights[l].Shape, gradients[l].W.Shape))
		}
		if !slices.Equal(biases[l].Shape, gradients[l].B.Shape) {
			panic(fmt.Sprintf("gradient descent: layer %d biases %v != gradient %v", l, biases[l].Shape, gradients[l].B.Shape))
		}

		AF32AddScaled(weights[l], lp.LearningRate, gradients[l].W)
		AF32AddScaled(biases[l], lp.LearningRate, gradients[l].B)
	}
}

func (net *Network) GradientDescent(gradients []Gradients, lp LearningParameters) {
	GradientDescent(net.Weights, net.Biases, gradients, lp)
}
