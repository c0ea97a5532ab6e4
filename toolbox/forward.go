package toolbox

import "fmt"

// Forward runs the network on input and returns the activations of every
// layer.  Index 0 is a copy of input; index l is the sigmoid output of layer l.
// The result has len(weights)+1 entries.
//
// Forward does not modify its arguments.
func Forward(input *AF32, weights, biases []*AF32) ([]*AF32, error) {
	if err := checkForwardShapes(input, weights, biases); err != nil {
		return nil, err
	}

	activations := make([]*AF32, 0, len(weights)+1)
	activations = append(activations, AF32Clone(input))
	for l := 0; l < len(weights); l++ {
		activations = append(activations, applyLayer(activations[l], weights[l], biases[l]))
	}

	return activations, nil
}

// Forward runs Forward with the network's parameters.  The input length must
// equal Topology.InputSize.
func (net *Network) Forward(input *AF32) ([]*AF32, error) {
	if input.Len() != net.Topology.InputSize {
		return nil, fmt.Errorf("%w: input length %d != topology input size %d", ErrShapeMismatch, input.Len(), net.Topology.InputSize)
	}
	return Forward(input, net.Weights, net.Biases)
}

// applyLayer computes sigmoid(w·x + b) into a new vector.
func applyLayer(x, w, b *AF32) *AF32 {
	a := MakeAF32(w.Shape[0])
	AF32MulVec(w, x, a)
	AF32Add(a, b, a)
	AF32Map(a, a, Sigmoid)
	return a
}

func checkForwardShapes(input *AF32, weights, biases []*AF32) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: network has no layers", ErrShapeMismatch)
	}
	if len(weights) != len(biases) {
		return fmt.Errorf("%w: %d weight matrices but %d bias vectors", ErrShapeMismatch, len(weights), len(biases))
	}
	if !input.IsVector() {
		return fmt.Errorf("%w: input shape %v is not a vector", ErrShapeMismatch, input.Shape)
	}

	prev := input.Shape[0]
	for l := range weights {
		if err := checkLayerShape(l, weights[l], prev); err != nil {
			return err
		}
		if !biases[l].IsVector() {
			return fmt.Errorf("%w: layer %d bias shape %v is not a vector", ErrShapeMismatch, l, biases[l].Shape)
		}
		if weights[l].Shape[0] != biases[l].Shape[0] {
			return fmt.Errorf("%w: layer %d weight rows %d != bias length %d", ErrShapeMismatch, l, weights[l].Shape[0], biases[l].Shape[0])
		}
		prev = weights[l].Shape[0]
	}

	return nil
}

// checkLayerShape checks that weight matrix l consumes a vector of length
// inputLen.
func checkLayerShape(l int, w *AF32, inputLen int) error {
	if !w.IsMatrix() {
		return fmt.Errorf("%w: layer %d weight shape %v is not a matrix", ErrShapeMismatch, l, w.Shape)
	}
	if w.Shape[1] != inputLen {
		return fmt.Errorf("%w: layer %d weight cols %d != activation %d length %d", ErrShapeMismatch, l, w.Shape[1], l, inputLen)
	}
	return nil
}
