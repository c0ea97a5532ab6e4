package toolbox

import (
	"fmt"
	"math/rand"
)

// Initial weights, biases, and synthetic inputs are drawn uniformly from
// [InitialValueMin, InitialValueMax).
const (
	InitialValueMin = float32(-2)
	InitialValueMax = float32(2)
)

// Topology fixes the width of every layer.  It determines the shape of every
// weight matrix, bias vector, and activation vector of a Network.
type Topology struct {
	InputSize        int
	HiddenSize       int
	OutputSize       int
	HiddenLayerCount int
}

func NewTopology(inputSize, hiddenSize, outputSize, hiddenLayerCount int) (Topology, error) {
	top := Topology{
		InputSize:        inputSize,
		HiddenSize:       hiddenSize,
		OutputSize:       outputSize,
		HiddenLayerCount: hiddenLayerCount,
	}
	if err := top.Validate(); err != nil {
		return Topology{}, err
	}
	return top, nil
}

// Validate rejects empty layers.  HiddenSize is only checked when there is at
// least one hidden layer.
func (top Topology) Validate() error {
	if top.InputSize <= 0 {
		return fmt.Errorf("%w: input size %d must be positive", ErrInvalidConfig, top.InputSize)
	}
	if top.OutputSize <= 0 {
		return fmt.Errorf("%w: output size %d must be positive", ErrInvalidConfig, top.OutputSize)
	}
	if top.HiddenLayerCount < 0 {
		return fmt.Errorf("%w: hidden layer count %d must not be negative", ErrInvalidConfig, top.HiddenLayerCount)
	}
	if top.HiddenLayerCount > 0 && top.HiddenSize <= 0 {
		return fmt.Errorf("%w: hidden size %d must be positive with %d hidden layers", ErrInvalidConfig, top.HiddenSize, top.HiddenLayerCount)
	}
	return nil
}

// LayerSizes returns the width of every layer, input first.  The result has
// HiddenLayerCount+2 entries.
func (top Topology) LayerSizes() []int {
	sizes := make([]int, 0, top.HiddenLayerCount+2)
	sizes = append(sizes, top.InputSize)
	for l := 0; l < top.HiddenLayerCount; l++ {
		sizes = append(sizes, top.HiddenSize)
	}
	sizes = append(sizes, top.OutputSize)
	return sizes
}

// NumLayers is the number of non-input layers, i.e. the number of weight
// matrices.
func (top Topology) NumLayers() int {
	return top.HiddenLayerCount + 1
}

func (top Topology) String() string {
	return fmt.Sprintf("input=%d hidden=%d×%d output=%d", top.InputSize, top.HiddenLayerCount, top.HiddenSize, top.OutputSize)
}

// Network holds the parameters of a fully-connected sigmoid network.
//
// Weights[l] has shape (size(l+1), size(l)) and Biases[l] has shape
// (size(l+1)), where size is Topology.LayerSizes.
type Network struct {
	Topology Topology
	Weights  []*AF32
	Biases   []*AF32
}

// MakeNetwork initializes a network for top with every parameter drawn
// independently from r.
func MakeNetwork(top Topology, r *rand.Rand) (*Network, error) {
	if err := top.Validate(); err != nil {
		return nil, err
	}

	sizes := top.LayerSizes()
	net := &Network{
		Topology: top,
		Weights:  make([]*AF32, top.NumLayers()),
		Biases:   make([]*AF32, top.NumLayers()),
	}
	for l := 0; l < top.NumLayers(); l++ {
		net.Weights[l] = RandomMatrix(sizes[l+1], sizes[l], r)
		net.Biases[l] = RandomVector(sizes[l+1], r)
	}

	return net, nil
}

// Clone deep-copies the network parameters.
func (net *Network) Clone() *Network {
	out := &Network{
		Topology: net.Topology,
		Weights:  make([]*AF32, len(net.Weights)),
		Biases:   make([]*AF32, len(net.Biases)),
	}
	for l := range net.Weights {
		out.Weights[l] = AF32Clone(net.Weights[l])
	}
	for l := range net.Biases {
		out.Biases[l] = AF32Clone(net.Biases[l])
	}
	return out
}

// NumParameters counts every weight and bias.
func (net *Network) NumParameters() int {
	n := 0
	for l := range net.Weights {
		n += net.Weights[l].Len() + net.Biases[l].Len()
	}
	return n
}

func RandomMatrix(rows, cols int, r *rand.Rand) *AF32 {
	m := MakeAF32(rows, cols)
	for i := range m.V {
		m.V[i] = randomValue(r)
	}
	return m
}

func RandomVector(n int, r *rand.Rand) *AF32 {
	v := MakeAF32(n)
	for i := range v.V {
		v.V[i] = randomValue(r)
	}
	return v
}

func randomValue(r *rand.Rand) float32 {
	return InitialValueMin + r.Float32()*(InitialValueMax-InitialValueMin)
}
