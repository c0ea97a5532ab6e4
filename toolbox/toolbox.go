package toolbox

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrShapeMismatch is wrapped by every error reporting that two tensor
	// dimensions which must agree do not.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidConfig is wrapped by errors rejecting a topology or learning
	// parameters before any computation starts.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// AF32 is a dense row-major float32 tensor.  Vectors have Shape {n}, matrices
// have Shape {rows, cols}.
type AF32 struct {
	V     []float32
	Shape []int
}

func MakeAF32(shape ...int) *AF32 {
	for _, s := range shape {
		if s <= 0 {
			panic(fmt.Sprintf("invalid shape: %v", shape))
		}
	}
	size := 1
	for _, s := range shape {
		size *= s
	}

	return &AF32{
		V:     make([]float32, size),
		Shape: shape,
	}
}

// MakeVectorAF32 wraps v (without copying) as a vector.
func MakeVectorAF32(v ...float32) *AF32 {
	if len(v) == 0 {
		panic("invalid shape: []")
	}
	return &AF32{
		V:     v,
		Shape: []int{len(v)},
	}
}

// AF32Copy allocates a zeroed tensor with the same shape as in.
func AF32Copy(in *AF32) *AF32 {
	shapeCopy := make([]int, len(in.Shape))
	copy(shapeCopy, in.Shape)
	return &AF32{
		V:     make([]float32, len(in.V)),
		Shape: shapeCopy,
	}
}

// AF32Clone is AF32Copy that also copies the values.
func AF32Clone(in *AF32) *AF32 {
	out := AF32Copy(in)
	copy(out.V, in.V)
	return out
}

func AF32Transpose(in *AF32, out *AF32) {
	if len(in.Shape) != 2 {
		panic("cannot transpose if len(shape) != 2")
	}
	if len(in.V) != len(out.V) {
		panic("output storage is not correctly sized to store the transpose of the input")
	}
	out.Shape = []int{in.Shape[1], in.Shape[0]}

	for i := 0; i < in.Shape[0]; i++ {
		for j := 0; j < in.Shape[1]; j++ {
			out.Set2(j, i, in.At2(i, j))
		}
	}
}

func (a *AF32) IsVector() bool {
	return len(a.Shape) == 1
}

func (a *AF32) IsMatrix() bool {
	return len(a.Shape) == 2
}

// Len is the number of stored elements.
func (a *AF32) Len() int {
	return len(a.V)
}

func (a *AF32) At1(idx int) float32 {
	return a.V[idx]
}

func (a *AF32) At2(idx0, idx1 int) float32 {
	if len(a.Shape) != 2 {
		panic("At2() invalid for len(shape) != 2")
	}
	return a.V[idx0*a.Shape[1]+idx1]
}

func (a *AF32) Set1(idx int, v float32) {
	a.V[idx] = v
}

func (a *AF32) Set2(idx0, idx1 int, v float32) {
	if len(a.Shape) != 2 {
		panic("Set2() invalid for len(shape) != 2")
	}
	a.V[idx0*a.Shape[1]+idx1] = v
}

// Float64s returns a float64 copy of the values, for handing to gonum.
func (a *AF32) Float64s() []float64 {
	out := make([]float64, len(a.V))
	for i, v := range a.V {
		out[i] = float64(v)
	}
	return out
}

func (a *AF32) String() string {
	return fmt.Sprintf("%v%v", a.Shape, a.V)
}

// AF32Map applies fn to every element of in, writing the results into out.
// in and out may be the same tensor.
func AF32Map(in, out *AF32, fn func(float32) float32) {
	if len(in.V) != len(out.V) {
		panic(fmt.Sprintf("map: len(in)=%d != len(out)=%d", len(in.V), len(out.V)))
	}
	for i := 0; i < len(in.V); i++ {
		out.V[i] = fn(in.V[i])
	}
}

// AF32MulElem writes the component-wise product of x and y into out.
func AF32MulElem(x, y, out *AF32) {
	if !slices.Equal(x.Shape, y.Shape) || !slices.Equal(x.Shape, out.Shape) {
		panic(fmt.Sprintf("mul: shapes %v, %v, %v differ", x.Shape, y.Shape, out.Shape))
	}
	for i := 0; i < len(x.V); i++ {
		out.V[i] = x.V[i] * y.V[i]
	}
}

// AF32Outer writes u ⊗ v into out.  Shape of out is (len(u), len(v)).
func AF32Outer(u, v, out *AF32) {
	if !u.IsVector() || !v.IsVector() {
		panic("outer: operands must be vectors")
	}
	if !slices.Equal(out.Shape, []int{u.Shape[0], v.Shape[0]}) {
		panic(fmt.Sprintf("outer: out.Shape=%v, want {%d, %d}", out.Shape, u.Shape[0], v.Shape[0]))
	}

	cols := v.Shape[0]
	for i := 0; i < u.Shape[0]; i++ {
		row := out.V[i*cols : i*cols+cols]
		ui := u.V[i]
		for j := 0; j < cols; j++ {
			row[j] = ui * v.V[j]
		}
	}
}

// AF32MulVec writes m·x into out.  m has shape (rows, cols), x has shape
// (cols), out has shape (rows).
func AF32MulVec(m, x, out *AF32) {
	if !m.IsMatrix() {
		panic("mulvec: m must be a matrix")
	}
	rows, cols := m.Shape[0], m.Shape[1]
	if !slices.Equal(x.Shape, []int{cols}) {
		panic(fmt.Sprintf("mulvec: x.Shape=%v, want {%d}", x.Shape, cols))
	}
	if !slices.Equal(out.Shape, []int{rows}) {
		panic(fmt.Sprintf("mulvec: out.Shape=%v, want {%d}", out.Shape, rows))
	}

	for i := 0; i < rows; i++ {
		out.V[i] = denseDot2(m.V[i*cols:i*cols+cols], x.V)
	}
}

// AF32MulVecT writes mᵀ·x into out without materializing the transpose.  m
// has shape (rows, cols), x has shape (rows), out has shape (cols).
func AF32MulVecT(m, x, out *AF32) {
	if !m.IsMatrix() {
		panic("mulvect: m must be a matrix")
	}
	rows, cols := m.Shape[0], m.Shape[1]
	if !slices.Equal(x.Shape, []int{rows}) {
		panic(fmt.Sprintf("mulvect: x.Shape=%v, want {%d}", x.Shape, rows))
	}
	if !slices.Equal(out.Shape, []int{cols}) {
		panic(fmt.Sprintf("mulvect: out.Shape=%v, want {%d}", out.Shape, cols))
	}

	clear(out.V)
	for i := 0; i < rows; i++ {
		xi := x.V[i]
		row := m.V[i*cols : i*cols+cols]
		for j := 0; j < cols; j++ {
			out.V[j] += row[j] * xi
		}
	}
}

// AF32Add writes x + y into out.
func AF32Add(x, y, out *AF32) {
	if !slices.Equal(x.Shape, y.Shape) || !slices.Equal(x.Shape, out.Shape) {
		panic(fmt.Sprintf("add: shapes %v, %v, %v differ", x.Shape, y.Shape, out.Shape))
	}
	for i := 0; i < len(x.V); i++ {
		out.V[i] = x.V[i] + y.V[i]
	}
}

// AF32AddScaled performs a += s*b in place.
func AF32AddScaled(a *AF32, s float32, b *AF32) {
	if !slices.Equal(a.Shape, b.Shape) {
		panic(fmt.Sprintf("addscaled: shapes %v, %v differ", a.Shape, b.Shape))
	}
	for i := 0; i < len(a.V); i++ {
		a.V[i] += s * b.V[i]
	}
}

// AF32Scale writes s*x into out.
func AF32Scale(s float32, x, out *AF32) {
	if !slices.Equal(x.Shape, out.Shape) {
		panic(fmt.Sprintf("scale: shapes %v, %v differ", x.Shape, out.Shape))
	}
	for i := 0; i < len(x.V); i++ {
		out.V[i] = s * x.V[i]
	}
}

// denseDot2 is the scalar form of the dot product used by the dense layer
// kernels.
func denseDot2(x []float32, y []float32) float32 {
	if len(x) != len(y) {
		panic("mismatched length")
	}
	var sum float32
	for i := 0; i < len(x); i++ {
		sum += x[i] * y[i]
	}
	return sum
}
