package toolbox

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMakeAF32RejectsEmptyShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MakeAF32(3, 0) did not panic")
		}
	}()
	MakeAF32(3, 0)
}

func TestMulVec(t *testing.T) {
	m := &AF32{
		V: []float32{
			1, 2, 3,
			4, 5, 6,
		},
		Shape: []int{2, 3},
	}
	x := MakeVectorAF32(1, 0, -1)
	out := MakeAF32(2)

	AF32MulVec(m, x, out)

	if diff := cmp.Diff(out.V, []float32{-2, -2}); diff != "" {
		t.Errorf("Wrong output; diff (-got +want)\n%s", diff)
	}
}

func TestMulVecTAgreesWithTranspose(t *testing.T) {
	r := rand.New(rand.NewSource(12345))
	m := RandomMatrix(4, 7, r)
	x := RandomVector(4, r)

	mT := AF32Copy(m)
	AF32Transpose(m, mT)
	want := MakeAF32(7)
	AF32MulVec(mT, x, want)

	got := MakeAF32(7)
	AF32MulVecT(m, x, got)

	if diff := cmp.Diff(got.V, want.V, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("Wrong output; diff (-got +want)\n%s", diff)
	}
}

func TestOuter(t *testing.T) {
	u := MakeVectorAF32(1, 2)
	v := MakeVectorAF32(3, 4, 5)
	out := MakeAF32(2, 3)

	AF32Outer(u, v, out)

	want := []float32{
		3, 4, 5,
		6, 8, 10,
	}
	if diff := cmp.Diff(out.V, want); diff != "" {
		t.Errorf("Wrong output; diff (-got +want)\n%s", diff)
	}
}

func TestElementwiseOps(t *testing.T) {
	x := MakeVectorAF32(1, 2, 3)
	y := MakeVectorAF32(4, 5, 6)

	prod := AF32Copy(x)
	AF32MulElem(x, y, prod)
	if diff := cmp.Diff(prod.V, []float32{4, 10, 18}); diff != "" {
		t.Errorf("AF32MulElem: diff (-got +want)\n%s", diff)
	}

	sum := AF32Copy(x)
	AF32Add(x, y, sum)
	if diff := cmp.Diff(sum.V, []float32{5, 7, 9}); diff != "" {
		t.Errorf("AF32Add: diff (-got +want)\n%s", diff)
	}

	scaled := AF32Copy(x)
	AF32Scale(2, x, scaled)
	if diff := cmp.Diff(scaled.V, []float32{2, 4, 6}); diff != "" {
		t.Errorf("AF32Scale: diff (-got +want)\n%s", diff)
	}

	acc := AF32Clone(x)
	AF32AddScaled(acc, 0.5, y)
	if diff := cmp.Diff(acc.V, []float32{3, 4.5, 6}); diff != "" {
		t.Errorf("AF32AddScaled: diff (-got +want)\n%s", diff)
	}

	squared := AF32Copy(x)
	AF32Map(x, squared, func(v float32) float32 { return v * v })
	if diff := cmp.Diff(squared.V, []float32{1, 4, 9}); diff != "" {
		t.Errorf("AF32Map: diff (-got +want)\n%s", diff)
	}

	// Inputs must be untouched.
	if diff := cmp.Diff(x.V, []float32{1, 2, 3}); diff != "" {
		t.Errorf("x modified; diff (-got +want)\n%s", diff)
	}
}

func TestAddRejectsShapeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AF32Add with mismatched shapes did not panic")
		}
	}()
	AF32Add(MakeAF32(2), MakeAF32(3), MakeAF32(2))
}

func BenchmarkStep(b *testing.B) {
	r := rand.New(rand.NewSource(12345))
	top := Topology{InputSize: 2, HiddenSize: 10, OutputSize: 5, HiddenLayerCount: 2}
	net, err := MakeNetwork(top, r)
	if err != nil {
		b.Fatalf("Unexpected error: %v", err)
	}
	tr := &Trainer{
		Network:            net,
		LearningParameters: LearningParameters{LearningRate: 0.3},
	}
	input := RandomVector(top.InputSize, r)
	expected := MakeVectorAF32(0, 0.2, 0.4, 0.6, 0.8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Step(input, expected); err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
	}
}
