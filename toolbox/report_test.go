package toolbox

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sbinet/npyio/npz"
)

func TestReportDistances(t *testing.T) {
	rep := &TrainingReport{
		First:    MakeVectorAF32(1, 1, 1),
		Last:     MakeVectorAF32(0.5, 0, 0.25),
		Expected: MakeVectorAF32(0.5, 0, 0.5),
	}

	if got := rep.FirstDistance(); math.Abs(got-2) > 1e-6 {
		t.Errorf("FirstDistance() = %v, want 2", got)
	}
	if got := rep.LastDistance(); math.Abs(got-0.25) > 1e-6 {
		t.Errorf("LastDistance() = %v, want 0.25", got)
	}
	if !rep.Improved() {
		t.Errorf("Improved() = false, want true")
	}

	rep.Last = rep.First
	if rep.Improved() {
		t.Errorf("Improved() = true for an unchanged output")
	}
}

func TestReportWriteNPZ(t *testing.T) {
	rep := &TrainingReport{
		First:    MakeVectorAF32(0.9, 0.1),
		Last:     MakeVectorAF32(0.6, 0.4),
		Expected: MakeVectorAF32(0.5, 0.5),
		Steps:    10,
	}

	var buf bytes.Buffer
	if err := rep.WriteNPZ(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r, err := npz.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("while opening npz: %v", err)
	}

	want := map[string][]float32{
		"first.npy":    rep.First.V,
		"last.npy":     rep.Last.V,
		"expected.npy": rep.Expected.V,
	}
	for name, wantV := range want {
		var got []float32
		if err := r.Read(name, &got); err != nil {
			t.Fatalf("while reading %s: %v", name, err)
		}
		if diff := cmp.Diff(got, wantV); diff != "" {
			t.Errorf("Wrong %s; diff (-got +want)\n%s", name, diff)
		}
	}
}
