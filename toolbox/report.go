package toolbox

import (
	"fmt"
	"io"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/floats"
)

// TrainingReport records the network output on the first and last training
// iterations alongside the target.
type TrainingReport struct {
	First    *AF32
	Last     *AF32
	Expected *AF32
	Steps    int
}

// FirstDistance is the summed per-element distance between the first output
// and the expected vector.
func (rep *TrainingReport) FirstDistance() float64 {
	return floats.Distance(rep.First.Float64s(), rep.Expected.Float64s(), 1)
}

// LastDistance is FirstDistance for the last output.
func (rep *TrainingReport) LastDistance() float64 {
	return floats.Distance(rep.Last.Float64s(), rep.Expected.Float64s(), 1)
}

// Improved reports whether training moved the output strictly closer to the
// expected vector.
func (rep *TrainingReport) Improved() bool {
	return rep.LastDistance() < rep.FirstDistance()
}

// WriteNPZ stores the first, last, and expected outputs as float32 arrays in
// an npz archive.
func (rep *TrainingReport) WriteNPZ(w io.Writer) error {
	wz := npz.NewWriter(w)

	arrays := []struct {
		name string
		v    *AF32
	}{
		{"first.npy", rep.First},
		{"last.npy", rep.Last},
		{"expected.npy", rep.Expected},
	}
	for _, a := range arrays {
		if err := wz.Write(a.name, a.v.V); err != nil {
			wz.Close()
			return fmt.Errorf("while writing %s: %w", a.name, err)
		}
	}

	if err := wz.Close(); err != nil {
		return fmt.Errorf("while closing npz archive: %w", err)
	}
	return nil
}
