package ocean

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Snapshot is a deep copy of the non-ghost region of the grid. H, U and V
// are all Rows x Cols; U[i,j] sits on the west face and V[i,j] on the north
// face of cell (i,j).
type Snapshot struct {
	Step int
	Time float64
	H    *mat.Dense
	U    *mat.Dense
	V    *mat.Dense
}

// Snapshot copies the current fields. The engine keeps no reference to the
// returned matrices.
func (e *Engine) Snapshot() Snapshot {
	rows, cols := e.p.Rows, e.p.Cols
	return Snapshot{
		Step: e.steps,
		Time: e.Time(),
		H:    mat.DenseCopyOf(e.h.Slice(0, rows, 0, cols)),
		U:    mat.DenseCopyOf(e.u.Slice(0, rows, 0, cols)),
		V:    mat.DenseCopyOf(e.v.Slice(0, rows, 0, cols)),
	}
}

// Dims returns the grid size.
func (s Snapshot) Dims() (rows, cols int) {
	return s.H.Dims()
}

// KineticEnergy is the proxy sum of U^2 + V^2 over the grid.
func (s Snapshot) KineticEnergy() float64 {
	u, v := values(s.U), values(s.V)
	return floats.Dot(u, u) + floats.Dot(v, v)
}

// Volume is the sum of the height anomaly.
func (s Snapshot) Volume() float64 {
	return floats.Sum(values(s.H))
}

func (s Snapshot) HeightRange() (lo, hi float64) {
	h := values(s.H)
	return floats.Min(h), floats.Max(h)
}

// IsFinite reports whether every value in the snapshot is a finite number.
func (s Snapshot) IsFinite() bool {
	for _, m := range []*mat.Dense{s.H, s.U, s.V} {
		for _, x := range values(m) {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// Field is a named copy of one engine array, ghosts included.
type Field struct {
	Name string
	Data *mat.Dense
}

// Diagnostics copies every prognostic and scratch array in dump order.
func (e *Engine) Diagnostics() []Field {
	named := []struct {
		name string
		m    *mat.Dense
	}{
		{"H", e.h}, {"dHdX", e.dHdX}, {"dHdY", e.dHdY},
		{"U", e.u}, {"dUdX", e.dUdX}, {"rotV", e.rotV},
		{"V", e.v}, {"dVdY", e.dVdY}, {"rotU", e.rotU},
		{"dHdT", e.dHdT}, {"dUdT", e.dUdT}, {"dVdT", e.dVdT},
	}
	fields := make([]Field, len(named))
	for i, n := range named {
		fields[i] = Field{Name: n.name, Data: mat.DenseCopyOf(n.m)}
	}
	return fields
}

// values exposes the backing slice of a dense matrix with no row padding.
func values(m *mat.Dense) []float64 {
	raw := m.RawMatrix()
	if raw.Stride == raw.Cols {
		return raw.Data[:raw.Rows*raw.Cols]
	}
	out := make([]float64, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		out = append(out, m.RawRowView(i)...)
	}
	return out
}
