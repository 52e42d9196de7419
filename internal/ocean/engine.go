package ocean

import "gonum.org/v1/gonum/mat"

// Engine advances the shallow-water state in place. It is the only writer
// of its fields; readers take a Snapshot between bursts.
type Engine struct {
	p Params

	u, v, h *mat.Dense

	dHdX, dHdY, dUdX, dVdY *mat.Dense
	rotU, rotV             *mat.Dense
	dUdT, dVdT, dHdT       *mat.Dense
	uMean, vMean           *mat.Dense

	rot  []float64
	wind []float64

	coriolis rotator
	steps    int
}

// New builds a zeroed grid, derives the per-row coefficients and applies the
// initial perturbation. Only an empty grid is rejected.
func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, cols := p.Rows, p.Cols

	e := &Engine{
		p:     p,
		u:     mat.NewDense(rows, cols+1, nil),
		v:     mat.NewDense(rows+1, cols, nil),
		h:     mat.NewDense(rows, cols+1, nil),
		dHdX:  mat.NewDense(rows, cols, nil),
		dHdY:  mat.NewDense(rows, cols, nil),
		dUdX:  mat.NewDense(rows, cols, nil),
		dVdY:  mat.NewDense(rows, cols, nil),
		rotU:  mat.NewDense(rows, cols, nil),
		rotV:  mat.NewDense(rows, cols, nil),
		dUdT:  mat.NewDense(rows, cols, nil),
		dVdT:  mat.NewDense(rows, cols, nil),
		dHdT:  mat.NewDense(rows, cols, nil),
		uMean: mat.NewDense(rows, cols+1, nil),
		vMean: mat.NewDense(rows+1, cols, nil),
		rot:   rotationCoefficients(p),
		wind:  windForcing(p),
	}

	if p.InterpolateRotation {
		e.coriolis = interpolatedRotation{}
	} else {
		e.coriolis = simpleRotation{}
	}

	e.perturb()
	return e, nil
}

func (e *Engine) perturb() {
	rows, cols := e.p.Rows, e.p.Cols
	mid := cols / 2

	switch e.p.Perturbation {
	case PerturbTower:
		if mid < rows {
			e.h.Set(mid, mid, 1)
		}
	case PerturbNSGradient:
		for i := 0; i < min(mid, rows); i++ {
			for j := 0; j <= cols; j++ {
				e.h.Set(i, j, 0.1)
			}
		}
	case PerturbEWGradient:
		for i := 0; i < rows; i++ {
			for j := 0; j < mid; j++ {
				e.h.Set(i, j, 0.1)
			}
		}
	}
}

// Advance runs a burst of n steps. The burst is not interruptible.
func (e *Engine) Advance(n int) {
	for i := 0; i < n; i++ {
		e.step()
	}
}

func (e *Engine) step() {
	e.derive()
	e.coriolis.rotate(e)
	e.tendencies()
	e.update()
	e.applyBoundary()
	e.steps++
}

// tendencies assembles dU/dt, dV/dt and dH/dt from the materialised
// gradients and rotation terms.
func (e *Engine) tendencies() {
	g, drag := e.p.Gravity, e.p.Drag
	depth := e.p.HBackground / e.p.Dx
	for i := 0; i < e.p.Rows; i++ {
		for j := 0; j < e.p.Cols; j++ {
			e.dUdT.Set(i, j, e.rotV.At(i, j)-g*e.dHdX.At(i, j)-drag*e.u.At(i, j)+e.wind[i])
			e.dVdT.Set(i, j, -e.rotU.At(i, j)-g*e.dHdY.At(i, j)-drag*e.v.At(i, j))
			e.dHdT.Set(i, j, -(e.dUdX.At(i, j)+e.dVdY.At(i, j))*depth)
		}
	}
}

// update is the forward-Euler step over the interior cells.
func (e *Engine) update() {
	dt := e.p.Dt
	for i := 0; i < e.p.Rows; i++ {
		for j := 0; j < e.p.Cols; j++ {
			e.u.Set(i, j, e.u.At(i, j)+e.dUdT.At(i, j)*dt)
			e.v.Set(i, j, e.v.At(i, j)+e.dVdT.At(i, j)*dt)
			e.h.Set(i, j, e.h.At(i, j)+e.dHdT.At(i, j)*dt)
		}
	}
}

func (e *Engine) Params() Params { return e.p }

// Steps is the number of steps taken since construction.
func (e *Engine) Steps() int { return e.steps }

// Time is the elapsed model time in seconds.
func (e *Engine) Time() float64 { return float64(e.steps) * e.p.Dt }

func (e *Engine) RotationCoefficients() []float64 {
	return append([]float64(nil), e.rot...)
}

func (e *Engine) WindForcing() []float64 {
	return append([]float64(nil), e.wind...)
}

// wrap maps k into [0, n), so k = -1 addresses the last element.
func wrap(k, n int) int {
	return (k + n) % n
}
