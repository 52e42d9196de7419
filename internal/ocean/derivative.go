package ocean

// derive fills the four backward-difference gradients from the current
// fields. Every cell is computed before any field is touched.
func (e *Engine) derive() {
	rows, cols := e.p.Rows, e.p.Cols
	dx := e.p.Dx
	for i := 0; i < rows; i++ {
		north := wrap(i-1, rows)
		for j := 0; j < cols; j++ {
			west := wrap(j-1, cols+1)
			e.dHdX.Set(i, j, (e.h.At(i, j)-e.h.At(i, west))/dx)
			e.dUdX.Set(i, j, (e.u.At(i, j+1)-e.u.At(i, j))/dx)
			e.dHdY.Set(i, j, (e.h.At(i, j)-e.h.At(north, j))/dx)
			e.dVdY.Set(i, j, (e.v.At(i+1, j)-e.v.At(i, j))/dx)
		}
	}
}
