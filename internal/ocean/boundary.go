package ocean

// applyBoundary closes the north and south edges and either wraps or closes
// the east-west seam. It runs after every field update.
func (e *Engine) applyBoundary() {
	rows, cols := e.p.Rows, e.p.Cols

	for j := 0; j < cols; j++ {
		e.v.Set(0, j, 0)
		e.v.Set(rows, j, 0)
		e.dHdY.Set(0, j, 0)
	}

	for i := 0; i < rows; i++ {
		if e.p.HorizontalWrap {
			e.u.Set(i, cols, e.u.At(i, 0))
			e.h.Set(i, cols, e.h.At(i, 0))
		} else {
			e.u.Set(i, 0, 0)
			e.u.Set(i, cols, 0)
		}
	}
}
