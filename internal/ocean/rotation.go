package ocean

// rotator fills rotU and rotV, the Coriolis terms on the U and V points.
type rotator interface {
	rotate(e *Engine)
}

// simpleRotation scales each velocity by its own row coefficient.
type simpleRotation struct{}

func (simpleRotation) rotate(e *Engine) {
	for i := 0; i < e.p.Rows; i++ {
		f := e.rot[i]
		for j := 0; j < e.p.Cols; j++ {
			e.rotU.Set(i, j, f*e.u.At(i, j))
			e.rotV.Set(i, j, f*e.v.At(i, j))
		}
	}
}

// interpolatedRotation averages velocities onto cell centers, scales them
// there, then averages back onto the faces. The second pass reads the
// unwritten last column of uMean and last row of vMean at the west and
// north edges.
type interpolatedRotation struct{}

func (interpolatedRotation) rotate(e *Engine) {
	rows, cols := e.p.Rows, e.p.Cols
	for i := 0; i < rows; i++ {
		f := e.rot[i]
		for j := 0; j < cols; j++ {
			e.uMean.Set(i, j, (e.u.At(i, j)+e.u.At(i, j+1))/2*f)
			e.vMean.Set(i, j, (e.v.At(i, j)+e.v.At(i+1, j))/2*f)
		}
	}
	for i := 0; i < rows; i++ {
		north := wrap(i-1, rows+1)
		for j := 0; j < cols; j++ {
			west := wrap(j-1, cols+1)
			e.rotU.Set(i, j, (e.uMean.At(i, j)+e.uMean.At(i, west))/2)
			e.rotV.Set(i, j, (e.vMean.At(i, j)+e.vMean.At(north, j))/2)
		}
	}
}
