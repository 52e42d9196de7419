package viz

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/swsim/internal/ocean"
)

// Dump prints every engine array, ghosts included, after a step header.
func Dump(w io.Writer, e *ocean.Engine) error {
	if _, err := fmt.Fprintf(w, "time step %d (%s)\n", e.Steps(), Days(e.Time())); err != nil {
		return err
	}
	for _, f := range e.Diagnostics() {
		if _, err := fmt.Fprintf(w, "%s\n%.4g\n", f.Name, mat.Formatted(f.Data, mat.Squeeze())); err != nil {
			return err
		}
	}
	return nil
}
