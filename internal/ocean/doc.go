// Package ocean implements a shallow-water ocean on a staggered grid.
//
// The [Engine] owns three prognostic fields laid out Arakawa-C style:
//
//   - U: eastward velocity on vertical cell faces, Rows x (Cols+1)
//   - V: northward velocity on horizontal cell faces, (Rows+1) x Cols
//   - H: height anomaly at cell centers, Rows x (Cols+1)
//
// The extra column of U and H is a ghost column that mirrors column 0 when
// the domain wraps east-west and is held at zero otherwise. V is always
// zero on its first and last rows.
//
// Each step computes backward-difference gradients, a Coriolis term (simple
// or interpolated), and advances all three fields with one forward-Euler
// update before the boundary policy is reapplied.
//
// # Example
//
//	eng, err := ocean.New(ocean.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	eng.Advance(1000)
//	snap := eng.Snapshot()
//	fmt.Println(snap.Time/86400, "days", snap.KineticEnergy())
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. Snapshots are deep copies and may
// be handed to other goroutines freely.
package ocean
