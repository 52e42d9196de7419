// Package analysis extracts oscillation periods from metric series.
//
// A tower of water released on a rotating grid rings at a mix of gravity
// wave and inertial frequencies; [DominantPeriod] finds the strongest one
// in a probe series sampled once per burst:
//
//	period, err := analysis.DominantPeriod(series, burstSeconds)
//	if err == nil {
//	    fmt.Printf("%.1f days\n", period/86400)
//	}
package analysis
