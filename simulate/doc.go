// Package simulate predicts the capacitive charging current of an ideal
// series RC cell (double-layer capacitance Cd behind an uncompensated
// resistance Ru) driven by a generated waveform.
//
// A linear sweep charges the capacitor at a constant rate, so each segment
// follows
//
//	i(t) = ±sr·Cd·(1 - exp(-t/(Ru·Cd)))
//
// with t the time since the segment began. A staircase applies potential
// steps, and every step contributes a decaying spike
//
//	i(τ) = ±(|dE|/Ru)·exp(-τ/(Ru·Cd))
//
// that is superposed on the decays of the earlier steps of the same
// segment. The sign follows the scan direction of the segment.
//
// Usage:
//
//	wf, _ := waveform.GenerateStaircase(spec)
//	c, err := simulate.NewCapacitance(5e-5, 500)
//	if err != nil {
//		return err
//	}
//	tr, err := c.Simulate(wf)
package simulate
