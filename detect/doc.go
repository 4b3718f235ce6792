// Package detect recovers the step structure of a recorded current trace.
//
// Interval detection slides non-overlapping windows of a nominal width over
// the absolute current and marks the sample after each window maximum as a
// step boundary. Boundaries closer to their predecessor than a fraction of
// the mean spacing are discarded as spurious, the smallest surviving
// spacing becomes the refined width, and the scan is repeated with it.
//
// Vertex detection works on the per-window minimum current. A jump of at
// least the vertex threshold marks a lower vertex, a drop of at least the
// threshold an upper vertex.
//
// When no nominal interval is known, EstimateInterval derives one from the
// autocorrelation of the trace.
package detect
