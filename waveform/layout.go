package waveform

// Direction is the scan direction of a segment.
type Direction int

// Scan directions.
const (
	Anodic   Direction = 1  // towards more positive potentials
	Cathodic Direction = -1 // towards more negative potentials
)

// Sign returns the direction as +1 or -1.
func (d Direction) Sign() float64 {
	return float64(d)
}

// Segment is one monotonic leg of the sweep between two turning points.
type Segment struct {
	From      float64 // potential the segment leaves (not emitted)
	To        float64 // potential the segment ends on (emitted)
	Direction Direction
	Steps     int // discretization steps in the segment
	Offset    int // index of the segment's first sample in the waveform
	Samples   int // samples the segment occupies in the waveform
}

// layout returns the ordered segments of the sweep. full, upper and lower
// are the counts for the full window and the two partial windows, in
// whatever unit the calling generator discretizes by. Segments with no
// steps are dropped.
func layout(s Spec, full, upper, lower int) []Segment {
	eini, eupp, elow := s.InitialPotential, s.UpperVertex, s.LowerVertex

	up := func(from, to float64, n int) Segment {
		return Segment{From: from, To: to, Direction: Anodic, Steps: n}
	}
	down := func(from, to float64, n int) Segment {
		return Segment{From: from, To: to, Direction: Cathodic, Steps: n}
	}

	var segs []Segment
	switch {
	case eini == elow:
		for range s.ScanCount {
			segs = append(segs, up(elow, eupp, full), down(eupp, elow, full))
		}
	case eini == eupp:
		for range s.ScanCount {
			segs = append(segs, down(eupp, elow, full), up(elow, eupp, full))
		}
	case s.StepSize > 0:
		segs = append(segs, up(eini, eupp, upper), down(eupp, elow, full))
		for range s.ScanCount - 1 {
			segs = append(segs, up(elow, eupp, full), down(eupp, elow, full))
		}
		segs = append(segs, up(elow, eini, lower))
	default:
		segs = append(segs, down(eini, elow, lower), up(elow, eupp, full))
		for range s.ScanCount - 1 {
			segs = append(segs, down(eupp, elow, full), up(elow, eupp, full))
		}
		segs = append(segs, down(eupp, eini, upper))
	}

	out := segs[:0]
	for _, seg := range segs {
		if seg.Steps > 0 {
			out = append(out, seg)
		}
	}
	return out
}

// values returns the potentials of a segment discretized with increment
// inc, rounded to 9 d.p.
func (seg Segment) values(inc float64) []float64 {
	return linspaceRounded(seg.From+seg.Direction.Sign()*inc, seg.To, seg.Steps)
}
