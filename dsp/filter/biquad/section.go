package biquad

// Coefficients holds the transfer function of one second-order section.
// a0 is normalized to 1 and not stored, so the recurrence is
//
//	y  = B0*x + z1
//	z1 = B1*x - A1*y + z2
//	z2 = B2*x - A2*y
//
// which is Direct Form II Transposed.
type Coefficients struct {
	B0, B1, B2 float64 // numerator taps
	A1, A2     float64 // denominator taps, subtracted per the recurrence
}

// Section is a single biquad: one set of coefficients plus the two delay
// registers of the transposed form.
type Section struct {
	Coefficients

	z1, z2 float64
}

// NewSection returns a Section with the given coefficients and a cleared
// delay line.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample runs one sample through the difference equation and
// returns the filtered value.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.z1
	s.z1 = s.B1*x - s.A1*y + s.z2
	s.z2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a whole block in-place without allocating.
//
// The body is unrolled two samples per iteration with coefficients and
// delay registers held in locals, which keeps them in machine registers.
func (s *Section) ProcessBlock(block []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	z1, z2 := s.z1, s.z2

	n := len(block)
	i := 0
	for ; i+1 < n; i += 2 {
		x0 := block[i]
		y0 := b0*x0 + z1
		e1 := b1*x0 - a1*y0 + z2
		e2 := b2*x0 - a2*y0

		x1 := block[i+1]
		y1 := b0*x1 + e1
		z1 = b1*x1 - a1*y1 + e2
		z2 = b2*x1 - a2*y1

		block[i] = y0
		block[i+1] = y1
	}

	if i < n {
		x := block[i]
		y := b0*x + z1
		z1 = b1*x - a1*y + z2
		z2 = b2*x - a2*y
		block[i] = y
	}

	s.z1, s.z2 = z1, z2
}

// ProcessBlockTo filters src into dst, leaving src untouched. Both slices
// must have the same length.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hoisted out of the loop
	for i, x := range src {
		y := s.B0*x + s.z1
		s.z1 = s.B1*x - s.A1*y + s.z2
		s.z2 = s.B2*x - s.A2*y
		dst[i] = y
	}
}

// Reset zeroes the delay registers.
func (s *Section) Reset() {
	s.z1, s.z2 = 0, 0
}

// State returns the current delay registers [z1, z2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.z1, s.z2}
}

// SetState restores delay registers saved by State.
func (s *Section) SetState(snap [2]float64) {
	s.z1 = snap[0]
	s.z2 = snap[1]
}
