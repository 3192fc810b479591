package biquad

// Chain runs several biquad sections back to back. A bandpass of order 2n
// factors into n second-order sections, and cascading them is numerically
// far better behaved than one high-order difference equation.
type Chain struct {
	secs []Section
	gain float64
}

// ChainOption configures a Chain at construction time.
type ChainOption func(*Chain)

// WithGain sets an overall gain applied to the input ahead of the first
// section. The default is unity.
func WithGain(g float64) ChainOption {
	return func(ch *Chain) { ch.gain = g }
}

// NewChain builds a cascade with one Section per coefficient set, in order.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	ch := &Chain{secs: make([]Section, len(coeffs)), gain: 1}
	for i, co := range coeffs {
		ch.secs[i].Coefficients = co
	}

	for _, o := range opts {
		o(ch)
	}

	return ch
}

// ProcessSample feeds one sample through every section in order and
// returns the final output.
func (ch *Chain) ProcessSample(x float64) float64 {
	x *= ch.gain
	for i := range ch.secs {
		x = ch.secs[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade, one
// section at a time so each section's inner loop stays tight.
func (ch *Chain) ProcessBlock(block []float64) {
	if ch.gain != 1 {
		for i, x := range block {
			block[i] = x * ch.gain
		}
	}

	for i := range ch.secs {
		ch.secs[i].ProcessBlock(block)
	}
}

// Reset clears the delay line of every section.
func (ch *Chain) Reset() {
	for i := range ch.secs {
		ch.secs[i].Reset()
	}
}

// Order returns the filter order, two per section.
func (ch *Chain) Order() int {
	return 2 * len(ch.secs)
}

// NumSections returns the number of sections in the cascade.
func (ch *Chain) NumSections() int {
	return len(ch.secs)
}

// Gain returns the input gain applied ahead of the cascade.
func (ch *Chain) Gain() float64 { return ch.gain }

// Section returns a pointer to the i-th section. Callers may inspect or
// reseed its state through it.
func (ch *Chain) Section(i int) *Section {
	return &ch.secs[i]
}

// State snapshots the delay registers of every section.
func (ch *Chain) State() [][2]float64 {
	snap := make([][2]float64, len(ch.secs))
	for i := range ch.secs {
		snap[i] = ch.secs[i].State()
	}

	return snap
}

// SetState restores a snapshot taken by State. The slice length must
// match NumSections.
func (ch *Chain) SetState(snap [][2]float64) {
	for i := range ch.secs {
		ch.secs[i].SetState(snap[i])
	}
}
