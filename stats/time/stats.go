package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds time-domain statistics of a vibration record.
//
// Peak, CrestFactor, and Kurtosis are the classic impulsiveness indicators
// used in condition monitoring: repetitive bearing impacts raise all three
// long before the RMS level moves.
//
//nolint:revive
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	PeakToPeak    float64 // max - min
	CrestFactor   float64 // peak / RMS
	Energy        float64 // sum of squares
	Power         float64 // energy / length
	ZeroCrossings int
	Variance      float64 // population variance
	StdDev        float64
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
}

// Calculate computes every field of Stats in one pass over the record.
// The four central moments come from Welford's online update, which stays
// accurate where the naive sum-of-powers form cancels catastrophically.
// An empty record yields the zero Stats.
func Calculate(data []float64) Stats {
	n := len(data)
	if n == 0 {
		return Stats{}
	}

	var mean, m2, m3, m4 float64

	var (
		energy  float64
		hi      = data[0]
		hiPos   int
		lo      = data[0]
		loPos   int
		crossed int
	)

	for i, x := range data {
		k := float64(i + 1) // samples seen including this one
		d := x - mean
		dk := d / k
		dk2 := dk * dk
		inc := d * dk * float64(i)

		// Update order matters: m4 reads the old m3 and m2, and m3 the
		// old m2.
		m4 += inc*dk2*(k*k-3*k+3) + 6*dk2*m2 - 4*dk*m3
		m3 += inc*dk*(float64(i)-1) - 3*dk*m2
		m2 += inc
		mean += dk

		energy += x * x

		if x > hi {
			hi = x
			hiPos = i
		}

		if x < lo {
			lo = x
			loPos = i
		}

		if i > 0 && data[i-1]*x < 0 {
			crossed++
		}
	}

	fn := float64(n)
	rms := math.Sqrt(energy / fn)
	peak := math.Max(math.Abs(hi), math.Abs(lo))

	var cf float64
	if rms > 0 {
		cf = peak / rms
	}

	variance := m2 / fn

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / fn) / (variance * math.Sqrt(variance))
		kurtosis = (m4/fn)/(variance*variance) - 3
	}

	return Stats{
		Length:        n,
		Mean:          mean,
		RMS:           rms,
		Max:           hi,
		MaxPos:        hiPos,
		Min:           lo,
		MinPos:        loPos,
		Peak:          peak,
		PeakToPeak:    hi - lo,
		CrestFactor:   cf,
		Energy:        energy,
		Power:         energy / fn,
		ZeroCrossings: crossed,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Mean returns the mean of data. Kahan summation keeps the error
// independent of length, which matters for long near-zero-mean records.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum, carry float64
	for _, x := range data {
		y := x - carry
		t := sum + y
		carry = (t - sum) - y
		sum = t
	}

	return sum / float64(len(data))
}

// MeanStdDev returns the mean and population standard deviation in a
// single Welford pass. An empty record yields (0, 0).
func MeanStdDev(data []float64) (mean, std float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}

	var m2 float64
	for i, x := range data {
		d := x - mean
		mean += d / float64(i+1)
		m2 += d * (x - mean)
	}

	return mean, math.Sqrt(m2 / float64(n))
}

// RMS returns the root-mean-square level of data.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(data, data) / float64(len(data)))
}

// Peak returns the largest absolute sample value, or 0 for an empty record.
func Peak(data []float64) float64 {
	return vecmath.MaxAbs(data)
}

// CrestFactor returns peak divided by RMS, or 0 for an all-zero record.
func CrestFactor(data []float64) float64 {
	rms := RMS(data)
	if rms == 0 {
		return 0
	}

	return Peak(data) / rms
}

// ZeroCrossings counts sign changes between consecutive samples. A sample
// exactly on zero yields a zero product and therefore no crossing.
func ZeroCrossings(data []float64) int {
	if len(data) < 2 {
		return 0
	}

	count := 0
	for i := 1; i < len(data); i++ {
		if data[i-1]*data[i] < 0 {
			count++
		}
	}

	return count
}

// Moments returns the mean, population variance, skewness, and excess
// kurtosis of data.
func Moments(data []float64) (mean, variance, skewness, kurtosis float64) {
	s := Calculate(data)
	return s.Mean, s.Variance, s.Skewness, s.Kurtosis
}

// StreamingStats accumulates the same statistics as Calculate across
// multiple records without holding them in memory. Samples are folded in
// one at a time with the identical update expressions, so the result is
// bit-for-bit equal to Calculate over the concatenated input.
type StreamingStats struct {
	seen    int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	energy  float64
	hi      float64
	hiPos   int
	lo      float64
	loPos   int
	crossed int
	primed  bool
	last    float64
}

// NewStreamingStats creates an empty accumulator. The zero value is also
// ready to use.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update folds a record of samples into the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.seen++
		k := float64(s.seen)

		d := x - s.mean
		dk := d / k
		dk2 := dk * dk
		inc := d * dk * float64(s.seen-1)

		s.m4 += inc*dk2*(k*k-3*k+3) + 6*dk2*s.m2 - 4*dk*s.m3
		s.m3 += inc*dk*(float64(s.seen-1)-1) - 3*dk*s.m2
		s.m2 += inc
		s.mean += dk

		s.energy += x * x

		if !s.primed {
			s.hi = x
			s.hiPos = s.seen - 1
			s.lo = x
			s.loPos = s.seen - 1
			s.primed = true
		} else {
			if x > s.hi {
				s.hi = x
				s.hiPos = s.seen - 1
			}

			if x < s.lo {
				s.lo = x
				s.loPos = s.seen - 1
			}
		}

		// The previous sample carries across record boundaries, so
		// crossings at the seams are counted too.
		if s.seen > 1 && s.last*x < 0 {
			s.crossed++
		}

		s.last = x
	}
}

// Result computes the final statistics from the accumulated state.
func (s *StreamingStats) Result() Stats {
	if s.seen == 0 {
		return Stats{}
	}

	fn := float64(s.seen)
	rms := math.Sqrt(s.energy / fn)
	peak := math.Max(math.Abs(s.hi), math.Abs(s.lo))

	var cf float64
	if rms > 0 {
		cf = peak / rms
	}

	variance := s.m2 / fn

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / fn) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/fn)/(variance*variance) - 3
	}

	return Stats{
		Length:        s.seen,
		Mean:          s.mean,
		RMS:           rms,
		Max:           s.hi,
		MaxPos:        s.hiPos,
		Min:           s.lo,
		MinPos:        s.loPos,
		Peak:          peak,
		PeakToPeak:    s.hi - s.lo,
		CrestFactor:   cf,
		Energy:        s.energy,
		Power:         s.energy / fn,
		ZeroCrossings: s.crossed,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Reset clears the accumulator for reuse.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
