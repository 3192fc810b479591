// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-style single sections
// ([Lowpass], [Highpass]) and Butterworth cascades of arbitrary order
// ([ButterworthLP], [ButterworthHP], [ButterworthBand]).
//
// Designers return zero-value coefficients (or nil cascades) for invalid
// parameters; callers that need errors should validate via
// dsp/filter/zerophase, which wraps the bandpass design with full
// parameter checking.
package design
