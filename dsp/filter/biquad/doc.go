// Package biquad runs second-order IIR filter sections in Direct Form II
// Transposed.
//
// A [Section] processes samples through one set of [Coefficients]; a [Chain]
// cascades several sections into the higher-order bandpass filters used for
// vibration band isolation. Only the runtime lives here: coefficients come
// from dsp/filter/design, and forward-backward application is handled by
// dsp/filter/zerophase.
package biquad
