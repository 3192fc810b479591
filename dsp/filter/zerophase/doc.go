// Package zerophase applies biquad cascades forward and backward so the
// combined response has zero phase shift.
//
// One-pass IIR filtering delays every frequency by a different amount,
// which distorts envelope timing. Running the cascade forward and then
// backward over the result cancels the phase response and squares the
// magnitude response. To suppress transients at the signal ends, the input
// is extended by odd reflection and each section is seeded with its
// steady-state step response (Gustafsson's method) before each pass.
//
// [Bandpass] wires up the common case for vibration work: a Butterworth
// highpass/lowpass cascade for a [low, high] band applied zero-phase, with
// full parameter validation. [Filter] applies any stable cascade.
package zerophase
