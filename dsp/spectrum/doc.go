// Package spectrum provides the frequency-domain readouts used to interpret
// a flagged vibration record.
//
// The level test in package detect says that a record is anomalous; the
// envelope spectrum says why. Defect impacts repeat at geometry-determined
// rates (ball-pass, ball-spin and cage frequencies), and those repetition
// rates appear as lines in the amplitude spectrum of the envelope. Amplitude
// computes that spectrum, AmplitudeWindowed trades main-lobe width for less
// leakage and scalloping, and Peaks lists the strongest lines. Goertzel and
// MultiGoertzel probe individual lines when the frequencies of interest are
// already known.
package spectrum
