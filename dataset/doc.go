// Package dataset reads vibration captures from CSV files into corpora.
//
// One capture is one CSV file with one row per sample and one column per
// accelerometer channel: column 0 horizontal, column 1 vertical. Load reads
// a whole directory in lexical filename order, so corpus indices reported by
// the detector map straight back to filenames via List.
package dataset
