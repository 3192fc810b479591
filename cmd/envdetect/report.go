package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-envelope/detect"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
	"github.com/cwbudde/algo-envelope/dsp/signal"
	"github.com/cwbudde/algo-envelope/dsp/spectrum"
	"github.com/cwbudde/algo-envelope/dsp/window"
)

// topLines is how many envelope-spectrum lines -spectrum reports per
// flagged capture.
const topLines = 3

// envelopeLines computes the strongest envelope-spectrum lines of each
// flagged capture, keyed by capture index. A flag carries the preprocessed
// signal, so only the envelope and its spectrum remain to compute. The
// envelope's DC floor is removed so the running level does not mask the
// modulation lines.
func envelopeLines(result *detect.Result, sampleRate float64, count int) (map[int][]spectrum.Line, error) {
	lines := make(map[int][]spectrum.Line, len(result.Flags))
	for _, f := range result.Flags {
		env, err := envelope.Amplitude(f.Signal)
		if err != nil {
			return nil, fmt.Errorf("capture %d: %w", f.Index, err)
		}
		ac, err := signal.RemoveDC(env)
		if err != nil {
			return nil, fmt.Errorf("capture %d: %w", f.Index, err)
		}
		spec, err := spectrum.AmplitudeWindowed(ac, sampleRate, window.TypeHann)
		if err != nil {
			return nil, fmt.Errorf("capture %d: %w", f.Index, err)
		}
		lines[f.Index] = spec.Peaks(spec.BinWidth, count)
	}

	return lines, nil
}

// printReport writes the run summary and the flagged-capture table to w.
// The lines map adds an envelope-spectrum column when present.
func printReport(w io.Writer, cfg Config, ref *detect.Reference, result *detect.Result, lines map[int][]spectrum.Line) error {
	if _, err := fmt.Fprintf(w, "reference: mean %.6g, std %.6g (%d of %d captures)\n",
		ref.Mean, ref.Std, ref.Used, ref.Requested); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "threshold: %.6g (confidence %g)\n",
		result.Threshold, cfg.Confidence); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "flagged: %d of %d captures\n",
		result.Count(), len(result.Scores)); err != nil {
		return err
	}
	if result.Count() == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header, rule := "INDEX\tSCORE", "-----\t-----"
	if lines != nil {
		header += "\tENVELOPE LINES"
		rule += "\t--------------"
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return err
	}

	for _, f := range result.Flags {
		row := fmt.Sprintf("%d\t%.6g", f.Index, f.Score)
		if lines != nil {
			row += "\t" + formatLines(lines[f.Index])
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatLines(lines []spectrum.Line) string {
	if len(lines) == 0 {
		return "-"
	}

	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%.1f Hz (%.3g)", l.Freq, l.Amplitude)
	}

	return strings.Join(parts, ", ")
}
