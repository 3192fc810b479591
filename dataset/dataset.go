package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownChannel is returned when a channel name fails to parse.
	ErrUnknownChannel = errors.New("dataset: unknown channel")
	// ErrMissingChannel is returned when a capture row has too few columns
	// for the selected channel.
	ErrMissingChannel = errors.New("dataset: capture missing channel column")
	// ErrNoCaptures is returned when a directory holds no capture files.
	ErrNoCaptures = errors.New("dataset: no captures found")
)

// Channel selects which accelerometer axis of a capture to read.
type Channel int

const (
	// Horizontal is the first capture column.
	Horizontal Channel = iota
	// Vertical is the second capture column.
	Vertical
)

func (c Channel) String() string {
	switch c {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "channel(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseChannel parses a channel name as written in flags and config files.
// Full names, single letters and column numbers are accepted.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "0":
		return Horizontal, nil
	case "vertical", "v", "1":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("dataset: channel %q: %w", s, ErrUnknownChannel)
	}
}

// Read parses one capture from r and returns the selected channel as a flat
// signal. A capture has one row per sample and one column per channel, no
// header; blank lines are tolerated.
func Read(r io.Reader, channel Channel) ([]float64, error) {
	sig, err := read(r, channel)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	return sig, nil
}

// ReadFile reads one capture file. Errors carry the file path.
func ReadFile(path string, channel Channel) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	sig, err := read(f, channel)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}

	return sig, nil
}

// List returns the capture files under dir in lexical filename order, the
// order Load assembles the corpus in. Corpus indices map back to these paths.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	return paths, nil
}

// Load reads every capture under dir, in lexical filename order, and returns
// the selected channel of each as one corpus signal.
func Load(dir string, channel Channel) ([][]float64, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("dataset: %s: %w", dir, ErrNoCaptures)
	}

	corpus := make([][]float64, 0, len(paths))
	for _, path := range paths {
		sig, err := ReadFile(path, channel)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, sig)
	}

	return corpus, nil
}

func read(r io.Reader, channel Channel) ([]float64, error) {
	col := int(channel)
	if col < 0 {
		return nil, fmt.Errorf("channel %d: %w", col, ErrUnknownChannel)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []float64
	record := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record++
		if col >= len(row) {
			return nil, fmt.Errorf("record %d has %d columns, channel %s needs column %d: %w",
				record, len(row), channel, col, ErrMissingChannel)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", record, err)
		}
		out = append(out, v)
	}

	return out, nil
}
