// Package extract turns the native benchmark's console text or CSV
// output into result records.
package extract

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/panyam/pibench/results"
)

var numberPattern = regexp.MustCompile(`(\d+\.\d+)`)

// Labels are the substrings that mark each value in the busy-waiting
// probe's output. They are checked in field order for every line and
// the first match wins.
type Labels struct {
	SequentialTime string `yaml:"sequential_time"`
	BusyInsideTime string `yaml:"busy_inside_time"`
	SequentialPi   string `yaml:"sequential_pi"`
	BusyInsidePi   string `yaml:"busy_inside_pi"`
	SlowdownFactor string `yaml:"slowdown_factor"`
}

// DefaultLabels match the Spanish output of the probe program.
func DefaultLabels() Labels {
	return Labels{
		SequentialTime: "Tiempo secuencial:",
		BusyInsideTime: "Tiempo busy-waiting dentro:",
		SequentialPi:   "π secuencial:",
		BusyInsidePi:   "π busy-waiting dentro:",
		SlowdownFactor: "veces MÁS LENTO",
	}
}

// ParseBusyWait extracts a BusyWaitRun using the default labels.
func ParseBusyWait(output string) results.BusyWaitRun {
	return DefaultLabels().Parse(output)
}

// Parse scans output line by line. A matching line contributes the first
// decimal number on it; lines with no number leave the field untouched.
// A label seen on several lines keeps the last value.
func (l Labels) Parse(output string) (run results.BusyWaitRun) {
	targets := []struct {
		label string
		field *float64
	}{
		{l.SequentialTime, &run.SequentialTime},
		{l.BusyInsideTime, &run.BusyInsideTime},
		{l.SequentialPi, &run.SequentialPi},
		{l.BusyInsidePi, &run.BusyInsidePi},
		{l.SlowdownFactor, &run.SlowdownFactor},
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, t := range targets {
			if t.label == "" || !strings.Contains(line, t.label) {
				continue
			}
			if v, ok := FirstFloat(line); ok {
				*t.field = v
			}
			break
		}
	}
	return run
}

// FirstFloat returns the first decimal number (digits, dot, digits) in s.
func FirstFloat(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
