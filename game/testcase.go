package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	configMarker   = "Configuration:"
	testcaseMarker = "Testcase:"
)

// Testcase is a configuration plus the hands to query against the solved policy.
type Testcase struct {
	Config Config
	Hands  []Hand
}

func ReadTestcase(path string) (*Testcase, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading testcase: %w", err)
	}
	defer file.Close()
	return ParseTestcase(file)
}

// ParseTestcase reads the testcase text format:
//
//	Configuration:
//	<threshold>
//	<bonus>
//	<sequence ints>
//	Testcase:
//	<card tokens per hand>
//
// Blank lines are ignored. The first three non-marker lines are the configuration.
func ParseTestcase(r io.Reader) (*Testcase, error) {
	var configLines []string
	var handLines []string
	inHands := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == configMarker:
			continue
		case line == testcaseMarker:
			inHands = true
			continue
		}
		if len(configLines) < 3 {
			configLines = append(configLines, line)
			continue
		}
		if inHands {
			handLines = append(handLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading testcase: %w", err)
	}

	cfg, err := parseConfigLines(configLines)
	if err != nil {
		return nil, err
	}

	tc := &Testcase{Config: cfg, Hands: make([]Hand, 0, len(handLines))}
	for i, line := range handLines {
		h, err := ParseHand(line)
		if err != nil {
			return nil, &ConfigError{Field: fmt.Sprintf("hand %d", i+1), Reason: err.Error()}
		}
		tc.Hands = append(tc.Hands, h)
	}
	return tc, nil
}

func parseConfigLines(lines []string) (Config, error) {
	if len(lines) < 3 {
		return Config{}, &ConfigError{Field: "configuration", Reason: fmt.Sprintf("expected 3 lines, got %d", len(lines))}
	}
	threshold, err := strconv.Atoi(lines[0])
	if err != nil {
		return Config{}, &ConfigError{Field: "threshold", Reason: err.Error()}
	}
	bonus, err := strconv.Atoi(lines[1])
	if err != nil {
		return Config{}, &ConfigError{Field: "bonus", Reason: err.Error()}
	}
	seq, err := ParseSequence(lines[2])
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Threshold: threshold, Bonus: bonus, Sequence: seq}
	return cfg, cfg.Validate()
}

// ParseSequence reads space separated face values.
func ParseSequence(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ConfigError{Field: "sequence", Reason: err.Error()}
		}
		out[i] = v
	}
	return out, nil
}
