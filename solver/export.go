package solver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/zeu5/cardmdp/game"
)

type policyEntry struct {
	Hand   string  `json:"hand"`
	Value  float64 `json:"value"`
	Action int     `json:"action"`
}

// Record writes one JSON line per hand state with its value and action code.
func (s *Solution) Record(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := 0; i < s.index.NumHands(); i++ {
		entry := policyEntry{
			Hand:   s.index.Name(i),
			Value:  s.values[i],
			Action: s.policy[i].Code(),
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("error writing policy: %w", err)
		}
	}
	return nil
}

func (s *Solution) RecordFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating policy file: %w", err)
	}
	bw := bufio.NewWriter(file)
	if err := s.Record(bw); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("error writing policy: %w", err)
	}
	return file.Close()
}

type tableEntry struct {
	action game.Action
	value  float64
}

// PolicyTable is a policy read back from a Record export.
type PolicyTable struct {
	entries map[game.Hand]tableEntry
}

func ReadPolicy(r io.Reader) (*PolicyTable, error) {
	t := &PolicyTable{entries: make(map[game.Hand]tableEntry)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		var entry policyEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("error reading policy line %d: %w", line, err)
		}
		h, err := game.ParseHand(entry.Hand)
		if err != nil {
			return nil, fmt.Errorf("error reading policy line %d: %w", line, err)
		}
		a, err := game.ActionFromCode(entry.Action)
		if err != nil {
			return nil, fmt.Errorf("error reading policy line %d: %w", line, err)
		}
		t.entries[h] = tableEntry{action: a, value: entry.Value}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading policy: %w", err)
	}
	return t, nil
}

func ReadPolicyFile(path string) (*PolicyTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading policy file: %w", err)
	}
	defer file.Close()
	return ReadPolicy(file)
}

func (t *PolicyTable) Len() int {
	return len(t.entries)
}

// Lookup mirrors Solution.Lookup: unknown hands report Stop and false.
func (t *PolicyTable) Lookup(h game.Hand) (game.Action, float64, bool) {
	e, ok := t.entries[h]
	if !ok {
		return game.StopAction(), 0, false
	}
	return e.action, e.value, true
}

func (t *PolicyTable) Action(h game.Hand) game.Action {
	a, _, _ := t.Lookup(h)
	return a
}
