package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// commandJSON is the wire form of a single command in a workload file.
// Pointer fields distinguish absent from zero.
type commandJSON struct {
	Timestamp   int64  `json:"timestamp"`
	Command     string `json:"command"`
	Bank        *int   `json:"bank"`
	Rank        *int   `json:"rank"`
	Row         *int   `json:"row"`
	Column      *int   `json:"column"`
	BurstLength *int   `json:"burstLength"`
}

type workloadJSON struct {
	Commands []commandJSON   `json:"commands"`
	Metadata json.RawMessage `json:"metadata"`
}

// Load reads a Workload from a JSON trace file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload file: %w", err)
	}

	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workload file %s: %w", path, err)
	}

	return w, nil
}

// Parse decodes a Workload from raw JSON.
func Parse(data []byte) (*Workload, error) {
	var raw workloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	w := &Workload{
		Commands: make([]Command, 0, len(raw.Commands)),
		Metadata: Metadata{DataRate: 6400, Temperature: 50},
	}

	if len(raw.Metadata) > 0 {
		if err := json.Unmarshal(raw.Metadata, &w.Metadata); err != nil {
			return nil, fmt.Errorf("bad metadata: %w", err)
		}
	}

	for i, rc := range raw.Commands {
		cmd, err := rc.toCommand()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		w.Commands = append(w.Commands, cmd)
	}

	return w, nil
}

func (rc commandJSON) toCommand() (Command, error) {
	kind, err := ParseKind(rc.Command)
	if err != nil {
		return Command{}, err
	}

	if rc.Timestamp < 0 {
		return Command{}, fmt.Errorf("negative timestamp %d", rc.Timestamp)
	}

	cmd := Command{
		Timestamp: rc.Timestamp,
		Kind:      kind,
		Rank:      0,
		Bank:      -1,
		Row:       -1,
		Column:    -1,
	}
	if rc.Rank != nil {
		cmd.Rank = *rc.Rank
	}
	if rc.Bank != nil {
		cmd.Bank = *rc.Bank
	}
	if rc.Row != nil {
		cmd.Row = *rc.Row
	}
	if rc.Column != nil {
		cmd.Column = *rc.Column
	}
	if rc.BurstLength != nil {
		cmd.BurstLength = *rc.BurstLength
	}

	return cmd, nil
}
