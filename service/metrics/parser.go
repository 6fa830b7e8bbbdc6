package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one parsed metrics table entry.
type Row struct {
	Command    string
	Finished   bool
	Errored    bool
	Burst      int64
	Turnaround int64
	Waiting    int64
	Response   int64
}

// Parse reads a written table back into rows. The header line is validated
// and skipped.
func Parse(data []byte) ([]Row, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || lines[0] != Header {
		return nil, fmt.Errorf("invalid metrics table header")
	}
	var rows []Row
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line string) (Row, error) {
	fields := strings.Split(line, ", ")
	if len(fields) < 7 {
		return Row{}, fmt.Errorf("invalid metrics row: %q", line)
	}
	// The command itself may contain the delimiter; everything before the
	// trailing six fields belongs to it.
	n := len(fields)
	row := Row{Command: strings.Join(fields[:n-6], ", ")}
	finished, err := parseYesNo(fields[n-6])
	if err != nil {
		return Row{}, fmt.Errorf("invalid finished flag in %q: %w", line, err)
	}
	errored, err := parseYesNo(fields[n-5])
	if err != nil {
		return Row{}, fmt.Errorf("invalid error flag in %q: %w", line, err)
	}
	row.Finished = finished
	row.Errored = errored
	values := make([]int64, 4)
	for i, field := range fields[n-4:] {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Row{}, fmt.Errorf("invalid metric value in %q: %w", line, err)
		}
		values[i] = v
	}
	row.Burst, row.Turnaround, row.Waiting, row.Response = values[0], values[1], values[2], values[3]
	return row, nil
}

func parseYesNo(field string) (bool, error) {
	switch field {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	}
	return false, fmt.Errorf("expected Yes or No, got %q", field)
}
