package parser

import (
	"strconv"
	"strings"

	"github.com/quality-tools/qreport/internal/quality"
)

// ParseCommands reads the tabular command-status file: one tab-separated
// row per command with name, command line and exit code, plus an optional
// status column which is ignored since success is derived from the exit
// code. Blank lines are skipped.
func ParseCommands(path string) ([]quality.CommandStatus, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var statuses []quality.CommandStatus
	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 3 {
			return nil, parseErrorf(path, "line %d: expected name<TAB>command<TAB>exit_code, got %d column(s)", n+1, len(fields))
		}
		exitCode, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, parseErrorf(path, "line %d: invalid exit code %q", n+1, fields[2])
		}
		statuses = append(statuses, quality.CommandStatus{
			Name:     fields[0],
			Command:  fields[1],
			ExitCode: exitCode,
		})
	}
	return statuses, nil
}
