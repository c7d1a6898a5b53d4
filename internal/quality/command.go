package quality

// CommandStatus records one auxiliary command's exit from the tabular
// command-status input (formatting checks, build steps and similar checks
// not otherwise modeled).
type CommandStatus struct {
	Name     string `json:"name"`
	Command  string `json:"command,omitempty"`
	ExitCode int    `json:"exitCode"`
}

// Success reports whether the command exited cleanly. The status is always
// derived from the exit code; any status column present in the input is
// ignored.
func (c CommandStatus) Success() bool {
	return c.ExitCode == 0
}
