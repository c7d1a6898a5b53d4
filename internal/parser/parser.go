// Package parser reads the per-tool result files produced during a PR build
// and normalizes them into the quality metric model. Each parser is strict:
// a missing input is a configuration error and a malformed input is a parse
// error, both fatal. A silent empty result would be indistinguishable from
// "no issues found" and defeat the gates.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// ConfigError marks an unusable run configuration, e.g. a missing required
// input file. No report artifacts may be written after one is raised.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Path, e.Reason)
}

// ParseError marks an input file that exists but violates the expected
// schema for its tool category.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(path, format string, args ...interface{}) error {
	return &ParseError{Path: path, Err: fmt.Errorf(format, args...)}
}

// readInput loads an input file. Inputs compressed with xz (".xz" suffix)
// are decompressed transparently, matching compressed CI artifacts.
func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, &ConfigError{Path: "(empty)", Reason: "input path not provided"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Path: path, Reason: "required input file not found"}
		}
		return nil, &ConfigError{Path: path, Reason: err.Error()}
	}
	if strings.HasSuffix(path, ".xz") {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &ParseError{Path: path, Err: errors.Wrap(err, "opening xz stream")}
		}
		if data, err = io.ReadAll(r); err != nil {
			return nil, &ParseError{Path: path, Err: errors.Wrap(err, "decompressing xz stream")}
		}
	}
	return data, nil
}
