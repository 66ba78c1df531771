package configuration

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned while locating and reading configuration sources.
var (
	// ErrConfigNotFound indicates that a required configuration file is absent.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrMalformedConfig indicates that a configuration file could not be
	// parsed as YAML or does not hold a mapping at the top level.
	ErrMalformedConfig = errors.New("malformed configuration file")
	// ErrNodeEnvNotDefined indicates that NODE_ENV is missing from the process
	// environment.
	ErrNodeEnvNotDefined = errors.New("NODE_ENV is not defined")
)

// Issue codes reported by [Validate].
const (
	CodeInvalidType      = "invalid_type"
	CodeRequired         = "required"
	CodeTooSmall         = "too_small"
	CodeTooBig           = "too_big"
	CodeInvalidEnumValue = "invalid_enum_value"
	CodeInvalidURL       = "invalid_url"
	CodeUnrecognizedKeys = "unrecognized_keys"
	CodeInvalidReference = "invalid_reference"
	CodeInvalidValue     = "invalid_value"
)

// Issue is a single schema violation.
type Issue struct {
	// Path is the dotted location of the offending value ("core.port").
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError carries every issue found in one validation pass.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Configuration validation failed:")
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  - %s: %s", issue.Path, issue.Message)
	}

	return b.String()
}

func (e *ValidationError) add(path, code, message string) {
	e.Issues = append(e.Issues, Issue{Path: path, Message: message, Code: code})
}

func (e *ValidationError) hasIssues() bool {
	return len(e.Issues) > 0
}
