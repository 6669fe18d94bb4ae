// Package detector chooses the log format from the process environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Mode is the log rendering mode.
type Mode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto Mode = iota
	// ModePretty renders colored lines for a person at a terminal.
	ModePretty
	// ModeJSON renders one JSON object per line for log collectors.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeJSON when stderr is not a terminal or CI is
// set, and ModePretty otherwise.
func DetectEnvironment() Mode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) Mode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the --log-format flag over the detected mode.
// Unknown values fall back to detection.
func ResolveMode(detected Mode, flag string) Mode {
	switch flag {
	case "pretty", "text":
		return ModePretty
	case "json":
		return ModeJSON
	default:
		return detected
	}
}
