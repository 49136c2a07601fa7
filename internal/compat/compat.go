// Package compat checks the calling mdBook version against the range this
// build declares support for. A mismatch is advisory: it is reported to the
// caller, who decides to warn and carry on.
package compat

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// VersionParseError reports a version or version range that is not valid
// semantic versioning.
type VersionParseError struct {
	// What names the value that failed to parse, e.g. "mdbook version".
	What  string
	Input string
	Err   error
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.What, e.Input, e.Err)
}

func (e *VersionParseError) Unwrap() error { return e.Err }

// Result is the outcome of a successful compatibility check.
type Result struct {
	Reported   *semver.Version
	Declared   *semver.Constraints
	Compatible bool
}

// Check parses reported as a strict semantic version and declared as a
// constraint, and reports whether reported satisfies it.
func Check(reported, declared string) (*Result, error) {
	v, err := semver.StrictNewVersion(reported)
	if err != nil {
		return nil, &VersionParseError{What: "mdbook version", Input: reported, Err: err}
	}

	c, err := semver.NewConstraint(declared)
	if err != nil {
		return nil, &VersionParseError{What: "supported version range", Input: declared, Err: err}
	}

	return &Result{
		Reported:   v,
		Declared:   c,
		Compatible: c.Check(v),
	}, nil
}
