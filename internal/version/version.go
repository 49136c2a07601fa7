// Package version provides build-time metadata for the mdbook-private-chapters
// binary. Version, GitCommit, BuildDate, and the supported mdBook range are
// injected at compile time via -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Name is the preprocessor name. mdBook looks up the preprocessor's table
// in book.toml under this key, and it prefixes the binary name.
const Name = "private-chapters"

// Build-time values injected via -ldflags.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"

	// supportedMDBook is the range of mdBook versions this build was
	// tested against, e.g. -X .../version.supportedMDBook=^0.4.40.
	supportedMDBook = "^0.4.40"
)

// SupportedMDBook returns the mdBook version constraint declared by this build.
func SupportedMDBook() string { return supportedMDBook }

// Info holds the build metadata for the binary.
type Info struct {
	Version         string `json:"version"`
	GitCommit       string `json:"gitCommit"`
	BuildDate       string `json:"buildDate"`
	GoVersion       string `json:"goVersion"`
	Platform        string `json:"platform"`
	SupportedMDBook string `json:"supportedMdbook"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:         version,
		GitCommit:       shortCommit(gitCommit),
		BuildDate:       buildDate,
		GoVersion:       runtime.Version(),
		Platform:        fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SupportedMDBook: supportedMDBook,
	}
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("mdbook-%s %s (commit: %s, built: %s, mdbook %s, %s %s)",
		Name, i.Version, i.GitCommit, i.BuildDate, i.SupportedMDBook, i.GoVersion, i.Platform)
}

// JSON returns the version info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}

	return string(data), nil
}

// shortCommit truncates a commit SHA to 7 characters.
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}

	return commit
}
