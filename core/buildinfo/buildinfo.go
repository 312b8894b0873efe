package buildinfo

import "fmt"

// Set via -ldflags at build time, e.g.
//
//	-X 'github.com/m3rciful/ipbot/core/buildinfo.Version=v1.0.0'
//	-X 'github.com/m3rciful/ipbot/core/buildinfo.Commit=abcdef0'
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)

// String renders the build metadata on one line.
func String() string {
	if Date == "" {
		return fmt.Sprintf("ipbot %s (%s)", Version, Commit)
	}
	return fmt.Sprintf("ipbot %s (%s, built %s)", Version, Commit, Date)
}
