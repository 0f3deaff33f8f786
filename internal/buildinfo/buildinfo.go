package buildinfo

import "fmt"

// Set with -ldflags "-X .../internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("demo %s (commit=%s, date=%s)", Version, Commit, Date)
}
