// Package buildinfo carries the firmware identity stamped in at link time:
//
//	-ldflags "-X juicy/internal/buildinfo.Version=v1.2.0 -X juicy/internal/buildinfo.Commit=abc123"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the most specific identifier that was stamped in.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// Stamped reports whether any link-time value was provided.
func Stamped() bool {
	return Short() != "dev" || (Date != "" && Date != "unknown")
}
