package version

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X github.com/alexiusacademia/gochimney/internal/version.Version=1.0.0"
var (
	// Name of the application
	Name = "gochimney"

	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"

	// Author of the application
	Author = "Alexius Academia"

	// Year of release
	Year = "2025"

	// Codes lists the design standards the calculations follow
	Codes = []string{"IS 4998", "IS 875 (Part 3)", "IS 1893"}
)
