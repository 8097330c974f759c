package version

// Set at build time with -ldflags "-X github.com/jeanpaul/gradekeeper/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)
