package version

// Set at build time with
// -ldflags "-X github.com/ChristianF88/linsort/version.Version=... -X github.com/ChristianF88/linsort/version.Date=..."
var (
	Version = "dev"
	Date    = ""
)
