package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/version.Date={{.Date}}
)
