package pkg

// set at build time with -ldflags "-X github.com/Skyxo/killer/pkg.Version=... -X github.com/Skyxo/killer/pkg.Commit=..."
var (
	Version = "dev"
	Commit  = "none"
)
