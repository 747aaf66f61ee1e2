package shared

// Version is the tool version, set at build time via
// -ldflags "-X crate-licenses/internal/shared.Version=v0.3.0".
var Version = "dev"
