package version

// Version is overridden at build time with -ldflags "-X tokenlint/internal/shared/version.Version=...".
var Version = "dev"
