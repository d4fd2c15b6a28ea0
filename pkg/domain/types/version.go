package types

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/NickStees/drupal-update/pkg/domain/types.Version=..."
var Version = "dev"
