// Package registry provides the static catalog of built-in applications.
//
// The catalog is YAML, embedded by default and replaceable from a file
// (DESKD_CATALOG). At boot the Seeder registers every entry with the app
// manager before user-installed apps are restored, so catalog apps win
// name and action collisions.
//
// Example Usage:
//
//	catalog, err := registry.Default()
//	loaded, failed := registry.NewSeeder(apps, logger).Seed(catalog)
package registry
