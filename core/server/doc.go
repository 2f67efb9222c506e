// Package server holds the HTTP server configuration.
//
// While the command entry point handles the server startup, this package
// centralizes the settings it starts from so other packages can depend on
// them without importing the command tree.
package server
