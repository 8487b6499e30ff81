// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure and derived values for the server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the maximum request
// body size, which bounds the size of uploaded file batches.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to configure Fiber.
package server
