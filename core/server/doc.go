// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application lifecycle; this package only defines
// the settings it reads: listen port, API key and whether Swagger UI is served.
package server
