// Package server holds the HTTP server configuration.
//
// The actual Fiber application is assembled in the start command; this
// package only carries the knobs (port, API key, upload limits) so that
// core/config can compose them with the other partial configurations.
package server
