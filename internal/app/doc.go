// Package app wires the comparison service together: configuration,
// logging, the run store, services, the chi router with its middleware
// chain, and the HTTP server lifecycle including graceful shutdown.
package app
