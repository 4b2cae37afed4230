// Package server runs the local API listener of the client.
//
// It provides startup and graceful shutdown of the HTTP server and plugs
// into the worker group as one more long-running worker.
package server
