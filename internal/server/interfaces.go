package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is cancelled and then shuts down
	// gracefully.
	Run(ctx context.Context)

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
