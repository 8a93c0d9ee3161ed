package app

// server.go bridges Application to internal/server, which owns the actual
// listen and shutdown lifecycle.

import "github.com/shashiranjanraj/aushadhi/internal/server"

// Serve boots the service dependencies and runs the HTTP + gRPC servers
// until interrupted. Exposed for CLIs that dispatch commands themselves.
func Serve(a *Application) error {
	if err := server.Boot(); err != nil {
		return err
	}
	return server.Start(BuildHandler(a))
}
