package api

import (
	"context"
	"log/slog"

	// generated implementor tables compiled into the daemon
	_ "github.com/NVIDIA/implindex/pkg/fragments/num"
	"github.com/NVIDIA/implindex/pkg/implementors"
	"github.com/NVIDIA/implindex/pkg/logging"
	"github.com/NVIDIA/implindex/pkg/server"
)

const (
	name           = "implindexd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/implindex/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server on the global board and blocks until
// SIGINT or SIGTERM.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"traits", implementors.Global().Traits(),
	)

	if err := server.RunWithContext(context.Background(), serverOptions()...); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

func serverOptions() []server.Option {
	return []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithBoard(implementors.Global()),
	}
}
