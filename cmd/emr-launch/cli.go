// Where: cmd/emr-launch/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru-code/emr-launch/internal/app"
	"github.com/poruru-code/emr-launch/internal/lambdafn"
)

var newServices app.ServicesFactory = lambdafn.NewServices

// buildDependencies constructs the runtime dependencies required by the CLI.
// AWS clients are created lazily by the services factory once settings are known.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		Services: newServices,
	}
}
