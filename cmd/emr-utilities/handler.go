// Where: cmd/emr-utilities/handler.go
// What: Handler construction for the Lambda entrypoint.
// Why: Keep startup wiring testable without the Lambda runtime.
package main

import (
	"context"
	"os"

	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/lambdafn"
	"github.com/poruru-code/emr-launch/internal/logging"
)

var newServices = lambdafn.NewServices

// buildHandler resolves the handler named by name using settings from the
// function environment. Logs go to stdout as JSON.
func buildHandler(ctx context.Context, name string) (lambdafn.Handler, error) {
	if _, err := lambdafn.CanonicalID(name); err != nil {
		return nil, err
	}
	settings, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
		Out:    os.Stdout,
	})
	if err != nil {
		return nil, err
	}
	services, err := newServices(ctx, settings, logger)
	if err != nil {
		return nil, err
	}
	return lambdafn.Lookup(name, services)
}
