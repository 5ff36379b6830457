// Where: internal/app/command_context.go
// What: Shared settings, logger, and services setup for CLI commands.
// Why: Reduce duplicated configuration plumbing across commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/lambdafn"
	"github.com/poruru-code/emr-launch/internal/logging"
	"github.com/poruru-code/emr-launch/internal/resolver"
	"github.com/poruru-code/emr-launch/internal/ui"
	"go.uber.org/zap"
)

type commandContext struct {
	Settings config.Settings
	Logger   *zap.Logger
	Services lambdafn.Services
}

// resolveSettings loads the settings file and environment, then applies
// global flags. A seed without an explicit backend selects the memory backend.
func resolveSettings(cli CLI) (config.Settings, error) {
	settings, err := config.Load(cli.Config)
	if err != nil {
		return config.Settings{}, err
	}
	overlay := func(target *string, value string) {
		if value = strings.TrimSpace(value); value != "" {
			*target = value
		}
	}
	overlay(&settings.Store.Backend, cli.Backend)
	overlay(&settings.Region, cli.Region)
	overlay(&settings.Endpoint, cli.Endpoint)
	overlay(&settings.Store.Seed, cli.Seed)
	overlay(&settings.Logging.Level, cli.LogLevel)
	if strings.TrimSpace(cli.Seed) != "" && strings.TrimSpace(cli.Backend) == "" {
		settings.Store.Backend = config.BackendMemory
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func resolveCommandContext(ctx context.Context, cli CLI, deps Dependencies) (commandContext, error) {
	settings, err := resolveSettings(cli)
	if err != nil {
		return commandContext{}, err
	}
	logger, err := logging.New(logging.Options{
		Level:  settings.Logging.Level,
		Format: logging.FormatConsole,
		Out:    deps.ErrOut,
	})
	if err != nil {
		return commandContext{}, err
	}
	services, err := deps.Services(ctx, settings, logger)
	if err != nil {
		return commandContext{}, err
	}
	return commandContext{Settings: settings, Logger: logger, Services: services}, nil
}

func exitWithError(console *ui.Console, err error) int {
	console.Error(describeError(err))
	return 1
}

// describeError renders err as one line. Not-found errors and invoke errors
// carry their error type so the operator sees what a state machine would see.
func describeError(err error) string {
	var invokeErr messages.InvokeResponse_Error
	if errors.As(err, &invokeErr) {
		return fmt.Sprintf("%s: %s", invokeErr.Type, invokeErr.Message)
	}
	if resolver.IsNotFound(err) {
		return err.Error()
	}
	if resolver.IsTerminal(err) {
		return fmt.Sprintf("terminal: %v", err)
	}
	return err.Error()
}
