// Where: internal/lambdafn/services.go
// What: Construction of the handler services from settings.
// Why: The Lambda entrypoint and the CLI invoke command build the same graph.
package lambdafn

import (
	"context"

	"github.com/poruru-code/emr-launch/internal/awsclient"
	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/paramstore"
	"github.com/poruru-code/emr-launch/internal/resolver"
	"github.com/poruru-code/emr-launch/internal/statechange"
	"github.com/poruru-code/emr-launch/internal/tagmerge"
	"go.uber.org/zap"
)

var loadAWSConfig = awsclient.LoadConfig

// NewServices loads the AWS configuration, opens the configured store, and
// builds every handler service on top of it.
func NewServices(ctx context.Context, settings config.Settings, logger *zap.Logger) (Services, error) {
	awsCfg, err := loadAWSConfig(ctx, awsclient.Options{Region: settings.Region, Endpoint: settings.Endpoint})
	if err != nil {
		return Services{}, err
	}
	store, err := paramstore.Open(settings, awsCfg)
	if err != nil {
		return Services{}, err
	}
	notifier := statechange.NewSFNNotifier(awsclient.SFN(awsCfg, settings.Endpoint))
	return ServicesFor(store, notifier, settings, logger)
}

// ServicesFor builds the services over an existing store and notifier.
func ServicesFor(
	store paramstore.Store,
	notifier statechange.Notifier,
	settings config.Settings,
	logger *zap.Logger,
) (Services, error) {
	r, err := resolver.New(store, resolver.OptionsFromSettings(settings, logger))
	if err != nil {
		return Services{}, err
	}
	stateChange, err := statechange.NewHandler(store, notifier, settings, logger)
	if err != nil {
		return Services{}, err
	}
	return Services{
		Resolver:    r,
		Merger:      tagmerge.New(logger),
		StateChange: stateChange,
	}, nil
}

