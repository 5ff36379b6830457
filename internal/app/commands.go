// Where: internal/app/commands.go
// What: resolve, merge-tags, and invoke command handlers.
// Why: Run the same code paths as the Lambda functions from an operator shell.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poruru-code/emr-launch/internal/lambdafn"
	"github.com/poruru-code/emr-launch/internal/resolver"
	"github.com/poruru-code/emr-launch/internal/tagmerge"
	"github.com/poruru-code/emr-launch/internal/ui"
)

func runResolve(cli CLI, deps Dependencies, console *ui.Console) int {
	ctx := context.Background()
	ctxInfo, err := resolveCommandContext(ctx, cli, deps)
	if err != nil {
		return exitWithError(console, err)
	}
	defer func() { _ = ctxInfo.Logger.Sync() }()

	req := resolver.Request{
		ClusterName:            cli.Resolve.ClusterName,
		ProfileNamespace:       cli.Resolve.ProfileNamespace,
		ProfileName:            cli.Resolve.ProfileName,
		ConfigurationNamespace: cli.Resolve.ConfigurationNamespace,
		ConfigurationName:      cli.Resolve.ConfigurationName,
	}
	doc, err := ctxInfo.Services.Resolver.Resolve(ctx, req)
	if err != nil {
		return exitWithError(console, err)
	}
	if err := writeResult(deps.Out, cli.Output, doc); err != nil {
		return exitWithError(console, err)
	}
	return 0
}

func runMergeTags(cli CLI, deps Dependencies, console *ui.Console) int {
	ctx := context.Background()
	ctxInfo, err := resolveCommandContext(ctx, cli, deps)
	if err != nil {
		return exitWithError(console, err)
	}
	defer func() { _ = ctxInfo.Logger.Sync() }()

	payload, err := readEventFile(cli.MergeTags.Event)
	if err != nil {
		return exitWithError(console, err)
	}
	var event tagmerge.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return exitWithError(console, fmt.Errorf("decode event %s: %w", cli.MergeTags.Event, err))
	}
	merged, err := ctxInfo.Services.Merger.HandleEvent(ctx, event)
	if err != nil {
		return exitWithError(console, err)
	}
	if err := writeResult(deps.Out, cli.Output, merged); err != nil {
		return exitWithError(console, err)
	}
	return 0
}

func runInvoke(cli CLI, deps Dependencies, console *ui.Console) int {
	if _, err := lambdafn.CanonicalID(cli.Invoke.Handler); err != nil {
		return exitWithError(console, err)
	}
	payload, err := readEventFile(cli.Invoke.Event)
	if err != nil {
		return exitWithError(console, err)
	}

	ctx := context.Background()
	ctxInfo, err := resolveCommandContext(ctx, cli, deps)
	if err != nil {
		return exitWithError(console, err)
	}
	defer func() { _ = ctxInfo.Logger.Sync() }()

	handler, err := lambdafn.Lookup(cli.Invoke.Handler, ctxInfo.Services)
	if err != nil {
		return exitWithError(console, err)
	}
	result, err := handler(ctx, payload)
	if err != nil {
		return exitWithError(console, err)
	}
	if err := writeResult(deps.Out, cli.Output, result); err != nil {
		return exitWithError(console, err)
	}
	return 0
}
