// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/lambdafn"
	"github.com/poruru-code/emr-launch/internal/meta"
	"github.com/poruru-code/emr-launch/internal/ui"
	"github.com/poruru-code/emr-launch/internal/version"
	"go.uber.org/zap"
)

// ServicesFactory builds the handler services for the effective settings.
type ServicesFactory func(ctx context.Context, settings config.Settings, logger *zap.Logger) (lambdafn.Services, error)

// Dependencies holds the injected collaborators of the CLI.
// Out receives command results; ErrOut receives logs and status lines.
type Dependencies struct {
	Out      io.Writer
	ErrOut   io.Writer
	Services ServicesFactory
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Config   string `help:"Path to config file (default: ~/.emr-launch/config.yaml)"`
	Backend  string `help:"Parameter store backend (ssm, dynamodb, s3, memory)"`
	Region   string `help:"AWS region"`
	Endpoint string `help:"AWS endpoint override (e.g. LocalStack)"`
	Seed     string `help:"Seed file for the memory backend"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	EnvFile  string `name:"env-file" help:"Path to .env file"`
	Output   string `short:"o" default:"json" enum:"json,yaml" help:"Result format (json, yaml)"`

	Resolve   ResolveCmd   `cmd:"" help:"Resolve a profile and configuration into a cluster configuration"`
	MergeTags MergeTagsCmd `cmd:"" name:"merge-tags" help:"Merge execution tags into a cluster configuration"`
	Invoke    InvokeCmd    `cmd:"" help:"Invoke a Lambda handler locally"`
	Handlers  HandlersCmd  `cmd:"" help:"List Lambda handlers"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

type ResolveCmd struct {
	ClusterName            string `name:"cluster-name" help:"Cluster name (default: configuration name)"`
	ProfileNamespace       string `name:"profile-namespace" default:"default" help:"Profile namespace"`
	ProfileName            string `name:"profile-name" required:"" help:"Profile name"`
	ConfigurationNamespace string `name:"configuration-namespace" default:"default" help:"Configuration namespace"`
	ConfigurationName      string `name:"configuration-name" required:"" help:"Configuration name"`
}

type MergeTagsCmd struct {
	Event string `required:"" help:"Event file (YAML or JSON) with ExecutionInput and ClusterConfig"`
}

type InvokeCmd struct {
	Handler string `arg:"" help:"Handler id or function name"`
	Event   string `required:"" help:"Event file (YAML or JSON)"`
}

type (
	HandlersCmd struct{}
	VersionCmd  struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Services == nil {
		deps.Services = lambdafn.NewServices
	}
	console := ui.New(deps.ErrOut)

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("EMR launch utilities: resolve cluster configurations and replay launch events."),
		kong.Writers(deps.Out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(console, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(console, err)
	}

	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			console.Warn(fmt.Sprintf("failed to load env file %s: %v", cli.EnvFile, err))
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, console); handled {
		return exitCode
	}

	console.Error("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, *ui.Console) int

func dispatchCommand(command string, cli CLI, deps Dependencies, console *ui.Console) (int, bool) {
	handlers := map[string]commandHandler{
		"resolve":    runResolve,
		"merge-tags": runMergeTags,
		"handlers":   runHandlers,
		"version":    runVersion,
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, console), true
	}
	if strings.HasPrefix(command, "invoke") {
		return runInvoke(cli, deps, console), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, deps Dependencies, _ *ui.Console) int {
	fmt.Fprintln(deps.Out, version.GetVersion())
	return 0
}

// runHandlers lists handler ids with their deployed function names.
func runHandlers(_ CLI, deps Dependencies, _ *ui.Console) int {
	console := ui.New(deps.Out)
	console.EmojiEnabled = false
	console.Header("", "Handlers")
	for _, id := range lambdafn.IDs() {
		console.Item(id, lambdafn.FunctionNames[id])
	}
	return 0
}
