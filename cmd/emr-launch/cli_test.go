// Where: cmd/emr-launch/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies wires stdout, stderr, and the services factory.
package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/lambdafn"
	"go.uber.org/zap"
)

func TestBuildDependencies(t *testing.T) {
	deps := buildDependencies()
	if deps.Out != os.Stdout || deps.ErrOut != os.Stderr {
		t.Fatalf("unexpected writers: %#v", deps)
	}
	if deps.Services == nil {
		t.Fatalf("expected services factory")
	}
}

func TestBuildDependenciesUsesFactory(t *testing.T) {
	orig := newServices
	t.Cleanup(func() {
		newServices = orig
	})

	sentinel := errors.New("factory")
	newServices = func(context.Context, config.Settings, *zap.Logger) (lambdafn.Services, error) {
		return lambdafn.Services{}, sentinel
	}

	deps := buildDependencies()
	if _, err := deps.Services(context.Background(), config.DefaultSettings(), nil); !errors.Is(err, sentinel) {
		t.Fatalf("expected stubbed factory, got %v", err)
	}
}
