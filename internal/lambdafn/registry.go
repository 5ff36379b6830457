// Where: internal/lambdafn/registry.go
// What: Handler ids, function names, and the id -> handler table.
// Why: One binary hosts all four functions; the deployed _HANDLER value picks one.
package lambdafn

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/poruru-code/emr-launch/internal/resolver"
	"github.com/poruru-code/emr-launch/internal/statechange"
	"github.com/poruru-code/emr-launch/internal/tagmerge"
)

// Handler ids.
const (
	LoadClusterConfiguration = "load_cluster_configuration"
	UpdateClusterTags        = "update_cluster_tags"
	ClusterStateChangeEvent  = "cluster_state_change_event"
	StepStateChangeEvent     = "step_state_change_event"
)

// FunctionNames maps handler ids to deployed function names.
var FunctionNames = map[string]string{
	LoadClusterConfiguration: "EMRLaunch_EMRUtilities_LoadClusterConfiguration",
	UpdateClusterTags:        "EMRLaunch_EMRUtilities_UpdateClusterTags",
	ClusterStateChangeEvent:  "EMRLaunch_EMRUtilities_ClusterStateChangeEvent",
	StepStateChangeEvent:     "EMRLaunch_EMRUtilities_StepStateChangeEvent",
}

// Handler processes one raw invocation payload.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Services are the components behind the handlers.
type Services struct {
	Resolver    *resolver.Resolver
	Merger      *tagmerge.Merger
	StateChange *statechange.Handler
}

// IDs returns the known handler ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(FunctionNames))
	for id := range FunctionNames {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CanonicalID maps a handler id, function name, or "<id>.handler" to a handler id.
func CanonicalID(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	trimmed = strings.TrimSuffix(trimmed, ".handler")
	if _, ok := FunctionNames[trimmed]; ok {
		return trimmed, nil
	}
	for id, functionName := range FunctionNames {
		if strings.EqualFold(functionName, trimmed) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown handler %q (expected one of %s)", name, strings.Join(IDs(), ", "))
}

// Lookup returns the handler for name, wrapped so typed errors reach
// Step Functions with their error type.
func Lookup(name string, services Services) (Handler, error) {
	id, err := CanonicalID(name)
	if err != nil {
		return nil, err
	}
	var handler Handler
	switch id {
	case LoadClusterConfiguration:
		handler = loadClusterConfiguration(services.Resolver)
	case UpdateClusterTags:
		handler = updateClusterTags(services.Merger)
	case ClusterStateChangeEvent:
		handler = clusterStateChange(services.StateChange)
	case StepStateChangeEvent:
		handler = stepStateChange(services.StateChange)
	}
	if handler == nil {
		return nil, fmt.Errorf("handler %s is not configured", id)
	}
	return withErrorTypes(handler), nil
}

func loadClusterConfiguration(r *resolver.Resolver) Handler {
	if r == nil {
		return nil
	}
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req resolver.Request
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return r.Resolve(ctx, req)
	}
}

func updateClusterTags(m *tagmerge.Merger) Handler {
	if m == nil {
		return nil
	}
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var event tagmerge.Event
		if err := decode(payload, &event); err != nil {
			return nil, err
		}
		return m.HandleEvent(ctx, event)
	}
}

func clusterStateChange(h *statechange.Handler) Handler {
	if h == nil {
		return nil
	}
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var event events.CloudWatchEvent
		if err := decode(payload, &event); err != nil {
			return nil, err
		}
		return h.HandleClusterEvent(ctx, event)
	}
}

func stepStateChange(h *statechange.Handler) Handler {
	if h == nil {
		return nil
	}
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var event events.CloudWatchEvent
		if err := decode(payload, &event); err != nil {
			return nil, err
		}
		return h.HandleStepEvent(ctx, event)
	}
}

func decode(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return nil
}
