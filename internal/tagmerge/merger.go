// Where: internal/tagmerge/merger.go
// What: Merge execution-supplied tags into a cluster configuration.
// Why: Workflow callers tag individual launches without editing the stored template.
package tagmerge

import (
	"context"
	"fmt"

	"github.com/poruru-code/emr-launch/internal/domain/emr"
	"github.com/poruru-code/emr-launch/internal/logging"
	"go.uber.org/zap"
)

// Event is the update_cluster_tags invocation payload.
type Event struct {
	ExecutionInput ExecutionInput `json:"ExecutionInput"`
	ClusterConfig  emr.Document   `json:"ClusterConfig"`
}

// ExecutionInput carries the state machine execution input; only Tags is read.
type ExecutionInput struct {
	Tags any `json:"Tags,omitempty"`
}

type Merger struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Merger {
	return &Merger{logger: logging.OrNop(logger)}
}

// HandleEvent merges event.ExecutionInput.Tags into event.ClusterConfig.
func (m *Merger) HandleEvent(_ context.Context, event Event) (emr.Document, error) {
	m.logger.Info("Lambda metadata", zap.Any("event", event))
	merged, err := m.Merge(event.ClusterConfig, event.ExecutionInput.Tags)
	if err != nil {
		m.logger.Error("Failed updating cluster tags",
			zap.Any("event", event),
			zap.Error(err),
			zap.Stack("stack"),
		)
		return nil, err
	}
	return merged, nil
}

// Merge returns a copy of configuration whose Tags are the existing tags
// overlaid with incoming. Existing keys keep their position; new keys are
// appended in incoming order. configuration itself is not modified.
func (m *Merger) Merge(configuration emr.Document, incoming any) (emr.Document, error) {
	out := configuration.Clone()
	if out == nil {
		out = emr.Document{}
	}

	existing, err := emr.ParseTags(out[emr.FieldTags])
	if err != nil {
		return nil, fmt.Errorf("ClusterConfig.Tags: %w", err)
	}
	additions, err := emr.ParseTags(incoming)
	if err != nil {
		return nil, fmt.Errorf("ExecutionInput.Tags: %w", err)
	}

	out[emr.FieldTags] = emr.TagsToAny(MergeTags(existing, additions))
	return out, nil
}

// MergeTags overlays incoming onto existing with incoming precedence.
func MergeTags(existing, incoming []emr.Tag) []emr.Tag {
	merged := emr.NewTagSet(existing)
	merged.Overlay(emr.NewTagSet(incoming))
	return merged.Tags()
}
