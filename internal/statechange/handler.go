// Where: internal/statechange/handler.go
// What: EMR cluster and step state-change handlers.
// Why: Resume the waiting launch workflow once EMR reports the state it was waiting for.
package statechange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/logging"
	"github.com/poruru-code/emr-launch/internal/meta"
	"github.com/poruru-code/emr-launch/internal/paramstore"
	"github.com/poruru-code/emr-launch/internal/schema"
	"go.uber.org/zap"
)

const (
	ClusterFailedError = "ClusterFailedError"
	StepFailedError    = "StepFailedError"
)

// Outcome is what a handler did with the waiting task.
type Outcome string

const (
	OutcomeNoTaskToken Outcome = "NoTaskToken"
	OutcomeSuccess     Outcome = "Success"
	OutcomeFailure     Outcome = "Failure"
	OutcomeHeartbeat   Outcome = "Heartbeat"
	OutcomeStaleToken  Outcome = "StaleToken"
)

// ClusterDetail is the detail of an "EMR Cluster State Change" event.
type ClusterDetail struct {
	ClusterID         string `json:"clusterId"`
	Name              string `json:"name"`
	State             string `json:"state"`
	Message           string `json:"message"`
	StateChangeReason string `json:"stateChangeReason"`
}

// StepDetail is the detail of an "EMR Step Status Change" event.
type StepDetail struct {
	ClusterID       string `json:"clusterId"`
	StepID          string `json:"stepId"`
	Name            string `json:"name"`
	State           string `json:"state"`
	Message         string `json:"message"`
	ActionOnFailure string `json:"actionOnFailure"`
}

// Result summarizes one handled event.
type Result struct {
	ClusterID string  `json:"ClusterId"`
	StepID    string  `json:"StepId,omitempty"`
	State     string  `json:"State"`
	Outcome   Outcome `json:"Outcome"`
}

type taskToken struct {
	TaskToken string `json:"TaskToken"`
}

type Handler struct {
	store        paramstore.Store
	notifier     Notifier
	tokensPrefix string
	logger       *zap.Logger
}

func NewHandler(store paramstore.Store, notifier Notifier, settings config.Settings, logger *zap.Logger) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("statechange: store is nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("statechange: notifier is nil")
	}
	prefix := settings.Parameters.TaskTokensPrefix
	if prefix == "" {
		prefix = meta.TaskTokensPrefix
	}
	return &Handler{
		store:        store,
		notifier:     notifier,
		tokensPrefix: prefix,
		logger:       logging.OrNop(logger),
	}, nil
}

// ClusterTokenKey is where the launch workflow parks the token for clusterID.
func (h *Handler) ClusterTokenKey(clusterID string) string {
	return paramstore.Join(h.tokensPrefix, clusterID)
}

// StepTokenKey is where the step workflow parks the token for stepID.
func (h *Handler) StepTokenKey(clusterID, stepID string) string {
	return paramstore.Join(h.tokensPrefix, clusterID, stepID)
}

// HandleClusterEvent resolves the task waiting on a cluster launch.
// RUNNING and WAITING succeed, TERMINATED and TERMINATED_WITH_ERRORS fail,
// anything else extends the task with a heartbeat.
func (h *Handler) HandleClusterEvent(ctx context.Context, event events.CloudWatchEvent) (Result, error) {
	var detail ClusterDetail
	if err := decodeDetail(event, &detail); err != nil {
		return Result{}, h.logFailure(event, err)
	}
	if detail.ClusterID == "" {
		return Result{}, h.logFailure(event, errors.New("event detail has no clusterId"))
	}

	result := Result{ClusterID: detail.ClusterID, State: detail.State}
	logger := h.logger.With(zap.String("cluster_id", detail.ClusterID), zap.String("state", detail.State))

	var outcome Outcome
	var output, cause string
	switch strings.ToUpper(detail.State) {
	case "RUNNING", "WAITING":
		outcome = OutcomeSuccess
		output = mustJSON(map[string]any{
			"ClusterId":    detail.ClusterID,
			"ClusterState": detail.State,
			"Message":      detail.Message,
		})
	case "TERMINATED", "TERMINATED_WITH_ERRORS":
		outcome = OutcomeFailure
		cause = mustJSON(map[string]any{
			"ClusterId":         detail.ClusterID,
			"ClusterState":      detail.State,
			"Message":           detail.Message,
			"StateChangeReason": detail.StateChangeReason,
		})
	default:
		outcome = OutcomeHeartbeat
	}

	done, err := h.signal(ctx, logger, h.ClusterTokenKey(detail.ClusterID), outcome, output, ClusterFailedError, cause)
	if err != nil {
		return Result{}, h.logFailure(event, err)
	}
	result.Outcome = done
	return result, nil
}

// HandleStepEvent resolves the task waiting on a step.
// COMPLETED succeeds, FAILED, CANCELLED and INTERRUPTED fail,
// anything else extends the task with a heartbeat.
func (h *Handler) HandleStepEvent(ctx context.Context, event events.CloudWatchEvent) (Result, error) {
	var detail StepDetail
	if err := decodeDetail(event, &detail); err != nil {
		return Result{}, h.logFailure(event, err)
	}
	if detail.ClusterID == "" || detail.StepID == "" {
		return Result{}, h.logFailure(event, errors.New("event detail needs clusterId and stepId"))
	}

	result := Result{ClusterID: detail.ClusterID, StepID: detail.StepID, State: detail.State}
	logger := h.logger.With(
		zap.String("cluster_id", detail.ClusterID),
		zap.String("step_id", detail.StepID),
		zap.String("state", detail.State),
	)

	var outcome Outcome
	var output, cause string
	switch strings.ToUpper(detail.State) {
	case "COMPLETED":
		outcome = OutcomeSuccess
		output = mustJSON(map[string]any{
			"ClusterId": detail.ClusterID,
			"StepId":    detail.StepID,
			"StepState": detail.State,
			"Message":   detail.Message,
		})
	case "FAILED", "CANCELLED", "INTERRUPTED":
		outcome = OutcomeFailure
		cause = mustJSON(map[string]any{
			"ClusterId": detail.ClusterID,
			"StepId":    detail.StepID,
			"StepState": detail.State,
			"Message":   detail.Message,
		})
	default:
		outcome = OutcomeHeartbeat
	}

	done, err := h.signal(ctx, logger, h.StepTokenKey(detail.ClusterID, detail.StepID), outcome, output, StepFailedError, cause)
	if err != nil {
		return Result{}, h.logFailure(event, err)
	}
	result.Outcome = done
	return result, nil
}

// signal looks up the task token at key and delivers outcome.
// Tokens are deleted after success or failure, and when Step Functions
// reports the token as no longer valid.
func (h *Handler) signal(
	ctx context.Context,
	logger *zap.Logger,
	key string,
	outcome Outcome,
	output string,
	errorName string,
	cause string,
) (Outcome, error) {
	logger.Info("Getting TaskToken", zap.String("key", key))
	lookup, err := h.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !lookup.Found {
		logger.Info("TaskToken not found", zap.String("key", key))
		return OutcomeNoTaskToken, nil
	}
	token, err := decodeTaskToken(lookup.Value)
	if err != nil {
		return "", fmt.Errorf("task token %s: %w", key, err)
	}

	switch outcome {
	case OutcomeSuccess:
		err = h.notifier.SendSuccess(ctx, token, output)
	case OutcomeFailure:
		err = h.notifier.SendFailure(ctx, token, errorName, cause)
	default:
		err = h.notifier.SendHeartbeat(ctx, token)
	}
	if err != nil {
		if !isStaleToken(err) {
			return "", err
		}
		logger.Warn("TaskToken no longer valid", zap.String("key", key), zap.Error(err))
		outcome = OutcomeStaleToken
	}
	logger.Info("Task signaled", zap.String("outcome", string(outcome)))

	if outcome == OutcomeHeartbeat {
		return outcome, nil
	}
	if err := h.store.Delete(ctx, key); err != nil {
		return "", fmt.Errorf("delete task token %s: %w", key, err)
	}
	return outcome, nil
}

func (h *Handler) logFailure(event events.CloudWatchEvent, err error) error {
	h.logger.Error("Error processing event",
		zap.Any("event", event),
		zap.Error(err),
		zap.Stack("stack"),
	)
	return err
}

func decodeDetail(event events.CloudWatchEvent, target any) error {
	if len(event.Detail) == 0 {
		return errors.New("event has no detail")
	}
	if err := json.Unmarshal(event.Detail, target); err != nil {
		return fmt.Errorf("decode event detail: %w", err)
	}
	return nil
}

func decodeTaskToken(raw string) (string, error) {
	var document any
	if err := json.Unmarshal([]byte(raw), &document); err != nil {
		return "", err
	}
	if err := schema.Validate(schema.KindTaskToken, document); err != nil {
		return "", err
	}
	var token taskToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return "", err
	}
	return token.TaskToken, nil
}

func mustJSON(value map[string]any) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(payload)
}
