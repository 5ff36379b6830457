// Where: internal/statechange/notifier.go
// What: Step Functions task callback transport.
// Why: Launch state machines wait on task tokens until EMR reports a terminal state.
package statechange

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"
)

// Notifier signals a waiting task.
type Notifier interface {
	SendSuccess(ctx context.Context, token, output string) error
	SendHeartbeat(ctx context.Context, token string) error
	SendFailure(ctx context.Context, token, errorName, cause string) error
}

// SFNAPI is the subset of *sfn.Client used by SFNNotifier.
type SFNAPI interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
	SendTaskHeartbeat(ctx context.Context, params *sfn.SendTaskHeartbeatInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskHeartbeatOutput, error)
	SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error)
}

type SFNNotifier struct {
	client SFNAPI
}

func NewSFNNotifier(client SFNAPI) *SFNNotifier {
	return &SFNNotifier{client: client}
}

func (n *SFNNotifier) SendSuccess(ctx context.Context, token, output string) error {
	_, err := n.client.SendTaskSuccess(ctx, &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(token),
		Output:    aws.String(output),
	})
	return err
}

func (n *SFNNotifier) SendHeartbeat(ctx context.Context, token string) error {
	_, err := n.client.SendTaskHeartbeat(ctx, &sfn.SendTaskHeartbeatInput{TaskToken: aws.String(token)})
	return err
}

// SendFailure truncates error and cause to the Step Functions limits.
func (n *SFNNotifier) SendFailure(ctx context.Context, token, errorName, cause string) error {
	_, err := n.client.SendTaskFailure(ctx, &sfn.SendTaskFailureInput{
		TaskToken: aws.String(token),
		Error:     aws.String(truncate(errorName, 256)),
		Cause:     aws.String(truncate(cause, 32768)),
	})
	return err
}

// isStaleToken reports callback errors meaning nobody is waiting on the token anymore.
func isStaleToken(err error) bool {
	var timedOut *types.TaskTimedOut
	var missing *types.TaskDoesNotExist
	var invalid *types.InvalidToken
	return errors.As(err, &timedOut) || errors.As(err, &missing) || errors.As(err, &invalid)
}

// truncate keeps at most limit characters; Step Functions counts runes, not bytes.
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}
