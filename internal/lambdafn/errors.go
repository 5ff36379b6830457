// Where: internal/lambdafn/errors.go
// What: Typed error translation for the Lambda runtime.
// Why: State machine Catch clauses match on errorType, not on the Go type name.
package lambdafn

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/lambda/messages"
)

// typedError is implemented by errors that carry their own errorType.
type typedError interface {
	error
	ErrorType() string
}

// InvokeError converts err into the runtime's error payload when err carries
// an error type. Other errors are returned unchanged.
// The payload is returned by value; the runtime only recognizes that form.
func InvokeError(err error) error {
	if err == nil {
		return nil
	}
	var typed typedError
	if !errors.As(err, &typed) {
		return err
	}
	return messages.InvokeResponse_Error{
		Type:    typed.ErrorType(),
		Message: err.Error(),
	}
}

func withErrorTypes(handler Handler) Handler {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		result, err := handler(ctx, payload)
		if err != nil {
			return nil, InvokeError(err)
		}
		return result, nil
	}
}
