// Where: cmd/emr-utilities/main.go
// What: Lambda entrypoint for the EMR launch utility functions.
// Why: Deploy one binary per function and select the handler through _HANDLER.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/poruru-code/emr-launch/internal/constants"
)

func main() {
	handler, err := buildHandler(context.Background(), os.Getenv(constants.EnvLambdaHandler))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	lambda.Start(handler)
}
