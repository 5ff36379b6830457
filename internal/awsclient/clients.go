// Where: internal/awsclient/clients.go
// What: Service client constructors honoring the endpoint override.
// Why: Keep BaseEndpoint/path-style wiring out of the store and notifier code.
package awsclient

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

func SSM(cfg aws.Config, endpoint string) *ssm.Client {
	return ssm.NewFromConfig(cfg, func(options *ssm.Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func DynamoDB(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// S3 switches to path-style addressing when an endpoint override is set.
func S3(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
}

func SFN(cfg aws.Config, endpoint string) *sfn.Client {
	return sfn.NewFromConfig(cfg, func(options *sfn.Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}
