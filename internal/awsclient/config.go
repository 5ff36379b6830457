// Where: internal/awsclient/config.go
// What: AWS SDK configuration loader shared by every client.
// Why: Encapsulate region defaults and endpoint overrides for LocalStack-style endpoints.
package awsclient

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/poruru-code/emr-launch/internal/constants"
	"github.com/poruru-code/emr-launch/internal/envutil"
)

const defaultAWSRegion = "us-east-1"

// Options tune how the SDK config is built.
type Options struct {
	Region string
	// Endpoint overrides every service endpoint (for example http://localhost:4566).
	Endpoint string
}

// LoadConfig builds an aws.Config from the default chain plus opts.
// With an endpoint override and no credentials in the environment,
// static dummy credentials are used so local emulators accept the requests.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = strings.TrimSpace(os.Getenv(constants.EnvAWSRegion))
	}
	if region == "" {
		region = defaultAWSRegion
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if strings.TrimSpace(opts.Endpoint) != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		creds := credentials.NewStaticCredentialsProvider(localAccessKey(), localSecretKey(), "")
		loaders = append(loaders, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func localAccessKey() string {
	if value := envutil.GetHostEnv(constants.HostSuffixLocalAccessKey); value != "" {
		return value
	}
	return "test"
}

func localSecretKey() string {
	if value := envutil.GetHostEnv(constants.HostSuffixLocalSecretKey); value != "" {
		return value
	}
	return "test"
}
