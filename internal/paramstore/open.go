// Where: internal/paramstore/open.go
// What: Backend selection from settings.
// Why: CLI and Lambda entrypoints share one switch over the configured backend.
package paramstore

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/poruru-code/emr-launch/internal/awsclient"
	"github.com/poruru-code/emr-launch/internal/config"
)

// Open returns the store selected by settings.Store.Backend.
// awsCfg is ignored by the memory backend.
func Open(settings config.Settings, awsCfg aws.Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Store.Backend)) {
	case "", config.BackendSSM:
		return NewSSMStore(awsclient.SSM(awsCfg, settings.Endpoint)), nil
	case config.BackendDynamoDB:
		return NewDynamoDBStore(awsclient.DynamoDB(awsCfg, settings.Endpoint), settings.Store.Table), nil
	case config.BackendS3:
		return NewS3Store(awsclient.S3(awsCfg, settings.Endpoint), settings.Store.Bucket), nil
	case config.BackendMemory:
		if strings.TrimSpace(settings.Store.Seed) == "" {
			return NewMemoryStore(), nil
		}
		return LoadSeed(settings.Store.Seed)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", settings.Store.Backend)
	}
}
