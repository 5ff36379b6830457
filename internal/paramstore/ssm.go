// Where: internal/paramstore/ssm.go
// What: SSM Parameter Store backend.
// Why: Profiles, configurations, and task tokens live under /emr_launch in SSM by default.
package paramstore

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMAPI is the subset of *ssm.Client used by the store.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
}

type SSMStore struct {
	client SSMAPI
}

func NewSSMStore(client SSMAPI) *SSMStore {
	return &SSMStore{client: client}
}

func (s *SSMStore) Get(ctx context.Context, key string) (Lookup, error) {
	if s.client == nil {
		return Lookup{}, errNilClient
	}
	resp, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if isParameterNotFound(err) {
			return Lookup{}, nil
		}
		return Lookup{}, err
	}
	if resp.Parameter == nil {
		return Lookup{}, nil
	}
	return Lookup{Value: aws.ToString(resp.Parameter.Value), Found: true}, nil
}

func (s *SSMStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errNilClient
	}
	_, err := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(key)})
	if err != nil && !isParameterNotFound(err) {
		return err
	}
	return nil
}

func isParameterNotFound(err error) bool {
	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return true
	}
	return hasErrorCode(err, "ParameterNotFound")
}
