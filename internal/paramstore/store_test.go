// Where: internal/paramstore/store_test.go
// What: Tests for key building and backend lookups.
// Why: Not-found must be distinguishable from every other store failure on all backends.
package paramstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/poruru-code/emr-launch/internal/config"
)

func TestKeyDefaultsNamespace(t *testing.T) {
	if got := Key("/emr_launch/emr_profiles", "", "analytics"); got != "/emr_launch/emr_profiles/default/analytics" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key("/emr_launch/emr_profiles/", "team", "analytics"); got != "/emr_launch/emr_profiles/team/analytics" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestJoin(t *testing.T) {
	if got := Join("/tokens/", "j-1", "/s-2"); got != "/tokens/j-1/s-2" {
		t.Fatalf("unexpected key: %s", got)
	}
}

type fakeSSM struct {
	values    map[string]string
	err       error
	deleted   []string
	deleteErr error
	lastInput *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, &ssmtypes.ParameterNotFound{Message: aws.String("not found")}
	}
	return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Name: in.Name, Value: aws.String(value)}}, nil
}

func (f *fakeSSM) DeleteParameter(_ context.Context, in *ssm.DeleteParameterInput, _ ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Name))
	return &ssm.DeleteParameterOutput{}, nil
}

func TestSSMStoreGet(t *testing.T) {
	client := &fakeSSM{values: map[string]string{"/a/default/x": `{"k":1}`}}
	store := NewSSMStore(client)

	got, err := store.Get(context.Background(), "/a/default/x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Found || got.Value != `{"k":1}` {
		t.Fatalf("unexpected lookup: %#v", got)
	}
	if !aws.ToBool(client.lastInput.WithDecryption) {
		t.Fatalf("expected decryption to be requested")
	}

	got, err = store.Get(context.Background(), "/a/default/missing")
	if err != nil || got.Found {
		t.Fatalf("expected not found, got %#v err %v", got, err)
	}
}

func TestSSMStoreGenericNotFoundCode(t *testing.T) {
	store := NewSSMStore(&fakeSSM{err: &smithy.GenericAPIError{Code: "ParameterNotFound"}})
	got, err := store.Get(context.Background(), "/a")
	if err != nil || got.Found {
		t.Fatalf("expected not found, got %#v err %v", got, err)
	}
}

func TestSSMStorePropagatesOtherErrors(t *testing.T) {
	denied := &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}
	store := NewSSMStore(&fakeSSM{err: denied})
	_, err := store.Get(context.Background(), "/a")
	if !errors.Is(err, denied) {
		t.Fatalf("expected original error, got %v", err)
	}
}

func TestSSMStoreDeleteIgnoresMissing(t *testing.T) {
	client := &fakeSSM{deleteErr: &ssmtypes.ParameterNotFound{}}
	if err := NewSSMStore(client).Delete(context.Background(), "/a"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	client = &fakeSSM{}
	if err := NewSSMStore(client).Delete(context.Background(), "/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "/a" {
		t.Fatalf("unexpected deletes: %v", client.deleted)
	}
}

func TestNilClients(t *testing.T) {
	stores := []Store{NewSSMStore(nil), NewDynamoDBStore(nil, "t"), NewS3Store(nil, "b")}
	for _, store := range stores {
		if _, err := store.Get(context.Background(), "/a"); err == nil {
			t.Fatalf("%T: expected error for nil client", store)
		}
		if err := store.Delete(context.Background(), "/a"); err == nil {
			t.Fatalf("%T: expected error for nil client", store)
		}
	}
}

type fakeDynamo struct {
	items   map[string]map[string]ddbtypes.AttributeValue
	err     error
	tables  []string
	deleted []string
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	if f.err != nil {
		return nil, f.err
	}
	key := in.Key["Name"].(*ddbtypes.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleted = append(f.deleted, in.Key["Name"].(*ddbtypes.AttributeValueMemberS).Value)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoDBStoreGet(t *testing.T) {
	client := &fakeDynamo{items: map[string]map[string]ddbtypes.AttributeValue{
		"/p/default/a": {
			"Name":  &ddbtypes.AttributeValueMemberS{Value: "/p/default/a"},
			"Value": &ddbtypes.AttributeValueMemberS{Value: `{"x":1}`},
		},
		"/p/default/bad": {
			"Name":  &ddbtypes.AttributeValueMemberS{Value: "/p/default/bad"},
			"Value": &ddbtypes.AttributeValueMemberN{Value: "1"},
		},
	}}
	store := NewDynamoDBStore(client, "params")

	got, err := store.Get(context.Background(), "/p/default/a")
	if err != nil || !got.Found || got.Value != `{"x":1}` {
		t.Fatalf("unexpected lookup %#v err %v", got, err)
	}
	got, err = store.Get(context.Background(), "/p/default/missing")
	if err != nil || got.Found {
		t.Fatalf("expected not found, got %#v err %v", got, err)
	}
	if _, err := store.Get(context.Background(), "/p/default/bad"); err == nil {
		t.Fatalf("expected error for non-string value")
	}
	if client.tables[0] != "params" {
		t.Fatalf("unexpected table: %v", client.tables)
	}

	if err := store.Delete(context.Background(), "/p/default/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("unexpected deletes: %v", client.deleted)
	}
}

func TestDynamoDBStoreMissingTableIsAnError(t *testing.T) {
	store := NewDynamoDBStore(&fakeDynamo{err: &ddbtypes.ResourceNotFoundException{}}, "params")
	if _, err := store.Get(context.Background(), "/a"); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, aws.ToString(in.Key))
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreGet(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"emr_launch/emr_profiles/default/a": `{"a":1}`}}
	store := NewS3Store(client, "bucket")

	got, err := store.Get(context.Background(), "/emr_launch/emr_profiles/default/a")
	if err != nil || !got.Found || got.Value != `{"a":1}` {
		t.Fatalf("unexpected lookup %#v err %v", got, err)
	}
	got, err = store.Get(context.Background(), "/emr_launch/emr_profiles/default/b")
	if err != nil || got.Found {
		t.Fatalf("expected not found, got %#v err %v", got, err)
	}
}

func TestS3StoreNotFoundCodes(t *testing.T) {
	store := NewS3Store(&fakeS3{err: &smithy.GenericAPIError{Code: "NotFound"}}, "bucket")
	if got, err := store.Get(context.Background(), "/a"); err != nil || got.Found {
		t.Fatalf("expected not found, got %#v err %v", got, err)
	}
	if err := store.Delete(context.Background(), "/a"); err != nil {
		t.Fatalf("expected missing object delete to succeed: %v", err)
	}

	denied := &smithy.GenericAPIError{Code: "AccessDenied"}
	store = NewS3Store(&fakeS3{err: denied}, "bucket")
	if _, err := store.Get(context.Background(), "/a"); !errors.Is(err, denied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.PutDocument("/a", map[string]any{"x": 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(context.Background(), "/a")
	if err != nil || !got.Found || got.Value != `{"x":1}` {
		t.Fatalf("unexpected lookup %#v err %v", got, err)
	}
	if err := store.Delete(context.Background(), "/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(context.Background(), "/a"); got.Found {
		t.Fatalf("expected key to be deleted")
	}
	if err := store.Delete(context.Background(), "/a"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestParseSeed(t *testing.T) {
	seed := []byte(`
/emr_launch/emr_profiles/default/analytics:
  LogsBucket: logs-bucket
/emr_launch/control_plane/task_tokens/emr_utilities/j-1: '{"TaskToken":"tok"}'
`)
	store, err := ParseSeed(seed)
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}
	want := []string{
		"/emr_launch/control_plane/task_tokens/emr_utilities/j-1",
		"/emr_launch/emr_profiles/default/analytics",
	}
	if keys := store.Keys(); len(keys) != 2 || keys[0] != want[0] || keys[1] != want[1] {
		t.Fatalf("unexpected keys: %v", keys)
	}
	got, _ := store.Get(context.Background(), want[1])
	if got.Value != `{"LogsBucket":"logs-bucket"}` {
		t.Fatalf("unexpected profile value: %s", got.Value)
	}
	got, _ = store.Get(context.Background(), want[0])
	if got.Value != `{"TaskToken":"tok"}` {
		t.Fatalf("unexpected token value: %s", got.Value)
	}
}

func TestParseSeedRejectsList(t *testing.T) {
	if _, err := ParseSeed([]byte("- a\n- b\n")); err == nil {
		t.Fatalf("expected error for list seed")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(seedPath, []byte("/a: b\n"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	awsCfg := aws.Config{Region: "us-east-1"}

	cases := []struct {
		store config.StoreSettings
		check func(Store) bool
	}{
		{config.StoreSettings{Backend: "ssm"}, func(s Store) bool { _, ok := s.(*SSMStore); return ok }},
		{config.StoreSettings{Backend: "dynamodb", Table: "t"}, func(s Store) bool { _, ok := s.(*DynamoDBStore); return ok }},
		{config.StoreSettings{Backend: "s3", Bucket: "b"}, func(s Store) bool { _, ok := s.(*S3Store); return ok }},
		{config.StoreSettings{Backend: "memory"}, func(s Store) bool { _, ok := s.(*MemoryStore); return ok }},
		{config.StoreSettings{Backend: "memory", Seed: seedPath}, func(s Store) bool {
			m, ok := s.(*MemoryStore)
			return ok && len(m.Keys()) == 1
		}},
	}
	for _, tc := range cases {
		store, err := Open(config.Settings{Store: tc.store}, awsCfg)
		if err != nil {
			t.Fatalf("open %s: %v", tc.store.Backend, err)
		}
		if !tc.check(store) {
			t.Fatalf("unexpected store for %s: %T", tc.store.Backend, store)
		}
	}

	if _, err := Open(config.Settings{Store: config.StoreSettings{Backend: "etcd"}}, awsCfg); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
