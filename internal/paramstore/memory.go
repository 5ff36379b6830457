// Where: internal/paramstore/memory.go
// What: In-process store seeded from a YAML/JSON file.
// Why: Dry-run resolutions locally and back handler tests without AWS.
package paramstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"sigs.k8s.io/yaml"
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return Lookup{}, nil
	}
	return Lookup{Value: value, Found: true}, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Put stores a raw value.
func (s *MemoryStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// PutDocument stores value encoded as JSON.
func (s *MemoryStore) PutDocument(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.Put(key, string(payload))
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LoadSeed reads a seed file; see ParseSeed.
func LoadSeed(path string) (*MemoryStore, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	store, err := ParseSeed(payload)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return store, nil
}

// ParseSeed builds a store from a YAML or JSON mapping of key -> value.
// String values are stored verbatim; any other value is stored as its JSON encoding.
func ParseSeed(payload []byte) (*MemoryStore, error) {
	jsonData, err := yaml.YAMLToJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &entries); err != nil {
		return nil, fmt.Errorf("seed must be a mapping of key to value: %w", err)
	}

	store := NewMemoryStore()
	for key, raw := range entries {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			store.Put(key, text)
			continue
		}
		store.Put(key, string(raw))
	}
	return store, nil
}
