// Package state is the persisted page state: a flat key-value map with
// dotted prefixes, written through to a YAML file so axis order, inversion,
// scale type and color-by survive restarts.
package state

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type backing struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Store is a view of the state under one prefix. Children share the backing
// map with their parent.
type Store struct {
	b      *backing
	prefix string
}

// New returns an in-memory store that is never written to disk.
func New() *Store {
	return &Store{b: &backing{values: map[string]string{}}}
}

// Open loads path if it exists. Every Set is written back to it.
func Open(path string) (*Store, error) {
	s := &Store{b: &backing{path: path, values: map[string]string{}}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.b.values); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	if s.b.values == nil {
		s.b.values = map[string]string{}
	}
	return s, nil
}

// Children scopes the store under name.
func (s *Store) Children(name string) *Store {
	return &Store{b: s.b, prefix: s.key(name) + "."}
}

func (s *Store) key(k string) string { return s.prefix + k }

// Get returns the raw value for key.
func (s *Store) Get(key string) (string, bool) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	v, ok := s.b.values[s.key(key)]
	return v, ok
}

// GetString returns key or def when unset.
func (s *Store) GetString(key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// GetInt returns key or def when unset or unparsable.
func (s *Store) GetInt(key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetBool returns key or def when unset or unparsable.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Set stores v formatted with fmt.Sprint and persists the store.
func (s *Store) Set(key string, v any) error {
	s.b.mu.Lock()
	s.b.values[s.key(key)] = fmt.Sprint(v)
	s.b.mu.Unlock()
	return s.b.save()
}

// Clear removes every key under this store's prefix.
func (s *Store) Clear() error {
	s.b.mu.Lock()
	for k := range s.b.values {
		if strings.HasPrefix(k, s.prefix) {
			delete(s.b.values, k)
		}
	}
	s.b.mu.Unlock()
	return s.b.save()
}

// Keys lists the keys directly or indirectly under this prefix, without the
// prefix, sorted.
func (s *Store) Keys() []string {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	var out []string
	for k := range s.b.values {
		if strings.HasPrefix(k, s.prefix) {
			out = append(out, strings.TrimPrefix(k, s.prefix))
		}
	}
	sort.Strings(out)
	return out
}

func (b *backing) save() error {
	if b.path == "" {
		return nil
	}
	b.mu.Lock()
	data, err := yaml.Marshal(b.values)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
