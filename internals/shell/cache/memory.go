package cache

import (
	"context"
	"sync"
)

// memoryStore: Store in-memory, dipakai di test dan mode dev.
type memoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]*Response
}

func NewMemoryStore() Store {
	return &memoryStore{namespaces: map[string]map[string]*Response{}}
}

func (s *memoryStore) Namespaces(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		out = append(out, name)
	}
	return out, nil
}

func (s *memoryStore) DeleteNamespace(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.namespaces, name)
	return nil
}

func (s *memoryStore) Put(_ context.Context, namespace, url string, res *Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = map[string]*Response{}
		s.namespaces[namespace] = ns
	}
	ns[url] = res.Clone()
	return nil
}

func (s *memoryStore) Match(_ context.Context, namespace, url string) (*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	res, ok := ns[url]
	if !ok {
		return nil, ErrNotFound
	}
	return res.Clone(), nil
}

func (s *memoryStore) Close() error { return nil }
