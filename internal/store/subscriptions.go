package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"stoicbot/pkg/logx"
)

// Subscriptions owns the set of quote subscribers. All access is serialized
// internally; every mutation rewrites the backing JSON file (an array of user
// ids) before returning.
type Subscriptions struct {
	mu   sync.Mutex
	path string
	log  logx.Logger
	ids  map[int64]struct{}
}

// OpenSubscriptions loads the subscriber set from path. A missing file yields
// an empty set.
func OpenSubscriptions(path string, log logx.Logger) (*Subscriptions, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Subscriptions{path: path, log: log, ids: map[int64]struct{}{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var list []int64
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, id := range list {
		s.ids[id] = struct{}{}
	}
	return s, nil
}

// Add subscribes a user. Adding an existing subscriber keeps single
// membership; the file is rewritten either way.
func (s *Subscriptions) Add(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return s.saveLocked()
}

// Remove unsubscribes a user; removing an absent id is a no-op mutation but
// still persists.
func (s *Subscriptions) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	return s.saveLocked()
}

// RemoveBatch drops every given id and persists once. An empty batch does
// nothing.
func (s *Subscriptions) RemoveBatch(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ids, id)
	}
	return s.saveLocked()
}

func (s *Subscriptions) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Snapshot returns the current membership as a sorted slice. Fan-out loops
// iterate the snapshot so concurrent mutation is never observable.
func (s *Subscriptions) Snapshot() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Subscriptions) saveLocked() error {
	list := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		list = append(list, id)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, b); err != nil {
		s.log.Error("persist subscribers failed", logx.Err(err), logx.String("path", s.path))
		return fmt.Errorf("persist subscribers: %w", err)
	}
	return nil
}
