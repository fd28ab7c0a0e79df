package loginstore

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore はログイン済みIDを登録順のスライスで保持する。
// プロセス終了とともに内容は失われる。
type MemoryStore struct {
	mu  sync.RWMutex
	ids []string
}

// NewMemoryStore は空のMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// IsLoggedIn はidが登録されているかを返す。
func (s *MemoryStore) IsLoggedIn(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id), nil
}

// Add はidを末尾に追加する。
func (s *MemoryStore) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	return nil
}

// Remove はidに一致する要素をすべて取り除く。残りの順序は維持する。
func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
	return nil
}

// Close は何もしない。
func (s *MemoryStore) Close() error {
	return nil
}
