package loginstore

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"
)

// CacheStore はgo-cacheにIDごとの登録回数を保持する。
// エントリは期限切れにならない。
type CacheStore struct {
	// mu はAddの「存在確認と加算」をまとめて行うためのロック。
	mu    sync.Mutex
	cache *cache.Cache
}

// NewCacheStore は空のCacheStoreを生成する。
func NewCacheStore() *CacheStore {
	return &CacheStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// IsLoggedIn はidが登録されているかを返す。
func (s *CacheStore) IsLoggedIn(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	_, found := s.cache.Get(id)
	return found, nil
}

// Add はidの登録回数を1増やす。
func (s *CacheStore) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Add(id, 1, cache.NoExpiration); err == nil {
		return nil
	}
	_, err := s.cache.IncrementInt(id, 1)
	return err
}

// Remove はidの登録を取り除く。
func (s *CacheStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(id)
	return nil
}

// Close はキャッシュの内容を破棄する。
func (s *CacheStore) Close() error {
	s.cache.Flush()
	return nil
}
