package loginstore

import "slices"

// registered は登録済みIDのコピーを登録順に返す。
func (s *MemoryStore) registered() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// count はidの登録回数を返す。
func (s *CacheStore) count(id string) int {
	v, found := s.cache.Get(id)
	if !found {
		return 0
	}
	n, _ := v.(int)
	return n
}
