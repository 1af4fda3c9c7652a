package storage

import (
	"errors"
	"sync"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("storage: key not found")

// Store 字符串键值会话存储
// 承载 token、已禁用优惠集合、购物车快照等客户端持久状态
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}

// MemStore 内存实现，测试与一次性会话使用
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

// Get 读取键值
func (s *MemStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set 写入键值
func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete 删除键
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Clear 清空全部键值
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return nil
}
