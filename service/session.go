package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type editorSession struct {
	draft   *Draft
	touched time.Time
}

// SessionStore 编辑会话存储，闲置超时的会话被视为取消
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*editorSession
	ttl      time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSessionStore 创建会话存储并启动过期清理
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &SessionStore{
		sessions: make(map[uuid.UUID]*editorSession),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	interval := ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	// 定期清理过期会话
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

// Add 保存草稿，返回会话 ID
func (s *SessionStore) Add(d *Draft) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &editorSession{draft: d, touched: s.now()}
	s.mu.Unlock()
	return id
}

// Get 获取草稿并刷新活跃时间
func (s *SessionStore) Get(id uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touched = s.now()
	return sess.draft, nil
}

// Remove 删除会话
func (s *SessionStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len 当前会话数
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep 取消并删除闲置超时的会话，返回删除数量
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var expired []*Draft

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			expired = append(expired, sess.draft)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, d := range expired {
		d.Cancel()
	}
	return len(expired)
}

// Stop 停止后台清理
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
