package service

import (
	"context"
	"errors"
	"log/slog"

	"restoadmin/models"

	"github.com/google/uuid"
)

// EditorService 管理菜单/分类与菜品的关联编辑会话
type EditorService struct {
	backend  AssociationBackend
	sessions *SessionStore
	logger   *slog.Logger
}

// NewEditorService 创建编辑服务
func NewEditorService(backend AssociationBackend, sessions *SessionStore, logger *slog.Logger) *EditorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EditorService{
		backend:  backend,
		sessions: sessions,
		logger:   logger.With("component", "editor_service"),
	}
}

// Open 打开编辑器；失败时不创建会话
func (s *EditorService) Open(ctx context.Context, cred Credential, kind models.ParentKind, parentKey string) (uuid.UUID, DraftSnapshot, error) {
	draft, err := OpenDraft(ctx, s.backend, cred, kind, parentKey, s.logger)
	if err != nil {
		return uuid.Nil, DraftSnapshot{}, err
	}
	id := s.sessions.Add(draft)
	s.logger.Info("editor opened", "session", id.String(), "kind", kind, "parent", parentKey, "user", cred.Subject())
	return id, draft.Snapshot(), nil
}

// Snapshot 查看草稿
func (s *EditorService) Snapshot(id uuid.UUID) (DraftSnapshot, error) {
	draft, err := s.sessions.Get(id)
	if err != nil {
		return DraftSnapshot{}, err
	}
	return draft.Snapshot(), nil
}

// Add 暂存新增关联
func (s *EditorService) Add(id uuid.UUID, name string) (DraftSnapshot, error) {
	draft, err := s.sessions.Get(id)
	if err != nil {
		return DraftSnapshot{}, err
	}
	if err := draft.AddToCurrent(name); err != nil {
		return draft.Snapshot(), err
	}
	return draft.Snapshot(), nil
}

// Remove 暂存移除关联
func (s *EditorService) Remove(id uuid.UUID, name string) (DraftSnapshot, error) {
	draft, err := s.sessions.Get(id)
	if err != nil {
		return DraftSnapshot{}, err
	}
	if err := draft.RemoveFromCurrent(name); err != nil {
		return draft.Snapshot(), err
	}
	return draft.Snapshot(), nil
}

// Apply 提交草稿；成功后关闭会话，部分失败时会话保留以便重试
func (s *EditorService) Apply(ctx context.Context, cred Credential, id uuid.UUID) (*ApplyResult, DraftSnapshot, error) {
	draft, err := s.sessions.Get(id)
	if err != nil {
		return nil, DraftSnapshot{}, err
	}
	result, err := draft.Apply(ctx, s.backend, cred)
	if err != nil {
		var applyErr *ApplyError
		if errors.As(err, &applyErr) {
			s.logger.Warn("apply partially failed", "session", id.String(), "kind", draft.Kind(), "parent", draft.ParentKey(), "error", err)
		}
		return result, draft.Snapshot(), err
	}
	if result.Closed {
		s.sessions.Remove(id)
		s.logger.Info("editor applied", "session", id.String(), "kind", draft.Kind(), "parent", draft.ParentKey(), "user", cred.Subject())
	}
	return result, draft.Snapshot(), nil
}

// Cancel 丢弃草稿并关闭会话
func (s *EditorService) Cancel(id uuid.UUID) error {
	draft, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	draft.Cancel()
	s.sessions.Remove(id)
	s.logger.Info("editor cancelled", "session", id.String())
	return nil
}

// ListParents 父实体列表（含关联数量）
func (s *EditorService) ListParents(ctx context.Context, cred Credential, kind models.ParentKind) ([]models.ParentSummary, error) {
	parents, err := s.backend.ListParents(ctx, cred, kind)
	if err != nil {
		return nil, err
	}
	return models.Summarize(parents), nil
}
