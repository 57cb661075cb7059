package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-user-role-service/internal/core/cache"
	"go-user-role-service/internal/domain"
	"go-user-role-service/pkg/utils"
)

type CreateRoleInput struct {
	Name        string
	Description string
}

// UpdateRoleInput Name 为空串视为"未提供"；Description 区分未提供(nil)与显式置空("")
type UpdateRoleInput struct {
	Name        string
	Description *string
}

type RoleService struct {
	repo  domain.RoleRepository
	cache *cache.Cache // 可为 nil，直连存储
	ttl   time.Duration
	log   *zap.Logger
}

func NewRoleService(repo domain.RoleRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *RoleService {
	return &RoleService{repo: repo, cache: c, ttl: ttl, log: log}
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.List(ctx)
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	if s.cache != nil {
		role, err := cache.GetOrLoadJSON[domain.Role](s.cache, ctx, roleKey(id), s.ttl, func(ctx context.Context) (*domain.Role, error) {
			return s.repo.FindLiveByID(ctx, id)
		})
		if err == nil {
			if role == nil {
				return nil, domain.NotFound("Role not found")
			}
			return role, nil
		}
		// 缓存故障降级直查
		s.log.Warn("role cache degraded", zap.String("id", id), zap.Error(err))
	}
	role, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NotFound("Role not found")
	}
	return role, nil
}

func (s *RoleService) Create(ctx context.Context, in CreateRoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.BadRequest("Role name is required")
	}
	role := &domain.Role{
		ID:          utils.NewID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id string, in UpdateRoleInput) (*domain.Role, error) {
	existing, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound("Role not found")
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(in.Name); name != "" {
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if len(fields) > 0 {
		if _, err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}
	updated, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 写入和重读之间被并发软删时折叠成 404
	if updated == nil {
		return nil, domain.NotFound("Role not found")
	}
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("Role not found")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *RoleService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, roleKey(id)); err != nil {
		s.log.Warn("role cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

func roleKey(id string) string { return "role:" + id }
