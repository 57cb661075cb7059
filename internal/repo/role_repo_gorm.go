package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-user-role-service/internal/domain"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Scopes(Live).
		Order("created_at DESC").
		Find(&roles).Error
	return roles, err
}

func (r *RoleRepo) FindLiveByID(ctx context.Context, id string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Scopes(Live).First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	err := r.db.WithContext(ctx).Create(role).Error
	if isDupKey(err) {
		// roles 只有 name 一个唯一键
		return domain.Conflict("Role name already exists")
	}
	return err
}

func (r *RoleRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Role{}).
		Scopes(Live).Where("id = ?", id).
		Updates(fields)
	if isDupKey(res.Error) {
		return 0, domain.Conflict("Role name already exists")
	}
	return res.RowsAffected, res.Error
}

func (r *RoleRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Role{}).
		Scopes(Live).Where("id = ?", id).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}
