package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-user-role-service/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// withRole 角色展开与其它读路径一样过滤软删，悬空引用序列化为 null
func withRole(db *gorm.DB) *gorm.DB {
	return db.Preload("Role", "is_deleted = ?", false)
}

func (r *UserRepo) Search(ctx context.Context, q domain.UserSearch) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Scopes(Live)
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := withRole(tx).
		Order("created_at DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) FindLiveByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findLive(ctx, "id = ?", id)
}

func (r *UserRepo) FindLiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findLive(ctx, "username = ?", username)
}

func (r *UserRepo) FindLiveByCredentials(ctx context.Context, email, username string) (*domain.User, error) {
	return r.findLive(ctx, "email = ? AND username = ?", email, username)
}

func (r *UserRepo) findLive(ctx context.Context, cond string, args ...any) (*domain.User, error) {
	var u domain.User
	err := withRole(r.db.WithContext(ctx).Scopes(Live)).
		Where(cond, args...).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Omit("Role").Create(u).Error
	if isDupKey(err) {
		return dupConflict(err, "username", "email")
	}
	return err
}

func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(Live).Where("id = ?", id).
		Updates(fields)
	if isDupKey(res.Error) {
		return 0, dupConflict(res.Error, "username", "email")
	}
	return res.RowsAffected, res.Error
}

// Activate status=true 和计数自增必须在同一条 UPDATE 里，
// 并发激活时不能丢更新。
func (r *UserRepo) Activate(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(Live).Where("id = ?", id).
		Updates(map[string]any{
			"status":      true,
			"login_count": gorm.Expr("login_count + ?", 1),
		})
	return res.RowsAffected, res.Error
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(Live).Where("id = ?", id).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}
