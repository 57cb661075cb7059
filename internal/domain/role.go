package domain

import (
	"context"
	"time"
)

type Role struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	IsDeleted   bool      `gorm:"index;not null;default:false" json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Role) TableName() string { return "roles" }

// RoleRepository 对 roles 表的访问。除 Create/UpdateFields 外只见未软删记录。
type RoleRepository interface {
	// List 返回全部未软删角色，创建时间倒序。
	List(ctx context.Context) ([]Role, error)
	// FindLiveByID 未命中（或已软删）返回 (nil, nil)。
	FindLiveByID(ctx context.Context, id string) (*Role, error)
	Create(ctx context.Context, r *Role) error
	// UpdateFields 按列更新未软删记录，返回受影响行数。
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	// SoftDelete 置 is_deleted=true，已软删/不存在时返回 0 行。
	SoftDelete(ctx context.Context, id string) (int64, error)
}
