package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string `gorm:"primaryKey;size:32" json:"id"`
	Username  string `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Password  string `gorm:"size:191;not null" json:"password"`
	Email     string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	FullName  string `gorm:"size:191" json:"fullName"`
	AvatarURL string `gorm:"size:255" json:"avatarUrl"`
	Status    bool   `gorm:"not null;default:false" json:"status"`

	RoleID string `gorm:"size:32;not null;index" json:"-"`
	// Role 读路径上展开；引用的角色已软删时为 nil（序列化为 null）。
	Role *Role `gorm:"foreignKey:RoleID" json:"role"`

	LoginCount int64     `gorm:"not null;default:0" json:"loginCount"`
	IsDeleted  bool      `gorm:"index;not null;default:false" json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserSearch 列表查询条件。Search 为空表示不过滤。
type UserSearch struct {
	Search string
	Offset int
	Limit  int
}

type UserRepository interface {
	// Search 按 username/fullName 大小写不敏感子串匹配，创建时间倒序，
	// 返回当前页与匹配总数。
	Search(ctx context.Context, q UserSearch) ([]User, int64, error)
	FindLiveByID(ctx context.Context, id string) (*User, error)
	FindLiveByUsername(ctx context.Context, username string) (*User, error)
	// FindLiveByCredentials 要求 email 与 username 同时精确匹配。
	FindLiveByCredentials(ctx context.Context, email, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	// Activate 置 status=true 并在存储层原子地 login_count+1。
	Activate(ctx context.Context, id string) (int64, error)
	SoftDelete(ctx context.Context, id string) (int64, error)
}
