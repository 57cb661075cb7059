package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"go-user-role-service/internal/domain"
	"go-user-role-service/pkg/utils"
)

type CreateUserInput struct {
	Username  string
	Password  string
	Email     string
	FullName  string
	AvatarURL string
	RoleID    string
}

// UpdateUserInput username/password/email/role 为空串视为"未提供"；
// fullName/avatarUrl 区分未提供(nil)与显式置空("")。
type UpdateUserInput struct {
	Username  string
	Password  string
	Email     string
	RoleID    string
	FullName  *string
	AvatarURL *string
}

type ListUsersInput struct {
	Search string
	Page   int
	Limit  int
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type UserService struct {
	repo  domain.UserRepository
	roles domain.RoleRepository
	log   *zap.Logger
}

func NewUserService(repo domain.UserRepository, roles domain.RoleRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, roles: roles, log: log}
}

func (s *UserService) List(ctx context.Context, in ListUsersInput) ([]domain.User, *Pagination, error) {
	page, limit := in.Page, in.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.repo.Search(ctx, domain.UserSearch{
		Search: in.Search,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}

	pg := &Pagination{
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalUsers:  total,
		HasNext:     int64(page)*int64(limit) < total,
		HasPrev:     page > 1,
	}
	return users, pg, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.repo.FindLiveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || in.Password == "" || email == "" || in.RoleID == "" {
		return nil, domain.BadRequest("Username, password, email, and role are required")
	}
	if err := s.ensureLiveRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:        utils.NewID(),
		Username:  username,
		Password:  in.Password,
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		AvatarURL: in.AvatarURL,
		RoleID:    in.RoleID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	// 回读一遍拿到展开后的角色
	return s.GetByID(ctx, u.ID)
}

// Activate 同时匹配 email+username；失配时不区分是哪个字段错了
func (s *UserService) Activate(ctx context.Context, email, username string) (*domain.User, error) {
	if email == "" || username == "" {
		return nil, domain.BadRequest("Email and username are required")
	}
	u, err := s.repo.FindLiveByCredentials(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User not found or invalid credentials")
	}
	if _, err := s.repo.Activate(ctx, u.ID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, u.ID)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	existing, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound("User not found")
	}
	if in.RoleID != "" {
		if err := s.ensureLiveRole(ctx, in.RoleID); err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	if v := strings.TrimSpace(in.Username); v != "" {
		fields["username"] = v
	}
	if in.Password != "" {
		fields["password"] = in.Password
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" {
		fields["email"] = v
	}
	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}
	if in.RoleID != "" {
		fields["role_id"] = in.RoleID
	}
	if len(fields) > 0 {
		if _, err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("User not found")
	}
	return nil
}

// ensureLiveRole 用户写入前的角色存活校验。独立成一个入口，
// 后续如果要和写入包进一个事务，只动这里。校验和写入之间
// 角色仍可能被软删，引用悬空是已接受的竞态。
func (s *UserService) ensureLiveRole(ctx context.Context, roleID string) error {
	role, err := s.roles.FindLiveByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.BadRequest("Role not found")
	}
	return nil
}
