package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-user-role-service/internal/domain"
	"go-user-role-service/internal/repo"
)

func TestRoleCreate(t *testing.T) {
	roleSvc, _, _ := newServices(t)
	ctx := context.Background()

	t.Run("要求非空 name", func(t *testing.T) {
		_, err := roleSvc.Create(ctx, CreateRoleInput{Name: "   "})
		st, msg := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "Role name is required", msg)
	})

	t.Run("trim 并填默认值", func(t *testing.T) {
		role, err := roleSvc.Create(ctx, CreateRoleInput{Name: "  admin  ", Description: "  ops  "})
		require.NoError(t, err)
		assert.Equal(t, "admin", role.Name)
		assert.Equal(t, "ops", role.Description)
		assert.NotEmpty(t, role.ID)
		assert.False(t, role.IsDeleted)
		assert.False(t, role.CreatedAt.IsZero())
	})

	t.Run("重名只许成功一次", func(t *testing.T) {
		_, err := roleSvc.Create(ctx, CreateRoleInput{Name: "editor"})
		require.NoError(t, err)
		_, err = roleSvc.Create(ctx, CreateRoleInput{Name: "editor"})
		st, msg := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "Role name already exists", msg)
	})

	t.Run("软删后的名字仍占用", func(t *testing.T) {
		role := mustCreateRole(t, roleSvc, "legacy")
		require.NoError(t, roleSvc.Delete(ctx, role.ID))
		_, err := roleSvc.Create(ctx, CreateRoleInput{Name: "legacy"})
		st, _ := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, st)
	})
}

func TestRoleList(t *testing.T) {
	roleSvc, _, db := newServices(t)
	ctx := context.Background()

	a := mustCreateRole(t, roleSvc, "alpha")
	b := mustCreateRole(t, roleSvc, "beta")
	c := mustCreateRole(t, roleSvc, "gamma")

	now := time.Now()
	backdate(t, db, "roles", a.ID, now.Add(-3*time.Hour))
	backdate(t, db, "roles", b.ID, now.Add(-2*time.Hour))
	backdate(t, db, "roles", c.ID, now.Add(-1*time.Hour))

	roles, err := roleSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	// 创建时间倒序
	assert.Equal(t, "gamma", roles[0].Name)
	assert.Equal(t, "beta", roles[1].Name)
	assert.Equal(t, "alpha", roles[2].Name)

	require.NoError(t, roleSvc.Delete(ctx, b.ID))
	roles, err = roleSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	for _, r := range roles {
		assert.NotEqual(t, "beta", r.Name)
	}
}

func TestRoleGet(t *testing.T) {
	roleSvc, _, _ := newServices(t)
	ctx := context.Background()

	role := mustCreateRole(t, roleSvc, "viewer")

	got, err := roleSvc.Get(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, role.ID, got.ID)

	_, err = roleSvc.Get(ctx, "no-such-id")
	st, msg := statusOf(t, err)
	assert.Equal(t, http.StatusNotFound, st)
	assert.Equal(t, "Role not found", msg)

	require.NoError(t, roleSvc.Delete(ctx, role.ID))
	_, err = roleSvc.Get(ctx, role.ID)
	st, _ = statusOf(t, err)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestRoleUpdate(t *testing.T) {
	roleSvc, _, _ := newServices(t)
	ctx := context.Background()

	role := mustCreateRole(t, roleSvc, "support")

	t.Run("不存在的 id", func(t *testing.T) {
		_, err := roleSvc.Update(ctx, "missing", UpdateRoleInput{Name: "x"})
		st, _ := statusOf(t, err)
		assert.Equal(t, http.StatusNotFound, st)
	})

	t.Run("空 name 保持原值", func(t *testing.T) {
		desc := "tier one"
		got, err := roleSvc.Update(ctx, role.ID, UpdateRoleInput{Name: "", Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "support", got.Name)
		assert.Equal(t, "tier one", got.Description)
	})

	t.Run("description 未提供时不动，显式空串要置空", func(t *testing.T) {
		got, err := roleSvc.Update(ctx, role.ID, UpdateRoleInput{Name: "helpdesk"})
		require.NoError(t, err)
		assert.Equal(t, "helpdesk", got.Name)
		assert.Equal(t, "tier one", got.Description)

		empty := ""
		got, err = roleSvc.Update(ctx, role.ID, UpdateRoleInput{Description: &empty})
		require.NoError(t, err)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, "helpdesk", got.Name)
	})

	t.Run("写入后重读扑空 → 404 而不是 nil 当成功", func(t *testing.T) {
		db := newTestDB(t)
		base := repo.NewRoleRepo(db)
		seed, err := NewRoleService(base, nil, time.Minute, zap.NewNop()).
			Create(ctx, CreateRoleInput{Name: "fleeting"})
		require.NoError(t, err)

		svc := NewRoleService(&vanishRepo{RoleRepository: base}, nil, time.Minute, zap.NewNop())
		got, err := svc.Update(ctx, seed.ID, UpdateRoleInput{Name: "renamed"})
		assert.Nil(t, got)
		st, msg := statusOf(t, err)
		assert.Equal(t, http.StatusNotFound, st)
		assert.Equal(t, "Role not found", msg)
	})

	t.Run("改名撞车报冲突", func(t *testing.T) {
		mustCreateRole(t, roleSvc, "auditor")
		_, err := roleSvc.Update(ctx, role.ID, UpdateRoleInput{Name: "auditor"})
		st, msg := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "Role name already exists", msg)
	})
}

// vanishRepo 第一次 FindLiveByID 正常返回，之后返回未命中，
// 模拟更新与重读之间角色被并发软删。
type vanishRepo struct {
	domain.RoleRepository
	finds int
}

func (r *vanishRepo) FindLiveByID(ctx context.Context, id string) (*domain.Role, error) {
	r.finds++
	if r.finds > 1 {
		return nil, nil
	}
	return r.RoleRepository.FindLiveByID(ctx, id)
}

func TestRoleDelete(t *testing.T) {
	roleSvc, _, _ := newServices(t)
	ctx := context.Background()

	role := mustCreateRole(t, roleSvc, "temp")
	require.NoError(t, roleSvc.Delete(ctx, role.ID))

	// 已软删再删 → 404，不会返回成功
	err := roleSvc.Delete(ctx, role.ID)
	st, msg := statusOf(t, err)
	assert.Equal(t, http.StatusNotFound, st)
	assert.Equal(t, "Role not found", msg)

	err = roleSvc.Delete(ctx, "never-existed")
	st, _ = statusOf(t, err)
	assert.Equal(t, http.StatusNotFound, st)
}
