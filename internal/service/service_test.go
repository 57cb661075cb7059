package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-user-role-service/internal/domain"
	"go-user-role-service/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库随连接存在，固定单连接
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Role{}, &domain.User{}))
	return db
}

func newServices(t *testing.T) (*RoleService, *UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	roleRepo := repo.NewRoleRepo(db)
	userRepo := repo.NewUserRepo(db)
	log := zap.NewNop()
	return NewRoleService(roleRepo, nil, time.Minute, log),
		NewUserService(userRepo, roleRepo, log),
		db
}

func mustCreateRole(t *testing.T, svc *RoleService, name string) *domain.Role {
	t.Helper()
	role, err := svc.Create(context.Background(), CreateRoleInput{Name: name})
	require.NoError(t, err)
	return role
}

func mustCreateUser(t *testing.T, svc *UserService, username, email, roleID string) *domain.User {
	t.Helper()
	u, err := svc.Create(context.Background(), CreateUserInput{
		Username: username,
		Password: "secret",
		Email:    email,
		RoleID:   roleID,
	})
	require.NoError(t, err)
	return u
}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	return de.Status, de.Message
}

// backdate 测试里控制 created_at，保证排序断言稳定
func backdate(t *testing.T, db *gorm.DB, table, id string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Exec(
		fmt.Sprintf("UPDATE %s SET created_at = ? WHERE id = ?", table), at, id,
	).Error)
}
