package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDupConflictFieldAttribution(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"mysql username",
			errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.uni_users_username'"),
			"username already exists",
		},
		{
			// 重复的 email 值里恰好含 "username"，不能错报成 username 冲突
			"mysql email 值里含别的列名",
			errors.New("Error 1062 (23000): Duplicate entry 'username@x.io' for key 'users.uni_users_email'"),
			"email already exists",
		},
		{
			"postgres",
			errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`),
			"email already exists",
		},
		{
			"sqlite",
			errors.New("UNIQUE constraint failed: users.username"),
			"username already exists",
		},
		{
			"提不出键名时退回通用提示",
			errors.New("duplicate key"),
			"duplicate key",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dupConflict(tc.err, "username", "email")
			assert.Equal(t, tc.want, got.Message)
		})
	}
}

func TestIsDupKey(t *testing.T) {
	assert.False(t, isDupKey(nil))
	assert.False(t, isDupKey(errors.New("connection refused")))
	assert.True(t, isDupKey(errors.New("UNIQUE constraint failed: roles.name")))
	assert.True(t, isDupKey(errors.New(`duplicate key value violates unique constraint "uni_roles_name"`)))
}
