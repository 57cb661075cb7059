package repo

import (
	"strings"

	"gorm.io/gorm"

	"go-user-role-service/internal/domain"
)

// Live 读路径统一的软删过滤，所有查询都要挂上
func Live(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异导致漏判
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

// dupConflict 从驱动报错里认出冲突列。只在键名/约束名那一段里找列名，
// 不扫整条消息，否则重复值本身含别的列名时会张冠李戴。
// 认不出时退回不带字段名的冲突提示。
func dupConflict(err error, fields ...string) *domain.Error {
	key := dupKeyName(err.Error())
	for _, f := range fields {
		if strings.Contains(key, f) {
			return domain.Conflict(f + " already exists")
		}
	}
	return domain.Conflict("duplicate key")
}

// dupKeyName 截取报错里键名开始的部分：
//
//	mysql:    Duplicate entry 'x' for key 'users.uni_users_username'
//	postgres: duplicate key value violates unique constraint "uni_users_email"
//	sqlite:   UNIQUE constraint failed: users.username
//
// 提不出来时退回整条消息。
func dupKeyName(msg string) string {
	lower := strings.ToLower(msg)
	for _, marker := range []string{"for key ", "unique constraint ", "constraint failed: "} {
		if i := strings.Index(lower, marker); i >= 0 {
			return lower[i+len(marker):]
		}
	}
	return lower
}
