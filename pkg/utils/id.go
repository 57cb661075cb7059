package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 32 位十六进制主键（UUIDv4 去掉连字符）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
