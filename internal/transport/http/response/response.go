package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-user-role-service/internal/domain"
	"go-user-role-service/internal/service"
)

// Resp 统一响应信封
type Resp struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Resp{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Resp{Success: true, Message: msg, Data: data})
}

// Message 成功但无 data（软删等）
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Resp{Success: true, Message: msg})
}

func Paged(c *gin.Context, msg string, data any, pg *service.Pagination) {
	c.JSON(http.StatusOK, Resp{Success: true, Message: msg, Data: data, Pagination: pg})
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Resp{Success: false, Message: msg})
}

// FailErr 业务错误走自身状态码；未知错误按 500 上报并带出底层信息
func FailErr(c *gin.Context, err error, fallbackMsg string) {
	var de *domain.Error
	if errors.As(err, &de) {
		Fail(c, de.Status, de.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, Resp{
		Success: false,
		Message: fallbackMsg,
		Error:   err.Error(),
	})
}
