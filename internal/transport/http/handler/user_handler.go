package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-user-role-service/internal/service"
	"go-user-role-service/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/users", h.list)
	g.GET("/users/:id", h.get)
	g.GET("/users/username/:username", h.getByUsername)
	g.POST("/users", h.create)
	g.POST("/users/activate", h.activate)
	g.PUT("/users/:id", h.update)
	g.DELETE("/users/:id", h.remove)
}

func (h *UserHandler) list(c *gin.Context) {
	users, pg, err := h.svc.List(c.Request.Context(), service.ListUsersInput{
		Search: c.Query("search"),
		Page:   atoiDefault(c.Query("page"), 1),
		Limit:  atoiDefault(c.Query("limit"), 10),
	})
	if err != nil {
		response.FailErr(c, err, "Error getting users")
		return
	}
	response.Paged(c, "Get all users successfully", users, pg)
}

func (h *UserHandler) get(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailErr(c, err, "Error getting user")
		return
	}
	response.OK(c, "Get user successfully", u)
}

func (h *UserHandler) getByUsername(c *gin.Context) {
	u, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FailErr(c, err, "Error getting user")
		return
	}
	response.OK(c, "Get user successfully", u)
}

type createUserReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
}

func (h *UserHandler) create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	u, err := h.svc.Create(c.Request.Context(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		RoleID:    req.Role,
	})
	if err != nil {
		response.FailErr(c, err, "Error creating user")
		return
	}
	response.Created(c, "User created successfully", u)
}

type activateReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (h *UserHandler) activate(c *gin.Context) {
	var req activateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	u, err := h.svc.Activate(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		response.FailErr(c, err, "Error activating user")
		return
	}
	response.OK(c, "User activated successfully", u)
}

// fullName/avatarUrl 用指针保留"显式置空"；其余字段空值即跳过
type updateUserReq struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
	Role      string  `json:"role"`
}

func (h *UserHandler) update(c *gin.Context) {
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		RoleID:    req.Role,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.FailErr(c, err, "Error updating user")
		return
	}
	response.OK(c, "User updated successfully", u)
}

func (h *UserHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailErr(c, err, "Error deleting user")
		return
	}
	response.Message(c, "User deleted successfully")
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
