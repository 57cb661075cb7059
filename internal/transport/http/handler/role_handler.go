package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-user-role-service/internal/service"
	"go-user-role-service/internal/transport/http/response"
)

type RoleHandler struct {
	svc *service.RoleService
}

func NewRoleHandler(svc *service.RoleService) *RoleHandler { return &RoleHandler{svc: svc} }

func (h *RoleHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/roles", h.list)
	g.GET("/roles/:id", h.get)
	g.POST("/roles", h.create)
	g.PUT("/roles/:id", h.update)
	g.DELETE("/roles/:id", h.remove)
}

func (h *RoleHandler) list(c *gin.Context) {
	roles, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.FailErr(c, err, "Error getting roles")
		return
	}
	response.OK(c, "Get all roles successfully", roles)
}

func (h *RoleHandler) get(c *gin.Context) {
	role, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailErr(c, err, "Error getting role")
		return
	}
	response.OK(c, "Get role successfully", role)
}

type createRoleReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *RoleHandler) create(c *gin.Context) {
	var req createRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	role, err := h.svc.Create(c.Request.Context(), service.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FailErr(c, err, "Error creating role")
		return
	}
	response.Created(c, "Role created successfully", role)
}

// description 用指针区分"没传"和"显式传了空串"；name 空串等同没传
type updateRoleReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *RoleHandler) update(c *gin.Context) {
	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	role, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FailErr(c, err, "Error updating role")
		return
	}
	response.OK(c, "Role updated successfully", role)
}

func (h *RoleHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailErr(c, err, "Error deleting role")
		return
	}
	response.Message(c, "Role deleted successfully")
}
