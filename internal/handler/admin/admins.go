package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/service"
)

// AddAdminRequest 新增管理员请求
type AddAdminRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateAdminRequest 更新管理员请求，空字段保持原值
type UpdateAdminRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// ListAdmins 列出管理员
// @Summary      管理员列表
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/admins [get]
// @Security     BearerAuth
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admins":  admins,
	})
}

// AddAdmin 新增管理员
// @Summary      新增管理员
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Param        request  body      AddAdminRequest  true  "管理员信息"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/admin/admins [post]
// @Security     BearerAuth
func (h *Handler) AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "All fields are required"})
		return
	}

	admin, err := h.adminService.AddAdmin(c.Request.Context(), service.AddAdminInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"admin":   admin,
	})
}

// UpdateAdmin 更新管理员资料
// @Summary      更新管理员
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "管理员ID"
// @Param        request  body      UpdateAdminRequest  true  "更新字段"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/admin/admins/{id} [put]
// @Security     BearerAuth
func (h *Handler) UpdateAdmin(c *gin.Context) {
	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	admin, err := h.adminService.UpdateAdmin(c.Request.Context(), c.Param("id"), req.FirstName, req.LastName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   admin,
	})
}

// DeleteAdmin 删除管理员
// @Summary      删除管理员
// @Tags         管理后台
// @Produce      json
// @Param        id   path      string  true  "管理员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/admins/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteAdmin(c *gin.Context) {
	if err := h.adminService.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin deleted",
	})
}
