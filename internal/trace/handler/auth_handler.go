package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "failed to register user")
		return
	}
	Created(c, user)
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "failed to login")
		return
	}
	Success(c, gin.H{"token": token, "user": user})
}

// GetCurrentUser 当前用户
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		Fail(c, err, "failed to fetch user")
		return
	}
	Success(c, user)
}

// UpdateCurrentUser 更新当前用户资料
// PATCH /api/v1/auth/me
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err, "failed to update profile")
		return
	}
	Success(c, user)
}
