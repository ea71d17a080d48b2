package delivery

import (
	"net/http"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase domain.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc domain.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{useCase: uc, log: logger}
}

func (h *AuthHandler) RegisterRoutes(public, authed gin.IRouter) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	authed.PUT("/auth/profile", h.UpdateProfile)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind register request: %v", err)
		errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, signed, err := h.useCase.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		h.log.Warnf("Handler: Registration failed for %s: %v", req.Email, err)
		fail(c, err)
		return
	}

	h.log.Infof("Handler: User registered: %s", user.ID)
	c.JSON(http.StatusCreated, AuthResponse{Token: signed, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind login request: %v", err)
		errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, signed, err := h.useCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	h.log.Infof("Handler: Login successful for user %s", user.ID)
	c.JSON(http.StatusOK, AuthResponse{Token: signed, User: user})
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Name and phone are required")
		return
	}

	user, err := h.useCase.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone)
	if err != nil {
		h.log.Warnf("Handler: Profile update failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
