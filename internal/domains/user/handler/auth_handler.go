package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bootcamp-backend/internal/domains/user/model"
	"bootcamp-backend/internal/domains/user/service"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/internal/shared/response"
)

// CookieConfig controls the token cookie set on login
type CookieConfig struct {
	Expire time.Duration
	Secure bool
}

// =====================================================
// AUTH HANDLER
// =====================================================

type AuthHandler struct {
	svc    service.Service
	cookie CookieConfig
}

func NewAuthHandler(svc service.Service, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

// Register
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	signed, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, signed)
}

// Login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Please provide an email and password"))
		return
	}

	signed, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, signed)
}

// Logout overwrites the token cookie
// GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	response.Success(c, http.StatusOK, gin.H{})
}

// Me
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}

	u, err := h.svc.Me(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// UpdateDetails changes name and email
// PUT /api/v1/auth/updatedetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}

	var req model.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	u, err := h.svc.UpdateDetails(c.Request.Context(), p.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// UpdatePassword
// PUT /api/v1/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
		return
	}

	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	signed, err := h.svc.UpdatePassword(c.Request.Context(), p.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, signed)
}

// ForgotPassword
// POST /api/v1/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email sent")
}

// ResetPassword
// PUT /api/v1/auth/resetpassword/:resettoken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	signed, err := h.svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, signed)
}

// sendToken returns the token in the body and as an HttpOnly cookie
func (h *AuthHandler) sendToken(c *gin.Context, status int, signed string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.Expire),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.JSON(status, model.AuthResponse{Success: true, Token: signed})
}
