package controllers

import (
	"errors"
	"strings"

	"tapr/pkg/metrics"
	"tapr/pkg/resp"
	"tapr/services"
	"tapr/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72,bcryptlen"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

type AuthController struct {
	Auth    *services.AuthService
	Cookie  utils.SessionCookie
	Metrics *metrics.Metrics
}

func NewAuthController(auth *services.AuthService, cookie utils.SessionCookie, m *metrics.Metrics) *AuthController {
	return &AuthController{Auth: auth, Cookie: cookie, Metrics: m}
}

// POST /api/auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := a.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.Metrics.RecordAuth("register", outcome(err))
		writeServiceError(c, err)
		return
	}
	a.Metrics.RecordAuth("register", "ok")

	a.Cookie.Attach(c.Writer, token)
	resp.Created(c, user.Public())
}

// POST /api/auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.Metrics.RecordAuth("login", outcome(err))
		writeServiceError(c, err)
		return
	}
	a.Metrics.RecordAuth("login", "ok")

	a.Cookie.Attach(c.Writer, token)
	resp.OK(c, user.Public())
}

// POST /api/auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	a.Cookie.Clear(c.Writer)
	a.Metrics.RecordAuth("logout", "ok")
	resp.OK(c, gin.H{"loggedOut": true})
}

// GET /api/auth/me
func (a *AuthController) Me(c *gin.Context) {
	resp.OK(c, utils.CurrentUser(c))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, services.ErrEmailTaken):
		return "conflict"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "rejected"
	case errors.Is(err, services.ErrInvalidName), errors.Is(err, services.ErrPasswordTooLong):
		return "invalid"
	default:
		return "error"
	}
}
