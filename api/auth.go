package api

import (
	"net/http"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/ratelimit"
	"github.com/Domenick1991/flightshop/internal/service/users"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    users.UserUseCase
	sessions session.Store
	limiter  *ratelimit.KeyedLimiter
}

type registerRequest struct {
	Name     string `form:"name" json:"name" binding:"required,max=100"`
	Username string `form:"username" json:"username" binding:"required,max=100"`
	Password string `form:"password" json:"password" binding:"required"`
	Confirm  string `form:"confirm" json:"confirm" binding:"required"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	DOB      string `form:"dob" json:"dob"`
	Gender   string `form:"gender" json:"gender"`
	Avatar   string `form:"avatar" json:"avatar" binding:"omitempty,url"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func NewAuthHandler(users users.UserUseCase, sessions session.Store, limiter *ratelimit.KeyedLimiter) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, limiter: limiter}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.GET("/register", h.state)
	router.POST("/register", h.register)
	router.GET("/login", h.state)
	router.GET("/logout", h.logout)

	limited := router.Group("/")
	if h.limiter != nil {
		limited.Use(RateLimit(h.limiter))
	}
	limited.POST("/login", h.login)
	limited.POST("/login-admin", h.loginAdmin)
}

func (h *AuthHandler) state(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": sess.Authenticated(),
		"user_id":       sess.UserID,
		"role":          sess.Role,
		"cart_stats":    sess.Cart.Stats(),
	})
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	_, err := h.users.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Confirm:  req.Confirm,
		Email:    req.Email,
		DOB:      req.DOB,
		Gender:   req.Gender,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) login(c *gin.Context) {
	h.authenticate(c, "", "/")
}

func (h *AuthHandler) loginAdmin(c *gin.Context) {
	h.authenticate(c, domain.UserRoleAdmin, "/admin")
}

func (h *AuthHandler) authenticate(c *gin.Context, role domain.UserRole, next string) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password, role)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := rotateSession(c, h.sessions, user); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) logout(c *gin.Context) {
	logout(c, h.sessions)
}

func logout(c *gin.Context, store session.Store) {
	sess := currentSession(c)
	if sess.Authenticated() {
		sess.Logout()
		if err := store.Put(c.Request.Context(), sess); err != nil {
			respondError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/login")
}
