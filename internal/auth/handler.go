package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/apperr"
	"reviewhub/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Tokens TokenService
}

func NewHandler(repo *Repo, tokens TokenService) *Handler {
	return &Handler{Repo: repo, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.GET("/me", AuthMiddleware(h.Tokens, h.Repo), h.me)
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Write(c, apperr.Validation("invalid json"))
		return
	}

	// usernames are case-sensitive; no normalization beyond trimming
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || len(req.Username) > 20 {
		apperr.Write(c, apperr.Validation("username must be 1-20 chars"))
		return
	}
	if len(req.Password) < 6 || len(req.Password) > 72 {
		apperr.Write(c, apperr.Validation("password must be 6-72 chars"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}

	u := models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	// no pre-check: duplicate usernames come back from the store as a
	// conflict, so concurrent registrations cannot race past each other
	if err := h.Repo.CreateUser(c.Request.Context(), u); err != nil {
		apperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
		},
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Write(c, apperr.Validation("invalid json"))
		return
	}
	if req.Username == "" || req.Password == "" {
		apperr.Write(c, apperr.Validation("username and password required"))
		return
	}

	u, err := h.Repo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if u == nil {
		// don't reveal which part failed
		apperr.Write(c, apperr.Authentication())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		apperr.Write(c, apperr.Authentication())
		return
	}

	token, exp, err := h.Tokens.Sign(u)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
		},
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) me(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		apperr.Write(c, apperr.Authentication())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       u.ID,
		"username": u.Username,
	})
}

// ListUsers serves the public user directory (ids and usernames only).
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repo.List(c.Request.Context())
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}
