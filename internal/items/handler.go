package items

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/apperr"
	"reviewhub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		apperr.Write(c, apperr.Validation("item id required"))
		return
	}

	item, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if item == nil {
		apperr.Write(c, apperr.NotFound("item not found"))
		return
	}
	c.JSON(http.StatusOK, item)
}
