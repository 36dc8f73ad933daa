package comments

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/apperr"
	"reviewhub/internal/auth"
	"reviewhub/internal/authz"
	"reviewhub/internal/events"
	"reviewhub/internal/reviews"
	"reviewhub/pkg/models"
)

const maxTextLen = 1000

type Handler struct {
	Repo    *Repo
	Reviews *reviews.Repo
	Hub     *events.Hub
}

func NewHandler(repo *Repo, reviewsRepo *reviews.Repo, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Reviews: reviewsRepo, Hub: hub}
}

// RegisterReviewRoutes mounts the per-review comment routes on the
// /reviews group.
func (h *Handler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/:id/comments", h.listByReview)
	rg.POST("/:id/comments", authMW, h.create)
}

// RegisterCommentRoutes mounts the comment routes on the /comments group.
func (h *Handler) RegisterCommentRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/me", authMW, h.listMine)
	rg.DELETE("/:id", authMW, h.delete)
}

type createReq struct {
	Text string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	reviewID := strings.TrimSpace(c.Param("id"))
	if reviewID == "" {
		apperr.Write(c, apperr.Validation("review id required"))
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Write(c, apperr.Validation("invalid json"))
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		apperr.Write(c, apperr.Validation("text required"))
		return
	}
	if len(req.Text) > maxTextLen {
		apperr.Write(c, apperr.Validation("text must be at most 1000 chars"))
		return
	}

	comment, err := h.Repo.Create(c.Request.Context(), u.ID, reviewID, req.Text)
	if err != nil {
		apperr.Write(c, err)
		return
	}

	h.publish(events.Event{
		Type:      events.CommentCreated,
		ActorID:   u.ID,
		ReviewID:  comment.ReviewID,
		CommentID: comment.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "comment added successfully",
		"comment": comment,
	})
}

func (h *Handler) listByReview(c *gin.Context) {
	reviewID := strings.TrimSpace(c.Param("id"))
	if reviewID == "" {
		apperr.Write(c, apperr.Validation("review id required"))
		return
	}

	review, err := h.Reviews.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if review == nil {
		apperr.Write(c, apperr.NotFound("review not found"))
		return
	}

	comments, err := h.Repo.ListByReview(c.Request.Context(), reviewID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) listMine(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	comments, err := h.Repo.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) delete(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	// existence before ownership, same order as review mutations
	comment, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if comment == nil {
		apperr.Write(c, apperr.NotFound("comment not found"))
		return
	}
	if err := authz.RequireOwner(comment.UserID, u.ID); err != nil {
		apperr.Write(c, err)
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}

	h.publish(events.Event{
		Type:      events.CommentDeleted,
		ActorID:   u.ID,
		ReviewID:  comment.ReviewID,
		CommentID: comment.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

func (h *Handler) publish(ev events.Event) {
	if h.Hub != nil {
		h.Hub.Broadcast(ev)
	}
}

func currentUser(c *gin.Context) *models.User {
	u := auth.CurrentUser(c)
	if u == nil {
		apperr.Write(c, apperr.Authentication())
	}
	return u
}
