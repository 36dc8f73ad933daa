package reviews

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/apperr"
	"reviewhub/internal/auth"
	"reviewhub/internal/authz"
	"reviewhub/internal/events"
	"reviewhub/internal/items"
	"reviewhub/pkg/models"
)

const maxTextLen = 1000

type Handler struct {
	Repo  *Repo
	Items *items.Repo
	Hub   *events.Hub
}

func NewHandler(repo *Repo, itemsRepo *items.Repo, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Items: itemsRepo, Hub: hub}
}

// RegisterItemRoutes mounts the per-item review routes on the /items group.
func (h *Handler) RegisterItemRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/:id/reviews", h.listByItem)
	rg.GET("/:id/reviews/:reviewID", h.getForItem)
	rg.POST("/:id/reviews", authMW, h.create)
}

// RegisterReviewRoutes mounts the review mutation routes on the /reviews group.
func (h *Handler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/me", authMW, h.listMine)
	rg.PUT("/:id", authMW, h.update)
	rg.DELETE("/:id", authMW, h.delete)
}

type reviewReq struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (h *Handler) bindReview(c *gin.Context) (*reviewReq, bool) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Write(c, apperr.Validation("invalid json"))
		return nil, false
	}
	req.Text = strings.TrimSpace(req.Text)
	if len(req.Text) > maxTextLen {
		apperr.Write(c, apperr.Validation("text must be at most 1000 chars"))
		return nil, false
	}
	if req.Rating < 1 || req.Rating > 5 {
		apperr.Write(c, apperr.Validation("rating must be between 1 and 5"))
		return nil, false
	}
	return &req, true
}

func (h *Handler) create(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	itemID := strings.TrimSpace(c.Param("id"))
	if itemID == "" {
		apperr.Write(c, apperr.Validation("item id required"))
		return
	}

	req, ok := h.bindReview(c)
	if !ok {
		return
	}

	review, err := h.Repo.Create(c.Request.Context(), u.ID, itemID, req.Text, req.Rating)
	if err != nil {
		apperr.Write(c, err)
		return
	}

	h.publish(events.Event{
		Type:     events.ReviewCreated,
		ActorID:  u.ID,
		ItemID:   review.ItemID,
		ReviewID: review.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "review created successfully",
		"review":  review,
	})
}

func (h *Handler) listByItem(c *gin.Context) {
	itemID := strings.TrimSpace(c.Param("id"))
	if itemID == "" {
		apperr.Write(c, apperr.Validation("item id required"))
		return
	}

	item, err := h.Items.GetByID(c.Request.Context(), itemID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if item == nil {
		apperr.Write(c, apperr.NotFound("item not found"))
		return
	}

	reviews, err := h.Repo.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) getForItem(c *gin.Context) {
	itemID := strings.TrimSpace(c.Param("id"))
	reviewID := strings.TrimSpace(c.Param("reviewID"))

	review, err := h.Repo.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if review == nil || review.ItemID != itemID {
		apperr.Write(c, apperr.NotFound("review not found"))
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) listMine(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	reviews, err := h.Repo.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) update(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	// existence before ownership: acting on a missing review is 404,
	// regardless of who asks
	review, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if review == nil {
		apperr.Write(c, apperr.NotFound("review not found"))
		return
	}
	if err := authz.RequireOwner(review.UserID, u.ID); err != nil {
		apperr.Write(c, err)
		return
	}

	req, ok := h.bindReview(c)
	if !ok {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, req.Text, req.Rating); err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}

	review.Text = req.Text
	review.Rating = req.Rating

	h.publish(events.Event{
		Type:     events.ReviewUpdated,
		ActorID:  u.ID,
		ItemID:   review.ItemID,
		ReviewID: review.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "review updated successfully",
		"review":  review,
	})
}

func (h *Handler) delete(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	review, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}
	if review == nil {
		apperr.Write(c, apperr.NotFound("review not found"))
		return
	}
	if err := authz.RequireOwner(review.UserID, u.ID); err != nil {
		apperr.Write(c, err)
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		apperr.Write(c, apperr.Internal(err))
		return
	}

	h.publish(events.Event{
		Type:     events.ReviewDeleted,
		ActorID:  u.ID,
		ItemID:   review.ItemID,
		ReviewID: review.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "review deleted successfully"})
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
