// Package app assembles the router from injected collaborators so main
// and the tests build the exact same server.
package app

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/auth"
	"reviewhub/internal/comments"
	"reviewhub/internal/events"
	"reviewhub/internal/items"
	"reviewhub/internal/reviews"
	"reviewhub/pkg/utils"
)

func NewRouter(db *sql.DB, authCfg utils.AuthConfig) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_clients": hub.Count()})
	})

	tokens := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokens)
	authHandler.RegisterRoutes(router.Group("/auth"))
	router.GET("/users", authHandler.ListUsers)

	authMW := auth.AuthMiddleware(tokens, authRepo)

	itemsRepo := items.NewRepo(db)
	itemsHandler := items.NewHandler(itemsRepo)
	itemsGroup := router.Group("/items")
	itemsHandler.RegisterRoutes(itemsGroup)

	reviewsRepo := reviews.NewRepo(db)
	reviewsHandler := reviews.NewHandler(reviewsRepo, itemsRepo, hub)
	reviewsHandler.RegisterItemRoutes(itemsGroup, authMW)
	reviewsGroup := router.Group("/reviews")
	reviewsHandler.RegisterReviewRoutes(reviewsGroup, authMW)

	commentsRepo := comments.NewRepo(db)
	commentsHandler := comments.NewHandler(commentsRepo, reviewsRepo, hub)
	commentsHandler.RegisterReviewRoutes(reviewsGroup, authMW)
	commentsHandler.RegisterCommentRoutes(router.Group("/comments"), authMW)

	return router
}
