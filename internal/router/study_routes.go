package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flashcard-trainer/internal/config"
	"github.com/iliyamo/flashcard-trainer/internal/handler"
	"github.com/iliyamo/flashcard-trainer/internal/middleware"
)

// RegisterStudy registers the card, review and progress endpoints under
// /v1. Every route requires a valid JWT. Review submissions additionally
// pass through a Redis token-bucket limiter so a runaway client cannot
// hammer the scheduler, and the read-heavy progress endpoints sit behind
// the Redis response cache.
func RegisterStudy(e *echo.Echo, cards *handler.FlashcardHandler, cats *handler.CategoryHandler, rev *handler.ReviewHandler, prog *handler.ProgressHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	// ---- Categories ----
	g.GET("/categories", cats.List)
	g.POST("/categories", cats.Create)
	g.DELETE("/categories/:id", cats.Delete)

	// ---- Flashcards ----
	g.GET("/flashcards", cards.List)
	g.POST("/flashcards", cards.Create)
	g.DELETE("/flashcards/:id", cards.Delete)

	// ---- Review ----
	g.GET("/review/today", rev.Today)
	limited := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	limited.POST("/review/result", rev.Result)

	// ---- Progress ----
	cached := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	cached.GET("/progress/stats", prog.Stats)
	cached.GET("/progress/chart", prog.Chart)
	cached.GET("/progress/history", prog.History)
}
