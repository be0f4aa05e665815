package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flashcard-trainer/internal/config"
	"github.com/iliyamo/flashcard-trainer/internal/database"
	"github.com/iliyamo/flashcard-trainer/internal/handler"
	"github.com/iliyamo/flashcard-trainer/internal/queue"
	"github.com/iliyamo/flashcard-trainer/internal/repository"
	"github.com/iliyamo/flashcard-trainer/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	categories := repository.NewCategoryRepo(db)
	flashcards := repository.NewFlashcardRepo(db)
	schedules := repository.NewScheduleRepo(db)
	activities := repository.NewActivityRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catH := handler.NewCategoryHandler(categories)
	cardH := handler.NewFlashcardHandler(flashcards, categories)
	revH := handler.NewReviewHandler(cfg, schedules, flashcards, activities)
	progH := handler.NewProgressHandler(schedules, flashcards, activities)

	// Background consumer that appends committed review events to
	// logs/review.log. Runs its own reconnect loop.
	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStudy(e, cardH, catH, revH, progH, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
