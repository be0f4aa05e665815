package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flashcard-trainer/internal/config"
	"github.com/iliyamo/flashcard-trainer/internal/queue"
	"github.com/iliyamo/flashcard-trainer/internal/repository"
	queue_publisher "github.com/iliyamo/flashcard-trainer/internal/service"
	"github.com/iliyamo/flashcard-trainer/internal/srs"
)

// ReviewHandler serves the study queue and records review results.
type ReviewHandler struct {
	Cfg        config.Config
	Schedules  *repository.ScheduleRepo
	Cards      *repository.FlashcardRepo
	Activities *repository.ActivityRepo
}

func NewReviewHandler(cfg config.Config, s *repository.ScheduleRepo, f *repository.FlashcardRepo, a *repository.ActivityRepo) *ReviewHandler {
	if s == nil || f == nil || a == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Cfg: cfg, Schedules: s, Cards: f, Activities: a}
}

type queueCardResp struct {
	FlashcardID uint64 `json:"flashcard_id"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	DueDate     string `json:"due_date"`
}

type reviewResultReq struct {
	FlashcardID uint64 `json:"flashcard_id"`
	Quality     int    `json:"quality"`
}

type reviewResultResp struct {
	FlashcardID  uint64    `json:"flashcard_id"`
	Quality      int       `json:"quality"`
	Repetitions  int       `json:"repetitions"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	NextReview   string    `json:"next_review"`
	Stage        srs.Stage `json:"stage"`
}

// Today returns the cards to study now. Without a category it is the due
// queue: cards whose next review date has arrived, earliest first. With
// ?category_id= it is a session queue over that category, where the due
// filter is waived because the user explicitly asked to study it.
func (h *ReviewHandler) Today(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var items []repository.QueueItem
	rawCat := c.QueryParam("category_id")
	if rawCat != "" {
		catID, err := strconv.ParseUint(rawCat, 10, 64)
		if err != nil || catID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		items, err = h.Schedules.ListByUserAndCategory(ctx, uid, catID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load queue failed"})
		}
	} else {
		items, err = h.Schedules.ListByUser(ctx, uid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load queue failed"})
		}
	}

	entries := make([]srs.Entry, len(items))
	byID := make(map[uint64]repository.QueueItem, len(items))
	for i, it := range items {
		entries[i] = srs.Entry{CardID: it.FlashcardID, Due: it.NextReviewDate}
		byID[it.FlashcardID] = it
	}

	var selected []srs.Entry
	if rawCat != "" {
		selected = srs.SessionQueue(entries, h.Cfg.ReviewQueueCap)
	} else {
		selected = srs.DueQueue(entries, time.Now().UTC(), h.Cfg.ReviewQueueCap)
	}

	out := make([]queueCardResp, 0, len(selected))
	for _, e := range selected {
		it := byID[e.CardID]
		out = append(out, queueCardResp{
			FlashcardID: it.FlashcardID,
			Front:       it.Front,
			Back:        it.Back,
			DueDate:     srs.DateOf(it.NextReviewDate).Format("2006-01-02"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(out),
		"flashcards": out,
	})
}

// Result records a graded review. The schedule row is locked for the
// duration of the transaction so concurrent submissions for the same card
// apply one at a time, each reading the other's committed state. Grades
// outside 0..5 are rejected, never clamped. The scheduler update and the
// daily activity bump commit together; the broker event goes out only
// after the commit.
func (h *ReviewHandler) Result(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewResultReq
	if err := c.Bind(&req); err != nil || req.FlashcardID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flashcard_id required"})
	}
	grade := srs.Grade(req.Quality)
	if !grade.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quality must be between 0 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	today := srs.DateOf(now)

	tx, err := h.Schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row, err := h.Schedules.GetForUpdateTx(ctx, tx, uid, req.FlashcardID)
	if err == repository.ErrScheduleNotFound {
		// Card created before schedules existed, or never studied: make
		// sure the card is really the user's, then seed a default record.
		if _, cerr := h.Cards.GetByIDAndUser(ctx, req.FlashcardID, uid); cerr != nil {
			if cerr == repository.ErrFlashcardNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "flashcard not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load flashcard failed"})
		}
		row, err = h.Schedules.CreateDefaultTx(ctx, tx, uid, req.FlashcardID, today)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedule failed"})
	}

	state := srs.State{
		Repetitions:  row.Repetitions,
		EaseFactor:   row.EaseFactor,
		IntervalDays: row.IntervalDays,
		Due:          row.NextReviewDate,
	}
	next, err := srs.Update(state, grade, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quality must be between 0 and 5"})
	}

	if err := h.Schedules.UpdateStateTx(ctx, tx, row.ID, next.Repetitions, next.EaseFactor, next.IntervalDays, next.Due); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
	}
	if err := h.Activities.RecordTx(ctx, tx, uid, today); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record activity failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	stage := srs.Classify(next.Repetitions, next.EaseFactor)

	// Fire-and-forget notification; scheduling state is already durable.
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishReviewRecorded(pubCtx, queue.ReviewRecordedEvent{
			UserID:       uid,
			FlashcardID:  req.FlashcardID,
			Grade:        int(grade),
			Repetitions:  next.Repetitions,
			EaseFactor:   next.EaseFactor,
			IntervalDays: next.IntervalDays,
			NextReview:   next.Due.Format("2006-01-02"),
			Stage:        stage.String(),
			ReviewedAt:   now.Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, reviewResultResp{
		FlashcardID:  req.FlashcardID,
		Quality:      int(grade),
		Repetitions:  next.Repetitions,
		EaseFactor:   next.EaseFactor,
		IntervalDays: next.IntervalDays,
		NextReview:   next.Due.Format("2006-01-02"),
		Stage:        stage,
	})
}
