package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flashcard-trainer/internal/model"
	"github.com/iliyamo/flashcard-trainer/internal/repository"
	"github.com/iliyamo/flashcard-trainer/internal/srs"
)

// FlashcardHandler serves card CRUD for the authenticated user.
type FlashcardHandler struct {
	Cards      *repository.FlashcardRepo
	Categories *repository.CategoryRepo
}

func NewFlashcardHandler(cards *repository.FlashcardRepo, cats *repository.CategoryRepo) *FlashcardHandler {
	if cards == nil || cats == nil {
		panic("nil repository passed to NewFlashcardHandler")
	}
	return &FlashcardHandler{Cards: cards, Categories: cats}
}

type createFlashcardReq struct {
	Front      string  `json:"front"`
	Back       string  `json:"back"`
	CategoryID *uint64 `json:"category_id"`
	Category   string  `json:"category"` // name form; created on the fly if missing
}

type flashcardResp struct {
	ID           uint64    `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	CategoryID   *uint64   `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// List returns all cards of the user with their category names.
func (h *FlashcardHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cards, err := h.Cards.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list flashcards failed"})
	}
	out := make([]flashcardResp, 0, len(cards))
	for _, card := range cards {
		out = append(out, flashcardResp{
			ID:           card.ID,
			Front:        card.Front,
			Back:         card.Back,
			CategoryID:   card.CategoryID,
			CategoryName: card.CategoryName,
			CreatedAt:    card.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"flashcards": out})
}

// Create adds a card and seeds its review record, due today so new cards
// show up in the next study queue. The category may be given by id or by
// name; an unknown name is created on the fly.
func (h *FlashcardHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createFlashcardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Front = strings.TrimSpace(req.Front)
	req.Back = strings.TrimSpace(req.Back)
	if req.Front == "" || req.Back == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "front/back required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var catID *uint64
	var catName string
	switch {
	case req.CategoryID != nil:
		cat, err := h.Categories.GetByIDAndUser(ctx, *req.CategoryID, uid)
		if err != nil {
			if err == repository.ErrCategoryNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load category failed"})
		}
		catID, catName = &cat.ID, cat.Name
	case strings.TrimSpace(req.Category) != "":
		name := strings.TrimSpace(req.Category)
		cat, err := h.Categories.GetByNameAndUser(ctx, name, uid)
		if err == repository.ErrCategoryNotFound {
			cat = model.Category{UserID: uid, Name: name}
			cerr := h.Categories.Create(ctx, &cat)
			if cerr == repository.ErrCategoryExists {
				// Lost a race against a concurrent create; use the winner.
				cat, cerr = h.Categories.GetByNameAndUser(ctx, name, uid)
			}
			if cerr != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
			}
		} else if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load category failed"})
		}
		catID, catName = &cat.ID, cat.Name
	}

	card := model.Flashcard{UserID: uid, CategoryID: catID, Front: req.Front, Back: req.Back}
	if err := h.Cards.Create(ctx, &card, srs.DateOf(time.Now().UTC())); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flashcard failed"})
	}
	return c.JSON(http.StatusCreated, flashcardResp{
		ID:           card.ID,
		Front:        card.Front,
		Back:         card.Back,
		CategoryID:   card.CategoryID,
		CategoryName: catName,
		CreatedAt:    card.CreatedAt,
	})
}

// Delete removes a card together with its review record.
func (h *FlashcardHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flashcard id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cards.Delete(ctx, id, uid); err != nil {
		if err == repository.ErrFlashcardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flashcard not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete flashcard failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
