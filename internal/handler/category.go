package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flashcard-trainer/internal/model"
	"github.com/iliyamo/flashcard-trainer/internal/repository"
)

// CategoryHandler serves a user's flashcard categories.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(cats *repository.CategoryRepo) *CategoryHandler {
	if cats == nil {
		panic("nil repository passed to NewCategoryHandler")
	}
	return &CategoryHandler{Categories: cats}
}

type createCategoryReq struct {
	Name string `json:"name"`
}

type categoryResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns all categories of the authenticated user, ordered by name.
func (h *CategoryHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list categories failed"})
	}
	out := make([]categoryResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryResp{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": out})
}

// Create adds a category. Names are unique per user; a duplicate returns
// the existing category with 200 instead of an error, so clients can use
// this endpoint as get-or-create.
func (h *CategoryHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat := model.Category{UserID: uid, Name: name}
	if err := h.Categories.Create(ctx, &cat); err != nil {
		if err == repository.ErrCategoryExists {
			existing, err := h.Categories.GetByNameAndUser(ctx, name, uid)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load category failed"})
			}
			return c.JSON(http.StatusOK, categoryResp{ID: existing.ID, Name: existing.Name, CreatedAt: existing.CreatedAt})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
	}
	return c.JSON(http.StatusCreated, categoryResp{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt})
}

// Delete removes a category. Cards in the category are detached, not
// deleted; their review history survives.
func (h *CategoryHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.Delete(ctx, id, uid); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete category failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
