package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flashcard-trainer/internal/repository"
	"github.com/iliyamo/flashcard-trainer/internal/srs"
)

// ProgressHandler serves learning statistics derived from the schedule
// and activity tables. Nothing here is denormalized: stage counts are
// recomputed from the live scheduling state on every request.
type ProgressHandler struct {
	Schedules  *repository.ScheduleRepo
	Cards      *repository.FlashcardRepo
	Activities *repository.ActivityRepo
}

func NewProgressHandler(s *repository.ScheduleRepo, f *repository.FlashcardRepo, a *repository.ActivityRepo) *ProgressHandler {
	if s == nil || f == nil || a == nil {
		panic("nil repository passed to NewProgressHandler")
	}
	return &ProgressHandler{Schedules: s, Cards: f, Activities: a}
}

type statsResp struct {
	TotalCards     int     `json:"total_cards"`
	NewCards       int     `json:"new_cards"`
	StudyingCards  int     `json:"studying_cards"`
	MasteredCards  int     `json:"mastered_cards"`
	MasteryPercent float64 `json:"mastery_percent"`
	DueToday       int     `json:"due_today"`
	Streak         int     `json:"streak"`
}

type chartPoint struct {
	Date       string `json:"date"`
	Reviews    int    `json:"reviews"`
	Cumulative int    `json:"cumulative"`
}

// Stats returns the headline numbers: card counts per learning stage,
// overall mastery percentage, how many cards are due right now, and the
// current study streak.
func (h *ProgressHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	today := srs.DateOf(now)

	states, err := h.Schedules.ListStates(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedules failed"})
	}
	total, err := h.Cards.CountByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count flashcards failed"})
	}
	var resp statsResp
	resp.TotalCards = total
	for _, st := range states {
		switch srs.Classify(st.Repetitions, st.EaseFactor) {
		case srs.New:
			resp.NewCards++
		case srs.Studying:
			resp.StudyingCards++
		case srs.Mastered:
			resp.MasteredCards++
		}
	}
	// A card whose schedule row does not exist yet has never been
	// reviewed; count it as new.
	if missing := total - len(states); missing > 0 {
		resp.NewCards += missing
	}
	if resp.TotalCards > 0 {
		pct := float64(resp.MasteredCards) / float64(resp.TotalCards) * 100
		resp.MasteryPercent = math.Round(pct*10) / 10
	}

	items, err := h.Schedules.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load queue failed"})
	}
	entries := make([]srs.Entry, len(items))
	for i, it := range items {
		entries[i] = srs.Entry{CardID: it.FlashcardID, Due: it.NextReviewDate}
	}
	resp.DueToday = len(srs.DueQueue(entries, now, 0))

	active, err := h.Activities.ActiveDaysSince(ctx, uid, today.AddDate(0, 0, -srs.StreakHorizon))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
	}
	resp.Streak = srs.Streak(active, now)

	return c.JSON(http.StatusOK, resp)
}

// Chart returns the last 30 days of review activity as a series with a
// running cumulative total, suitable for a progress graph. Days with no
// activity appear with zero reviews so the series has no holes.
func (h *ProgressHandler) Chart(c echo.Context) error {
	return h.activitySeries(c, 30, true)
}

// History returns the last 14 days of review activity without the
// cumulative totals.
func (h *ProgressHandler) History(c echo.Context) error {
	return h.activitySeries(c, 14, false)
}

func (h *ProgressHandler) activitySeries(c echo.Context, days int, cumulative bool) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	today := srs.DateOf(time.Now().UTC())
	since := today.AddDate(0, 0, -(days - 1))

	scores, err := h.Activities.DailyScoresSince(ctx, uid, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
	}
	byDate := make(map[time.Time]int, len(scores))
	for _, s := range scores {
		byDate[srs.DateOf(s.ActivityDate)] = s.Score
	}

	running := 0
	if cumulative {
		running, err = h.Activities.TotalScoreBefore(ctx, uid, since)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
		}
	}

	points := make([]chartPoint, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		n := byDate[d]
		running += n
		p := chartPoint{Date: d.Format("2006-01-02"), Reviews: n}
		if cumulative {
			p.Cumulative = running
		}
		points = append(points, p)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"days":   days,
		"series": points,
	})
}
