package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/aggregate"
	"github.com/bigtop/showrunner/internal/model"
	"github.com/bigtop/showrunner/internal/repository"
)

// CreateShow handles POST /api/shows. The new show is returned with its
// server-assigned id and creation timestamp; clients treat the newest show as
// their selected one.
func (h *ProgramHandler) CreateShow(c echo.Context) error {
	var in model.ShowCreate
	if !bindAndValidate(c, &in) {
		return nil
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fieldError(c, "title", "must not be empty")
	}
	show := &model.Show{
		Title:       title,
		Date:        in.Date,
		Venue:       in.Venue,
		Description: in.Description,
	}
	if err := h.ShowRepo.Create(c.Request().Context(), show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create show"})
	}
	return c.JSON(http.StatusCreated, show)
}

// ListShows handles GET /api/shows and returns every show, newest first.
func (h *ProgramHandler) ListShows(c echo.Context) error {
	shows, err := h.ShowRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	return c.JSON(http.StatusOK, shows)
}

// GetShow handles GET /api/shows/:id.
func (h *ProgramHandler) GetShow(c echo.Context) error {
	show, err := h.ShowRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, show)
}

// UpdateShow handles PUT /api/shows/:id. Only provided fields change; the id
// and creation time are immutable.
func (h *ProgramHandler) UpdateShow(c echo.Context) error {
	var in model.ShowUpdate
	if !bindAndValidate(c, &in) {
		return nil
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return fieldError(c, "title", "must not be empty")
	}
	id := c.Param("id")
	unlock := h.Locks.Lock(id)
	defer unlock()
	show, err := h.ShowRepo.Update(c.Request().Context(), id, in)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update show"})
	}
	return c.JSON(http.StatusOK, show)
}

// DeleteShow handles DELETE /api/shows/:id. The show's acts and expenses are
// removed with it in one transaction; 404 when the show does not exist.
func (h *ProgramHandler) DeleteShow(c echo.Context) error {
	id := c.Param("id")
	unlock := h.Locks.Lock(id)
	defer unlock()
	if err := h.ShowRepo.DeleteCascade(c.Request().Context(), id); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ShowSummary handles GET /api/shows/:id/summary. Totals are recomputed from
// the current act and expense collections on every request.
func (h *ProgramHandler) ShowSummary(c echo.Context) error {
	ctx := c.Request().Context()
	show, err := h.ShowRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	acts, err := h.ActRepo.ListByShow(ctx, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load acts"})
	}
	expenses, err := h.ExpenseRepo.ListByShow(ctx, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load expenses"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id":        show.ID,
		"title":          show.Title,
		"act_count":      len(acts),
		"total_duration": aggregate.TotalDuration(acts),
		"expense_count":  len(expenses),
		"total_expenses": json.Number(aggregate.TotalExpenses(expenses).StringFixed(2)),
	})
}
