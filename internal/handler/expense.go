package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/model"
	"github.com/bigtop/showrunner/internal/queue"
	"github.com/bigtop/showrunner/internal/repository"
	queue_publisher "github.com/bigtop/showrunner/internal/service"
)

// CreateExpense handles POST /api/expenses. Category, amount and description
// are required; the amount must be non-negative and an act reference, when
// present, must name an act of the same show. An absent or empty act_id is
// normalized to "no linked act". A recorded event is published fire-and-forget
// after the write commits.
func (h *ProgramHandler) CreateExpense(c echo.Context) error {
	var in model.ExpenseCreate
	if !bindAndValidate(c, &in) {
		return nil
	}
	if strings.TrimSpace(in.Description) == "" {
		return fieldError(c, "description", "must not be empty")
	}
	if in.Amount.IsNegative() {
		return fieldError(c, "amount", "must not be negative")
	}
	unlock := h.Locks.Lock(in.ShowID)
	defer unlock()
	exp := &model.Expense{
		ShowID:      in.ShowID,
		ActID:       strings.TrimSpace(in.ActID),
		Category:    in.Category,
		Amount:      *in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
	}
	switch err := h.ExpenseRepo.Create(c.Request().Context(), exp); err {
	case nil:
	case repository.ErrShowNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	case repository.ErrActNotFound:
		return fieldError(c, "act_id", "act does not exist")
	case repository.ErrActShowMismatch:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "act belongs to a different show"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create expense"})
	}
	h.publishRecorded(exp)
	return c.JSON(http.StatusCreated, exp)
}

// publishRecorded emits an ExpenseRecordedEvent in the background. The ledger
// consumer enriches logs from it; a broker outage never fails the request.
func (h *ProgramHandler) publishRecorded(exp *model.Expense) {
	showTitle := ""
	if show, err := h.ShowRepo.GetByID(context.Background(), exp.ShowID); err == nil {
		showTitle = show.Title
	}
	ev := queue.ExpenseRecordedEvent{
		ExpenseID:   exp.ID,
		ShowID:      exp.ShowID,
		ShowTitle:   showTitle,
		ActID:       exp.ActID,
		Category:    string(exp.Category),
		Amount:      exp.Amount.StringFixed(2),
		Description: exp.Description,
		RecordedAt:  exp.CreatedAt,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishExpenseRecorded(ctx, ev)
	}()
}

// ListExpensesByShow handles GET /api/expenses/show/:show_id, newest first.
func (h *ProgramHandler) ListExpensesByShow(c echo.Context) error {
	expenses, err := h.ExpenseRepo.ListByShow(c.Request().Context(), c.Param("show_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load expenses"})
	}
	return c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /api/expenses/:id.
func (h *ProgramHandler) GetExpense(c echo.Context) error {
	exp, err := h.ExpenseRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load expense"})
	}
	return c.JSON(http.StatusOK, exp)
}

// UpdateExpense handles PUT /api/expenses/:id. Only provided fields change;
// a new act reference is checked against the expense's show and an empty
// act_id clears the link. The update is serialized with the other mutations
// of the same show.
func (h *ProgramHandler) UpdateExpense(c echo.Context) error {
	var in model.ExpenseUpdate
	if !bindAndValidate(c, &in) {
		return nil
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return fieldError(c, "description", "must not be empty")
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return fieldError(c, "amount", "must not be negative")
	}
	id := c.Param("id")
	cur, err := h.ExpenseRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load expense"})
	}
	unlock := h.Locks.Lock(cur.ShowID)
	defer unlock()
	exp, err := h.ExpenseRepo.Update(c.Request().Context(), id, in)
	switch err {
	case nil:
	case repository.ErrExpenseNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
	case repository.ErrActNotFound:
		return fieldError(c, "act_id", "act does not exist")
	case repository.ErrActShowMismatch:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "act belongs to a different show"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update expense"})
	}
	return c.JSON(http.StatusOK, exp)
}

// DeleteExpense handles DELETE /api/expenses/:id.
func (h *ProgramHandler) DeleteExpense(c echo.Context) error {
	if err := h.ExpenseRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
