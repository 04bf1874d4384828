package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/model"
	"github.com/bigtop/showrunner/internal/repository"
)

// CreateAct handles POST /api/acts and appends an act to the end of its
// show's program. The position is assigned server-side; a sequence_order in
// the request body is ignored. Mutations on the same show are serialized so
// two concurrent creates cannot read the same maximum position.
func (h *ProgramHandler) CreateAct(c echo.Context) error {
	var in model.ActCreate
	if !bindAndValidate(c, &in) {
		return nil
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fieldError(c, "name", "must not be empty")
	}
	unlock := h.Locks.Lock(in.ShowID)
	defer unlock()
	act := &model.Act{
		ShowID:               in.ShowID,
		Name:                 name,
		Performers:           in.Performers,
		Duration:             in.Duration,
		Description:          in.Description,
		StagingNotes:         in.StagingNotes,
		SoundRequirements:    in.SoundRequirements,
		LightingRequirements: in.LightingRequirements,
	}
	switch err := h.ActRepo.Create(c.Request().Context(), act); err {
	case nil:
	case repository.ErrShowNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "sequence conflict, retry the request"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create act"})
	}
	return c.JSON(http.StatusCreated, act)
}

// ListActsByShow handles GET /api/acts/show/:show_id and returns the program
// in display order. A show with no acts yields an empty array.
func (h *ProgramHandler) ListActsByShow(c echo.Context) error {
	acts, err := h.ActRepo.ListByShow(c.Request().Context(), c.Param("show_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load acts"})
	}
	return c.JSON(http.StatusOK, acts)
}

// GetAct handles GET /api/acts/:id.
func (h *ProgramHandler) GetAct(c echo.Context) error {
	act, err := h.ActRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load act"})
	}
	return c.JSON(http.StatusOK, act)
}

// UpdateAct handles PUT /api/acts/:id. Identity and position are preserved;
// only the provided fields change. Like every act mutation it is serialized
// with the other mutations of the same show.
func (h *ProgramHandler) UpdateAct(c echo.Context) error {
	var in model.ActUpdate
	if !bindAndValidate(c, &in) {
		return nil
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fieldError(c, "name", "must not be empty")
	}
	id := c.Param("id")
	cur, err := h.ActRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load act"})
	}
	unlock := h.Locks.Lock(cur.ShowID)
	defer unlock()
	act, err := h.ActRepo.Update(c.Request().Context(), id, in)
	if err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update act"})
	}
	return c.JSON(http.StatusOK, act)
}

// DeleteAct handles DELETE /api/acts/:id. Acts after the deleted one move up
// one position and expenses referencing the act keep existing with the link
// cleared, all in one transaction.
func (h *ProgramHandler) DeleteAct(c echo.Context) error {
	id := c.Param("id")
	act, err := h.ActRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load act"})
	}
	unlock := h.Locks.Lock(act.ShowID)
	defer unlock()
	if err := h.ActRepo.DeleteRenumber(c.Request().Context(), id); err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// MoveAct handles PUT /api/acts/:id/position and moves an act to a new
// 1-based position within its show, renumbering the acts in between.
func (h *ProgramHandler) MoveAct(c echo.Context) error {
	var in model.ActMove
	if !bindAndValidate(c, &in) {
		return nil
	}
	id := c.Param("id")
	act, err := h.ActRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrActNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load act"})
	}
	unlock := h.Locks.Lock(act.ShowID)
	defer unlock()
	switch err := h.ActRepo.Move(c.Request().Context(), id, in.Position); err {
	case nil:
	case repository.ErrActNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
	case repository.ErrPositionOutOfRange:
		return fieldError(c, "position", "exceeds the number of acts in the show")
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "sequence conflict, retry the request"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not move act"})
	}
	acts, err := h.ActRepo.ListByShow(c.Request().Context(), act.ShowID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load acts"})
	}
	return c.JSON(http.StatusOK, acts)
}
