// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/handler"
)

// RegisterRoutes registers routes that sit outside the /api prefix. Currently
// that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterProgram registers the show, act and expense endpoints under /api.
// sequence_order is server-assigned everywhere: creation appends, moves take a
// single target position, nothing accepts a client-supplied order.
func RegisterProgram(e *echo.Echo, h *handler.ProgramHandler) {
	g := e.Group("/api")

	g.GET("/shows", h.ListShows)
	g.POST("/shows", h.CreateShow)
	g.GET("/shows/:id", h.GetShow)
	g.PUT("/shows/:id", h.UpdateShow)
	g.DELETE("/shows/:id", h.DeleteShow)
	g.GET("/shows/:id/summary", h.ShowSummary)

	g.GET("/acts/show/:show_id", h.ListActsByShow)
	g.POST("/acts", h.CreateAct)
	g.GET("/acts/:id", h.GetAct)
	g.PUT("/acts/:id", h.UpdateAct)
	g.DELETE("/acts/:id", h.DeleteAct)
	g.PUT("/acts/:id/position", h.MoveAct)

	g.GET("/expenses/show/:show_id", h.ListExpensesByShow)
	g.POST("/expenses", h.CreateExpense)
	g.GET("/expenses/:id", h.GetExpense)
	g.PUT("/expenses/:id", h.UpdateExpense)
	g.DELETE("/expenses/:id", h.DeleteExpense)
}
