// Package handler defines the HTTP handlers that make up the service façade.
// Handlers validate input, serialize mutations per show, delegate to the
// repositories and translate sentinel errors to HTTP status codes.
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/program"
	"github.com/bigtop/showrunner/internal/repository"
)

// ProgramHandler bundles the repositories and the per-show lock registry used
// by every show, act and expense endpoint.
type ProgramHandler struct {
	ShowRepo    *repository.ShowRepo
	ActRepo     *repository.ActRepo
	ExpenseRepo *repository.ExpenseRepo
	Locks       *program.ShowLocks
}

// NewProgramHandler constructs a ProgramHandler and panics if any dependency is nil.
func NewProgramHandler(shows *repository.ShowRepo, acts *repository.ActRepo, expenses *repository.ExpenseRepo, locks *program.ShowLocks) *ProgramHandler {
	if shows == nil || acts == nil || expenses == nil || locks == nil {
		panic("nil dependency passed to NewProgramHandler")
	}
	return &ProgramHandler{
		ShowRepo:    shows,
		ActRepo:     acts,
		ExpenseRepo: expenses,
		Locks:       locks,
	}
}

// Validator adapts go-playground/validator to echo's Validator interface.
// Field names in error reports use the JSON tag so callers see the name they
// actually sent.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the validator used for all request payloads.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// bindAndValidate binds the JSON body into in and validates it. On failure it
// writes the 400 response itself and returns false.
func bindAndValidate(c echo.Context, in any) bool {
	if err := c.Bind(in); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		return false
	}
	if err := c.Validate(in); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			fields := map[string]string{}
			for _, fe := range ves {
				fields[fe.Field()] = reasonFor(fe)
			}
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
		} else {
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
		}
		return false
	}
	return true
}

// reasonFor renders a single validation failure so the caller knows which
// constraint was violated and how to fix the input.
func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in the format " + fe.Param()
	}
	return "is invalid"
}

// fieldError writes a 400 validation response for a single named field.
func fieldError(c echo.Context, field, reason string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "validation failed",
		"fields": map[string]string{field: reason},
	})
}
