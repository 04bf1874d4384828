// Package repository implements persistence for shows, acts and expenses over
// database/sql. Sentinel errors defined here let handlers map failures to HTTP
// status codes without inspecting SQL details.
package repository

import "errors"

// ErrShowNotFound indicates the referenced show does not exist.
var ErrShowNotFound = errors.New("show not found")

// ErrActNotFound indicates the referenced act does not exist.
var ErrActNotFound = errors.New("act not found")

// ErrExpenseNotFound indicates the referenced expense does not exist.
var ErrExpenseNotFound = errors.New("expense not found")

// ErrActShowMismatch is returned when an expense names an act that belongs to
// a different show than the expense itself.
var ErrActShowMismatch = errors.New("act belongs to a different show")

// ErrConflict signals a sequence position collision detected on write. The
// unique key on (show_id, sequence_order) makes any serialization failure
// surface here instead of corrupting the program order.
var ErrConflict = errors.New("sequence conflict")

// ErrPositionOutOfRange is returned when a move targets a position outside
// 1..N for a program of N acts.
var ErrPositionOutOfRange = errors.New("position out of range")
