// Package model defines the domain entities of the show production service and
// the request payloads used to create and modify them. Entities map 1:1 to DB
// rows; input structs carry validation tags checked before any write.
package model

// Show is a single performance event being planned. It owns an ordered program
// of acts and a ledger of expenses, both referencing it by show_id.
//
// Fields:
//
//	ID          – primary key, assigned by the server, immutable.
//	Title       – required display title.
//	Date        – optional calendar date ("2006-01-02").
//	Venue       – optional venue name.
//	Description – optional free text.
//	CreatedAt   – row creation timestamp, set once.
type Show struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ShowCreate is the payload for POST /api/shows.
type ShowCreate struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
}

// ShowUpdate is the payload for PUT /api/shows/:id. Nil fields are left
// unchanged; the ID and CreatedAt of a show are immutable.
type ShowUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Venue       *string `json:"venue"`
	Description *string `json:"description"`
}
