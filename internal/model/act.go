package model

// Act is one ordered segment of a show's program. SequenceOrder is the 1-based
// position of the act within its show; positions are dense (exactly 1..N for N
// acts) and owned by the server. Duration is whole minutes and must be positive.
type Act struct {
	ID                   string `json:"id"`
	ShowID               string `json:"show_id"`
	Name                 string `json:"name"`
	Performers           string `json:"performers,omitempty"`
	Duration             int    `json:"duration"`
	SequenceOrder        int    `json:"sequence_order"`
	Description          string `json:"description,omitempty"`
	StagingNotes         string `json:"staging_notes,omitempty"`
	SoundRequirements    string `json:"sound_requirements,omitempty"`
	LightingRequirements string `json:"lighting_requirements,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// ActCreate is the payload for POST /api/acts. The act is appended to the end
// of the show's program; a client-supplied sequence_order is ignored.
type ActCreate struct {
	ShowID               string `json:"show_id" validate:"required"`
	Name                 string `json:"name" validate:"required"`
	Performers           string `json:"performers"`
	Duration             int    `json:"duration" validate:"gt=0"`
	Description          string `json:"description"`
	StagingNotes         string `json:"staging_notes"`
	SoundRequirements    string `json:"sound_requirements"`
	LightingRequirements string `json:"lighting_requirements"`
}

// ActUpdate is the payload for PUT /api/acts/:id. Nil fields are left
// unchanged. The act's show and position are immutable here; moving an act is
// a dedicated operation (PUT /api/acts/:id/position).
type ActUpdate struct {
	Name                 *string `json:"name" validate:"omitempty,min=1"`
	Performers           *string `json:"performers"`
	Duration             *int    `json:"duration" validate:"omitempty,gt=0"`
	Description          *string `json:"description"`
	StagingNotes         *string `json:"staging_notes"`
	SoundRequirements    *string `json:"sound_requirements"`
	LightingRequirements *string `json:"lighting_requirements"`
}

// ActMove is the payload for PUT /api/acts/:id/position.
type ActMove struct {
	Position int `json:"position" validate:"gte=1"`
}
