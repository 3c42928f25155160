package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is an opaque domain identifier.
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

func (id ID) String() string  { return string(id) }
func (id ID) IsEmpty() bool   { return id == "" }

// Domain-specific ID types. All are opaque strings per spec §3.
type (
	FragranceID  ID
	NoteID       ID
	ReviewerID   ID
	EvaluationID ID
)

func (id FragranceID) String() string  { return ID(id).String() }
func (id NoteID) String() string       { return ID(id).String() }
func (id ReviewerID) String() string   { return ID(id).String() }
func (id EvaluationID) String() string { return ID(id).String() }

func (id FragranceID) IsEmpty() bool  { return id == "" }
func (id NoteID) IsEmpty() bool       { return id == "" }
func (id ReviewerID) IsEmpty() bool   { return id == "" }
func (id EvaluationID) IsEmpty() bool { return id == "" }

func ParseFragranceID(s string) (FragranceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("fragrance ID cannot be empty")
	}
	return FragranceID(s), nil
}

func ParseReviewerID(s string) (ReviewerID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("reviewer ID cannot be empty")
	}
	return ReviewerID(s), nil
}

func ParseNoteID(s string) (NoteID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("note ID cannot be empty")
	}
	return NoteID(s), nil
}
