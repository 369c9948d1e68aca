package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskdeck/pkg/optional"

	"github.com/google/uuid"
)

const (
	BoardNameMaxLength        = 100
	BoardDescriptionMaxLength = 500
)

// Board is the root aggregate. Deleting it cascades to columns, cards and labels;
// the API only ever archives it.
type Board struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description *string   `json:"description" gorm:"size:500"`
	IsArchived  bool      `json:"is_archived" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`

	Columns []Column `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Cards   []Card   `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Labels  []Label  `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// NewBoard validates its arguments and returns an unarchived board.
func NewBoard(name string, description *string) (*Board, error) {
	if err := validateBoardName(name); err != nil {
		return nil, err
	}
	if err := validateBoardDescription(description); err != nil {
		return nil, err
	}

	now := Now()
	return &Board{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies the set fields. An empty description is stored as given; there is
// no implicit conversion to nil.
func (b *Board) Update(name, description optional.Option[string]) error {
	if name.Has() {
		if err := validateBoardName(name.Value()); err != nil {
			return err
		}
	}
	if description.Has() {
		d := description.Value()
		if err := validateBoardDescription(&d); err != nil {
			return err
		}
	}

	if name.Has() {
		b.Name = name.Value()
	}
	if description.Has() {
		d := description.Value()
		b.Description = &d
	}
	b.Touch()
	return nil
}

func (b *Board) Archive() {
	b.IsArchived = true
	b.Touch()
}

func (b *Board) Unarchive() {
	b.IsArchived = false
	b.Touch()
}

func (b *Board) Touch() {
	b.UpdatedAt = Now()
}

func validateBoardName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("board name cannot be empty")
	}
	if utf8.RuneCountInString(name) > BoardNameMaxLength {
		return NewValidationError("board name cannot exceed %d characters", BoardNameMaxLength)
	}
	return nil
}

func validateBoardDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > BoardDescriptionMaxLength {
		return NewValidationError("board description cannot exceed %d characters", BoardDescriptionMaxLength)
	}
	return nil
}
