package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"taskdeck/pkg/optional"

	"github.com/google/uuid"
)

const LabelNameMaxLength = 30

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Label is scoped to a board; cards of that board may carry it.
type Label struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BoardID   string    `json:"board_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:30;not null"`
	ColorHex  string    `json:"color_hex" gorm:"size:7;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func NewLabel(boardID, name, colorHex string) (*Label, error) {
	if err := validateLabelName(name); err != nil {
		return nil, err
	}
	if err := validateColorHex(colorHex); err != nil {
		return nil, err
	}

	now := Now()
	return &Label{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		ColorHex:  strings.ToUpper(colorHex),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (l *Label) Update(name, colorHex optional.Option[string]) error {
	if name.Has() {
		if err := validateLabelName(name.Value()); err != nil {
			return err
		}
	}
	if colorHex.Has() {
		if err := validateColorHex(colorHex.Value()); err != nil {
			return err
		}
	}

	if name.Has() {
		l.Name = name.Value()
	}
	if colorHex.Has() {
		l.ColorHex = strings.ToUpper(colorHex.Value())
	}
	l.Touch()
	return nil
}

func (l *Label) Touch() {
	l.UpdatedAt = Now()
}

func validateLabelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("label name cannot be empty")
	}
	if utf8.RuneCountInString(name) > LabelNameMaxLength {
		return NewValidationError("label name cannot exceed %d characters", LabelNameMaxLength)
	}
	return nil
}

func validateColorHex(color string) error {
	if !hexColorPattern.MatchString(color) {
		return NewValidationError("color hex must be a valid hex color in format #RRGGBB")
	}
	return nil
}
