package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskdeck/pkg/optional"

	"github.com/google/uuid"
)

const ColumnNameMaxLength = 50

// Column is an ordered lane of a board. (BoardID, Position) is unique in storage.
type Column struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BoardID   string    `json:"board_id" gorm:"not null;uniqueIndex:idx_columns_board_position,priority:1"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Position  int       `json:"position" gorm:"not null;uniqueIndex:idx_columns_board_position,priority:2"`
	WipLimit  *int      `json:"wip_limit"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`

	// Cards is only populated by the loaders that say so.
	Cards []Card `json:"-" gorm:"foreignKey:ColumnID"`
}

func NewColumn(boardID, name string, position int, wipLimit *int) (*Column, error) {
	if err := validateColumnName(name); err != nil {
		return nil, err
	}
	if err := validatePosition(position); err != nil {
		return nil, err
	}
	if err := validateWipLimit(wipLimit); err != nil {
		return nil, err
	}

	now := Now()
	return &Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		Position:  position,
		WipLimit:  copyInt(wipLimit),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update applies the set fields. wipLimit set to nil removes the limit.
func (c *Column) Update(name optional.Option[string], wipLimit optional.Option[*int], position optional.Option[int]) error {
	if name.Has() {
		if err := validateColumnName(name.Value()); err != nil {
			return err
		}
	}
	if wipLimit.Has() {
		if err := validateWipLimit(wipLimit.Value()); err != nil {
			return err
		}
	}
	if position.Has() {
		if err := validatePosition(position.Value()); err != nil {
			return err
		}
	}

	if name.Has() {
		c.Name = name.Value()
	}
	if wipLimit.Has() {
		c.WipLimit = copyInt(wipLimit.Value())
	}
	if position.Has() {
		c.Position = position.Value()
	}
	c.Touch()
	return nil
}

func (c *Column) SetPosition(position int) error {
	if err := validatePosition(position); err != nil {
		return err
	}
	c.Position = position
	c.Touch()
	return nil
}

// SetTransientPosition parks the column at a negative slot no settled column can
// hold. Used by the first pass of a reorder.
func (c *Column) SetTransientPosition(position int) error {
	if position >= 0 {
		return NewValidationError("transient position must be negative, got %d", position)
	}
	c.Position = position
	c.Touch()
	return nil
}

func (c *Column) SetWipLimit(limit *int) error {
	if err := validateWipLimit(limit); err != nil {
		return err
	}
	c.WipLimit = copyInt(limit)
	c.Touch()
	return nil
}

// CardCount is the number of loaded cards.
func (c *Column) CardCount() int {
	return len(c.Cards)
}

// IsOverLimit reports whether the column holds more cards than its WIP limit.
func (c *Column) IsOverLimit() bool {
	if c.WipLimit == nil {
		return false
	}
	return c.CardCount() > *c.WipLimit
}

// WouldExceedIfAdded reports whether adding one more card would break the WIP limit.
// The limit is the maximum allowed count.
func (c *Column) WouldExceedIfAdded() bool {
	if c.WipLimit == nil {
		return false
	}
	return c.CardCount() >= *c.WipLimit
}

func (c *Column) Touch() {
	c.UpdatedAt = Now()
}

// GetID and GetPosition let the ordering engine rank columns.
func (c *Column) GetID() string    { return c.ID }
func (c *Column) GetPosition() int { return c.Position }

func validateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("column name cannot be empty")
	}
	if utf8.RuneCountInString(name) > ColumnNameMaxLength {
		return NewValidationError("column name cannot exceed %d characters", ColumnNameMaxLength)
	}
	return nil
}

func validateWipLimit(limit *int) error {
	if limit != nil && *limit <= 0 {
		return NewValidationError("WIP limit must be greater than 0")
	}
	return nil
}

func validatePosition(position int) error {
	if position < 0 {
		return NewValidationError("position cannot be negative")
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
