package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskdeck/pkg/optional"

	"github.com/google/uuid"
)

const (
	CardTitleMaxLength       = 200
	CardDescriptionMaxLength = 4000
	BlockReasonMaxLength     = 500
)

// Card is an item of work. Within a column, positions are 0..n-1.
type Card struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	BoardID     string     `json:"board_id" gorm:"not null;index"`
	ColumnID    string     `json:"column_id" gorm:"not null;index:idx_cards_column_position,priority:1"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"size:4000;not null;default:''"`
	DueDate     *time.Time `json:"due_date"`
	IsBlocked   bool       `json:"is_blocked" gorm:"not null;default:false"`
	BlockReason *string    `json:"block_reason" gorm:"size:500"`
	Position    int        `json:"position" gorm:"not null;index:idx_cards_column_position,priority:2"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null"`

	Labels []Label `json:"labels" gorm:"many2many:card_labels"`
}

// CardLabel is the card/label association row.
type CardLabel struct {
	CardID  string `gorm:"primaryKey"`
	LabelID string `gorm:"primaryKey;index"`
}

func (CardLabel) TableName() string {
	return "card_labels"
}

func NewCard(boardID, columnID, title string, description *string, dueDate *time.Time, position int) (*Card, error) {
	if err := validateCardTitle(title); err != nil {
		return nil, err
	}
	desc := ""
	if description != nil {
		desc = *description
	}
	if err := validateCardDescription(desc); err != nil {
		return nil, err
	}
	if err := validatePosition(position); err != nil {
		return nil, err
	}

	now := Now()
	return &Card{
		ID:          uuid.New().String(),
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies the set fields. dueDate set to nil clears the due date.
func (c *Card) Update(title, description optional.Option[string], dueDate optional.Option[*time.Time]) error {
	if title.Has() {
		if err := validateCardTitle(title.Value()); err != nil {
			return err
		}
	}
	if description.Has() {
		if err := validateCardDescription(description.Value()); err != nil {
			return err
		}
	}

	if title.Has() {
		c.Title = title.Value()
	}
	if description.Has() {
		c.Description = description.Value()
	}
	if dueDate.Has() {
		c.DueDate = dueDate.Value()
	}
	c.Touch()
	return nil
}

func (c *Card) SetPosition(position int) error {
	if err := validatePosition(position); err != nil {
		return err
	}
	c.Position = position
	c.Touch()
	return nil
}

// MoveToColumn is ColumnID assignment followed by SetPosition; the position is
// checked before anything changes.
func (c *Card) MoveToColumn(columnID string, position int) error {
	if err := validatePosition(position); err != nil {
		return err
	}
	c.ColumnID = columnID
	return c.SetPosition(position)
}

func (c *Card) Block(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("block reason cannot be empty")
	}
	if utf8.RuneCountInString(reason) > BlockReasonMaxLength {
		return NewValidationError("block reason cannot exceed %d characters", BlockReasonMaxLength)
	}
	c.IsBlocked = true
	c.BlockReason = &reason
	c.Touch()
	return nil
}

func (c *Card) Unblock() {
	c.IsBlocked = false
	c.BlockReason = nil
	c.Touch()
}

func (c *Card) Touch() {
	c.UpdatedAt = Now()
}

func (c *Card) GetID() string    { return c.ID }
func (c *Card) GetPosition() int { return c.Position }

func validateCardTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("card title cannot be empty")
	}
	if utf8.RuneCountInString(title) > CardTitleMaxLength {
		return NewValidationError("card title cannot exceed %d characters", CardTitleMaxLength)
	}
	return nil
}

func validateCardDescription(description string) error {
	if utf8.RuneCountInString(description) > CardDescriptionMaxLength {
		return NewValidationError("card description cannot exceed %d characters", CardDescriptionMaxLength)
	}
	return nil
}
