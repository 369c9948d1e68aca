package dto

import (
	"time"

	"taskdeck/pkg/optional"
)

type CreateCardRequest struct {
	ColumnID    string     `json:"column_id" binding:"required"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	LabelIDs    []string   `json:"label_ids"`
}

// UpdateCardRequest only changes the keys present in the body. "due_date": null
// clears the due date; "label_ids": [] removes every label. null on any other key
// leaves the field unchanged.
type UpdateCardRequest struct {
	Title       optional.Option[string]     `json:"title"`
	Description optional.Option[string]     `json:"description"`
	DueDate     optional.Option[*time.Time] `json:"due_date"`
	IsBlocked   optional.Option[bool]       `json:"is_blocked"`
	BlockReason optional.Option[string]     `json:"block_reason"`
	LabelIDs    optional.Option[[]string]   `json:"label_ids"`
}

type MoveCardRequest struct {
	TargetColumnID string `json:"target_column_id" binding:"required"`
	TargetPosition *int   `json:"target_position" binding:"required"`
}

type SearchCardsQuery struct {
	Text     string `form:"q"`
	LabelID  string `form:"label_id"`
	ColumnID string `form:"column_id"`
	// Fuzzy switches text matching to typo-tolerant ranking.
	Fuzzy bool `form:"fuzzy"`
}
