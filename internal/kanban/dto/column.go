package dto

import (
	"taskdeck/internal/kanban/domain"
	"taskdeck/pkg/optional"
)

type CreateColumnRequest struct {
	Name string `json:"name"`
	// Position defaults to the end of the board.
	Position *int `json:"position"`
	WipLimit *int `json:"wip_limit"`
}

// UpdateColumnRequest: "wip_limit": null removes the limit, an absent key keeps it.
// A null name or position is no change.
type UpdateColumnRequest struct {
	Name     optional.Option[string] `json:"name"`
	WipLimit optional.Option[*int]   `json:"wip_limit"`
	Position optional.Option[int]    `json:"position"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids" binding:"required"`
}

type ColumnResponse struct {
	*domain.Column
	CardCount   int  `json:"card_count"`
	IsOverLimit bool `json:"is_over_limit"`
}

// NewColumnResponse expects the column's cards to be loaded.
func NewColumnResponse(column *domain.Column) *ColumnResponse {
	return &ColumnResponse{
		Column:      column,
		CardCount:   column.CardCount(),
		IsOverLimit: column.IsOverLimit(),
	}
}

func NewColumnResponses(columns []*domain.Column) []*ColumnResponse {
	out := make([]*ColumnResponse, len(columns))
	for i, c := range columns {
		out[i] = NewColumnResponse(c)
	}
	return out
}
