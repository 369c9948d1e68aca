package dto

import (
	"taskdeck/internal/kanban/domain"
	"taskdeck/pkg/optional"
)

type CreateBoardRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateBoardRequest only changes the keys present in the body.
type UpdateBoardRequest struct {
	Name        optional.Option[string] `json:"name"`
	Description optional.Option[string] `json:"description"`
	IsArchived  optional.Option[bool]   `json:"is_archived"`
}

type ListBoardsQuery struct {
	Search          string `form:"search"`
	IncludeArchived bool   `form:"include_archived"`
}

// BoardDetailResponse is a board with its columns in position order.
type BoardDetailResponse struct {
	*domain.Board
	Columns []*ColumnResponse `json:"columns"`
}

func NewBoardDetailResponse(board *domain.Board) *BoardDetailResponse {
	columns := make([]*ColumnResponse, len(board.Columns))
	for i := range board.Columns {
		columns[i] = NewColumnResponse(&board.Columns[i])
	}
	return &BoardDetailResponse{Board: board, Columns: columns}
}
