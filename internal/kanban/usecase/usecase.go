package usecase

import (
	"context"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
)

// Every method returns *domain.Error values; use domain.KindOf to classify.

// BoardUsecase defines the board operations
type BoardUsecase interface {
	CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error)
	UpdateBoard(ctx context.Context, boardID string, req dto.UpdateBoardRequest) (*domain.Board, error)
	// GetBoard returns the board with its columns in position order, cards loaded
	GetBoard(ctx context.Context, boardID string) (*domain.Board, error)
	ListBoards(ctx context.Context, query dto.ListBoardsQuery) ([]*domain.Board, error)
	// DeleteBoard archives the board; nothing is removed
	DeleteBoard(ctx context.Context, boardID string) error
}

// ColumnUsecase defines the column operations
type ColumnUsecase interface {
	CreateColumn(ctx context.Context, boardID string, req dto.CreateColumnRequest) (*domain.Column, error)
	UpdateColumn(ctx context.Context, boardID, columnID string, req dto.UpdateColumnRequest) (*domain.Column, error)
	ListColumns(ctx context.Context, boardID string) ([]*domain.Column, error)
	ReorderColumns(ctx context.Context, boardID string, columnIDs []string) ([]*domain.Column, error)
	DeleteColumn(ctx context.Context, boardID, columnID string) error
}

// CardUsecase defines the card operations
type CardUsecase interface {
	CreateCard(ctx context.Context, boardID string, req dto.CreateCardRequest) (*domain.Card, error)
	UpdateCard(ctx context.Context, boardID, cardID string, req dto.UpdateCardRequest) (*domain.Card, error)
	MoveCard(ctx context.Context, boardID, cardID, targetColumnID string, targetPosition int) (*domain.Card, error)
	DeleteCard(ctx context.Context, boardID, cardID string) error
	SearchCards(ctx context.Context, boardID string, query dto.SearchCardsQuery) ([]*domain.Card, error)
}

// LabelUsecase defines the label operations
type LabelUsecase interface {
	CreateLabel(ctx context.Context, boardID string, req dto.CreateLabelRequest) (*domain.Label, error)
	UpdateLabel(ctx context.Context, boardID, labelID string, req dto.UpdateLabelRequest) (*domain.Label, error)
	ListLabels(ctx context.Context, boardID string) ([]*domain.Label, error)
	DeleteLabel(ctx context.Context, boardID, labelID string) error
}
