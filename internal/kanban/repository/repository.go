package repository

import (
	"context"

	"taskdeck/internal/kanban/domain"
)

// Getters return (nil, nil) when the record does not exist.

// BoardRepository defines the interface for board operations
type BoardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	// Get a board with its columns ordered by position, each with its cards
	GetByIDWithColumns(ctx context.Context, id string) (*domain.Board, error)
	// Search boards by name or description, newest first
	Search(ctx context.Context, searchText string, includeArchived bool) ([]*domain.Board, error)
	Create(ctx context.Context, board *domain.Board) error
	Update(ctx context.Context, board *domain.Board) error
}

// ColumnRepository defines the interface for column operations
type ColumnRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	// Get a column with its cards ordered by position
	GetByIDWithCards(ctx context.Context, id string) (*domain.Column, error)
	// Get all columns of a board ordered by position, each with its cards
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Create(ctx context.Context, column *domain.Column) error
	Update(ctx context.Context, column *domain.Column) error
	Delete(ctx context.Context, column *domain.Column) error
}

// CardFilter narrows SearchCards. Empty fields do not filter.
type CardFilter struct {
	Text     string
	LabelID  string
	ColumnID string
}

// CardRepository defines the interface for card operations
type CardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	// Get a card with its labels
	GetByIDWithLabels(ctx context.Context, id string) (*domain.Card, error)
	// Get the cards of a column ordered by position
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Card, error)
	// Search the cards of a board, ordered by column then position, with labels
	Search(ctx context.Context, boardID string, filter CardFilter) ([]*domain.Card, error)
	Create(ctx context.Context, card *domain.Card) error
	Update(ctx context.Context, card *domain.Card) error
	// Delete a card and its label associations
	Delete(ctx context.Context, card *domain.Card) error
	// Replace the label set of a card
	ReplaceLabels(ctx context.Context, cardID string, labelIDs []string) error
}

// LabelRepository defines the interface for label operations
type LabelRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Label, error)
	// Get all labels of a board ordered by name
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error)
	Create(ctx context.Context, label *domain.Label) error
	Update(ctx context.Context, label *domain.Label) error
	// Delete a label and its card associations
	Delete(ctx context.Context, label *domain.Label) error
}

// Repositories groups the per-entity repositories bound to one connection or
// transaction.
type Repositories interface {
	Boards() BoardRepository
	Columns() ColumnRepository
	Cards() CardRepository
	Labels() LabelRepository
}

// UnitOfWork is the storage collaborator of the usecases. Each Transaction call
// is one independently durable commit.
type UnitOfWork interface {
	Repositories
	// Transaction runs fn with repositories bound to a single transaction. It commits
	// when fn returns nil and rolls back otherwise, returning fn's error unchanged.
	Transaction(ctx context.Context, fn func(tx Repositories) error) error
}
