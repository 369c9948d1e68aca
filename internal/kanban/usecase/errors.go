package usecase

import (
	"context"
	"errors"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// classify turns whatever op failed with into a *domain.Error. Domain faults pass
// through; storage faults are mapped by kind and anything else is unexpected.
func classify(log *zap.Logger, op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError("%s: record not found", op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError("%s: position or key is already taken", op)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewConflictError("%s: record is still referenced", op)
	}

	log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return domain.NewUnexpectedError(op, err)
}

func loadBoard(ctx context.Context, repos repository.Repositories, boardID string) (*domain.Board, error) {
	board, err := repos.Boards().GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domain.NewNotFoundError("Board with ID %s not found", boardID)
	}
	return board, nil
}
