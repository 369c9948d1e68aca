package usecase

import (
	"context"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/ordering"
	"taskdeck/internal/kanban/repository"
	"taskdeck/pkg/config"
	"taskdeck/pkg/optional"

	"go.uber.org/zap"
)

// columnUsecase implements ColumnUsecase interface
type columnUsecase struct {
	uow                repository.UnitOfWork
	log                *zap.Logger
	singlePhaseReorder bool
}

// NewColumnUsecase creates a new instance of columnUsecase
func NewColumnUsecase(uow repository.UnitOfWork, cfg *config.Config, log *zap.Logger) ColumnUsecase {
	return &columnUsecase{
		uow:                uow,
		log:                log,
		singlePhaseReorder: cfg.ReorderSinglePhase,
	}
}

// CreateColumn appends the column unless req.Position is given. An explicit position
// may not leave a gap; one that is already taken is a Conflict.
func (u *columnUsecase) CreateColumn(ctx context.Context, boardID string, req dto.CreateColumnRequest) (*domain.Column, error) {
	var column *domain.Column
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		if _, err := loadBoard(ctx, tx, boardID); err != nil {
			return err
		}
		columns, err := tx.Columns().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		next := ordering.NextPosition(columns)
		position := next
		if req.Position != nil {
			position = *req.Position
		}

		column, err = domain.NewColumn(boardID, req.Name, position, req.WipLimit)
		if err != nil {
			return err
		}
		if position > next {
			return domain.NewValidationError("column position %d is out of range [0, %d]", position, next)
		}
		return tx.Columns().Create(ctx, column)
	})
	if err != nil {
		return nil, classify(u.log, "create column", err)
	}

	u.log.Info("column created",
		zap.String("board_id", boardID),
		zap.String("column_id", column.ID),
		zap.Int("position", column.Position))
	return column, nil
}

// UpdateColumn applies the patch. A new position moves the column among its
// siblings and renumbers them.
func (u *columnUsecase) UpdateColumn(ctx context.Context, boardID, columnID string, req dto.UpdateColumnRequest) (*domain.Column, error) {
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		column, err := loadColumn(ctx, tx, boardID, columnID)
		if err != nil {
			return err
		}
		if err := column.Update(req.Name, req.WipLimit, optional.None[int]()); err != nil {
			return err
		}

		if !req.Position.Has() || req.Position.Value() == column.Position {
			return tx.Columns().Update(ctx, column)
		}

		siblings, err := tx.Columns().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		placements, err := ordering.Move(siblings, column, req.Position.Value())
		if err != nil {
			return err
		}
		return saveColumnPlacements(ctx, tx.Columns(), placements)
	})
	if err != nil {
		return nil, classify(u.log, "update column", err)
	}

	column, err := loadColumn(ctx, u.uow, boardID, columnID)
	if err != nil {
		return nil, classify(u.log, "update column", err)
	}

	u.log.Info("column updated", zap.String("board_id", boardID), zap.String("column_id", columnID))
	return column, nil
}

func (u *columnUsecase) ListColumns(ctx context.Context, boardID string) ([]*domain.Column, error) {
	if _, err := loadBoard(ctx, u.uow, boardID); err != nil {
		return nil, classify(u.log, "list columns", err)
	}

	columns, err := u.uow.Columns().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, classify(u.log, "list columns", err)
	}
	return columns, nil
}

// ReorderColumns sets the board's column order to columnIDs, which must name every
// column of the board exactly once.
//
// Phase one parks each column below every current position and commits; phase two
// writes the final positions and commits. If phase two fails, the board keeps the
// committed negative positions of phase one until the next reorder, move or
// delete renumbers it. With singlePhaseReorder both phases share one commit.
func (u *columnUsecase) ReorderColumns(ctx context.Context, boardID string, columnIDs []string) ([]*domain.Column, error) {
	var ordered []*domain.Column

	park := func(tx repository.Repositories) error {
		if _, err := loadBoard(ctx, tx, boardID); err != nil {
			return err
		}
		columns, err := tx.Columns().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		ordered, err = ordering.PlanReorder(columns, columnIDs, "column")
		if err != nil {
			return err
		}
		floor := ordering.ParkingFloor(columns)
		for i, column := range ordered {
			if err := column.SetTransientPosition(ordering.TransientPosition(floor, i)); err != nil {
				return err
			}
			if err := tx.Columns().Update(ctx, column); err != nil {
				return err
			}
		}
		return nil
	}

	place := func(tx repository.Repositories) error {
		for _, p := range ordering.Renumber(ordered) {
			if err := p.Item.SetPosition(p.Position); err != nil {
				return err
			}
			if err := tx.Columns().Update(ctx, p.Item); err != nil {
				return err
			}
		}
		return nil
	}

	if u.singlePhaseReorder {
		err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
			if err := park(tx); err != nil {
				return err
			}
			return place(tx)
		})
		if err != nil {
			return nil, classify(u.log, "reorder columns", err)
		}
	} else {
		if err := u.uow.Transaction(ctx, park); err != nil {
			return nil, classify(u.log, "reorder columns", err)
		}
		u.log.Debug("column reorder phase one committed", zap.String("board_id", boardID), zap.Int("columns", len(ordered)))
		if err := u.uow.Transaction(ctx, place); err != nil {
			return nil, classify(u.log, "reorder columns", err)
		}
	}

	columns, err := u.uow.Columns().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, classify(u.log, "reorder columns", err)
	}

	u.log.Info("columns reordered", zap.String("board_id", boardID), zap.Strings("column_ids", columnIDs))
	return columns, nil
}

// DeleteColumn refuses to delete a column that still has cards, and closes the gap
// the column leaves behind.
func (u *columnUsecase) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		column, err := loadColumn(ctx, tx, boardID, columnID)
		if err != nil {
			return err
		}
		if n := column.CardCount(); n > 0 {
			return domain.NewConflictError("Cannot delete column '%s' because it contains %d card(s)", column.Name, n)
		}
		if err := tx.Columns().Delete(ctx, column); err != nil {
			return err
		}

		remaining, err := tx.Columns().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		return saveColumnPlacements(ctx, tx.Columns(), ordering.Compact(remaining, column.ID))
	})
	if err != nil {
		return classify(u.log, "delete column", err)
	}

	u.log.Info("column deleted", zap.String("board_id", boardID), zap.String("column_id", columnID))
	return nil
}

// loadColumn returns the column with its cards, or NotFound when it is missing or
// belongs to another board.
func loadColumn(ctx context.Context, repos repository.Repositories, boardID, columnID string) (*domain.Column, error) {
	column, err := repos.Columns().GetByIDWithCards(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil || column.BoardID != boardID {
		return nil, domain.NewNotFoundError("Column with ID %s not found", columnID)
	}
	return column, nil
}
