package usecase

import (
	"context"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/repository"

	"go.uber.org/zap"
)

// boardUsecase implements BoardUsecase interface
type boardUsecase struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewBoardUsecase creates a new instance of boardUsecase
func NewBoardUsecase(uow repository.UnitOfWork, log *zap.Logger) BoardUsecase {
	return &boardUsecase{uow: uow, log: log}
}

func (u *boardUsecase) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error) {
	board, err := domain.NewBoard(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := u.uow.Boards().Create(ctx, board); err != nil {
		return nil, classify(u.log, "create board", err)
	}

	u.log.Info("board created", zap.String("board_id", board.ID))
	return board, nil
}

func (u *boardUsecase) UpdateBoard(ctx context.Context, boardID string, req dto.UpdateBoardRequest) (*domain.Board, error) {
	board, err := loadBoard(ctx, u.uow, boardID)
	if err != nil {
		return nil, classify(u.log, "update board", err)
	}

	if err := board.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.IsArchived.Has() {
		if req.IsArchived.Value() {
			board.Archive()
		} else {
			board.Unarchive()
		}
	}

	if err := u.uow.Boards().Update(ctx, board); err != nil {
		return nil, classify(u.log, "update board", err)
	}

	u.log.Info("board updated", zap.String("board_id", board.ID), zap.Bool("archived", board.IsArchived))
	return board, nil
}

func (u *boardUsecase) GetBoard(ctx context.Context, boardID string) (*domain.Board, error) {
	board, err := u.uow.Boards().GetByIDWithColumns(ctx, boardID)
	if err != nil {
		return nil, classify(u.log, "get board", err)
	}
	if board == nil {
		return nil, domain.NewNotFoundError("Board with ID %s not found", boardID)
	}
	return board, nil
}

func (u *boardUsecase) ListBoards(ctx context.Context, query dto.ListBoardsQuery) ([]*domain.Board, error) {
	boards, err := u.uow.Boards().Search(ctx, query.Search, query.IncludeArchived)
	if err != nil {
		return nil, classify(u.log, "list boards", err)
	}
	return boards, nil
}

func (u *boardUsecase) DeleteBoard(ctx context.Context, boardID string) error {
	board, err := loadBoard(ctx, u.uow, boardID)
	if err != nil {
		return classify(u.log, "delete board", err)
	}

	board.Archive()
	if err := u.uow.Boards().Update(ctx, board); err != nil {
		return classify(u.log, "delete board", err)
	}

	u.log.Info("board archived", zap.String("board_id", board.ID))
	return nil
}
