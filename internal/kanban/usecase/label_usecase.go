package usecase

import (
	"context"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/repository"

	"go.uber.org/zap"
)

// labelUsecase implements LabelUsecase interface
type labelUsecase struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewLabelUsecase creates a new instance of labelUsecase
func NewLabelUsecase(uow repository.UnitOfWork, log *zap.Logger) LabelUsecase {
	return &labelUsecase{uow: uow, log: log}
}

func (u *labelUsecase) CreateLabel(ctx context.Context, boardID string, req dto.CreateLabelRequest) (*domain.Label, error) {
	if _, err := loadBoard(ctx, u.uow, boardID); err != nil {
		return nil, classify(u.log, "create label", err)
	}

	label, err := domain.NewLabel(boardID, req.Name, req.ColorHex)
	if err != nil {
		return nil, err
	}
	if err := u.uow.Labels().Create(ctx, label); err != nil {
		return nil, classify(u.log, "create label", err)
	}

	u.log.Info("label created", zap.String("board_id", boardID), zap.String("label_id", label.ID))
	return label, nil
}

func (u *labelUsecase) UpdateLabel(ctx context.Context, boardID, labelID string, req dto.UpdateLabelRequest) (*domain.Label, error) {
	label, err := loadLabel(ctx, u.uow, boardID, labelID)
	if err != nil {
		return nil, classify(u.log, "update label", err)
	}

	if err := label.Update(req.Name, req.ColorHex); err != nil {
		return nil, err
	}
	if err := u.uow.Labels().Update(ctx, label); err != nil {
		return nil, classify(u.log, "update label", err)
	}

	u.log.Info("label updated", zap.String("board_id", boardID), zap.String("label_id", label.ID))
	return label, nil
}

func (u *labelUsecase) ListLabels(ctx context.Context, boardID string) ([]*domain.Label, error) {
	if _, err := loadBoard(ctx, u.uow, boardID); err != nil {
		return nil, classify(u.log, "list labels", err)
	}

	labels, err := u.uow.Labels().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, classify(u.log, "list labels", err)
	}
	return labels, nil
}

// DeleteLabel removes the label and detaches it from every card.
func (u *labelUsecase) DeleteLabel(ctx context.Context, boardID, labelID string) error {
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		label, err := loadLabel(ctx, tx, boardID, labelID)
		if err != nil {
			return err
		}
		return tx.Labels().Delete(ctx, label)
	})
	if err != nil {
		return classify(u.log, "delete label", err)
	}

	u.log.Info("label deleted", zap.String("board_id", boardID), zap.String("label_id", labelID))
	return nil
}

func loadLabel(ctx context.Context, repos repository.Repositories, boardID, labelID string) (*domain.Label, error) {
	label, err := repos.Labels().GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil || label.BoardID != boardID {
		return nil, domain.NewNotFoundError("Label with ID %s not found", labelID)
	}
	return label, nil
}
