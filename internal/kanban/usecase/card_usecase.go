package usecase

import (
	"context"
	"slices"
	"strings"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/ordering"
	"taskdeck/internal/kanban/repository"
	"taskdeck/pkg/fuzzy"

	"go.uber.org/zap"
)

// cardUsecase implements CardUsecase interface
type cardUsecase struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewCardUsecase creates a new instance of cardUsecase
func NewCardUsecase(uow repository.UnitOfWork, log *zap.Logger) CardUsecase {
	return &cardUsecase{uow: uow, log: log}
}

// CreateCard appends a card to the end of req.ColumnID. Label ids that are not
// labels of the board are dropped.
func (u *cardUsecase) CreateCard(ctx context.Context, boardID string, req dto.CreateCardRequest) (*domain.Card, error) {
	var cardID string
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		if _, err := loadBoard(ctx, tx, boardID); err != nil {
			return err
		}
		column, err := loadColumn(ctx, tx, boardID, req.ColumnID)
		if err != nil {
			return err
		}
		if column.WouldExceedIfAdded() {
			return wipLimitError(column)
		}

		card, err := domain.NewCard(boardID, column.ID, req.Title, req.Description, req.DueDate, ordering.NextPosition(cardsOf(column)))
		if err != nil {
			return err
		}
		if err := tx.Cards().Create(ctx, card); err != nil {
			return err
		}
		cardID = card.ID

		labelIDs, err := boardLabelIDs(ctx, tx, boardID, req.LabelIDs)
		if err != nil {
			return err
		}
		if len(labelIDs) == 0 {
			return nil
		}
		return tx.Cards().ReplaceLabels(ctx, card.ID, labelIDs)
	})
	if err != nil {
		return nil, classify(u.log, "create card", err)
	}

	card, err := loadCard(ctx, u.uow, boardID, cardID)
	if err != nil {
		return nil, classify(u.log, "create card", err)
	}

	u.log.Info("card created",
		zap.String("board_id", boardID),
		zap.String("column_id", card.ColumnID),
		zap.String("card_id", card.ID),
		zap.Int("position", card.Position))
	return card, nil
}

// UpdateCard applies the patch. Blocking without a reason is ignored; a blank
// reason is rejected by Card.Block. A set label_ids replaces every label of the card.
func (u *cardUsecase) UpdateCard(ctx context.Context, boardID, cardID string, req dto.UpdateCardRequest) (*domain.Card, error) {
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		card, err := loadCard(ctx, tx, boardID, cardID)
		if err != nil {
			return err
		}
		if err := card.Update(req.Title, req.Description, req.DueDate); err != nil {
			return err
		}

		if req.IsBlocked.Has() {
			if !req.IsBlocked.Value() {
				card.Unblock()
			} else if reason := req.BlockReason.Value(); reason != "" {
				if err := card.Block(reason); err != nil {
					return err
				}
			}
		}

		if err := tx.Cards().Update(ctx, card); err != nil {
			return err
		}

		if !req.LabelIDs.Has() {
			return nil
		}
		labelIDs, err := boardLabelIDs(ctx, tx, boardID, req.LabelIDs.Value())
		if err != nil {
			return err
		}
		return tx.Cards().ReplaceLabels(ctx, card.ID, labelIDs)
	})
	if err != nil {
		return nil, classify(u.log, "update card", err)
	}

	card, err := loadCard(ctx, u.uow, boardID, cardID)
	if err != nil {
		return nil, classify(u.log, "update card", err)
	}

	u.log.Info("card updated", zap.String("board_id", boardID), zap.String("card_id", cardID))
	return card, nil
}

// MoveCard places the card at targetPosition of targetColumnID and renumbers that
// column. When the column changes the source column is compacted and the target's
// WIP limit is enforced; moves within one column never check the limit.
func (u *cardUsecase) MoveCard(ctx context.Context, boardID, cardID, targetColumnID string, targetPosition int) (*domain.Card, error) {
	var sourceColumnID string
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		card, err := loadCard(ctx, tx, boardID, cardID)
		if err != nil {
			return err
		}
		target, err := tx.Columns().GetByIDWithCards(ctx, targetColumnID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.NewNotFoundError("Column with ID %s not found", targetColumnID)
		}
		if target.BoardID != card.BoardID {
			return domain.NewValidationError("Target column %s does not belong to the card's board", targetColumnID)
		}

		sourceColumnID = card.ColumnID
		crossColumn := target.ID != sourceColumnID
		if crossColumn && target.WouldExceedIfAdded() {
			return wipLimitError(target)
		}

		placements, err := ordering.Move(cardsOf(target), card, targetPosition)
		if err != nil {
			return err
		}
		for _, p := range placements {
			if p.Item.ID != card.ID {
				continue
			}
			if err := card.MoveToColumn(target.ID, p.Position); err != nil {
				return err
			}
			if err := tx.Cards().Update(ctx, card); err != nil {
				return err
			}
		}
		if err := saveCardPlacements(ctx, tx.Cards(), placements); err != nil {
			return err
		}

		if !crossColumn {
			return nil
		}
		remaining, err := tx.Cards().ListByColumn(ctx, sourceColumnID)
		if err != nil {
			return err
		}
		return saveCardPlacements(ctx, tx.Cards(), ordering.Compact(remaining, card.ID))
	})
	if err != nil {
		return nil, classify(u.log, "move card", err)
	}

	card, err := loadCard(ctx, u.uow, boardID, cardID)
	if err != nil {
		return nil, classify(u.log, "move card", err)
	}

	u.log.Info("card moved",
		zap.String("board_id", boardID),
		zap.String("card_id", cardID),
		zap.String("from_column_id", sourceColumnID),
		zap.String("to_column_id", card.ColumnID),
		zap.Int("position", card.Position))
	return card, nil
}

// DeleteCard removes the card and closes the gap in its column.
func (u *cardUsecase) DeleteCard(ctx context.Context, boardID, cardID string) error {
	err := u.uow.Transaction(ctx, func(tx repository.Repositories) error {
		card, err := loadCard(ctx, tx, boardID, cardID)
		if err != nil {
			return err
		}
		if err := tx.Cards().Delete(ctx, card); err != nil {
			return err
		}

		remaining, err := tx.Cards().ListByColumn(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		return saveCardPlacements(ctx, tx.Cards(), ordering.Compact(remaining, card.ID))
	})
	if err != nil {
		return classify(u.log, "delete card", err)
	}

	u.log.Info("card deleted", zap.String("board_id", boardID), zap.String("card_id", cardID))
	return nil
}

// SearchCards filters the board's cards. Results are ordered by column then
// position; a fuzzy text query instead ranks by relevance, keeping that order for
// ties.
func (u *cardUsecase) SearchCards(ctx context.Context, boardID string, query dto.SearchCardsQuery) ([]*domain.Card, error) {
	if _, err := loadBoard(ctx, u.uow, boardID); err != nil {
		return nil, classify(u.log, "search cards", err)
	}

	text := strings.TrimSpace(query.Text)
	filter := repository.CardFilter{LabelID: query.LabelID, ColumnID: query.ColumnID}
	if !query.Fuzzy {
		filter.Text = text
	}

	cards, err := u.uow.Cards().Search(ctx, boardID, filter)
	if err != nil {
		return nil, classify(u.log, "search cards", err)
	}
	if !query.Fuzzy || text == "" {
		return cards, nil
	}

	scores := make(map[string]float64, len(cards))
	matched := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if !fuzzy.MatchCard(text, card.Title, card.Description) {
			continue
		}
		scores[card.ID] = fuzzy.Score(text, card.Title, card.Description)
		matched = append(matched, card)
	}
	slices.SortStableFunc(matched, func(a, b *domain.Card) int {
		switch {
		case scores[a.ID] > scores[b.ID]:
			return -1
		case scores[a.ID] < scores[b.ID]:
			return 1
		default:
			return 0
		}
	})

	u.log.Debug("fuzzy card search", zap.String("board_id", boardID), zap.String("query", text), zap.Int("matches", len(matched)))
	return matched, nil
}

func loadCard(ctx context.Context, repos repository.Repositories, boardID, cardID string) (*domain.Card, error) {
	card, err := repos.Cards().GetByIDWithLabels(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.BoardID != boardID {
		return nil, domain.NewNotFoundError("Card with ID %s not found", cardID)
	}
	return card, nil
}

// boardLabelIDs keeps the ids in labelIDs that name labels of boardID, in request
// order and without duplicates.
func boardLabelIDs(ctx context.Context, repos repository.Repositories, boardID string, labelIDs []string) ([]string, error) {
	if len(labelIDs) == 0 {
		return nil, nil
	}
	labels, err := repos.Labels().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(labels))
	for _, label := range labels {
		known[label.ID] = true
	}
	kept := make([]string, 0, len(labelIDs))
	for _, id := range labelIDs {
		if known[id] {
			kept = append(kept, id)
			known[id] = false
		}
	}
	return kept, nil
}

func wipLimitError(column *domain.Column) error {
	return domain.NewWipLimitError("Cannot add card to column '%s': WIP limit of %d would be exceeded", column.Name, *column.WipLimit)
}
