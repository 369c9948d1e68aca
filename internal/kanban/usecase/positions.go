package usecase

import (
	"context"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/ordering"
	"taskdeck/internal/kanban/repository"
)

// saveColumnPlacements persists the changed placements in two passes: every
// changed column is parked below every current position first, then written to
// its final position. The (board_id, position) index is checked per statement, so
// writing final positions directly could collide with a sibling not yet moved.
func saveColumnPlacements(ctx context.Context, columns repository.ColumnRepository, placements []ordering.Placement[*domain.Column]) error {
	items := make([]*domain.Column, len(placements))
	for i, p := range placements {
		items[i] = p.Item
	}
	floor := ordering.ParkingFloor(items)

	changed := changedPlacements(placements)
	for i, p := range changed {
		if err := p.Item.SetTransientPosition(ordering.TransientPosition(floor, i)); err != nil {
			return err
		}
		if err := columns.Update(ctx, p.Item); err != nil {
			return err
		}
	}
	for _, p := range changed {
		if err := p.Item.SetPosition(p.Position); err != nil {
			return err
		}
		if err := columns.Update(ctx, p.Item); err != nil {
			return err
		}
	}
	return nil
}

// saveCardPlacements writes the changed card positions. Card positions carry no
// unique index, so one pass is enough.
func saveCardPlacements(ctx context.Context, cards repository.CardRepository, placements []ordering.Placement[*domain.Card]) error {
	for _, p := range changedPlacements(placements) {
		if err := p.Item.SetPosition(p.Position); err != nil {
			return err
		}
		if err := cards.Update(ctx, p.Item); err != nil {
			return err
		}
	}
	return nil
}

func changedPlacements[T ordering.Positioned](placements []ordering.Placement[T]) []ordering.Placement[T] {
	changed := make([]ordering.Placement[T], 0, len(placements))
	for _, p := range placements {
		if p.Changed() {
			changed = append(changed, p)
		}
	}
	return changed
}

// cardsOf exposes the loaded cards of a column as pointers for the ordering engine.
func cardsOf(column *domain.Column) []*domain.Card {
	cards := make([]*domain.Card, len(column.Cards))
	for i := range column.Cards {
		cards[i] = &column.Cards[i]
	}
	return cards
}
