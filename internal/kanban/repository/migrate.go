package repository

import (
	"fmt"

	"taskdeck/internal/kanban/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the kanban schema, including the
// (board_id, position) unique index on columns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&domain.Card{}, "Labels", &domain.CardLabel{}); err != nil {
		return fmt.Errorf("setup card_labels join table: %w", err)
	}
	if err := db.AutoMigrate(&domain.Board{}, &domain.Column{}, &domain.Label{}, &domain.Card{}, &domain.CardLabel{}); err != nil {
		return fmt.Errorf("auto-migrate kanban schema: %w", err)
	}
	return nil
}
