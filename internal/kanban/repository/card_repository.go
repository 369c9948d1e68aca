package repository

import (
	"context"
	"errors"
	"strings"

	"taskdeck/internal/kanban/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cardRepository implements CardRepository interface
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of cardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByIDWithLabels(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).Preload("Labels", orderByName).Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByColumn(ctx context.Context, columnID string) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position ASC").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Search orders by the owning column's position, then the card's.
func (r *cardRepository) Search(ctx context.Context, boardID string, filter CardFilter) ([]*domain.Card, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Preload("Labels", orderByName).
		Joins("JOIN columns ON columns.id = cards.column_id").
		Where("cards.board_id = ?", boardID)

	if text := strings.TrimSpace(filter.Text); text != "" {
		pattern := likePattern(text)
		query = query.Where(`LOWER(cards.title) LIKE ? ESCAPE '\' OR LOWER(cards.description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if filter.LabelID != "" {
		query = query.Where("cards.id IN (?)",
			r.db.Model(&domain.CardLabel{}).Select("card_id").Where("label_id = ?", filter.LabelID))
	}
	if filter.ColumnID != "" {
		query = query.Where("cards.column_id = ?", filter.ColumnID)
	}

	var cards []*domain.Card
	if err := query.Order("columns.position ASC, cards.position ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(card).Error
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error
}

func (r *cardRepository) Delete(ctx context.Context, card *domain.Card) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("card_id = ?", card.ID).Delete(&domain.CardLabel{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", card.ID).Delete(&domain.Card{}).Error
}

func (r *cardRepository) ReplaceLabels(ctx context.Context, cardID string, labelIDs []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("card_id = ?", cardID).Delete(&domain.CardLabel{}).Error; err != nil {
		return err
	}
	if len(labelIDs) == 0 {
		return nil
	}

	rows := make([]domain.CardLabel, len(labelIDs))
	for i, labelID := range labelIDs {
		rows[i] = domain.CardLabel{CardID: cardID, LabelID: labelID}
	}
	return db.Create(&rows).Error
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
