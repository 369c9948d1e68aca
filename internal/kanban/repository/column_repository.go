package repository

import (
	"context"
	"errors"

	"taskdeck/internal/kanban/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// columnRepository implements ColumnRepository interface
type columnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of columnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepository{db: db}
}

func (r *columnRepository) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	var column domain.Column
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) GetByIDWithCards(ctx context.Context, id string) (*domain.Column, error) {
	var column domain.Column
	err := r.db.WithContext(ctx).
		Preload("Cards", orderByPosition).
		Where("id = ?", id).
		First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	var columns []*domain.Column
	err := r.db.WithContext(ctx).
		Preload("Cards", orderByPosition).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *columnRepository) Create(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(column).Error
}

// Update writes every column field. Each call is its own statement, so the
// (board_id, position) unique index is checked per row.
func (r *columnRepository) Update(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(column).Error
}

func (r *columnRepository) Delete(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Where("id = ?", column.ID).Delete(&domain.Column{}).Error
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
