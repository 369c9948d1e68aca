package repository

import (
	"context"
	"errors"

	"taskdeck/internal/kanban/domain"

	"gorm.io/gorm"
)

// labelRepository implements LabelRepository interface
type labelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new instance of labelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) GetByID(ctx context.Context, id string) (*domain.Label, error) {
	var label domain.Label
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&label).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) ListByBoard(ctx context.Context, boardID string) ([]*domain.Label, error) {
	var labels []*domain.Label
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("name ASC").Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *labelRepository) Create(ctx context.Context, label *domain.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *labelRepository) Update(ctx context.Context, label *domain.Label) error {
	return r.db.WithContext(ctx).Save(label).Error
}

func (r *labelRepository) Delete(ctx context.Context, label *domain.Label) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("label_id = ?", label.ID).Delete(&domain.CardLabel{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", label.ID).Delete(&domain.Label{}).Error
}
