package repository

import (
	"context"
	"errors"
	"strings"

	"taskdeck/internal/kanban/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// boardRepository implements BoardRepository interface
type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of boardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) GetByIDWithColumns(ctx context.Context, id string) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", orderByPosition).
		Preload("Columns.Cards", orderByPosition).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) Search(ctx context.Context, searchText string, includeArchived bool) ([]*domain.Board, error) {
	query := r.db.WithContext(ctx).Model(&domain.Board{})
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if text := strings.TrimSpace(searchText); text != "" {
		pattern := likePattern(text)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var boards []*domain.Board
	if err := query.Order("created_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

func (r *boardRepository) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(board).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lower-cases text for a case-insensitive LIKE on every driver and
// escapes its wildcards. Use it with ESCAPE '\'.
func likePattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
